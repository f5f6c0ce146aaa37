package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/housing-survey/internal/repository"
)

// AddressHandler serves CRUD for addresses.
type AddressHandler struct {
	Addresses *repository.AddressRepo
}

func (h *AddressHandler) List(c echo.Context) error {
	items, err := h.Addresses.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *AddressHandler) Get(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, "invalid id")
	}
	item, err := h.Addresses.Get(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, item)
}

func (h *AddressHandler) Create(c echo.Context) error {
	var body struct {
		Number   string `json:"number"`
		StreetID uint64 `json:"street_id"`
	}
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	body.Number = strings.TrimSpace(body.Number)
	if body.Number == "" || body.StreetID == 0 {
		return badRequest(c, "number and street_id are required")
	}
	id, err := h.Addresses.Create(c.Request().Context(), body.Number, body.StreetID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]any{"id": id})
}

func (h *AddressHandler) Update(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, "invalid id")
	}
	var body repository.PutAddress
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := h.Addresses.Update(c.Request().Context(), id, body); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Address updated"})
}

func (h *AddressHandler) Delete(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, "invalid id")
	}
	if err := h.Addresses.Delete(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Address deleted"})
}
