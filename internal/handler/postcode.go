package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/housing-survey/internal/repository"
)

// PostcodeHandler serves CRUD for postcodes.
type PostcodeHandler struct {
	Postcodes *repository.PostcodeRepo
}

func (h *PostcodeHandler) List(c echo.Context) error {
	items, err := h.Postcodes.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *PostcodeHandler) Get(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, "invalid id")
	}
	item, err := h.Postcodes.Get(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, item)
}

func (h *PostcodeHandler) Create(c echo.Context) error {
	var body struct {
		Code   string `json:"code"`
		Name   string `json:"name"`
		CityID uint64 `json:"city_id"`
	}
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	body.Code = strings.TrimSpace(body.Code)
	body.Name = strings.TrimSpace(body.Name)
	if body.Code == "" || body.Name == "" || body.CityID == 0 {
		return badRequest(c, "code, name and city_id are required")
	}
	id, err := h.Postcodes.Create(c.Request().Context(), body.Code, body.Name, body.CityID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]any{"id": id})
}

func (h *PostcodeHandler) Update(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, "invalid id")
	}
	var body repository.PutPostcode
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := h.Postcodes.Update(c.Request().Context(), id, body); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Postcode updated"})
}

func (h *PostcodeHandler) Delete(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, "invalid id")
	}
	if err := h.Postcodes.Delete(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Postcode deleted"})
}
