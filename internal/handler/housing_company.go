package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/housing-survey/internal/repository"
)

// HousingCompanyHandler serves ownership-scoped CRUD for housing
// companies and the lookup routes by user, postcode, city and street.
type HousingCompanyHandler struct {
	Companies *repository.HousingCompanyRepo
}

// List handles GET /v1/housing-company. Admin only; the route group
// enforces the role, the repository checks again.
func (h *HousingCompanyHandler) List(c echo.Context) error {
	actor, err := getActor(c)
	if err != nil {
		return unauthorized(c)
	}
	items, err := h.Companies.ListAll(c.Request().Context(), actor)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

// ListCurrent handles GET /v1/housing-company/user/current.
func (h *HousingCompanyHandler) ListCurrent(c echo.Context) error {
	actor, err := getActor(c)
	if err != nil {
		return unauthorized(c)
	}
	items, err := h.Companies.ListByUser(c.Request().Context(), actor.ID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

// ListByUser handles GET /v1/housing-company/user/:id (admin).
func (h *HousingCompanyHandler) ListByUser(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, "invalid id")
	}
	items, err := h.Companies.ListByUser(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

// ListByPostcode handles GET /v1/housing-company/postcode/:id (admin).
func (h *HousingCompanyHandler) ListByPostcode(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, "invalid id")
	}
	items, err := h.Companies.ListByPostcode(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

// ListByCity handles GET /v1/housing-company/city/:id (admin).
func (h *HousingCompanyHandler) ListByCity(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, "invalid id")
	}
	items, err := h.Companies.ListByCity(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

// ListByStreet handles GET /v1/housing-company/street/:id (admin).
func (h *HousingCompanyHandler) ListByStreet(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, "invalid id")
	}
	items, err := h.Companies.ListByStreet(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *HousingCompanyHandler) Get(c echo.Context) error {
	actor, err := getActor(c)
	if err != nil {
		return unauthorized(c)
	}
	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, "invalid id")
	}
	item, err := h.Companies.Get(c.Request().Context(), id, actor)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, item)
}

// Create handles POST /v1/housing-company. The company is recorded under
// the authenticated user unless an admin names another owner.
func (h *HousingCompanyHandler) Create(c echo.Context) error {
	actor, err := getActor(c)
	if err != nil {
		return unauthorized(c)
	}
	var body repository.PostHousingCompany
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	body.Name = strings.TrimSpace(body.Name)
	if body.Name == "" || body.AddressID == 0 || body.ApartmentCount <= 0 {
		return badRequest(c, "name, apartment_count and address_id are required")
	}
	if body.UserID == 0 || !actor.IsAdmin() {
		body.UserID = actor.ID
	}
	id, err := h.Companies.Create(c.Request().Context(), body)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]any{"id": id})
}

func (h *HousingCompanyHandler) Update(c echo.Context) error {
	actor, err := getActor(c)
	if err != nil {
		return unauthorized(c)
	}
	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, "invalid id")
	}
	var body repository.PutHousingCompany
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := h.Companies.Update(c.Request().Context(), id, body, actor); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Housing company updated"})
}

// Delete handles DELETE /v1/housing-company/:id and cascades to the
// company's surveys, their answers and the company's address.
func (h *HousingCompanyHandler) Delete(c echo.Context) error {
	actor, err := getActor(c)
	if err != nil {
		return unauthorized(c)
	}
	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, "invalid id")
	}
	if err := h.Companies.DeleteCascade(c.Request().Context(), id, actor); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Housing company deleted"})
}
