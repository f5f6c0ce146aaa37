package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/housing-survey/internal/repository"
)

// ChoiceHandler serves answer choices and the lookup by numeric value.
type ChoiceHandler struct {
	Choices *repository.ChoiceRepo
}

func (h *ChoiceHandler) List(c echo.Context) error {
	items, err := h.Choices.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

// ListByValue handles GET /v1/choice/value/:value.
func (h *ChoiceHandler) ListByValue(c echo.Context) error {
	value, err := strconv.Atoi(c.Param("value"))
	if err != nil {
		return badRequest(c, "invalid value")
	}
	items, err := h.Choices.ListByValue(c.Request().Context(), value)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *ChoiceHandler) Get(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, "invalid id")
	}
	item, err := h.Choices.Get(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, item)
}

func (h *ChoiceHandler) Create(c echo.Context) error {
	var body struct {
		ChoiceText  string `json:"choice_text"`
		ChoiceValue int    `json:"choice_value"`
	}
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	body.ChoiceText = strings.TrimSpace(body.ChoiceText)
	if body.ChoiceText == "" {
		return badRequest(c, "choice_text is required")
	}
	if body.ChoiceValue < 1 || body.ChoiceValue > 3 {
		return badRequest(c, "choice_value must be between 1 and 3")
	}
	id, err := h.Choices.Create(c.Request().Context(), body.ChoiceText, body.ChoiceValue)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]any{"id": id})
}

func (h *ChoiceHandler) Update(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, "invalid id")
	}
	var body repository.PutChoice
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	if body.ChoiceValue != nil && (*body.ChoiceValue < 1 || *body.ChoiceValue > 3) {
		return badRequest(c, "choice_value must be between 1 and 3")
	}
	if err := h.Choices.Update(c.Request().Context(), id, body); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Choice updated"})
}

func (h *ChoiceHandler) Delete(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, "invalid id")
	}
	if err := h.Choices.Delete(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Choice deleted"})
}
