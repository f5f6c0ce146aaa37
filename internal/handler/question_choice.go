package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/housing-survey/internal/repository"
)

// QuestionChoiceHandler serves direct maintenance of the question-choice
// join rows. Admin only.
type QuestionChoiceHandler struct {
	QuestionChoices *repository.QuestionChoiceRepo
}

func (h *QuestionChoiceHandler) List(c echo.Context) error {
	items, err := h.QuestionChoices.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *QuestionChoiceHandler) Get(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, "invalid id")
	}
	item, err := h.QuestionChoices.Get(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, item)
}

func (h *QuestionChoiceHandler) Create(c echo.Context) error {
	var body struct {
		QuestionID uint64 `json:"question_id"`
		ChoiceID   uint64 `json:"choice_id"`
	}
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	if body.QuestionID == 0 || body.ChoiceID == 0 {
		return badRequest(c, "question_id and choice_id are required")
	}
	id, err := h.QuestionChoices.Create(c.Request().Context(), body.QuestionID, body.ChoiceID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]any{"id": id})
}

func (h *QuestionChoiceHandler) Update(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, "invalid id")
	}
	var body repository.PutQuestionChoice
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := h.QuestionChoices.Update(c.Request().Context(), id, body); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Question choice updated"})
}

func (h *QuestionChoiceHandler) Delete(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, "invalid id")
	}
	if err := h.QuestionChoices.Delete(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Question choice deleted"})
}
