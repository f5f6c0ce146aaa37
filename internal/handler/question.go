package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/housing-survey/internal/repository"
)

// QuestionHandler serves questions with their linked choices. The list
// route is public and returns only active questions; admins use /all for
// the unfiltered listing.
type QuestionHandler struct {
	Questions *repository.QuestionRepo
}

// ListActive handles GET /v1/question. Public, cached.
func (h *QuestionHandler) ListActive(c echo.Context) error {
	items, err := h.Questions.ListActive(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

// List handles GET /v1/question/all (admin), including inactive questions.
func (h *QuestionHandler) List(c echo.Context) error {
	items, err := h.Questions.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *QuestionHandler) Get(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, "invalid id")
	}
	item, err := h.Questions.Get(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, item)
}

func (h *QuestionHandler) Create(c echo.Context) error {
	var body repository.PostQuestion
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	body.Question = strings.TrimSpace(body.Question)
	if body.Question == "" || body.SectionID == 0 {
		return badRequest(c, "question and section_id are required")
	}
	id, err := h.Questions.Create(c.Request().Context(), body)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]any{"id": id})
}

func (h *QuestionHandler) Update(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, "invalid id")
	}
	var body repository.PutQuestion
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := h.Questions.Update(c.Request().Context(), id, body); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Question updated"})
}

func (h *QuestionHandler) Delete(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, "invalid id")
	}
	if err := h.Questions.Delete(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Question deleted"})
}
