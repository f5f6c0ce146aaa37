package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/housing-survey/internal/queue"
	"github.com/iliyamo/housing-survey/internal/repository"
	queue_publisher "github.com/iliyamo/housing-survey/internal/service"
)

// SurveyHandler serves ownership-scoped CRUD for surveys and the public
// lookup by survey key.
type SurveyHandler struct {
	Surveys *repository.SurveyRepo
}

func (h *SurveyHandler) List(c echo.Context) error {
	actor, err := getActor(c)
	if err != nil {
		return unauthorized(c)
	}
	items, err := h.Surveys.List(c.Request().Context(), actor)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

// ListByCompany handles GET /v1/survey/housing-company/:id.
func (h *SurveyHandler) ListByCompany(c echo.Context) error {
	actor, err := getActor(c)
	if err != nil {
		return unauthorized(c)
	}
	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, "invalid id")
	}
	items, err := h.Surveys.ListByCompany(c.Request().Context(), id, actor)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *SurveyHandler) Get(c echo.Context) error {
	actor, err := getActor(c)
	if err != nil {
		return unauthorized(c)
	}
	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, "invalid id")
	}
	item, err := h.Surveys.Get(c.Request().Context(), id, actor)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, item)
}

// GetByKey handles GET /v1/survey/key/:key. Public; this is how a
// respondent's browser loads the survey behind a mailed link.
func (h *SurveyHandler) GetByKey(c echo.Context) error {
	key := c.Param("key")
	if key == "" {
		return badRequest(c, "key is required")
	}
	item, err := h.Surveys.GetByKey(c.Request().Context(), key)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, item)
}

// Create handles POST /v1/survey. The survey key, status and response cap
// are filled in server side; a created event is published best-effort.
func (h *SurveyHandler) Create(c echo.Context) error {
	actor, err := getActor(c)
	if err != nil {
		return unauthorized(c)
	}
	var body repository.PostSurvey
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	if body.HousingCompanyID == 0 {
		return badRequest(c, "housing_company_id is required")
	}
	s, err := h.Surveys.Create(c.Request().Context(), body, actor)
	if err != nil {
		return writeError(c, err)
	}
	_ = queue_publisher.PublishSurveyCreated(c.Request().Context(), queue.SurveyCreatedEvent{
		SurveyID:         s.ID,
		SurveyKey:        s.SurveyKey,
		HousingCompanyID: s.HousingCompanyID,
		UserID:           s.UserID,
		MaxResponses:     s.MaxResponses,
		CreatedAt:        time.Now().UTC().Format(time.RFC3339),
	})
	return c.JSON(http.StatusCreated, s)
}

func (h *SurveyHandler) Update(c echo.Context) error {
	actor, err := getActor(c)
	if err != nil {
		return unauthorized(c)
	}
	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, "invalid id")
	}
	var body repository.PutSurvey
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := h.Surveys.Update(c.Request().Context(), id, body, actor); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Survey updated"})
}

// Delete handles DELETE /v1/survey/:id, removing the survey and its
// answers together.
func (h *SurveyHandler) Delete(c echo.Context) error {
	actor, err := getActor(c)
	if err != nil {
		return unauthorized(c)
	}
	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, "invalid id")
	}
	if err := h.Surveys.Delete(c.Request().Context(), id, actor); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Survey deleted"})
}
