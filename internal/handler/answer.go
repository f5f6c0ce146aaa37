package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/housing-survey/internal/queue"
	"github.com/iliyamo/housing-survey/internal/repository"
	queue_publisher "github.com/iliyamo/housing-survey/internal/service"
)

// AnswerHandler serves the public answer submission routes and the
// owner-facing per-survey listing.
type AnswerHandler struct {
	Answers *repository.AnswerRepo
	Surveys *repository.SurveyRepo
}

// ListBySurvey handles GET /v1/answer/survey/:id (JWT, scoped).
func (h *AnswerHandler) ListBySurvey(c echo.Context) error {
	actor, err := getActor(c)
	if err != nil {
		return unauthorized(c)
	}
	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, "invalid id")
	}
	items, err := h.Answers.ListBySurvey(c.Request().Context(), id, actor)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

// Create handles POST /v1/answer. Public; the body carries the survey key.
func (h *AnswerHandler) Create(c echo.Context) error {
	var body struct {
		SurveyKey  string `json:"survey_key"`
		Answer     int    `json:"answer"`
		QuestionID uint64 `json:"question_id"`
	}
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	if body.SurveyKey == "" || body.QuestionID == 0 {
		return badRequest(c, "survey_key and question_id are required")
	}
	id, err := h.Answers.CreateByKey(c.Request().Context(), body.SurveyKey,
		repository.AnswerInput{Answer: body.Answer, QuestionID: body.QuestionID})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]any{"id": id})
}

// CreateBatch handles POST /v1/answer/all, a respondent's full submission
// in one transaction. A submitted event is published best-effort.
func (h *AnswerHandler) CreateBatch(c echo.Context) error {
	var body struct {
		SurveyKey string                   `json:"survey_key"`
		Answers   []repository.AnswerInput `json:"answers"`
	}
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	if body.SurveyKey == "" || len(body.Answers) == 0 {
		return badRequest(c, "survey_key and answers are required")
	}
	if err := h.Answers.CreateBatch(c.Request().Context(), body.SurveyKey, body.Answers); err != nil {
		return writeError(c, err)
	}
	if s, err := h.Surveys.GetByKey(c.Request().Context(), body.SurveyKey); err == nil {
		_ = queue_publisher.PublishAnswersSubmitted(c.Request().Context(), queue.AnswersSubmittedEvent{
			SurveyID:    s.ID,
			Count:       len(body.Answers),
			SubmittedAt: time.Now().UTC().Format(time.RFC3339),
		})
	}
	return c.JSON(http.StatusCreated, map[string]any{"count": len(body.Answers)})
}

func (h *AnswerHandler) Update(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, "invalid id")
	}
	var body repository.PutAnswer
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := h.Answers.Update(c.Request().Context(), id, body); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Answer updated"})
}

func (h *AnswerHandler) Delete(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, "invalid id")
	}
	if err := h.Answers.Delete(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Answer deleted"})
}
