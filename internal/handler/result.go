package handler

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/housing-survey/internal/repository"
)

// ResultHandler serves report documents attached to surveys. Uploads are
// multipart; the stored file gets a timestamped name under UploadDir and
// only that generated name is recorded in the database.
type ResultHandler struct {
	Results   *repository.ResultRepo
	UploadDir string
}

func (h *ResultHandler) List(c echo.Context) error {
	actor, err := getActor(c)
	if err != nil {
		return unauthorized(c)
	}
	items, err := h.Results.List(c.Request().Context(), actor)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

// ListBySurvey handles GET /v1/result/survey/:id.
func (h *ResultHandler) ListBySurvey(c echo.Context) error {
	actor, err := getActor(c)
	if err != nil {
		return unauthorized(c)
	}
	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, "invalid id")
	}
	items, err := h.Results.ListBySurvey(c.Request().Context(), id, actor)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *ResultHandler) Get(c echo.Context) error {
	actor, err := getActor(c)
	if err != nil {
		return unauthorized(c)
	}
	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, "invalid id")
	}
	item, err := h.Results.Get(c.Request().Context(), id, actor)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, item)
}

// Create handles POST /v1/result: a multipart form with a "file" part and
// a "survey_id" field. The file is stored before the row is inserted; a
// failed insert leaves an orphan file rather than a dangling row.
func (h *ResultHandler) Create(c echo.Context) error {
	actor, err := getActor(c)
	if err != nil {
		return unauthorized(c)
	}
	surveyID, err := strconv.ParseUint(c.FormValue("survey_id"), 10, 64)
	if err != nil || surveyID == 0 {
		return badRequest(c, "survey_id is required")
	}
	fh, err := c.FormFile("file")
	if err != nil {
		return badRequest(c, "file is required")
	}

	src, err := fh.Open()
	if err != nil {
		return writeError(c, err)
	}
	defer src.Close()

	if err := os.MkdirAll(h.UploadDir, 0o755); err != nil {
		return writeError(c, err)
	}
	now := time.Now().UTC()
	filename := fmt.Sprintf("%d_%s%s", now.UnixMilli(), "result", filepath.Ext(fh.Filename))
	dst, err := os.Create(filepath.Join(h.UploadDir, filename))
	if err != nil {
		return writeError(c, err)
	}
	defer dst.Close()
	if _, err := io.Copy(dst, src); err != nil {
		return writeError(c, err)
	}

	id, err := h.Results.Create(c.Request().Context(),
		now.Format("2006-01-02 15:04:05"), filename, surveyID, actor)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]any{"id": id, "filename": filename})
}

func (h *ResultHandler) Update(c echo.Context) error {
	actor, err := getActor(c)
	if err != nil {
		return unauthorized(c)
	}
	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, "invalid id")
	}
	var body repository.PutResult
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := h.Results.Update(c.Request().Context(), id, body, actor); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Result updated"})
}

func (h *ResultHandler) Delete(c echo.Context) error {
	actor, err := getActor(c)
	if err != nil {
		return unauthorized(c)
	}
	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, "invalid id")
	}
	if err := h.Results.Delete(c.Request().Context(), id, actor); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Result deleted"})
}
