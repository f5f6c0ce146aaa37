package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/housing-survey/internal/repository"
)

func newContext(t *testing.T) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestGetActorFromClaims(t *testing.T) {
	c, _ := newContext(t)
	// The JWT library decodes numeric claims as float64.
	c.Set("user_id", float64(7))
	c.Set("role", "superadmin")

	actor, err := getActor(c)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), actor.ID)
	assert.Equal(t, repository.RoleSuperadmin, actor.Role)
	assert.False(t, actor.IsAdmin())
}

func TestGetActorMissingClaims(t *testing.T) {
	c, _ := newContext(t)
	_, err := getActor(c)
	assert.Error(t, err)

	c.Set("user_id", float64(7))
	_, err = getActor(c)
	assert.Error(t, err, "role claim still missing")
}

func TestWriteErrorStatusMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{repository.ErrNotFound, http.StatusNotFound},
		{repository.ErrUnauthorized, http.StatusUnauthorized},
		{repository.ErrEmailExists, http.StatusConflict},
		{repository.ErrCreateFailed, http.StatusBadRequest},
		{repository.ErrUpdateFailed, http.StatusBadRequest},
		{repository.ErrDeleteFailed, http.StatusBadRequest},
		{assert.AnError, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		c, rec := newContext(t)
		require.NoError(t, writeError(c, tc.err))
		assert.Equal(t, tc.status, rec.Code, "error %v", tc.err)
	}
}

func TestWriteErrorHidesInternalMessage(t *testing.T) {
	c, rec := newContext(t)
	require.NoError(t, writeError(c, assert.AnError))
	assert.Contains(t, rec.Body.String(), "internal server error")
	assert.NotContains(t, rec.Body.String(), assert.AnError.Error())
}
