package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/housing-survey/internal/utils"
)

func doRequest(t *testing.T, mw echo.MiddlewareFunc, authHeader string) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	h := mw(func(c echo.Context) error { return c.String(http.StatusOK, "ok") })
	require.NoError(t, h(c))
	return rec, c
}

func TestJWTAuthValidToken(t *testing.T) {
	tok, err := utils.NewAccessToken("test-secret", 7, "user", 5)
	require.NoError(t, err)

	rec, c := doRequest(t, JWTAuth("test-secret"), "Bearer "+tok.Token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(7), c.Get("user_id"))
	assert.Equal(t, "user", c.Get("role"))
}

func TestJWTAuthRejects(t *testing.T) {
	rec, _ := doRequest(t, JWTAuth("test-secret"), "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = doRequest(t, JWTAuth("test-secret"), "Bearer not.a.token")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Token signed with a different secret.
	tok, err := utils.NewAccessToken("other-secret", 7, "user", 5)
	require.NoError(t, err)
	rec, _ = doRequest(t, JWTAuth("test-secret"), "Bearer "+tok.Token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRole(t *testing.T) {
	run := func(role string, mw echo.MiddlewareFunc) int {
		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		if role != "" {
			c.Set("role", role)
		}
		h := mw(func(c echo.Context) error { return c.String(http.StatusOK, "ok") })
		require.NoError(t, h(c))
		return rec.Code
	}

	adminOnly := RequireRole("admin")
	assert.Equal(t, http.StatusOK, run("admin", adminOnly))
	assert.Equal(t, http.StatusForbidden, run("user", adminOnly))
	// superadmin is not admin anywhere in this API.
	assert.Equal(t, http.StatusForbidden, run("superadmin", adminOnly))
	assert.Equal(t, http.StatusForbidden, run("", adminOnly))

	anyKnown := RequireRole("user", "admin", "superadmin")
	assert.Equal(t, http.StatusOK, run("superadmin", anyKnown))
	assert.Equal(t, http.StatusForbidden, run("guest", anyKnown))
}
