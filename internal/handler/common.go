package handler // handler package contains the HTTP handlers for the survey API

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/housing-survey/internal/repository"
)

// getActor builds the request actor from the claims the JWT middleware
// stored in context. The sub claim arrives as a float64 because the JWT
// library decodes JSON numbers that way.
func getActor(c echo.Context) (repository.Actor, error) {
	var a repository.Actor
	switch v := c.Get("user_id").(type) {
	case float64:
		a.ID = uint64(v)
	case uint64:
		a.ID = v
	case string:
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return a, errors.New("invalid user id claim")
		}
		a.ID = n
	default:
		return a, errors.New("missing user id claim")
	}
	role, ok := c.Get("role").(string)
	if !ok {
		return a, errors.New("missing role claim")
	}
	a.Role = role
	return a, nil
}

// parseID parses a numeric path parameter.
func parseID(c echo.Context, name string) (uint64, error) {
	return strconv.ParseUint(c.Param(name), 10, 64)
}

// writeError maps a repository error kind to its HTTP status. Unknown
// errors surface as 500 with a generic message so internals do not leak.
func writeError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, repository.ErrUnauthorized):
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": err.Error()})
	case errors.Is(err, repository.ErrEmailExists):
		return c.JSON(http.StatusConflict, map[string]string{"error": "email already exists"})
	case errors.Is(err, repository.ErrCreateFailed),
		errors.Is(err, repository.ErrUpdateFailed),
		errors.Is(err, repository.ErrDeleteFailed):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, map[string]string{"error": msg})
}

func unauthorized(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
}
