package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/housing-survey/internal/repository"
)

// UserHandler serves user administration plus the self-service routes a
// regular user may call on their own account.
type UserHandler struct {
	Users      *repository.UserRepo
	BcryptCost int
}

func (h *UserHandler) List(c echo.Context) error {
	items, err := h.Users.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *UserHandler) Get(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, "invalid id")
	}
	u, err := h.Users.Get(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, u)
}

func (h *UserHandler) Update(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, "invalid id")
	}
	var body repository.PutUser
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := h.Users.Update(c.Request().Context(), id, body, h.BcryptCost); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "User updated"})
}

func (h *UserHandler) Delete(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, "invalid id")
	}
	if err := h.Users.Delete(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "User deleted"})
}

// UpdateCurrent handles PUT /v1/user/current. Regular users may change
// their own name, email and password but never their role.
func (h *UserHandler) UpdateCurrent(c echo.Context) error {
	actor, err := getActor(c)
	if err != nil {
		return unauthorized(c)
	}
	var body repository.PutUser
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	body.Role = nil
	if err := h.Users.Update(c.Request().Context(), actor.ID, body, h.BcryptCost); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "User updated"})
}

// DeleteCurrent handles DELETE /v1/user/current.
func (h *UserHandler) DeleteCurrent(c echo.Context) error {
	actor, err := getActor(c)
	if err != nil {
		return unauthorized(c)
	}
	if err := h.Users.Delete(c.Request().Context(), actor.ID); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "User deleted"})
}
