package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/housing-survey/internal/repository"
	"github.com/iliyamo/housing-survey/internal/utils"
)

// AuthHandler serves registration, login and the current-user lookup.
type AuthHandler struct {
	Users        *repository.UserRepo
	JWTSecret    string
	AccessTTLMin int
	BcryptCost   int
}

// Register handles POST /v1/auth/register. New accounts always get the
// "user" role; roles are only changed later by an admin.
func (h *AuthHandler) Register(c echo.Context) error {
	var body struct {
		UserName string `json:"user_name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	body.UserName = strings.TrimSpace(body.UserName)
	body.Email = strings.TrimSpace(body.Email)
	if body.UserName == "" || body.Email == "" || body.Password == "" {
		return badRequest(c, "user_name, email and password are required")
	}
	id, err := h.Users.Create(c.Request().Context(), body.UserName, body.Email, body.Password,
		repository.RoleUser, h.BcryptCost)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]any{"id": id})
}

// Login handles POST /v1/auth/login and returns a signed access token.
func (h *AuthHandler) Login(c echo.Context) error {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	u, err := h.Users.GetByEmail(c.Request().Context(), body.Email)
	if err != nil || !utils.VerifyPassword(u.PasswordHash, body.Password) {
		// Same response for unknown email and wrong password.
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid credentials"})
	}
	tok, err := utils.NewAccessToken(h.JWTSecret, u.ID, u.Role, h.AccessTTLMin)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"access_token": tok.Token,
		"expires_at":   tok.Exp,
		"user":         u,
	})
}

// Me handles GET /v1/me and returns the authenticated user.
func (h *AuthHandler) Me(c echo.Context) error {
	actor, err := getActor(c)
	if err != nil {
		return unauthorized(c)
	}
	u, err := h.Users.Get(c.Request().Context(), actor.ID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, u)
}
