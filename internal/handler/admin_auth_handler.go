package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"modacart/internal/auth"
	"modacart/internal/errors"
	"modacart/internal/service"
)

// AdminAuthHandler handles the admin login flow, which sets the
// separate admin bearer cookie.
type AdminAuthHandler struct {
	authService service.AuthService
	secure      bool
}

// NewAdminAuthHandler creates a new admin auth handler.
func NewAdminAuthHandler(authService service.AuthService, secure bool) *AdminAuthHandler {
	return &AdminAuthHandler{authService: authService, secure: secure}
}

// AdminLoginRequest represents an admin login request. The identifier
// is a username for the bootstrap admin and an email for provisioned
// admins.
type AdminLoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Login godoc
// @Summary Log an admin in
// @Tags admin
// @Accept json
// @Produce json
// @Param request body AdminLoginRequest true "Admin credentials"
// @Success 200 {object} errors.Response
// @Failure 400 {object} errors.Response
// @Failure 401 {object} errors.Response
// @Failure 500 {object} errors.Response
// @Router /admin/login [post]
func (h *AdminAuthHandler) Login(c echo.Context) error {
	var req AdminLoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errors.Fail("invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errors.Fail("missing username or password"))
	}

	token, user, err := h.authService.AdminLogin(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		if err == errors.ErrInvalidCredentials {
			return c.JSON(http.StatusUnauthorized, errors.Fail(err.Error()))
		}
		c.Logger().Errorf("admin login failed: %v", err)
		return c.JSON(http.StatusInternalServerError, errors.Fail("internal server error"))
	}

	auth.SetSessionCookie(c, auth.AdminCookieName, token, auth.AdminTokenTTL, h.secure)
	return c.JSON(http.StatusOK, errors.Response{Success: true, User: user, Message: "admin login successful"})
}

// Logout godoc
// @Summary Log an admin out, clearing both session cookies
// @Tags admin
// @Produce json
// @Success 200 {object} errors.Response
// @Router /admin/logout [post]
func (h *AdminAuthHandler) Logout(c echo.Context) error {
	auth.ClearAllSessionCookies(c, h.secure)
	return c.JSON(http.StatusOK, errors.Response{Success: true, Message: "logged out successfully"})
}
