package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"modacart/internal/auth"
	"modacart/internal/errors"
	"modacart/internal/service"
)

// AuthHandler handles the customer authentication endpoints.
type AuthHandler struct {
	authService service.AuthService
	userService service.UserService
	tokens      *auth.JWTService
	secure      bool
}

// NewAuthHandler creates a new auth handler. secure mirrors the
// production flag and controls cookie attributes.
func NewAuthHandler(authService service.AuthService, userService service.UserService, tokens *auth.JWTService, secure bool) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		userService: userService,
		tokens:      tokens,
		secure:      secure,
	}
}

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Register godoc
// @Summary Register a new customer
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 200 {object} errors.Response
// @Failure 400 {object} errors.Response
// @Failure 409 {object} errors.Response
// @Failure 500 {object} errors.Response
// @Router /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errors.Fail("invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errors.Fail("missing or invalid fields"))
	}

	user, token, err := h.authService.Register(c.Request().Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if err == errors.ErrDuplicateEmail {
			return c.JSON(http.StatusConflict, errors.Fail(err.Error()))
		}
		c.Logger().Errorf("register failed: %v", err)
		return c.JSON(http.StatusInternalServerError, errors.Fail("internal server error"))
	}

	auth.SetSessionCookie(c, auth.SessionCookieName, token, auth.SessionTokenTTL, h.secure)
	return c.JSON(http.StatusOK, errors.Response{Success: true, User: user})
}

// Login godoc
// @Summary Log a customer in
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} errors.Response
// @Failure 400 {object} errors.Response
// @Failure 401 {object} errors.Response
// @Failure 500 {object} errors.Response
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errors.Fail("invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errors.Fail("missing or invalid fields"))
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if err == errors.ErrInvalidCredentials {
			return c.JSON(http.StatusUnauthorized, errors.Fail(err.Error()))
		}
		c.Logger().Errorf("login failed: %v", err)
		return c.JSON(http.StatusInternalServerError, errors.Fail("internal server error"))
	}

	auth.SetSessionCookie(c, auth.SessionCookieName, token, auth.SessionTokenTTL, h.secure)
	return c.JSON(http.StatusOK, errors.Response{Success: true, User: user})
}

// Logout godoc
// @Summary Log out, clearing both session cookies
// @Tags auth
// @Produce json
// @Success 200 {object} errors.Response
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	auth.ClearAllSessionCookies(c, h.secure)
	return c.JSON(http.StatusOK, errors.Response{Success: true, Message: "logged out successfully"})
}

// Me godoc
// @Summary Return the current principal from the session cookie
// @Tags auth
// @Produce json
// @Success 200 {object} errors.Response
// @Failure 401 {object} errors.Response
// @Router /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	token := auth.ReadSessionCookie(c, auth.SessionCookieName)
	if token == "" {
		token = auth.ReadSessionCookie(c, auth.AdminCookieName)
	}
	if token == "" {
		return c.JSON(http.StatusUnauthorized, errors.Fail("unauthorized"))
	}

	claims, err := h.tokens.Verify(token)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, errors.Fail("unauthorized"))
	}

	user, err := h.userService.CurrentUser(c.Request().Context(), claims)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, errors.Fail("unauthorized"))
	}

	return c.JSON(http.StatusOK, errors.Response{Success: true, User: user})
}
