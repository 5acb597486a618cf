package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"modacart/internal/auth"
	"modacart/internal/errors"
	"modacart/internal/model"
	"modacart/internal/repository"
	"modacart/internal/service"
)

// UserHandler bundles the admin user management endpoints. The router
// mounts it behind the admin cookie guard plus the admin role check.
type UserHandler struct {
	svc service.UserService
}

// NewUserHandler creates a handler layer.
func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// CreateUserRequest provisions a user with an explicit role.
type CreateUserRequest struct {
	Name     string     `json:"name" validate:"required"`
	Email    string     `json:"email" validate:"required,email"`
	Password string     `json:"password" validate:"required,min=6"`
	Role     model.Role `json:"role"`
}

// UpdateUserRequest carries partial updates; absent fields stay as is.
type UpdateUserRequest struct {
	Name     *string     `json:"name"`
	Email    *string     `json:"email" validate:"omitempty,email"`
	Password *string     `json:"password" validate:"omitempty,min=6"`
	Role     *model.Role `json:"role"`
	IsActive *bool       `json:"is_active"`
}

// ListUsers godoc
// @Summary List all users, including deactivated ones
// @Tags admin-users
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} errors.Response
// @Router /admin/users [get]
func (h *UserHandler) ListUsers(c echo.Context) error {
	users, err := h.svc.ListUsers(c.Request().Context())
	if err != nil {
		c.Logger().Errorf("list users failed: %v", err)
		return c.JSON(http.StatusInternalServerError, errors.Fail("internal server error"))
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "users": users})
}

// CreateUser godoc
// @Summary Provision a user with a role
// @Tags admin-users
// @Accept json
// @Produce json
// @Param request body CreateUserRequest true "User data"
// @Success 200 {object} errors.Response
// @Failure 400 {object} errors.Response
// @Failure 409 {object} errors.Response
// @Failure 500 {object} errors.Response
// @Router /admin/users [post]
func (h *UserHandler) CreateUser(c echo.Context) error {
	var req CreateUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errors.Fail("invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errors.Fail("missing or invalid fields"))
	}

	role := req.Role
	if role == "" {
		role = model.RoleCustomer
	}
	if !role.Valid() {
		return c.JSON(http.StatusBadRequest, errors.Fail("unknown role"))
	}

	user, err := h.svc.CreateUser(c.Request().Context(), req.Name, req.Email, req.Password, role)
	if err != nil {
		if err == errors.ErrDuplicateEmail {
			return c.JSON(http.StatusConflict, errors.Fail(err.Error()))
		}
		c.Logger().Errorf("create user failed: %v", err)
		return c.JSON(http.StatusInternalServerError, errors.Fail("internal server error"))
	}
	return c.JSON(http.StatusOK, errors.Response{Success: true, User: user})
}

// GetUser godoc
// @Summary Get a user by id
// @Tags admin-users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} errors.Response
// @Failure 404 {object} errors.Response
// @Router /admin/users/{id} [get]
func (h *UserHandler) GetUser(c echo.Context) error {
	user, err := h.svc.GetUser(c.Request().Context(), c.Param("id"))
	if err != nil {
		if err == errors.ErrUserNotFound {
			return c.JSON(http.StatusNotFound, errors.Fail("user not found"))
		}
		c.Logger().Errorf("get user failed: %v", err)
		return c.JSON(http.StatusInternalServerError, errors.Fail("internal server error"))
	}
	return c.JSON(http.StatusOK, errors.Response{Success: true, User: user})
}

// UpdateUser godoc
// @Summary Update a user's fields
// @Tags admin-users
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body UpdateUserRequest true "Fields to change"
// @Success 200 {object} errors.Response
// @Failure 400 {object} errors.Response
// @Failure 404 {object} errors.Response
// @Failure 409 {object} errors.Response
// @Router /admin/users/{id} [put]
func (h *UserHandler) UpdateUser(c echo.Context) error {
	var req UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errors.Fail("invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errors.Fail("missing or invalid fields"))
	}
	if req.Role != nil && !req.Role.Valid() {
		return c.JSON(http.StatusBadRequest, errors.Fail("unknown role"))
	}

	updates := repository.UserUpdate{
		Name:     req.Name,
		Email:    req.Email,
		Role:     req.Role,
		IsActive: req.IsActive,
	}
	if req.Password != nil {
		hash, err := auth.HashPassword(*req.Password)
		if err != nil {
			c.Logger().Errorf("hash password failed: %v", err)
			return c.JSON(http.StatusInternalServerError, errors.Fail("internal server error"))
		}
		updates.PasswordHash = &hash
	}

	user, err := h.svc.UpdateUser(c.Request().Context(), c.Param("id"), updates)
	if err != nil {
		if err == errors.ErrUserNotFound {
			return c.JSON(http.StatusNotFound, errors.Fail("user not found"))
		}
		if err == errors.ErrDuplicateEmail {
			return c.JSON(http.StatusConflict, errors.Fail(err.Error()))
		}
		c.Logger().Errorf("update user failed: %v", err)
		return c.JSON(http.StatusInternalServerError, errors.Fail("internal server error"))
	}
	return c.JSON(http.StatusOK, errors.Response{Success: true, User: user})
}

// DeleteUser godoc
// @Summary Deactivate a user (soft delete)
// @Tags admin-users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} errors.Response
// @Failure 404 {object} errors.Response
// @Router /admin/users/{id} [delete]
func (h *UserHandler) DeleteUser(c echo.Context) error {
	if err := h.svc.DeactivateUser(c.Request().Context(), c.Param("id")); err != nil {
		if err == errors.ErrUserNotFound {
			return c.JSON(http.StatusNotFound, errors.Fail("user not found"))
		}
		c.Logger().Errorf("deactivate user failed: %v", err)
		return c.JSON(http.StatusInternalServerError, errors.Fail("internal server error"))
	}
	return c.JSON(http.StatusOK, errors.Response{Success: true, Message: "user deactivated"})
}
