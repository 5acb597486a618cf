package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"modacart/internal/errors"
	"modacart/internal/model"
	"modacart/internal/service"
)

// SeedHandler provisions demo users for development environments. The
// router does not register it in production.
type SeedHandler struct {
	svc service.UserService
}

// NewSeedHandler creates a new seed handler.
func NewSeedHandler(svc service.UserService) *SeedHandler {
	return &SeedHandler{svc: svc}
}

// SeedUsersResponse represents the seed response.
type SeedUsersResponse struct {
	Message string `json:"message"`
	Count   int    `json:"count"`
}

type seedUser struct {
	Name     string
	Email    string
	Password string
	Role     model.Role
}

var demoUsers = []seedUser{
	{Name: "Demo Admin", Email: "admin@example.com", Password: "admin123", Role: model.RoleAdmin},
	{Name: "Demo Manager", Email: "manager@example.com", Password: "manager123", Role: model.RoleManager},
	{Name: "Demo Editor", Email: "editor@example.com", Password: "editor123", Role: model.RoleEditor},
	{Name: "Demo Customer", Email: "customer@example.com", Password: "customer123", Role: model.RoleCustomer},
}

// SeedUsers godoc
// @Summary Seed demo users (development only)
// @Tags seed
// @Produce json
// @Success 200 {object} SeedUsersResponse
// @Failure 500 {object} errors.Response
// @Router /seed/users [get]
func (h *SeedHandler) SeedUsers(c echo.Context) error {
	created := 0
	for _, seed := range demoUsers {
		_, err := h.svc.CreateUser(c.Request().Context(), seed.Name, seed.Email, seed.Password, seed.Role)
		if err == errors.ErrDuplicateEmail {
			continue // already seeded
		}
		if err != nil {
			c.Logger().Errorf("seed user %s failed: %v", seed.Email, err)
			return c.JSON(http.StatusInternalServerError, errors.Fail("seeding failed"))
		}
		created++
	}
	return c.JSON(http.StatusOK, SeedUsersResponse{Message: "demo users seeded", Count: created})
}
