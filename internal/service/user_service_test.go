package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"modacart/internal/auth"
	"modacart/internal/errors"
	"modacart/internal/model"
	"modacart/internal/repository"
)

func claimsFor(user *model.User) *auth.Claims {
	return &auth.Claims{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
		Role:   user.Role,
	}
}

func TestUserService_CurrentUser(t *testing.T) {
	repo := repository.NewMemoryUserRepository()
	svc := NewUserService(repo, nil)
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, "Jane", "jane@example.com", "secret123", model.RoleCustomer)
	require.NoError(t, err)

	current, err := svc.CurrentUser(ctx, claimsFor(user))
	require.NoError(t, err)
	assert.Equal(t, user.ID, current.ID)
	assert.Equal(t, "jane@example.com", current.Email)

	// Claims outlive deactivation; the fresh load catches it.
	require.NoError(t, svc.DeactivateUser(ctx, user.ID))
	_, err = svc.CurrentUser(ctx, claimsFor(user))
	assert.ErrorIs(t, err, errors.ErrUserNotFound)
}

func TestUserService_CurrentUserBootstrapAdmin(t *testing.T) {
	// The bootstrap admin has no store row; it is rebuilt from claims.
	svc := NewUserService(repository.NewMemoryUserRepository(), nil)

	current, err := svc.CurrentUser(context.Background(), &auth.Claims{
		UserID: BootstrapAdminID,
		Email:  "admin-strange",
		Name:   "Admin User",
		Role:   model.RoleAdmin,
	})
	require.NoError(t, err)
	assert.Equal(t, BootstrapAdminID, current.ID)
	assert.True(t, current.Role.IsAdmin())
	assert.True(t, current.IsActive)
}

func TestUserService_UpdateUser(t *testing.T) {
	repo := repository.NewMemoryUserRepository()
	svc := NewUserService(repo, nil)
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, "Jane", "jane@example.com", "secret123", model.RoleStaff)
	require.NoError(t, err)

	role := model.RoleManager
	updated, err := svc.UpdateUser(ctx, user.ID, repository.UserUpdate{Role: &role})
	require.NoError(t, err)
	assert.Equal(t, model.RoleManager, updated.Role)

	_, err = svc.UpdateUser(ctx, "missing", repository.UserUpdate{Role: &role})
	assert.ErrorIs(t, err, errors.ErrUserNotFound)
}
