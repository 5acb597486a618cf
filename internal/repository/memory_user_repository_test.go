package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"modacart/internal/errors"
	"modacart/internal/model"
)

func newUser(email string) *model.User {
	return &model.User{
		Name:         "Test User",
		Email:        email,
		PasswordHash: "hash",
		Role:         model.RoleCustomer,
		IsActive:     true,
	}
}

func TestMemoryRepository_CreateAndFind(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	user := newUser("test@example.com")
	require.NoError(t, repo.Create(ctx, user))
	assert.NotEmpty(t, user.ID)

	byEmail, err := repo.FindActiveByEmail(ctx, "test@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	byID, err := repo.FindActiveByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "test@example.com", byID.Email)

	_, err = repo.FindActiveByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, errors.ErrUserNotFound)
}

func TestMemoryRepository_DuplicateEmail(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newUser("dup@example.com")))
	err := repo.Create(ctx, newUser("dup@example.com"))
	assert.ErrorIs(t, err, errors.ErrDuplicateEmail)
}

func TestMemoryRepository_ReregisterAfterDeactivation(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	first := newUser("recycled@example.com")
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Deactivate(ctx, first.ID))

	// Uniqueness is scoped to active users; the address is free again.
	require.NoError(t, repo.Create(ctx, newUser("recycled@example.com")))

	users, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)
}

func TestMemoryRepository_ConcurrentCreateSameEmail(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	const attempts = 32
	results := make(chan error, attempts)

	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- repo.Create(ctx, newUser("race@example.com"))
		}()
	}
	wg.Wait()
	close(results)

	wins, duplicates := 0, 0
	for err := range results {
		switch err {
		case nil:
			wins++
		case errors.ErrDuplicateEmail:
			duplicates++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, wins, "exactly one create must win")
	assert.Equal(t, attempts-1, duplicates)
}

func TestMemoryRepository_DeactivatedInvisibleToAuthLookups(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	user := newUser("gone@example.com")
	require.NoError(t, repo.Create(ctx, user))
	require.NoError(t, repo.Deactivate(ctx, user.ID))

	_, err := repo.FindActiveByEmail(ctx, "gone@example.com")
	assert.ErrorIs(t, err, errors.ErrUserNotFound)

	_, err = repo.FindActiveByID(ctx, user.ID)
	assert.ErrorIs(t, err, errors.ErrUserNotFound)

	// Still present in the admin views.
	byID, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.False(t, byID.IsActive)

	users, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, user.ID, users[0].ID)

	// Deactivating twice reads as not found.
	assert.ErrorIs(t, repo.Deactivate(ctx, user.ID), errors.ErrUserNotFound)
}

func TestMemoryRepository_Update(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	user := newUser("update@example.com")
	require.NoError(t, repo.Create(ctx, user))

	newName := "Renamed"
	newRole := model.RoleManager
	updated, err := repo.Update(ctx, user.ID, UserUpdate{Name: &newName, Role: &newRole})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, model.RoleManager, updated.Role)
	assert.Equal(t, "update@example.com", updated.Email)

	_, err = repo.Update(ctx, "missing-id", UserUpdate{Name: &newName})
	assert.ErrorIs(t, err, errors.ErrUserNotFound)
}

func TestMemoryRepository_UpdateRejectsTakenEmail(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	first := newUser("first@example.com")
	require.NoError(t, repo.Create(ctx, first))
	second := newUser("second@example.com")
	require.NoError(t, repo.Create(ctx, second))

	// Changing an email onto another active user's address is rejected.
	taken := "first@example.com"
	_, err := repo.Update(ctx, second.ID, UserUpdate{Email: &taken})
	assert.ErrorIs(t, err, errors.ErrDuplicateEmail)

	// The rejected update must not have been applied.
	fresh, err := repo.FindByID(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, "second@example.com", fresh.Email)

	// A user may keep its own address through an update.
	newName := "Renamed"
	same := "second@example.com"
	_, err = repo.Update(ctx, second.ID, UserUpdate{Name: &newName, Email: &same})
	assert.NoError(t, err)

	// A deactivated user may take the address it frees up elsewhere.
	require.NoError(t, repo.Deactivate(ctx, first.ID))
	_, err = repo.Update(ctx, second.ID, UserUpdate{Email: &taken})
	assert.NoError(t, err)
}

func TestMemoryRepository_ReactivationRejectsTakenEmail(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	original := newUser("recycled@example.com")
	require.NoError(t, repo.Create(ctx, original))
	require.NoError(t, repo.Deactivate(ctx, original.ID))

	// The freed address gets re-registered.
	require.NoError(t, repo.Create(ctx, newUser("recycled@example.com")))

	// Reactivating the original would make two active users share it.
	active := true
	_, err := repo.Update(ctx, original.ID, UserUpdate{IsActive: &active})
	assert.ErrorIs(t, err, errors.ErrDuplicateEmail)

	fresh, err := repo.FindByID(ctx, original.ID)
	require.NoError(t, err)
	assert.False(t, fresh.IsActive)

	// Reactivation combined with a fresh address goes through.
	moved := "moved@example.com"
	updated, err := repo.Update(ctx, original.ID, UserUpdate{IsActive: &active, Email: &moved})
	require.NoError(t, err)
	assert.True(t, updated.IsActive)
	assert.Equal(t, "moved@example.com", updated.Email)
}

func TestMemoryRepository_TouchLastLogin(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	user := newUser("touch@example.com")
	require.NoError(t, repo.Create(ctx, user))
	require.Nil(t, user.LastLogin)

	require.NoError(t, repo.TouchLastLogin(ctx, user.ID))

	fresh, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.NotNil(t, fresh.LastLogin)
}

func TestMemoryRepository_ReturnsCopies(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	user := newUser("copy@example.com")
	require.NoError(t, repo.Create(ctx, user))

	found, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	found.Name = fmt.Sprintf("mutated-%s", found.Name)

	again, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Test User", again.Name)
}
