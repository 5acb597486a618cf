package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"modacart/internal/auth"
	"modacart/internal/cache"
	"modacart/internal/model"
	"modacart/internal/repository"
)

const userCacheTTL = 5 * time.Minute

// UserService exposes the user operations the rest of the application
// is allowed to call: the current-principal hook plus the admin CRUD
// surface.
type UserService interface {
	CurrentUser(ctx context.Context, claims *auth.Claims) (*model.User, error)
	GetUser(ctx context.Context, id string) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	CreateUser(ctx context.Context, name, email, password string, role model.Role) (*model.User, error)
	UpdateUser(ctx context.Context, id string, updates repository.UserUpdate) (*model.User, error)
	DeactivateUser(ctx context.Context, id string) error
}

type userService struct {
	repo  repository.UserRepository
	cache *cache.Client
}

// NewUserService builds a UserService with repository and cache.
func NewUserService(repo repository.UserRepository, cache *cache.Client) UserService {
	return &userService{repo: repo, cache: cache}
}

func (s *userService) cacheKey(id string) string {
	return fmt.Sprintf("user:%s", id)
}

// CurrentUser resolves verified token claims to fresh user data. The
// bootstrap admin has no store row and is rebuilt from its claims;
// everyone else must still be an active user.
func (s *userService) CurrentUser(ctx context.Context, claims *auth.Claims) (*model.User, error) {
	if claims.UserID == BootstrapAdminID {
		return &model.User{
			ID:       claims.UserID,
			Name:     claims.Name,
			Email:    claims.Email,
			Role:     claims.Role,
			IsActive: true,
		}, nil
	}

	if data, _ := s.cache.Get(ctx, s.cacheKey(claims.UserID)); data != nil {
		var cached model.User
		if err := json.Unmarshal(data, &cached); err == nil && cached.IsActive {
			return &cached, nil
		}
	}

	user, err := s.repo.FindActiveByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(user); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(user.ID), payload, userCacheTTL)
	}
	return user, nil
}

// GetUser is the admin view; it sees deactivated users too.
func (s *userService) GetUser(ctx context.Context, id string) (*model.User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *userService) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.repo.List(ctx)
}

// CreateUser provisions a user with an explicit role (admin surface).
func (s *userService) CreateUser(ctx context.Context, name, email, password string, role model.Role) (*model.User, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) UpdateUser(ctx context.Context, id string, updates repository.UserUpdate) (*model.User, error) {
	user, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		return nil, err
	}
	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return user, nil
}

// DeactivateUser is a soft delete; the row stays for the admin list.
func (s *userService) DeactivateUser(ctx context.Context, id string) error {
	if err := s.repo.Deactivate(ctx, id); err != nil {
		return err
	}
	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return nil
}
