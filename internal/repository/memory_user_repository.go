package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"modacart/internal/errors"
	"modacart/internal/model"
)

// memoryUserRepository keeps users in process memory. Tests inject a
// fresh instance each, and STORE_BACKEND=memory runs the server without
// a database.
type memoryUserRepository struct {
	mu    sync.Mutex
	users map[string]*model.User
}

// NewMemoryUserRepository returns an empty in-memory repository.
func NewMemoryUserRepository() UserRepository {
	return &memoryUserRepository{users: make(map[string]*model.User)}
}

// Create inserts the user unless an active user already holds the
// email. The check and the insert happen under one mutex hold, so
// concurrent registrations for the same address have exactly one winner.
func (r *memoryUserRepository) Create(ctx context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.IsActive && existing.Email == user.Email {
			return errors.ErrDuplicateEmail
		}
	}

	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *memoryUserRepository) FindActiveByEmail(ctx context.Context, email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.IsActive && u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, errors.ErrUserNotFound
}

func (r *memoryUserRepository) FindActiveByID(ctx context.Context, id string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if u, ok := r.users[id]; ok && u.IsActive {
		clone := *u
		return &clone, nil
	}
	return nil, errors.ErrUserNotFound
}

func (r *memoryUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if u, ok := r.users[id]; ok {
		clone := *u
		return &clone, nil
	}
	return nil, errors.ErrUserNotFound
}

func (r *memoryUserRepository) Update(ctx context.Context, id string, updates UserUpdate) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return nil, errors.ErrUserNotFound
	}

	// The post-update row, if active, must not share its email with
	// another active user. The check and the write share the mutex hold.
	email := u.Email
	if updates.Email != nil {
		email = *updates.Email
	}
	active := u.IsActive
	if updates.IsActive != nil {
		active = *updates.IsActive
	}
	if active {
		for otherID, other := range r.users {
			if otherID != id && other.IsActive && other.Email == email {
				return nil, errors.ErrDuplicateEmail
			}
		}
	}

	if updates.Name != nil {
		u.Name = *updates.Name
	}
	if updates.Email != nil {
		u.Email = *updates.Email
	}
	if updates.PasswordHash != nil {
		u.PasswordHash = *updates.PasswordHash
	}
	if updates.Role != nil {
		u.Role = *updates.Role
	}
	if updates.IsActive != nil {
		u.IsActive = *updates.IsActive
	}
	u.UpdatedAt = time.Now()

	clone := *u
	return &clone, nil
}

func (r *memoryUserRepository) Deactivate(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok || !u.IsActive {
		return errors.ErrUserNotFound
	}
	u.IsActive = false
	u.UpdatedAt = time.Now()
	return nil
}

func (r *memoryUserRepository) List(ctx context.Context) ([]model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	users := make([]model.User, 0, len(r.users))
	for _, u := range r.users {
		users = append(users, *u)
	}
	sort.Slice(users, func(i, j int) bool {
		return users[i].CreatedAt.Before(users[j].CreatedAt)
	})
	return users, nil
}

func (r *memoryUserRepository) TouchLastLogin(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return errors.ErrUserNotFound
	}
	now := time.Now()
	u.LastLogin = &now
	return nil
}
