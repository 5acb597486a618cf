package repository

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"modacart/internal/errors"
	"modacart/internal/model"
)

// UserRepository defines credential store operations.
//
// FindActiveByEmail and FindActiveByID are the lookups authentication
// is allowed to use; they never return deactivated users. FindByID and
// List serve the admin surface and see every row.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindActiveByEmail(ctx context.Context, email string) (*model.User, error)
	FindActiveByID(ctx context.Context, id string) (*model.User, error)
	FindByID(ctx context.Context, id string) (*model.User, error)
	Update(ctx context.Context, id string, updates UserUpdate) (*model.User, error)
	Deactivate(ctx context.Context, id string) error
	List(ctx context.Context) ([]model.User, error)
	TouchLastLogin(ctx context.Context, id string) error
}

// UserUpdate carries the mutable fields of a user. Nil fields are left
// untouched.
type UserUpdate struct {
	Name         *string
	Email        *string
	PasswordHash *string
	Role         *model.Role
	IsActive     *bool
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository builds a GORM-backed repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create inserts the user unless an active user already holds the
// email. Check and insert share one INSERT ... SELECT ... WHERE NOT
// EXISTS statement, so two concurrent registrations cannot both win.
func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}

	res := r.db.WithContext(ctx).Exec(
		`INSERT INTO users (id, name, email, password_hash, role, is_active, created_at, updated_at)
		 SELECT ?, ?, ?, ?, ?, ?, NOW(), NOW() FROM DUAL
		 WHERE NOT EXISTS (SELECT 1 FROM users WHERE email = ? AND is_active = 1)`,
		user.ID, user.Name, user.Email, user.PasswordHash, user.Role, user.IsActive,
		user.Email,
	)
	if res.Error != nil {
		return fmt.Errorf("%w: %v", errors.ErrStoreUnavailable, res.Error)
	}
	if res.RowsAffected == 0 {
		return errors.ErrDuplicateEmail
	}
	return nil
}

func (r *userRepository) FindActiveByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Where("email = ? AND is_active = ?", email, true).
		First(&user).Error
	if err != nil {
		return nil, mapFindError(err)
	}
	return &user, nil
}

func (r *userRepository) FindActiveByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Where("id = ? AND is_active = ?", id, true).
		First(&user).Error
	if err != nil {
		return nil, mapFindError(err)
	}
	return &user, nil
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, mapFindError(err)
	}
	return &user, nil
}

// Update applies the non-nil fields. When the row after the update
// would be active, it must not share its email with another active
// user; the check runs in the same transaction as the write, with the
// subject row and the clashing email range locked, so an email change
// or a reactivation cannot slip past a concurrent writer.
func (r *userRepository) Update(ctx context.Context, id string, updates UserUpdate) (*model.User, error) {
	fields := map[string]interface{}{}
	if updates.Name != nil {
		fields["name"] = *updates.Name
	}
	if updates.Email != nil {
		fields["email"] = *updates.Email
	}
	if updates.PasswordHash != nil {
		fields["password_hash"] = *updates.PasswordHash
	}
	if updates.Role != nil {
		fields["role"] = *updates.Role
	}
	if updates.IsActive != nil {
		fields["is_active"] = *updates.IsActive
	}
	if len(fields) == 0 {
		return r.FindByID(ctx, id)
	}

	var updated model.User
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current model.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&current, "id = ?", id).Error; err != nil {
			return mapFindError(err)
		}

		email := current.Email
		if updates.Email != nil {
			email = *updates.Email
		}
		active := current.IsActive
		if updates.IsActive != nil {
			active = *updates.IsActive
		}
		if active {
			var clash []model.User
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("email = ? AND is_active = ? AND id <> ?", email, true, id).
				Limit(1).Find(&clash).Error; err != nil {
				return fmt.Errorf("%w: %v", errors.ErrStoreUnavailable, err)
			}
			if len(clash) > 0 {
				return errors.ErrDuplicateEmail
			}
		}

		if err := tx.Model(&model.User{}).Where("id = ?", id).Updates(fields).Error; err != nil {
			return fmt.Errorf("%w: %v", errors.ErrStoreUnavailable, err)
		}
		return tx.First(&updated, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Deactivate soft-deletes the user. The row stays visible to List.
func (r *userRepository) Deactivate(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ? AND is_active = ?", id, true).
		Update("is_active", false)
	if res.Error != nil {
		return fmt.Errorf("%w: %v", errors.ErrStoreUnavailable, res.Error)
	}
	if res.RowsAffected == 0 {
		return errors.ErrUserNotFound
	}
	return nil
}

func (r *userRepository) List(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := r.db.WithContext(ctx).Order("created_at").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrStoreUnavailable, err)
	}
	return users, nil
}

func (r *userRepository) TouchLastLogin(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Update("last_login", gorm.Expr("NOW()")).Error
}

func mapFindError(err error) error {
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return errors.ErrUserNotFound
	}
	return fmt.Errorf("%w: %v", errors.ErrStoreUnavailable, err)
}
