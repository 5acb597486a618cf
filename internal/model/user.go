package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents a storefront or admin user.
//
// Email uniqueness is enforced against active users only, so the column
// carries a plain (non-unique) index; the repository owns the duplicate
// check. A global unique index would block re-registering an address
// that belongs to a deactivated account.
type User struct {
	ID           string     `json:"id" gorm:"type:char(36);primaryKey"`
	Name         string     `json:"name" gorm:"size:255;not null"`
	Email        string     `json:"email" gorm:"size:255;not null;index"`
	PasswordHash string     `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Role         Role       `json:"role" gorm:"size:50;default:'customer';index"`
	IsActive     bool       `json:"is_active" gorm:"default:true;index"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
}

// BeforeCreate assigns a UUID before inserting the record.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return nil
}

// Principal is the password-free projection of a verified user that is
// embedded in session tokens and attached to requests.
type Principal struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  Role   `json:"role"`
}

// Principal projects the user into its token claim set.
func (u *User) Principal() Principal {
	return Principal{
		ID:    u.ID,
		Email: u.Email,
		Name:  u.Name,
		Role:  u.Role,
	}
}
