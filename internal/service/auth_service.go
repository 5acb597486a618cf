package service

import (
	"context"
	"crypto/subtle"
	stderrors "errors"
	"log"
	"time"

	"modacart/internal/auth"
	"modacart/internal/errors"
	"modacart/internal/model"
	"modacart/internal/repository"
)

// BootstrapAdminID identifies the operator-configured admin account
// that exists without a credential store row.
const BootstrapAdminID = "bootstrap-admin"

// AuthService handles authentication operations.
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*model.User, string, error)
	Login(ctx context.Context, email, password string) (string, *model.User, error)
	AdminLogin(ctx context.Context, username, password string) (string, *model.User, error)
}

type authService struct {
	repo       repository.UserRepository
	jwtService *auth.JWTService
	adminUser  string
	adminPass  string
}

// NewAuthService creates the authenticator. adminUser/adminPass are the
// bootstrap admin credentials; empty strings disable that path.
func NewAuthService(repo repository.UserRepository, jwtService *auth.JWTService, adminUser, adminPass string) AuthService {
	return &authService{
		repo:       repo,
		jwtService: jwtService,
		adminUser:  adminUser,
		adminPass:  adminPass,
	}
}

// Register creates a customer account and issues its first session token.
func (s *authService) Register(ctx context.Context, name, email, password string) (*model.User, string, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, "", err
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         model.RoleCustomer,
		IsActive:     true,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.jwtService.Issue(user.Principal(), auth.SessionTokenTTL)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login authenticates a user and issues a customer session token.
func (s *authService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	user, err := s.authenticate(ctx, email, password)
	if err != nil {
		return "", nil, err
	}

	token, err := s.jwtService.Issue(user.Principal(), auth.SessionTokenTTL)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// AdminLogin authenticates and requires the admin role, issuing the
// shorter-lived admin token.
func (s *authService) AdminLogin(ctx context.Context, username, password string) (string, *model.User, error) {
	user, err := s.authenticate(ctx, username, password)
	if err != nil {
		return "", nil, err
	}
	if !user.Role.IsAdmin() {
		return "", nil, errors.ErrInvalidCredentials
	}

	token, err := s.jwtService.Issue(user.Principal(), auth.AdminTokenTTL)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// authenticate resolves raw credentials to a user. The bootstrap admin
// short-circuits the store; every other identifier is treated as an
// email and checked against active users. All failures collapse into
// ErrInvalidCredentials so callers cannot enumerate accounts.
func (s *authService) authenticate(ctx context.Context, identifier, password string) (*model.User, error) {
	if s.isBootstrapAdmin(identifier, password) {
		return s.bootstrapAdmin(), nil
	}

	user, err := s.repo.FindActiveByEmail(ctx, identifier)
	if err != nil {
		if stderrors.Is(err, errors.ErrUserNotFound) {
			// Indistinguishable from a wrong password.
			return nil, errors.ErrInvalidCredentials
		}
		log.Printf("auth: store lookup failed during login: %v", err)
		return nil, err
	}

	if !auth.VerifyPassword(password, user.PasswordHash) {
		return nil, errors.ErrInvalidCredentials
	}

	// Best effort; a failed timestamp write must not fail the login.
	if err := s.repo.TouchLastLogin(ctx, user.ID); err != nil {
		log.Printf("auth: last_login update failed for %s: %v", user.ID, err)
	} else {
		now := time.Now()
		user.LastLogin = &now
	}

	return user, nil
}

func (s *authService) isBootstrapAdmin(identifier, password string) bool {
	if s.adminUser == "" || s.adminPass == "" {
		return false
	}
	userOK := subtle.ConstantTimeCompare([]byte(identifier), []byte(s.adminUser)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.adminPass)) == 1
	return userOK && passOK
}

func (s *authService) bootstrapAdmin() *model.User {
	return &model.User{
		ID:       BootstrapAdminID,
		Name:     "Admin User",
		Email:    s.adminUser,
		Role:     model.RoleAdmin,
		IsActive: true,
	}
}
