package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"modacart/internal/model"
)

const (
	// SessionTokenTTL is the lifetime of tokens issued to registered users.
	SessionTokenTTL = 7 * 24 * time.Hour
	// AdminTokenTTL is the lifetime of tokens issued through the admin
	// login flow, including the bootstrap admin.
	AdminTokenTTL = 24 * time.Hour
)

// TokenReason classifies why token verification failed.
type TokenReason string

const (
	TokenMalformed    TokenReason = "malformed"
	TokenBadSignature TokenReason = "bad_signature"
	TokenExpired      TokenReason = "expired"
)

// TokenError is the single error type surfaced by Verify. Callers treat
// every reason the same way (the session is not valid); the reason is
// kept for logs.
type TokenError struct {
	Reason TokenReason
	err    error
}

func (e *TokenError) Error() string {
	return "token " + string(e.Reason)
}

func (e *TokenError) Unwrap() error { return e.err }

// Claims is the principal claim set carried by a session token.
type Claims struct {
	UserID string     `json:"user_id"`
	Email  string     `json:"email"`
	Name   string     `json:"name"`
	Role   model.Role `json:"role"`
	jwt.RegisteredClaims
}

// Principal rebuilds the principal projection from the claims.
func (c *Claims) Principal() model.Principal {
	return model.Principal{
		ID:    c.UserID,
		Email: c.Email,
		Name:  c.Name,
		Role:  c.Role,
	}
}

// JWTService signs and verifies session tokens.
type JWTService struct {
	secret []byte
}

// NewJWTService creates a token service keyed by the given secret.
func NewJWTService(secret string) *JWTService {
	return &JWTService{secret: []byte(secret)}
}

// Issue signs a token carrying the principal's claims, valid for ttl.
func (s *JWTService) Issue(p model.Principal, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: p.ID,
		Email:  p.Email,
		Name:   p.Name,
		Role:   p.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify parses and validates a token, returning its claims. Failures
// come back as *TokenError with the reason set.
func (s *JWTService) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, classifyTokenError(err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, &TokenError{Reason: TokenMalformed}
	}
	return claims, nil
}

func classifyTokenError(err error) *TokenError {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return &TokenError{Reason: TokenExpired, err: err}
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrSignatureInvalid):
		return &TokenError{Reason: TokenBadSignature, err: err}
	default:
		return &TokenError{Reason: TokenMalformed, err: err}
	}
}
