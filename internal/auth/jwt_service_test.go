package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"modacart/internal/model"
)

func testPrincipal() model.Principal {
	return model.Principal{
		ID:    "u-123",
		Email: "user@example.com",
		Name:  "Test User",
		Role:  model.RoleCustomer,
	}
}

func TestJWTService_IssueVerifyRoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret")

	token, err := svc.Issue(testPrincipal(), time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Verify(token)
	require.NoError(t, err)

	assert.Equal(t, "u-123", claims.UserID)
	assert.Equal(t, "user@example.com", claims.Email)
	assert.Equal(t, "Test User", claims.Name)
	assert.Equal(t, model.RoleCustomer, claims.Role)
	assert.Equal(t, testPrincipal(), claims.Principal())
	assert.NotNil(t, claims.IssuedAt)
	assert.NotNil(t, claims.ExpiresAt)
}

func TestJWTService_VerifyFailures(t *testing.T) {
	svc := NewJWTService("test-secret")

	expired, err := svc.Issue(testPrincipal(), -time.Minute)
	require.NoError(t, err)

	otherSecret, err := NewJWTService("other-secret").Issue(testPrincipal(), time.Hour)
	require.NoError(t, err)

	valid, err := svc.Issue(testPrincipal(), time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name   string
		token  string
		reason TokenReason
	}{
		{name: "expired token", token: expired, reason: TokenExpired},
		{name: "wrong secret", token: otherSecret, reason: TokenBadSignature},
		{name: "empty string", token: "", reason: TokenMalformed},
		{name: "garbage", token: "not-a-token", reason: TokenMalformed},
		{name: "truncated", token: valid[:len(valid)/2], reason: TokenMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := svc.Verify(tt.token)
			assert.Nil(t, claims)
			require.Error(t, err)

			var tokenErr *TokenError
			require.True(t, errors.As(err, &tokenErr))
			assert.Equal(t, tt.reason, tokenErr.Reason)
		})
	}
}

func TestJWTService_AdminTTLShorterThanSession(t *testing.T) {
	// Two expiry policies coexist: 24h for the admin flow, 7d for
	// registered users.
	assert.Equal(t, 24*time.Hour, AdminTokenTTL)
	assert.Equal(t, 7*24*time.Hour, SessionTokenTTL)
	assert.Less(t, AdminTokenTTL, SessionTokenTTL)
}
