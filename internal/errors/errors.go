package errors

import "errors"

var (
	// ErrInvalidCredentials is returned when the identifier or password is
	// wrong. Callers cannot tell which, to prevent account enumeration.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrDuplicateEmail is returned when an active user already holds the email.
	ErrDuplicateEmail = errors.New("email already in use")
	// ErrUserNotFound is returned when a user lookup comes up empty.
	ErrUserNotFound = errors.New("user not found")
	// ErrStoreUnavailable is returned when the credential store fails.
	ErrStoreUnavailable = errors.New("credential store unavailable")
)

// Response is the JSON envelope for all auth endpoints.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	User    interface{} `json:"user,omitempty"`
}

// Fail builds a failure envelope.
func Fail(message string) Response {
	return Response{Success: false, Message: message}
}
