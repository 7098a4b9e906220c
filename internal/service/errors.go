package service

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/MKhiriev/integrador/models"
)

var (
	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
	ErrMissingCredentials      = errors.New("no authorization token was found")
	ErrInvalidCookieSignature  = errors.New("session cookie signature is invalid")

	ErrRateLimitExceeded = errors.New("rate limit exceeded")
)

// AuthError is the authentication condition. It reports 401 through
// StatusCode and unwraps to the reason.
type AuthError struct {
	Err error
}

// NewAuthError wraps reason into an *AuthError.
func NewAuthError(reason error) *AuthError {
	return &AuthError{Err: reason}
}

func (e *AuthError) Error() string {
	return e.Err.Error()
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

func (e *AuthError) StatusCode() int {
	return http.StatusUnauthorized
}

// RateLimitExceededError is raised when a client has used its quota for the
// current window. It reports 429 through StatusCode.
type RateLimitExceededError struct {
	Decision models.RateLimitDecision
}

func (e *RateLimitExceededError) Error() string {
	return fmt.Sprintf("rate limit exceeded, retry in %s", e.Decision.ResetAfter)
}

func (e *RateLimitExceededError) Unwrap() error {
	return ErrRateLimitExceeded
}

func (e *RateLimitExceededError) StatusCode() int {
	return http.StatusTooManyRequests
}
