package service

import (
	"context"

	"github.com/MKhiriev/integrador/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// AuthService issues and verifies the bearer credentials accepted by the
// authenticate decorator.
type AuthService interface {
	// CreateToken issues a signed JWT for subject.
	CreateToken(ctx context.Context, subject string) (models.Token, error)
	// ParseToken verifies a raw JWT. Any failure is an *AuthError.
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
	// SignCookieValue returns value as it is stored in the session cookie.
	SignCookieValue(value string) string
	// UnsignCookieValue recovers the credential stored in a session cookie.
	UnsignCookieValue(cookieValue string) (string, bool)
}

// RateLimitService decides whether a client may issue one more request in
// the current window.
type RateLimitService interface {
	// Allow counts one request for key. When the quota is exhausted the
	// decision is returned together with a *RateLimitExceededError.
	Allow(ctx context.Context, key string) (models.RateLimitDecision, error)
}
