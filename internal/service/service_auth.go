package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/integrador/internal/config"
	"github.com/MKhiriev/integrador/internal/logger"
	"github.com/MKhiriev/integrador/internal/utils"
	"github.com/MKhiriev/integrador/models"
)

// authService is the concrete implementation of AuthService.
// It handles the JWT token lifecycle and session cookie signing.
type authService struct {
	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	// cookieSecret signs session cookies. Empty means cookies hold the bare
	// token.
	cookieSecret string

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService populated with security
// parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		tokenSignKey:  cfg.TokenSignKey,
		tokenIssuer:   cfg.TokenIssuer,
		tokenDuration: cfg.TokenDuration,
		cookieSecret:  cfg.CookieSecret,
		logger:        logger,
	}
}

// CreateToken issues a signed JWT for the given subject.
//
// The token is signed with the configured tokenSignKey, carries the configured
// tokenIssuer as the "iss" claim, and expires after tokenDuration.
//
// Returns the token model on success or a wrapped error if JWT generation fails.
func (a *authService) CreateToken(ctx context.Context, subject string) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, subject, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	logger.FromContext(ctx).Debug().Str("subject", subject).Msg("token issued")
	return token, nil
}

// ParseToken validates and parses a raw JWT string.
//
// It delegates to utils.ValidateAndParseJWTToken, verifying the signing method,
// the signature and the issuer claim. Any validation failure (expired, wrong
// issuer, malformed) is normalised to an *AuthError wrapping
// ErrTokenIsExpiredOrInvalid so that callers do not need to inspect low-level
// JWT errors.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Msg("token rejected")
		return models.Token{}, NewAuthError(ErrTokenIsExpiredOrInvalid)
	}

	return token, nil
}

func (a *authService) SignCookieValue(value string) string {
	if a.cookieSecret == "" {
		return value
	}
	return utils.SignValue(value, a.cookieSecret)
}

func (a *authService) UnsignCookieValue(cookieValue string) (string, bool) {
	if a.cookieSecret == "" {
		return cookieValue, cookieValue != ""
	}
	return utils.UnsignValue(cookieValue, a.cookieSecret)
}
