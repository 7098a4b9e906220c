package http

import (
	"net/http"
	"testing"
	"time"

	"github.com/MKhiriev/integrador/internal/logger"
	"github.com/MKhiriev/integrador/internal/mock"
	"github.com/MKhiriev/integrador/internal/service"
	"github.com/MKhiriev/integrador/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newAuthTestHandler(t *testing.T) (*Handler, *mock.MockAuthService) {
	ctrl := gomock.NewController(t)
	auth := mock.NewMockAuthService(ctrl)

	return &Handler{
		cfg:      testConfig(),
		services: &service.Services{AuthService: auth},
		logger:   logger.Nop(),
	}, auth
}

func verifiedToken(subject string, expiresAt time.Time) models.Token {
	return models.Token{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   subject,
		Issuer:    "integrador",
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}}
}

func TestAuthenticate_BearerHeaderWinsOverCookie(t *testing.T) {
	h, auth := newAuthTestHandler(t)
	expiresAt := time.Now().Add(time.Hour).Truncate(time.Second)
	auth.EXPECT().ParseToken(gomock.Any(), "header-token").Return(verifiedToken("from-header", expiresAt), nil)

	req := newRequestFrom(http.MethodGet, "/me", "203.0.113.9:1")
	req.Header.Set("Authorization", "Bearer header-token")
	req.AddCookie(&http.Cookie{Name: "token", Value: "cookie-token"})

	identity, err := h.authenticate(req)

	require.NoError(t, err)
	assert.Equal(t, models.Identity{Subject: "from-header", Issuer: "integrador", ExpiresAt: expiresAt}, identity)
}

func TestAuthenticate_Cookie(t *testing.T) {
	h, auth := newAuthTestHandler(t)
	gomock.InOrder(
		auth.EXPECT().UnsignCookieValue("signed-value").Return("cookie-token", true),
		auth.EXPECT().ParseToken(gomock.Any(), "cookie-token").Return(verifiedToken("from-cookie", time.Now().Add(time.Minute)), nil),
	)

	req := newRequestFrom(http.MethodGet, "/me", "203.0.113.9:1")
	req.AddCookie(&http.Cookie{Name: "token", Value: "signed-value"})

	identity, err := h.authenticate(req)

	require.NoError(t, err)
	assert.Equal(t, "from-cookie", identity.Subject)
}

func TestAuthenticate_Failures(t *testing.T) {
	tests := []struct {
		name    string
		prepare func(req *http.Request, auth *mock.MockAuthService)
		wantErr error
	}{
		{
			name:    "no credential",
			prepare: func(*http.Request, *mock.MockAuthService) {},
			wantErr: service.ErrMissingCredentials,
		},
		{
			name: "empty cookie",
			prepare: func(req *http.Request, _ *mock.MockAuthService) {
				req.AddCookie(&http.Cookie{Name: "token", Value: ""})
			},
			wantErr: service.ErrMissingCredentials,
		},
		{
			name: "malformed header",
			prepare: func(req *http.Request, _ *mock.MockAuthService) {
				req.Header.Set("Authorization", "Token abc")
			},
			wantErr: ErrInvalidAuthorizationHeader,
		},
		{
			name: "bad cookie signature",
			prepare: func(req *http.Request, auth *mock.MockAuthService) {
				req.AddCookie(&http.Cookie{Name: "token", Value: "tampered"})
				auth.EXPECT().UnsignCookieValue("tampered").Return("", false)
			},
			wantErr: service.ErrInvalidCookieSignature,
		},
		{
			name: "token rejected",
			prepare: func(req *http.Request, auth *mock.MockAuthService) {
				req.Header.Set("Authorization", "Bearer expired")
				auth.EXPECT().ParseToken(gomock.Any(), "expired").
					Return(models.Token{}, service.NewAuthError(service.ErrTokenIsExpiredOrInvalid))
			},
			wantErr: service.ErrTokenIsExpiredOrInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, auth := newAuthTestHandler(t)
			req := newRequestFrom(http.MethodGet, "/me", "203.0.113.9:1")
			tt.prepare(req, auth)

			identity, err := h.authenticate(req)

			require.ErrorIs(t, err, tt.wantErr)
			var authErr *service.AuthError
			require.ErrorAs(t, err, &authErr)
			assert.Equal(t, http.StatusUnauthorized, authErr.StatusCode())
			assert.Zero(t, identity)
		})
	}
}
