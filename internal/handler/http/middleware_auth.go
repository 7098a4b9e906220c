package http

import (
	"net/http"

	"github.com/MKhiriev/integrador/internal/logger"
	"github.com/MKhiriev/integrador/internal/service"
	"github.com/MKhiriev/integrador/internal/utils"
	"github.com/MKhiriev/integrador/models"
)

// authenticate verifies the credential of a request to a secured endpoint.
//
// The credential is looked up in the "Authorization" header first, then in
// the session cookie. A signed cookie whose signature does not match is
// rejected without trying to parse the token. The verified identity is
// returned for the endpoint to attach to the request context.
//
// Every failure is a *service.AuthError.
func (h *Handler) authenticate(r *http.Request) (models.Identity, error) {
	log := logger.FromRequest(r)

	tokenString, err := h.credential(r)
	if err != nil {
		log.Debug().Err(err).Msg("no usable credential")
		return models.Identity{}, err
	}

	token, err := h.services.AuthService.ParseToken(r.Context(), tokenString)
	if err != nil {
		log.Debug().Err(err).Msg("error occurred during parsing token")
		return models.Identity{}, err
	}

	return token.Identity(), nil
}

func (h *Handler) credential(r *http.Request) (string, error) {
	if header := r.Header.Get("Authorization"); header != "" {
		tokenString, err := utils.ParseBearerToken(header)
		if err != nil {
			return "", service.NewAuthError(ErrInvalidAuthorizationHeader)
		}
		return tokenString, nil
	}

	cookie, err := r.Cookie(h.cfg.App.CookieName)
	if err != nil || cookie.Value == "" {
		return "", service.NewAuthError(service.ErrMissingCredentials)
	}

	tokenString, ok := h.services.AuthService.UnsignCookieValue(cookie.Value)
	if !ok {
		return "", service.NewAuthError(service.ErrInvalidCookieSignature)
	}
	return tokenString, nil
}
