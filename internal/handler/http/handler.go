package http

import (
	"fmt"
	"net/http"

	"github.com/MKhiriev/integrador/internal/config"
	"github.com/MKhiriev/integrador/internal/logger"
	"github.com/MKhiriev/integrador/internal/service"
	"github.com/MKhiriev/integrador/internal/validators"
	"github.com/MKhiriev/integrador/models"
)

// Handler owns the HTTP pipeline: the services used by the middleware, the
// request validators and the route table.
type Handler struct {
	services *service.Services
	cfg      *config.StructuredConfig

	validator     *validators.SchemaValidator
	queryDecoder  *validators.Decoder
	paramsDecoder *validators.Decoder

	metrics *metrics
	routes  []Route
	docs    []byte

	logger *logger.Logger
}

// NewHandler builds the pipeline for routes plus the built-in root health
// route. Route declarations are checked and the API description is
// generated here, once.
func NewHandler(services *service.Services, cfg *config.StructuredConfig, logger *logger.Logger, routes ...Route) (*Handler, error) {
	h := &Handler{
		services:      services,
		cfg:           cfg,
		validator:     validators.NewSchemaValidator(),
		queryDecoder:  validators.NewQueryDecoder(),
		paramsDecoder: validators.NewParamsDecoder(),
		metrics:       newMetrics(),
		logger:        logger,
	}

	all := append([]Route{healthEndpoint()}, routes...)
	seen := map[string]struct{}{
		http.MethodGet + " " + docsPagePath: {},
		http.MethodGet + " " + docsJSONPath: {},
		http.MethodGet + " " + metricsPath:  {},
	}
	for _, route := range all {
		if err := route.check(); err != nil {
			return nil, err
		}
		key := route.method() + " " + route.path()
		if _, ok := seen[key]; ok {
			return nil, fmt.Errorf("%w: duplicate route %s", ErrInvalidEndpoint, key)
		}
		seen[key] = struct{}{}
	}
	h.routes = all

	docs, err := buildDocs(cfg.App.Version, all)
	if err != nil {
		return nil, err
	}
	h.docs = docs

	logger.Info().Int("routes", len(all)).Msg("http handler created")
	return h, nil
}

// SetSessionCookie stores token in the session cookie read by the
// authenticate decorator. The value is signed when a cookie secret is
// configured.
func (h *Handler) SetSessionCookie(w http.ResponseWriter, token models.Token) {
	cookie := &http.Cookie{
		Name:     h.cfg.App.CookieName,
		Value:    h.services.AuthService.SignCookieValue(token.String()),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if token.ExpiresAt != nil {
		cookie.Expires = token.ExpiresAt.Time
	}
	http.SetCookie(w, cookie)
}
