package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Init builds the router. The middleware order is fixed: panic recovery,
// trace id, access logging, hardening headers, cross-origin policy, rate
// limiting, then routing.
func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(
		h.withRecover,
		h.withTraceID,
		h.withLogging,
		h.withSecurity(),
		h.withCORS(),
		h.withRateLimit,
	)

	for _, route := range h.routes {
		router.Method(route.method(), route.path(), route.handler(h))
	}

	router.Get(docsPagePath, h.serveDocsPage)
	router.Get(docsJSONPath, h.serveDocsJSON)
	router.Method(http.MethodGet, metricsPath, h.metrics.handler())

	router.NotFound(h.notFound)
	router.MethodNotAllowed(h.notFound)

	return router
}
