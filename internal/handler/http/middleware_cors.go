package http

import (
	"net/http"

	"github.com/go-chi/cors"
)

func (h *Handler) withCORS() func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: h.cfg.CORS.AllowedOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodHead,
			http.MethodPut,
			http.MethodPatch,
			http.MethodPost,
			http.MethodDelete,
		},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", traceIDHeader},
		ExposedHeaders: []string{
			traceIDHeader,
			headerRateLimitLimit,
			headerRateLimitRemaining,
			headerRateLimitReset,
			headerRetryAfter,
		},
		MaxAge: int(h.cfg.CORS.MaxAge.Seconds()),
	})
}
