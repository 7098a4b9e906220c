package http

import (
	"net/http"
	"time"

	"github.com/MKhiriev/integrador/internal/logger"
	"github.com/go-chi/chi/v5"
)

// withLogging writes one access log line per request and records the
// request metrics, also for requests whose handler panicked. It installs
// the [responseWriter] used by every later stage.
func (h *Handler) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		start := time.Now()

		uri := r.RequestURI
		method := r.Method

		lw := &responseWriter{
			ResponseWriter: w,
		}

		defer func() {
			status := lw.statusOrOK()
			rec := recover()
			if rec != nil && !lw.wroteHeader {
				// the recover stage answers a panic with the internal envelope
				status = http.StatusInternalServerError
			}

			duration := time.Since(start)
			h.metrics.observeRequest(method, routePattern(r), status, duration)

			log.Info().
				Str("uri", uri).
				Str("method", method).
				Int("status", status).
				Dur("duration", duration).
				Int("size", lw.size).
				Send()

			if rec != nil {
				panic(rec)
			}
		}()

		next.ServeHTTP(lw, r)
	})
}

// routePattern is the matched chi pattern, so metric labels stay bounded.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return "unmatched"
}
