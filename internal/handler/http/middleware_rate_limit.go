package http

import (
	"errors"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/MKhiriev/integrador/internal/service"
	"github.com/MKhiriev/integrador/models"
)

const (
	headerRateLimitLimit     = "X-RateLimit-Limit"
	headerRateLimitRemaining = "X-RateLimit-Remaining"
	headerRateLimitReset     = "X-RateLimit-Reset"
	headerRetryAfter         = "Retry-After"
)

// withRateLimit counts the request against the client's quota. Requests over
// the quota and requests that could not be counted never reach routing.
func (h *Handler) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		decision, err := h.services.RateLimitService.Allow(r.Context(), h.clientKey(r))
		if err != nil {
			var exceeded *service.RateLimitExceededError
			if errors.As(err, &exceeded) {
				setRateLimitHeaders(w.Header(), decision)
				w.Header().Set(headerRetryAfter, strconv.Itoa(resetSeconds(decision)))
				h.metrics.observeRateLimited()
			}
			h.fail(w, r, err)
			return
		}

		setRateLimitHeaders(w.Header(), decision)
		next.ServeHTTP(w, r)
	})
}

// clientKey identifies the caller: the remote host, or the first
// X-Forwarded-For hop when the server sits behind a trusted proxy.
func (h *Handler) clientKey(r *http.Request) string {
	if h.cfg.Server.TrustProxy {
		if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
			first, _, _ := strings.Cut(forwarded, ",")
			if first = strings.TrimSpace(first); first != "" {
				return first
			}
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func setRateLimitHeaders(header http.Header, decision models.RateLimitDecision) {
	header.Set(headerRateLimitLimit, strconv.Itoa(decision.Limit))
	header.Set(headerRateLimitRemaining, strconv.Itoa(decision.Remaining))
	header.Set(headerRateLimitReset, strconv.Itoa(resetSeconds(decision)))
}

func resetSeconds(decision models.RateLimitDecision) int {
	return int(math.Ceil(decision.ResetAfter.Seconds()))
}
