package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MKhiriev/integrador/internal/logger"
	"github.com/MKhiriev/integrador/internal/mock"
	"github.com/MKhiriev/integrador/internal/service"
	"github.com/MKhiriev/integrador/internal/store"
	"github.com/MKhiriev/integrador/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newRequestFrom(method, target, remoteAddr string) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	req.RemoteAddr = remoteAddr
	return req
}

func serve(handler http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func TestClientKey(t *testing.T) {
	tests := []struct {
		name       string
		trustProxy bool
		remoteAddr string
		forwarded  string
		want       string
	}{
		{name: "remote host", remoteAddr: "203.0.113.9:5123", want: "203.0.113.9"},
		{name: "ipv6 remote host", remoteAddr: "[2001:db8::1]:443", want: "2001:db8::1"},
		{name: "address without port", remoteAddr: "203.0.113.9", want: "203.0.113.9"},
		{name: "forwarded header ignored by default", remoteAddr: "10.0.0.1:80", forwarded: "198.51.100.2", want: "10.0.0.1"},
		{name: "first forwarded hop behind a proxy", trustProxy: true, remoteAddr: "10.0.0.1:80", forwarded: "198.51.100.2, 10.0.0.1", want: "198.51.100.2"},
		{name: "empty forwarded header behind a proxy", trustProxy: true, remoteAddr: "10.0.0.1:80", forwarded: " , ", want: "10.0.0.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			cfg.Server.TrustProxy = tt.trustProxy
			h := &Handler{cfg: cfg}

			req := newRequestFrom(http.MethodGet, "/", tt.remoteAddr)
			if tt.forwarded != "" {
				req.Header.Set("X-Forwarded-For", tt.forwarded)
			}

			assert.Equal(t, tt.want, h.clientKey(req))
		})
	}
}

func TestWithRateLimit_Headers(t *testing.T) {
	ctrl := gomock.NewController(t)
	limiter := mock.NewMockRateLimitService(ctrl)
	limiter.EXPECT().
		Allow(gomock.Any(), "203.0.113.9").
		Return(models.RateLimitDecision{Allowed: true, Limit: 400, Remaining: 399, ResetAfter: 59500 * time.Millisecond}, nil)

	h := &Handler{
		cfg:      testConfig(),
		services: &service.Services{RateLimitService: limiter},
		logger:   logger.Nop(),
	}
	nextCalled := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { nextCalled = true })

	rr := serve(h.withRateLimit(next), newRequestFrom(http.MethodGet, "/", "203.0.113.9:5123"))

	assert.True(t, nextCalled)
	assert.Equal(t, "400", rr.Header().Get(headerRateLimitLimit))
	assert.Equal(t, "399", rr.Header().Get(headerRateLimitRemaining))
	assert.Equal(t, "60", rr.Header().Get(headerRateLimitReset))
	assert.Empty(t, rr.Header().Get(headerRetryAfter))
}

func TestWithRateLimit_Rejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	decision := models.RateLimitDecision{Limit: 400, ResetAfter: 12 * time.Second}
	limiter := mock.NewMockRateLimitService(ctrl)
	limiter.EXPECT().
		Allow(gomock.Any(), gomock.Any()).
		Return(decision, &service.RateLimitExceededError{Decision: decision})

	h := &Handler{
		cfg:      testConfig(),
		services: &service.Services{RateLimitService: limiter},
		metrics:  newMetrics(),
		logger:   logger.Nop(),
	}
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next must not be called")
	})

	rr := serve(h.withRateLimit(next), newRequestFrom(http.MethodGet, "/", "203.0.113.9:5123"))

	require.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.JSONEq(t, `{"message":"You hit the rate limit! Slow down please!"}`, rr.Body.String())
	assert.Equal(t, "12", rr.Header().Get(headerRetryAfter))
	assert.Equal(t, "0", rr.Header().Get(headerRateLimitRemaining))
}

func TestWithRateLimit_StoreFailureIsInternal(t *testing.T) {
	ctrl := gomock.NewController(t)
	limiter := mock.NewMockRateLimitService(ctrl)
	limiter.EXPECT().
		Allow(gomock.Any(), gomock.Any()).
		Return(models.RateLimitDecision{}, errors.Join(errors.New("error counting request"), store.ErrCounterUnavailable))

	h := &Handler{
		cfg:      testConfig(),
		services: &service.Services{RateLimitService: limiter},
		logger:   logger.Nop(),
	}
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next must not be called")
	})

	rr := serve(h.withRateLimit(next), newRequestFrom(http.MethodGet, "/", "203.0.113.9:5123"))

	require.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Contains(t, rr.Body.String(), store.ErrCounterUnavailable.Error())
	assert.Empty(t, rr.Header().Get(headerRateLimitLimit))
}
