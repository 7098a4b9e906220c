// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MKhiriev/integrador/internal/logger"
	"github.com/MKhiriev/integrador/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAdapter(t *testing.T, serverURL string) ServerAdapter {
	t.Helper()

	a, err := NewHTTPServerAdapter(serverURL, time.Second, logger.Nop())
	require.NoError(t, err)
	return a
}

func jsonHandler(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{name: "host and port", raw: "localhost:8080", want: "http://localhost:8080"},
		{name: "with scheme", raw: "https://api.example.test", want: "https://api.example.test"},
		{name: "trailing slash", raw: " http://localhost:8080/ ", want: "http://localhost:8080"},
		{name: "empty", raw: "   ", wantErr: true},
		{name: "no host", raw: "http://", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeBaseURL(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewHTTPServerAdapter_InvalidAddress(t *testing.T) {
	a, err := NewHTTPServerAdapter("", time.Second, logger.Nop())

	require.Error(t, err)
	assert.Nil(t, a)
}

func TestHealth_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/", r.URL.Path)
		jsonHandler(http.StatusOK, `{"message":"`+models.HealthMessage+`"}`)(w, r)
	}))
	defer srv.Close()

	got, err := newTestAdapter(t, srv.URL).Health(context.Background())

	require.NoError(t, err)
	assert.Equal(t, models.HealthMessage, got.Message)
}

func TestHealth_UnexpectedGreeting(t *testing.T) {
	srv := httptest.NewServer(jsonHandler(http.StatusOK, `{"message":"hello"}`))
	defer srv.Close()

	_, err := newTestAdapter(t, srv.URL).Health(context.Background())

	require.ErrorIs(t, err, ErrUnhealthy)
	assert.Contains(t, err.Error(), "hello")
}

func TestHealth_ErrorResponses(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		header      map[string]string
		wantErr     error
		wantContain string
	}{
		{
			name:        "rate limited",
			status:      http.StatusTooManyRequests,
			body:        `{"message":"You hit the rate limit! Slow down please!"}`,
			header:      map[string]string{"Retry-After": "42"},
			wantErr:     ErrRateLimited,
			wantContain: "retry after 42s",
		},
		{
			name:        "internal error envelope",
			status:      http.StatusInternalServerError,
			body:        `{"message":"Internal server error.","error":"counter unavailable"}`,
			wantErr:     ErrInternalServerError,
			wantContain: "Internal server error.: counter unavailable",
		},
		{
			name:        "validation failure",
			status:      http.StatusBadRequest,
			body:        `{"status":"fail","message":"query/limit Expected number","issues":[]}`,
			wantErr:     ErrBadRequest,
			wantContain: "query/limit Expected number",
		},
		{
			name:        "not found",
			status:      http.StatusNotFound,
			body:        `{"message":"Route GET:/ not found","error":"Not Found","statusCode":404}`,
			wantErr:     ErrNotFound,
			wantContain: "Route GET:/ not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				for key, value := range tt.header {
					w.Header().Set(key, value)
				}
				jsonHandler(tt.status, tt.body)(w, r)
			}))
			defer srv.Close()

			_, err := newTestAdapter(t, srv.URL).Health(context.Background())

			require.ErrorIs(t, err, tt.wantErr)
			assert.Contains(t, err.Error(), tt.wantContain)
		})
	}
}

func TestHealth_UnmappedStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := newTestAdapter(t, srv.URL).Health(context.Background())

	require.Error(t, err)
	assert.Equal(t, "http 502: Bad Gateway", err.Error())
}

func TestHealth_ServerUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := newTestAdapter(t, url).Health(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "error sending health request")
}

func TestDocs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, docsJSONPath, r.URL.Path)
		jsonHandler(http.StatusOK, `{"openapi":"3.0.3"}`)(w, r)
	}))
	defer srv.Close()

	raw, err := newTestAdapter(t, srv.URL).Docs(context.Background())

	require.NoError(t, err)
	assert.JSONEq(t, `{"openapi":"3.0.3"}`, string(raw))
}

func TestDocs_ServerError(t *testing.T) {
	srv := httptest.NewServer(jsonHandler(http.StatusInternalServerError, `{"message":"Internal server error.","error":"docs"}`))
	defer srv.Close()

	raw, err := newTestAdapter(t, srv.URL).Docs(context.Background())

	require.ErrorIs(t, err, ErrInternalServerError)
	assert.Nil(t, raw)
}
