package utils

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSON_Success(t *testing.T) {
	w := httptest.NewRecorder()

	n, err := WriteJSON(w, map[string]string{"key": "value"}, http.StatusOK)

	require.NoError(t, err)
	assert.Equal(t, len(`{"key":"value"}`), n)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, ContentTypeJSON, w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"key":"value"}`, w.Body.String())
}

func TestWriteJSON_CustomStatusCode(t *testing.T) {
	w := httptest.NewRecorder()

	_, err := WriteJSON(w, map[string]string{"message": "slow down"}, http.StatusTooManyRequests)

	require.NoError(t, err)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestWriteJSON_InvalidDataLeavesResponseUntouched(t *testing.T) {
	w := httptest.NewRecorder()

	// channels cannot be marshaled to JSON
	_, err := WriteJSON(w, make(chan int), http.StatusOK)

	require.Error(t, err)
	assert.False(t, w.Flushed)
	assert.Empty(t, w.Header().Get("Content-Type"))
	assert.Empty(t, w.Body.String())
}

func TestWriteJSON_NilAndEmpty(t *testing.T) {
	tests := []struct {
		name string
		data any
		want string
	}{
		{"nil", nil, "null"},
		{"empty struct", struct{}{}, "{}"},
		{"slice", []int{1, 2, 3}, "[1,2,3]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			_, err := WriteJSON(w, tt.data, http.StatusOK)
			require.NoError(t, err)
			assert.Equal(t, tt.want, w.Body.String())
		})
	}
}

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	t.Run("valid body", func(t *testing.T) {
		var dst payload
		require.NoError(t, DecodeJSON(strings.NewReader(`{"name":"ana"}`), &dst, 1024))
		assert.Equal(t, "ana", dst.Name)
	})

	t.Run("empty body", func(t *testing.T) {
		var dst payload
		err := DecodeJSON(strings.NewReader("  \n"), &dst, 1024)
		assert.ErrorIs(t, err, ErrEmptyBody)
	})

	t.Run("malformed body", func(t *testing.T) {
		var dst payload
		err := DecodeJSON(strings.NewReader(`{"name":`), &dst, 1024)
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrEmptyBody)
	})

	t.Run("too large", func(t *testing.T) {
		var dst payload
		err := DecodeJSON(strings.NewReader(`{"name":"0123456789"}`), &dst, 8)

		var maxErr *http.MaxBytesError
		require.True(t, errors.As(err, &maxErr))
		assert.Equal(t, int64(8), maxErr.Limit)
	})

	t.Run("exactly at limit", func(t *testing.T) {
		var dst payload
		body := `{"name":"a"}`
		require.NoError(t, DecodeJSON(strings.NewReader(body), &dst, int64(len(body))))
	})
}
