package utils

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// ContentTypeJSON is the media type of every JSON body the service writes.
const ContentTypeJSON = "application/json; charset=utf-8"

// ErrEmptyBody is returned by [DecodeJSON] when the request carries no body.
var ErrEmptyBody = errors.New("request body is empty")

// WriteJSON serializes the given data to JSON and writes it to the HTTP response.
//
// The payload is marshaled before any header is touched, so a marshaling
// failure leaves the response untouched and the caller remains free to emit the
// internal-failure envelope instead.
//
// Returns the number of bytes written to the response body.
//
// Example usage:
//
//	WriteJSON(w, models.MessageResponse{Message: "ok"}, http.StatusOK)
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return 0, fmt.Errorf("error writing data to JSON: %w", err)
	}

	w.Header().Set("Content-Type", ContentTypeJSON)
	w.WriteHeader(statusCode)

	return w.Write(jsonData)
}

// DecodeJSON reads at most limit bytes from r and decodes them into dst.
//
// An empty or whitespace-only body yields [ErrEmptyBody]. A body larger than
// limit is reported as a *http.MaxBytesError.
func DecodeJSON(r io.Reader, dst any, limit int64) error {
	raw, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return fmt.Errorf("error reading request body: %w", err)
	}
	if int64(len(raw)) > limit {
		return &http.MaxBytesError{Limit: limit}
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return ErrEmptyBody
	}
	if err = json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("error decoding request body: %w", err)
	}
	return nil
}
