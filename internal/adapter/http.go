package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/MKhiriev/integrador/internal/logger"
	"github.com/MKhiriev/integrador/internal/utils"
	"github.com/MKhiriev/integrador/models"
)

const docsJSONPath = "/docs/json"

type httpServerAdapter struct {
	client *utils.HTTPClient

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs an HTTP implementation of [ServerAdapter].
// address may omit the scheme, in which case http is assumed. A zero timeout
// disables the per-request deadline.
//
// Returns an error if address is empty or cannot be parsed as a valid URL.
func NewHTTPServerAdapter(address string, timeout time.Duration, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(address)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	return &httpServerAdapter{client: utils.NewHTTPClient(baseURL, timeout), logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// Health implements [ServerAdapter].
func (h *httpServerAdapter) Health(ctx context.Context) (models.MessageResponse, error) {
	var result models.MessageResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetResult(&result).
		Get("/")
	if err != nil {
		return models.MessageResponse{}, fmt.Errorf("error sending health request: %w", err)
	}
	if err := mapHTTPError(resp); err != nil {
		return models.MessageResponse{}, err
	}

	if result.Message != models.HealthMessage {
		return models.MessageResponse{}, fmt.Errorf("%w: unexpected greeting %q", ErrUnhealthy, result.Message)
	}

	h.logger.Debug().
		Str("url", resp.Request.URL).
		Dur("duration", resp.Time()).
		Msg("server is healthy")

	return result, nil
}

// Docs implements [ServerAdapter].
func (h *httpServerAdapter) Docs(ctx context.Context) ([]byte, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		Get(docsJSONPath)
	if err != nil {
		return nil, fmt.Errorf("error requesting api docs: %w", err)
	}
	if err := mapHTTPError(resp); err != nil {
		return nil, err
	}

	return resp.Body(), nil
}
