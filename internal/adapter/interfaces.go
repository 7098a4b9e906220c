// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the client side of the Integrador HTTP API.
//
// The primary abstraction is [ServerAdapter], used by operational tooling
// such as the healthcheck binary to probe a running server. Error envelopes
// returned by the server are mapped by mapHTTPError to the sentinel values
// in errors.go so callers can use [errors.Is] (e.g. [ErrRateLimited] for
// 429, [ErrInternalServerError] for 500).
package adapter

import (
	"context"

	"github.com/MKhiriev/integrador/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter defines communication with a running Integrador server.
type ServerAdapter interface {
	// Health calls the root route and returns its payload. It returns
	// [ErrUnhealthy] (wrapped) when the server answers with an unexpected
	// greeting, or a mapped transport error for non-2xx responses.
	Health(ctx context.Context) (models.MessageResponse, error)

	// Docs fetches the published OpenAPI document as raw JSON.
	Docs(ctx context.Context) ([]byte, error)
}
