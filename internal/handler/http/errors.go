// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors raised by the transport layer. They all end up on the
// internal failure path of the error classifier.
var (
	// ErrResponseSerialization is raised when a route handler returns a value
	// that does not satisfy its response schema or cannot be encoded.
	ErrResponseSerialization = errors.New("response serialization failed")

	// ErrPanic wraps a value recovered from a panicking handler.
	ErrPanic = errors.New("handler panicked")

	// ErrInvalidEndpoint is returned by NewHandler for a route declaration
	// that cannot be registered.
	ErrInvalidEndpoint = errors.New("invalid endpoint declaration")

	// ErrDocsGeneration is returned by NewHandler when the API description
	// cannot be built from the route table.
	ErrDocsGeneration = errors.New("error generating API documentation")

	// ErrInvalidAuthorizationHeader is raised by the authenticate decorator
	// when the "Authorization" header is present but is not a bearer
	// credential.
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")
)
