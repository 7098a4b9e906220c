// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators provides schema validation and input coercion for the
// HTTP entry pipeline.
//
// Core concepts:
//   - Validator: generic interface to validate arbitrary values or structures.
//     Supports optional field-level scoping for targeted validation.
//   - SchemaValidator: the go-playground/validator backed implementation.
//     Validate returns an [EngineError] wrapping the engine errors;
//     ValidatePart converts them into a [RequestError] naming the request
//     part that failed.
//   - Decoders: typed coercion of query strings and route parameters through
//     gorilla/schema, reporting failures as [RequestError] as well.
//   - Format: renders engine errors as a nested issue tree keyed by field.
package validators

import "context"

// Validator defines a generic validation interface for arbitrary input values.
// Implementations may perform structural validation, semantic checks,
// cross-field rules.
type Validator interface {

	// Validate validates the provided input and optionally
	// restricts validation to specific named fields.
	Validate(context.Context, any, ...string) error
}
