// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// ErrorEnvelope is the single JSON shape returned for every failed request.
//
// Exactly one of Issues or Error is normally populated: Issues for input
// shape failures, Error for unclassified conditions. Status is only set to
// "fail" for inbound request validation failures.
type ErrorEnvelope struct {
	// Status marks inbound validation failures. Empty otherwise.
	Status string `json:"status,omitempty"`

	// Message is the human-readable summary of the failure.
	Message string `json:"message"`

	// Issues holds the structured per-field detail of a validation failure.
	// Its concrete shape depends on which validation condition produced it.
	Issues any `json:"issues,omitempty"`

	// Error carries the message of an unclassified condition. It is set,
	// possibly to an empty string, exactly for those conditions.
	Error *string `json:"error,omitempty"`
}

// ValidationIssue describes one rejected piece of inbound request data.
type ValidationIssue struct {
	// InstancePath is the JSON-pointer-like path of the offending value
	// inside its request part, e.g. "/address/city". Empty for the part as a
	// whole (for instance a malformed body).
	InstancePath string `json:"instancePath"`

	// Keyword names the rule that failed, e.g. "required", "email", "type".
	Keyword string `json:"keyword"`

	// Message is the human-readable reason.
	Message string `json:"message"`

	// Params carries rule arguments such as the minimum length.
	Params map[string]any `json:"params,omitempty"`
}

// NotFoundEnvelope is returned for requests that match no registered route.
type NotFoundEnvelope struct {
	Message    string `json:"message"`
	Error      string `json:"error"`
	StatusCode int    `json:"statusCode"`
}

// HealthMessage is the greeting served by the root route.
const HealthMessage = "Servidor do Integrador Conectado com Sucesso"

// MessageResponse is a payload that only carries a message.
type MessageResponse struct {
	Message string `json:"message" validate:"required"`
}
