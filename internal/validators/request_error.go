package validators

import (
	"slices"
	"strings"

	"github.com/MKhiriev/integrador/models"
)

// Context names the part of a request that failed validation.
type Context string

// Request parts, in the order they are validated.
const (
	ContextParams      Context = "params"
	ContextQuerystring Context = "querystring"
	ContextBody        Context = "body"
)

// RequestError is the validation condition raised by the inbound schema
// stage. It carries the failing request part and the list of issues.
//
// RequestError unwraps to [ErrRequestValidation] only; the engine error it
// was built from is not reachable through errors.As.
type RequestError struct {
	Context Context

	issues  []models.ValidationIssue
	message string
}

// NewRequestError builds a RequestError for part. The message lists every
// issue as "<part><instancePath> <message>", joined by ", ".
func NewRequestError(part Context, issues []models.ValidationIssue) *RequestError {
	parts := make([]string, 0, len(issues))
	for _, issue := range issues {
		parts = append(parts, string(part)+issue.InstancePath+" "+issue.Message)
	}

	return &RequestError{
		Context: part,
		issues:  slices.Clone(issues),
		message: strings.Join(parts, ", "),
	}
}

func (e *RequestError) Error() string {
	return e.message
}

func (e *RequestError) Unwrap() error {
	return ErrRequestValidation
}

// ValidationIssues returns a copy of the issue list.
func (e *RequestError) ValidationIssues() []models.ValidationIssue {
	return slices.Clone(e.issues)
}
