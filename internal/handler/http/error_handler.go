// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/integrador/internal/logger"
	"github.com/MKhiriev/integrador/internal/utils"
	"github.com/MKhiriev/integrador/internal/validators"
	"github.com/MKhiriev/integrador/models"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// Fixed envelope messages.
const (
	messageValidation   = "Validation error."
	messageRateLimited  = "You hit the rate limit! Slow down please!"
	messageInternal     = "Internal server error."
	statusFail          = "fail"
	rateLimitStatusCode = http.StatusTooManyRequests
)

// errorKind names the rule that classified a failure. It is used as a metric
// label.
type errorKind string

const (
	kindEngineValidation  errorKind = "engine_validation"
	kindRequestValidation errorKind = "request_validation"
	kindRateLimit         errorKind = "rate_limit"
	kindInternal          errorKind = "internal"
)

// validationMarker is implemented by failures that carry inbound validation
// detail, such as *validators.RequestError.
type validationMarker interface {
	error
	ValidationIssues() []models.ValidationIssue
}

// statusCoder is implemented by failures that know their HTTP status, such
// as *service.RateLimitExceededError.
type statusCoder interface {
	error
	StatusCode() int
}

type classification struct {
	kind     errorKind
	status   int
	envelope models.ErrorEnvelope
}

// classify maps a failure to its response. The first matching rule wins:
//
//  1. an error of the schema engine
//  2. a failure carrying validation issues
//  3. a failure reporting status 429
//  4. anything else
func classify(err error) classification {
	var engineErrs validator.ValidationErrors
	if errors.As(err, &engineErrs) {
		return classification{
			kind:   kindEngineValidation,
			status: http.StatusBadRequest,
			envelope: models.ErrorEnvelope{
				Message: messageValidation,
				Issues:  validators.Format(engineErrs, validators.RootOf(err, engineErrs)),
			},
		}
	}

	var marker validationMarker
	if errors.As(err, &marker) {
		return classification{
			kind:   kindRequestValidation,
			status: http.StatusBadRequest,
			envelope: models.ErrorEnvelope{
				Status:  statusFail,
				Message: marker.Error(),
				Issues:  marker.ValidationIssues(),
			},
		}
	}

	var coder statusCoder
	if errors.As(err, &coder) && coder.StatusCode() == rateLimitStatusCode {
		return classification{
			kind:     kindRateLimit,
			status:   rateLimitStatusCode,
			envelope: models.ErrorEnvelope{Message: messageRateLimited},
		}
	}

	message := "unknown error"
	if err != nil {
		message = err.Error()
	}
	return classification{
		kind:   kindInternal,
		status: http.StatusInternalServerError,
		envelope: models.ErrorEnvelope{
			Message: messageInternal,
			Error:   &message,
		},
	}
}

// fail is the only writer of failure responses. Internal failures are logged
// at error level. A response that has already been started is left alone.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)
	if log.GetLevel() == zerolog.Disabled {
		log = h.logger
	}

	c := classify(err)
	h.metrics.observeEnvelope(c.kind)

	if c.kind == kindInternal {
		event := log.Err(err).
			Str("method", r.Method).
			Str("uri", r.RequestURI)
		var panicErr *panicError
		if errors.As(err, &panicErr) {
			event = event.Bytes("stack", panicErr.stack)
		}
		event.Msg("unhandled error")
	} else {
		log.Debug().Err(err).Str("kind", string(c.kind)).Int("status", c.status).Msg("request rejected")
	}

	if rw, ok := w.(*responseWriter); ok && rw.wroteHeader {
		log.Warn().Str("kind", string(c.kind)).Msg("response already started, error envelope dropped")
		return
	}

	if _, writeErr := utils.WriteJSON(w, c.envelope, c.status); writeErr != nil {
		log.Err(writeErr).Msg("error writing error envelope")
	}
}
