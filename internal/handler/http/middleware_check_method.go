// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"fmt"
	"net/http"

	"github.com/MKhiriev/integrador/internal/utils"
	"github.com/MKhiriev/integrador/models"
)

// notFound answers requests that match no route. It is registered both as
// the router's NotFound and MethodNotAllowed handler, so a known path used
// with an unsupported method looks exactly like an unknown path.
func (h *Handler) notFound(w http.ResponseWriter, r *http.Request) {
	envelope := models.NotFoundEnvelope{
		Message:    fmt.Sprintf("Route %s:%s not found", r.Method, r.URL.Path),
		Error:      http.StatusText(http.StatusNotFound),
		StatusCode: http.StatusNotFound,
	}
	if _, err := utils.WriteJSON(w, envelope, http.StatusNotFound); err != nil {
		h.fail(w, r, err)
	}
}
