package http

import (
	"context"
	"net/http"

	"github.com/MKhiriev/integrador/models"
)

// healthEndpoint is the root route. It answers without touching any
// dependency so it can serve as a liveness probe.
func healthEndpoint() Route {
	return Endpoint[struct{}, models.MessageResponse]{
		Method:  http.MethodGet,
		Path:    "/",
		Summary: "Health check",
		Tags:    []string{"health"},
		Handle: func(context.Context, struct{}) (models.MessageResponse, error) {
			return models.MessageResponse{Message: models.HealthMessage}, nil
		},
	}
}
