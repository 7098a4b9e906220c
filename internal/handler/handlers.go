package handler

import (
	"fmt"

	"github.com/MKhiriev/integrador/internal/config"
	"github.com/MKhiriev/integrador/internal/handler/http"
	"github.com/MKhiriev/integrador/internal/logger"
	"github.com/MKhiriev/integrador/internal/service"
)

type Handlers struct {
	HTTP *http.Handler
}

// NewHandlers creates the transport handlers enabled by cfg. Routes are the
// business endpoints mounted behind the HTTP pipeline.
func NewHandlers(services *service.Services, cfg *config.StructuredConfig, logger *logger.Logger, routes ...http.Route) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	if cfg.Server.HTTPAddress == "" {
		return nil, errNoHandlersAreCreated
	}

	httpHandler, err := http.NewHandler(services, cfg, logger, routes...)
	if err != nil {
		return nil, fmt.Errorf("error creating http handler: %w", err)
	}

	return &Handlers{HTTP: httpHandler}, nil
}
