package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/integrador/internal/config"
	"github.com/MKhiriev/integrador/internal/handler"
	"github.com/MKhiriev/integrador/internal/logger"
	"github.com/MKhiriev/integrador/internal/server"
	"github.com/MKhiriev/integrador/internal/service"
	"github.com/MKhiriev/integrador/internal/store"
	"github.com/MKhiriev/integrador/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	fmt.Print(models.NewAppBuildInfo(buildVersion, buildDate, buildCommit))

	cfg, err := config.GetStructuredConfig()
	if err != nil {
		logger.NewLogger("integrador", "info").Fatal().Err(err).Msg("error getting configs")
	}

	log := logger.NewLogger("integrador", cfg.Log.Level)
	log.Debug().Any("config", cfg).Msg("received configs")

	storages, err := store.NewStorages(context.Background(), cfg.RateLimit, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer func() {
		if err := storages.Close(); err != nil {
			log.Err(err).Msg("error closing storages")
		}
	}()

	services := service.NewServices(storages, cfg, log)

	handlers, err := handler.NewHandlers(services, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}
