package service

import (
	"github.com/MKhiriev/integrador/internal/config"
	"github.com/MKhiriev/integrador/internal/logger"
	"github.com/MKhiriev/integrador/internal/store"
)

type Services struct {
	AuthService      AuthService
	RateLimitService RateLimitService
}

func NewServices(storages *store.Storages, cfg *config.StructuredConfig, logger *logger.Logger) *Services {
	return &Services{
		AuthService:      NewAuthService(cfg.App, logger),
		RateLimitService: NewRateLimitService(storages.RateLimitStore, cfg.RateLimit, logger),
	}
}
