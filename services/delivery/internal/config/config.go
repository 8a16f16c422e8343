package config

import (
	"os"
	"time"

	"github.com/Skotchmaster/shoe_shop/pkg/config"
)

type ServiceConfig struct {
	config.Config

	// ReportingDatabaseURL points stats queries at a separate pool, e.g. a replica.
	ReportingDatabaseURL string
	PersonTokenTTL       time.Duration
}

func Load() ServiceConfig {
	cfg := config.Load()
	if cfg.ServiceName == "" {
		cfg.ServiceName = "delivery"
	}

	config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")
	config.MustNonEmptyBytes(cfg.JWTAccessSecret, "JWT_SECRET")
	config.MustNonEmpty(cfg.AuthHTTPURL, "AUTH_URL")
	config.MustValid(cfg)

	return ServiceConfig{
		Config:               cfg,
		ReportingDatabaseURL: os.Getenv("REPORTING_DATABASE_URL"),
		PersonTokenTTL:       config.EnvDurationDefault("DELIVERY_PERSON_TOKEN_TTL", 24*time.Hour),
	}
}
