package config

import (
	"os"

	"github.com/Skotchmaster/shoe_shop/pkg/config"
)

type ServiceConfig struct {
	config.Config
	SeedFile string
}

func Load() ServiceConfig {
	cfg := config.Load()
	if cfg.ServiceName == "" {
		cfg.ServiceName = "catalog"
	}

	config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")
	config.MustNonEmptyBytes(cfg.JWTAccessSecret, "JWT_SECRET")
	config.MustNonEmpty(cfg.AuthHTTPURL, "AUTH_URL")
	config.MustValid(cfg)

	return ServiceConfig{Config: cfg, SeedFile: os.Getenv("SEED_FILE")}
}
