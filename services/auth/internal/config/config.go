package config

import (
	"os"
	"time"

	"github.com/Skotchmaster/shoe_shop/pkg/config"
)

type ServiceConfig struct {
	config.Config

	// ClientURL is the storefront origin used in password reset links.
	ClientURL string

	AccessTTL  time.Duration
	RefreshTTL time.Duration

	BootstrapManagerEmail    string
	BootstrapManagerPassword string
}

func Load() ServiceConfig {
	cfg := config.Load()
	if cfg.ServiceName == "" {
		cfg.ServiceName = "auth"
	}

	config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")
	config.MustNonEmptyBytes(cfg.JWTAccessSecret, "JWT_SECRET")
	config.MustNonEmptyBytes(cfg.JWTRefreshSecret, "JWT_REFRESH_SECRET")
	config.MustValid(cfg)

	return ServiceConfig{
		Config:                   cfg,
		ClientURL:                config.EnvDefault("CLIENT_URL", "http://localhost:5173"),
		AccessTTL:                config.EnvDurationDefault("ACCESS_TOKEN_TTL", 15*time.Minute),
		RefreshTTL:               config.EnvDurationDefault("REFRESH_TOKEN_TTL", 7*24*time.Hour),
		BootstrapManagerEmail:    os.Getenv("BOOTSTRAP_MANAGER_EMAIL"),
		BootstrapManagerPassword: os.Getenv("BOOTSTRAP_MANAGER_PASSWORD"),
	}
}
