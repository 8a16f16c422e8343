package config

import "github.com/Skotchmaster/shoe_shop/pkg/config"

type ServiceConfig struct {
	config.Config

	// UploadDir is the root for stored refund images, served under /uploads.
	UploadDir string
}

func Load() ServiceConfig {
	cfg := config.Load()
	if cfg.ServiceName == "" {
		cfg.ServiceName = "refund"
	}

	config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")
	config.MustNonEmptyBytes(cfg.JWTAccessSecret, "JWT_SECRET")
	config.MustNonEmpty(cfg.AuthHTTPURL, "AUTH_URL")
	config.MustValid(cfg)

	return ServiceConfig{
		Config:    cfg,
		UploadDir: config.EnvDefault("UPLOAD_DIR", "uploads"),
	}
}
