package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/Skotchmaster/shoe_shop/internal/models"
	"github.com/Skotchmaster/shoe_shop/pkg/app"
	pkgdb "github.com/Skotchmaster/shoe_shop/pkg/db"
	"github.com/Skotchmaster/shoe_shop/pkg/logging"
	"github.com/Skotchmaster/shoe_shop/pkg/mykafka"

	authcfg "github.com/Skotchmaster/shoe_shop/services/auth/internal/config"
	"github.com/Skotchmaster/shoe_shop/services/auth/internal/httpserver"
	"github.com/Skotchmaster/shoe_shop/services/auth/internal/repo"
	"github.com/Skotchmaster/shoe_shop/services/auth/internal/service"
)

func main() {
	if err := godotenv.Load("services/auth/.env"); err != nil {
		log.Printf("warning: could not load .env: %v", err)
	}

	cfg := authcfg.Load()

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	openCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	db, err := pkgdb.Open(openCtx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db open: %v", err)
	}
	if err := models.Migrate(ctx, db); err != nil {
		log.Fatalf("db migrate: %v", err)
	}

	publisher := mykafka.NewPublisher(cfg.KafkaBrokers, logger)

	svc := &service.AuthService{
		Repo:          &repo.GormRepo{DB: db},
		Publisher:     publisher,
		AccessSecret:  cfg.JWTAccessSecret,
		RefreshSecret: cfg.JWTRefreshSecret,
		AccessTTL:     cfg.AccessTTL,
		RefreshTTL:    cfg.RefreshTTL,
		ClientURL:     cfg.ClientURL,
	}

	if cfg.BootstrapManagerEmail != "" && cfg.BootstrapManagerPassword != "" {
		created, err := svc.BootstrapManager(ctx, cfg.BootstrapManagerEmail, cfg.BootstrapManagerPassword)
		if err != nil {
			log.Fatalf("bootstrap manager: %v", err)
		}
		logger.Info("bootstrap_manager", "email", cfg.BootstrapManagerEmail, "created", created)
	}

	a := app.New(logger, cfg.Config)
	httpserver.Register(a.Echo(), &httpserver.Deps{
		AuthHandler: &httpserver.AuthHTTP{Svc: svc},
		JWTSecret:   cfg.JWTAccessSecret,
	})
	a.OnClose(func() error { return pkgdb.Close(db) })
	a.OnClose(publisher.Close)

	if err := a.Run(ctx); err != nil {
		logger.Error("auth_stopped", "error", err)
		os.Exit(1)
	}
}
