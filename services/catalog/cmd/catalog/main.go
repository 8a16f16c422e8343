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
	"github.com/Skotchmaster/shoe_shop/pkg/authclient"
	pkgdb "github.com/Skotchmaster/shoe_shop/pkg/db"
	"github.com/Skotchmaster/shoe_shop/pkg/logging"
	"github.com/Skotchmaster/shoe_shop/pkg/mykafka"

	catalogcfg "github.com/Skotchmaster/shoe_shop/services/catalog/internal/config"
	"github.com/Skotchmaster/shoe_shop/services/catalog/internal/httpserver"
	"github.com/Skotchmaster/shoe_shop/services/catalog/internal/repo"
	"github.com/Skotchmaster/shoe_shop/services/catalog/internal/seed"
	"github.com/Skotchmaster/shoe_shop/services/catalog/internal/service"
)

func main() {
	if err := godotenv.Load("services/catalog/.env"); err != nil {
		log.Printf("warning: could not load .env: %v", err)
	}

	cfg := catalogcfg.Load()

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

	svc := &service.CatalogService{Repo: &repo.GormRepo{DB: db}, Publisher: publisher}

	if cfg.SeedFile != "" {
		shoes, err := seed.Load(cfg.SeedFile)
		if err != nil {
			log.Fatalf("seed: %v", err)
		}
		if _, err := svc.Seed(logging.IntoContext(ctx, logger), shoes); err != nil {
			log.Fatalf("seed: %v", err)
		}
	}

	a := app.New(logger, cfg.Config)
	httpserver.Register(a.Echo(), &httpserver.Deps{
		CatalogHandler: &httpserver.CatalogHTTP{Svc: svc},
		JWTSecret:      cfg.JWTAccessSecret,
		AuthClient:     authclient.NewClient(cfg.AuthHTTPURL),
	})
	a.OnClose(func() error { return pkgdb.Close(db) })
	a.OnClose(publisher.Close)

	if err := a.Run(ctx); err != nil {
		logger.Error("catalog_stopped", "error", err)
		os.Exit(1)
	}
}
