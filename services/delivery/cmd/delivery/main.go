package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"

	"github.com/Skotchmaster/shoe_shop/internal/models"
	"github.com/Skotchmaster/shoe_shop/pkg/app"
	"github.com/Skotchmaster/shoe_shop/pkg/authclient"
	pkgdb "github.com/Skotchmaster/shoe_shop/pkg/db"
	"github.com/Skotchmaster/shoe_shop/pkg/logging"
	"github.com/Skotchmaster/shoe_shop/pkg/mykafka"

	deliverycfg "github.com/Skotchmaster/shoe_shop/services/delivery/internal/config"
	"github.com/Skotchmaster/shoe_shop/services/delivery/internal/httpserver"
	"github.com/Skotchmaster/shoe_shop/services/delivery/internal/repo"
	"github.com/Skotchmaster/shoe_shop/services/delivery/internal/service"
)

func main() {
	if err := godotenv.Load("services/delivery/.env"); err != nil {
		log.Printf("warning: could not load .env: %v", err)
	}

	cfg := deliverycfg.Load()

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	openCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	db, err := pkgdb.Open(openCtx, cfg.DatabaseURL)
	if err != nil {
		cancel()
		log.Fatalf("db open: %v", err)
	}
	if err := models.Migrate(ctx, db); err != nil {
		cancel()
		log.Fatalf("db migrate: %v", err)
	}

	var reporting *sqlx.DB
	ownReporting := cfg.ReportingDatabaseURL != ""
	if ownReporting {
		reporting, err = pkgdb.OpenReporting(openCtx, cfg.ReportingDatabaseURL)
	} else {
		reporting, err = pkgdb.Reporting(db)
	}
	cancel()
	if err != nil {
		log.Fatalf("reporting db: %v", err)
	}

	publisher := mykafka.NewPublisher(cfg.KafkaBrokers, logger)

	svc := &service.DeliveryService{
		Repo:      &repo.GormRepo{DB: db},
		Stats:     repo.NewStatsRepo(reporting),
		Publisher: publisher,
		JWTSecret: cfg.JWTAccessSecret,
		TokenTTL:  cfg.PersonTokenTTL,
	}

	a := app.New(logger, cfg.Config)
	httpserver.Register(a.Echo(), &httpserver.Deps{
		ManagerHandler: &httpserver.ManagerHTTP{Svc: svc},
		PersonHandler:  &httpserver.PersonHTTP{Svc: svc},
		JWTSecret:      cfg.JWTAccessSecret,
		AuthClient:     authclient.NewClient(cfg.AuthHTTPURL),
	})
	a.OnClose(func() error { return pkgdb.Close(db) })
	if ownReporting {
		a.OnClose(reporting.Close)
	}
	a.OnClose(publisher.Close)

	if err := a.Run(ctx); err != nil {
		logger.Error("delivery_stopped", "error", err)
		os.Exit(1)
	}
}
