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

	refundcfg "github.com/Skotchmaster/shoe_shop/services/refund/internal/config"
	"github.com/Skotchmaster/shoe_shop/services/refund/internal/httpserver"
	"github.com/Skotchmaster/shoe_shop/services/refund/internal/repo"
	"github.com/Skotchmaster/shoe_shop/services/refund/internal/service"
	"github.com/Skotchmaster/shoe_shop/services/refund/internal/storage"
)

func main() {
	if err := godotenv.Load("services/refund/.env"); err != nil {
		log.Printf("warning: could not load .env: %v", err)
	}

	cfg := refundcfg.Load()

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

	svc := &service.RefundService{
		Repo:      &repo.GormRepo{DB: db},
		Images:    storage.NewImageStore(cfg.UploadDir),
		Publisher: publisher,
	}

	a := app.New(logger, cfg.Config)
	httpserver.Register(a.Echo(), &httpserver.Deps{
		RefundHandler: &httpserver.RefundHTTP{Svc: svc},
		UploadDir:     cfg.UploadDir,
		JWTSecret:     cfg.JWTAccessSecret,
		AuthClient:    authclient.NewClient(cfg.AuthHTTPURL),
	})
	a.OnClose(func() error { return pkgdb.Close(db) })
	a.OnClose(publisher.Close)

	if err := a.Run(ctx); err != nil {
		logger.Error("refund_stopped", "error", err)
		os.Exit(1)
	}
}
