package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/Skotchmaster/shoe_shop/pkg/app"
	"github.com/Skotchmaster/shoe_shop/pkg/logging"

	gatewaycfg "github.com/Skotchmaster/shoe_shop/gateway/internal/config"
	"github.com/Skotchmaster/shoe_shop/gateway/internal/httpserver"
)

func main() {
	if err := godotenv.Load("gateway/.env"); err != nil {
		log.Printf("warning: could not load .env: %v", err)
	}

	cfg := gatewaycfg.Load()

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := app.New(logger, cfg.Config)
	if err := httpserver.Register(a.Echo(), logger, &httpserver.Deps{
		AuthURL:     cfg.AuthHTTPURL,
		CatalogURL:  cfg.CatalogURL,
		CartURL:     cfg.CartURL,
		OrderURL:    cfg.OrderURL,
		DeliveryURL: cfg.DeliveryURL,
		RefundURL:   cfg.RefundURL,
		SearchURL:   cfg.SearchURL,
	}); err != nil {
		log.Fatalf("register routes: %v", err)
	}

	if err := a.Run(ctx); err != nil {
		logger.Error("gateway_stopped", "error", err)
		os.Exit(1)
	}
}
