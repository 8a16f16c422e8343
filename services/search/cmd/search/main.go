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

	"github.com/Skotchmaster/shoe_shop/pkg/app"
	"github.com/Skotchmaster/shoe_shop/pkg/logging"
	"github.com/Skotchmaster/shoe_shop/pkg/mykafka"

	searchcfg "github.com/Skotchmaster/shoe_shop/services/search/internal/config"
	"github.com/Skotchmaster/shoe_shop/services/search/internal/consumer"
	"github.com/Skotchmaster/shoe_shop/services/search/internal/httpserver"
	"github.com/Skotchmaster/shoe_shop/services/search/internal/index"
)

func main() {
	if err := godotenv.Load("services/search/.env"); err != nil {
		log.Printf("warning: could not load .env: %v", err)
	}

	cfg := searchcfg.Load()

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	connectCtx, cancel := context.WithTimeout(ctx, 60*time.Second)
	es, err := index.NewClient(connectCtx, cfg.ElasticsearchURL, cfg.ElasticsearchUser, cfg.ElasticsearchPassword)
	if err != nil {
		cancel()
		log.Fatalf("elasticsearch: %v", err)
	}
	shoes := &index.Shoes{ES: es, Name: cfg.Index}
	err = shoes.EnsureIndex(connectCtx)
	cancel()
	if err != nil {
		log.Fatalf("ensure index: %v", err)
	}

	a := app.New(logger, cfg.Config)
	httpserver.Register(a.Echo(), &httpserver.Deps{
		SearchHandler: &httpserver.SearchHTTP{Index: shoes},
	})

	if len(cfg.KafkaBrokers) > 0 {
		c := mykafka.NewConsumer(logger, cfg.KafkaBrokers, cfg.ConsumerGroup, mykafka.TopicShoeEvents,
			consumer.ShoeEvents(logger, shoes))
		a.AddRunners(c)
		a.OnClose(c.Close)
	} else {
		logger.Warn("kafka brokers not configured, index will not follow catalog changes")
	}

	if err := a.Run(ctx); err != nil {
		logger.Error("search_stopped", "error", err)
		os.Exit(1)
	}
}
