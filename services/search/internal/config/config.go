package config

import (
	"os"

	"github.com/Skotchmaster/shoe_shop/pkg/config"
)

type ServiceConfig struct {
	config.Config

	ElasticsearchURL      string
	ElasticsearchUser     string
	ElasticsearchPassword string
	Index                 string
	ConsumerGroup         string
}

func Load() ServiceConfig {
	cfg := config.Load()
	if cfg.ServiceName == "" {
		cfg.ServiceName = "search"
	}
	config.MustValid(cfg)

	sc := ServiceConfig{
		Config:                cfg,
		ElasticsearchURL:      os.Getenv("ELASTICSEARCH_URL"),
		ElasticsearchUser:     os.Getenv("ELASTICSEARCH_USER"),
		ElasticsearchPassword: os.Getenv("ELASTICSEARCH_PASSWORD"),
		Index:                 config.EnvDefault("ELASTICSEARCH_INDEX", "shoes"),
		ConsumerGroup:         config.EnvDefault("KAFKA_GROUP_ID", "search-indexer"),
	}
	config.MustNonEmpty(sc.ElasticsearchURL, "ELASTICSEARCH_URL")
	return sc
}
