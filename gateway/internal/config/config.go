package config

import (
	"os"

	"github.com/Skotchmaster/shoe_shop/pkg/config"
)

type ServiceConfig struct {
	config.Config

	CatalogURL  string
	CartURL     string
	OrderURL    string
	DeliveryURL string
	RefundURL   string
	SearchURL   string
}

func Load() ServiceConfig {
	cfg := config.Load()
	if cfg.ServiceName == "" {
		cfg.ServiceName = "gateway"
	}
	config.MustValid(cfg)

	sc := ServiceConfig{
		Config:      cfg,
		CatalogURL:  os.Getenv("CATALOG_URL"),
		CartURL:     os.Getenv("CART_URL"),
		OrderURL:    os.Getenv("ORDER_URL"),
		DeliveryURL: os.Getenv("DELIVERY_URL"),
		RefundURL:   os.Getenv("REFUND_URL"),
		SearchURL:   os.Getenv("SEARCH_URL"),
	}
	config.MustNonEmpty(sc.AuthHTTPURL, "AUTH_URL")
	config.MustNonEmpty(sc.CatalogURL, "CATALOG_URL")
	config.MustNonEmpty(sc.CartURL, "CART_URL")
	config.MustNonEmpty(sc.OrderURL, "ORDER_URL")
	config.MustNonEmpty(sc.DeliveryURL, "DELIVERY_URL")
	config.MustNonEmpty(sc.RefundURL, "REFUND_URL")
	config.MustNonEmpty(sc.SearchURL, "SEARCH_URL")
	return sc
}
