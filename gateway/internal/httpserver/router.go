package httpserver

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/shoe_shop/gateway/internal/middleware"
)

type Deps struct {
	AuthURL     string
	CatalogURL  string
	CartURL     string
	OrderURL    string
	DeliveryURL string
	RefundURL   string
	SearchURL   string

	// Transport is shared by every upstream. Nil uses a pooled default.
	Transport http.RoundTripper
}

type route struct {
	methods []string
	path    string
}

func anyMethod(path string) route { return route{path: path} }

// Register mounts the upstream services under /api/v1. Authentication is
// left to each service.
func Register(e *echo.Echo, logger *slog.Logger, d *Deps) error {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	transport := d.Transport
	if transport == nil {
		transport = newTransport()
	}

	upstreams := []struct {
		name   string
		url    string
		routes []route
	}{
		{"auth", d.AuthURL, []route{anyMethod("/auth/*")}},
		{"catalog", d.CatalogURL, []route{anyMethod("/catalog/*")}},
		{"search", d.SearchURL, []route{{methods: []string{http.MethodGet}, path: "/search"}}},
		{"cart", d.CartURL, []route{anyMethod("/cart"), anyMethod("/cart/*")}},
		{"order", d.OrderURL, []route{
			anyMethod("/orders"),
			anyMethod("/orders/*"),
			{methods: []string{http.MethodGet}, path: "/order/:id"},
		}},
		{"delivery", d.DeliveryURL, []route{anyMethod("/delivery/*")}},
		{"refund", d.RefundURL, []route{
			{methods: []string{http.MethodPost}, path: "/order/:id/refund-request"},
			anyMethod("/user/*"),
			anyMethod("/refund/*"),
			{methods: []string{http.MethodGet, http.MethodHead}, path: "/uploads/*"},
		}},
	}

	api := e.Group(apiPrefix, middleware.Common()...)
	for _, u := range upstreams {
		h, err := newProxy(logger, u.name, u.url, transport)
		if err != nil {
			return err
		}
		for _, r := range u.routes {
			if len(r.methods) == 0 {
				api.Any(r.path, h)
				continue
			}
			api.Match(r.methods, r.path, h)
		}
	}
	return nil
}
