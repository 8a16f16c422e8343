package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/shoe_shop/pkg/authclient"
	middleware "github.com/Skotchmaster/shoe_shop/pkg/middleware/auth"
	"github.com/Skotchmaster/shoe_shop/pkg/tokens"
)

type Deps struct {
	OrderHandler *OrderHTTP
	JWTSecret    []byte
	AuthClient   *authclient.Client
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	authMW := middleware.NewAutoRefreshMiddleware(d.JWTSecret, d.AuthClient)
	staff := authMW.RequireRole(tokens.RoleManager, tokens.RoleAdmin)

	orders := e.Group("/orders", authMW.RequireAuth)
	orders.POST("", d.OrderHandler.CreateOrder)
	orders.GET("/:userId", d.OrderHandler.GetUserOrders)
	orders.GET("", d.OrderHandler.GetAllOrders, staff)
	orders.PUT("/:id", d.OrderHandler.UpdateStatus, staff)

	e.GET("/order/:id", d.OrderHandler.GetOrder, authMW.RequireAuth)
}
