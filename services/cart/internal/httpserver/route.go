package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/shoe_shop/pkg/authclient"
	middleware "github.com/Skotchmaster/shoe_shop/pkg/middleware/auth"
)

type Deps struct {
	CartHandler *CartHTTP
	JWTSecret   []byte
	AuthClient  *authclient.Client
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	authMW := middleware.NewAutoRefreshMiddleware(d.JWTSecret, d.AuthClient)

	cart := e.Group("/cart")
	cart.Use(authMW.RequireAuth)

	cart.POST("", d.CartHandler.AddToCart)
	cart.GET("/:userId", d.CartHandler.GetCart)
	cart.PUT("/:userId", d.CartHandler.UpdateQuantity)
	cart.DELETE("/:userId", d.CartHandler.RemoveItem)
}
