package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/shoe_shop/pkg/authclient"
	middleware "github.com/Skotchmaster/shoe_shop/pkg/middleware/auth"
	"github.com/Skotchmaster/shoe_shop/pkg/tokens"
)

type Deps struct {
	RefundHandler *RefundHTTP
	UploadDir     string
	JWTSecret     []byte
	AuthClient    *authclient.Client
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	if d.UploadDir != "" {
		e.Static("/uploads", d.UploadDir)
	}

	authMW := middleware.NewAutoRefreshMiddleware(d.JWTSecret, d.AuthClient)
	staff := authMW.RequireRole(tokens.RoleManager, tokens.RoleAdmin)

	e.POST("/order/:orderId/refund-request", d.RefundHandler.RequestRefund, authMW.RequireAuth)
	e.GET("/user/:userId/refunds", d.RefundHandler.ListByUser, authMW.RequireAuth)
	e.GET("/refund/:refundId", d.RefundHandler.GetRefund, authMW.RequireAuth)
	e.PUT("/refund/:refundId/status", d.RefundHandler.UpdateStatus, staff)
}
