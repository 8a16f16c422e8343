package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	middleware "github.com/Skotchmaster/shoe_shop/pkg/middleware/auth"
)

type Deps struct {
	AuthHandler *AuthHTTP
	JWTSecret   []byte
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	// No auth client: an expired access cookie here means "log in again".
	authMW := middleware.NewAutoRefreshMiddleware(d.JWTSecret, nil)

	g := e.Group("/auth")
	g.POST("/signup", d.AuthHandler.Signup)
	g.POST("/verify-email", d.AuthHandler.VerifyEmail)
	g.POST("/login", d.AuthHandler.Login)
	g.POST("/logout", d.AuthHandler.Logout)
	g.POST("/refresh", d.AuthHandler.Refresh)
	g.POST("/forgot-password", d.AuthHandler.ForgotPassword)
	g.POST("/reset-password/:token", d.AuthHandler.ResetPassword)

	g.GET("/check-auth", d.AuthHandler.CheckAuth, authMW.RequireAuth)
	g.PUT("/profile", d.AuthHandler.UpdateProfile, authMW.RequireAuth)
	g.DELETE("/account", d.AuthHandler.DeleteAccount, authMW.RequireAuth)
}
