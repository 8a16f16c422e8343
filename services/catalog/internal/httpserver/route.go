package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/shoe_shop/pkg/authclient"
	middleware "github.com/Skotchmaster/shoe_shop/pkg/middleware/auth"
	"github.com/Skotchmaster/shoe_shop/pkg/tokens"
)

type Deps struct {
	CatalogHandler *CatalogHTTP
	JWTSecret      []byte
	AuthClient     *authclient.Client
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	authMW := middleware.NewAutoRefreshMiddleware(d.JWTSecret, d.AuthClient)

	shoes := e.Group("/catalog/shoes")
	shoes.GET("", d.CatalogHandler.GetShoes)
	shoes.GET("/best-sellers", d.CatalogHandler.BestSellers)
	shoes.GET("/:id", d.CatalogHandler.GetShoe)

	staff := shoes.Group("", authMW.RequireRole(tokens.RoleManager, tokens.RoleAdmin))
	staff.POST("", d.CatalogHandler.CreateShoe)
	staff.PATCH("/:id", d.CatalogHandler.PatchShoe)
	staff.PUT("/:id/variants/:variantId/sizes/:sizeId/stock", d.CatalogHandler.SetStock)
	staff.DELETE("/:id", d.CatalogHandler.DeleteShoe)
}
