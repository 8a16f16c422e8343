package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/shoe_shop/pkg/authclient"
	middleware "github.com/Skotchmaster/shoe_shop/pkg/middleware/auth"
	"github.com/Skotchmaster/shoe_shop/pkg/tokens"
)

type Deps struct {
	ManagerHandler *ManagerHTTP
	PersonHandler  *PersonHTTP
	JWTSecret      []byte
	AuthClient     *authclient.Client
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	authMW := middleware.NewAutoRefreshMiddleware(d.JWTSecret, d.AuthClient)

	m := e.Group("/delivery/manager", authMW.RequireRole(tokens.RoleManager, tokens.RoleAdmin))
	m.GET("/delivery-persons", d.ManagerHandler.ListPersons)
	m.POST("/delivery-persons", d.ManagerHandler.CreatePerson)
	m.PUT("/delivery-persons/:id", d.ManagerHandler.UpdatePerson)
	m.DELETE("/delivery-persons/:id", d.ManagerHandler.DeletePerson)
	m.GET("/orders", d.ManagerHandler.Orders)
	m.PUT("/orders/:id", d.ManagerHandler.SetStatus)
	m.PUT("/orders/:id/assign", d.ManagerHandler.Assign)
	m.POST("/notifications/welcome", d.ManagerHandler.NotifyWelcome)
	m.POST("/notifications/order-assignment", d.ManagerHandler.NotifyAssignment)

	p := e.Group("/delivery/delivery-person")
	p.POST("/signup", d.PersonHandler.Signup)
	p.POST("/login", d.PersonHandler.Login)

	own := p.Group("", authMW.RequireRole(tokens.RoleDeliveryPerson))
	own.GET("/profile", d.PersonHandler.Profile)
	own.GET("/orders", d.PersonHandler.Orders)
	own.PUT("/orders/:id/status", d.PersonHandler.SetStatus)
}
