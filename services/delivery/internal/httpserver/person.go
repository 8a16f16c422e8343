package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	jwthelp "github.com/Skotchmaster/shoe_shop/pkg/jwt"
	"github.com/Skotchmaster/shoe_shop/pkg/logging"
	middleware "github.com/Skotchmaster/shoe_shop/pkg/middleware/auth"
	"github.com/Skotchmaster/shoe_shop/services/delivery/internal/service"
	"github.com/Skotchmaster/shoe_shop/services/delivery/internal/transport"
)

// PersonHTTP serves the delivery person's own endpoints.
type PersonHTTP struct {
	Svc *service.DeliveryService
}

func (h *PersonHTTP) Signup(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "delivery.signup")

	var req transport.CreatePersonRequest
	if err := bindValid(c, l, "signup_error", &req); err != nil {
		return err
	}

	resp, exp, err := h.Svc.Signup(ctx, req)
	if err != nil {
		return fail(l, "signup_error", err)
	}
	c.SetCookie(jwthelp.CreateCookie(jwthelp.AccessCookie, resp.Token, "/", exp))
	l.Info("signup_success", "person_id", resp.DeliveryPerson.ID)
	return c.JSON(http.StatusCreated, resp)
}

func (h *PersonHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "delivery.login")

	var req transport.LoginRequest
	if err := bindValid(c, l, "login_error", &req); err != nil {
		return err
	}

	resp, exp, err := h.Svc.Login(ctx, req)
	if err != nil {
		return fail(l, "login_error", err)
	}
	c.SetCookie(jwthelp.CreateCookie(jwthelp.AccessCookie, resp.Token, "/", exp))
	l.Info("login_success", "person_id", resp.DeliveryPerson.ID)
	return c.JSON(http.StatusOK, resp)
}

func (h *PersonHTTP) Profile(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "delivery.profile")

	p, err := h.Svc.Profile(ctx, middleware.UserID(c))
	if err != nil {
		return fail(l, "profile_error", err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *PersonHTTP) Orders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "delivery.person_orders")

	orders, err := h.Svc.AssignedOrders(ctx, middleware.UserID(c))
	if err != nil {
		return fail(l, "person_orders_error", err)
	}
	return c.JSON(http.StatusOK, orders)
}

func (h *PersonHTTP) SetStatus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "delivery.person_set_status")

	var req transport.StatusRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("person_set_status_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	order, err := h.Svc.SetOwnStatus(ctx, middleware.UserID(c), c.Param("id"), req.Value())
	if err != nil {
		return fail(l, "person_set_status_error", err)
	}
	return c.JSON(http.StatusOK, order)
}
