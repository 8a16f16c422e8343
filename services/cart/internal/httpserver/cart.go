package httpserver

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/shoe_shop/internal/models"
	"github.com/Skotchmaster/shoe_shop/pkg/httperr"
	"github.com/Skotchmaster/shoe_shop/pkg/logging"
	middleware "github.com/Skotchmaster/shoe_shop/pkg/middleware/auth"
	"github.com/Skotchmaster/shoe_shop/services/cart/internal/service"
	"github.com/Skotchmaster/shoe_shop/services/cart/internal/transport"
)

type CartHTTP struct {
	Svc *service.CartService
}

func fail(l *slog.Logger, event string, err error) error {
	switch {
	case errors.Is(err, service.ErrValidation):
		l.Warn(event, "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, httperr.Message(err, service.ErrValidation))
	case errors.Is(err, service.ErrConflict):
		l.Warn(event, "status", 400, "reason", "conflict", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, httperr.Message(err, service.ErrConflict))
	case errors.Is(err, service.ErrNotFound):
		l.Warn(event, "status", 404, "error", err)
		return echo.NewHTTPError(http.StatusNotFound, httperr.Message(err, service.ErrNotFound))
	default:
		l.Error(event, "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
}

func (h *CartHTTP) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add")

	userID := middleware.UserID(c)
	if userID == "" {
		l.Warn("add_cart_error", "status", 401)
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var req transport.AddRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("add_cart_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		l.Warn("add_cart_error", "status", 400, "reason", "validation", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	cart, err := h.Svc.AddItems(ctx, userID, req.Items)
	if err != nil {
		return fail(l, "add_cart_error", err)
	}

	l.Info("add_cart_success", "user_id", userID, "items", len(req.Items))
	return c.JSON(http.StatusCreated, cart)
}

func (h *CartHTTP) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.get")

	userID := c.Param("userId")
	if !middleware.CanAccessUser(c, userID) {
		l.Warn("get_cart_error", "status", 403, "user_id", userID)
		return echo.NewHTTPError(http.StatusForbidden, "access denied")
	}

	cart, err := h.Svc.GetCart(ctx, userID)
	if err != nil {
		return fail(l, "get_cart_error", err)
	}
	return c.JSON(http.StatusOK, cart)
}

func (h *CartHTTP) UpdateQuantity(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.update_quantity")

	userID := c.Param("userId")
	if middleware.UserID(c) != userID {
		l.Warn("update_cart_error", "status", 403, "user_id", userID)
		return echo.NewHTTPError(http.StatusForbidden, "access denied")
	}

	var req transport.UpdateQuantityRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_cart_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	item := req.Resolve()
	if err := c.Validate(&item); err != nil {
		l.Warn("update_cart_error", "status", 400, "reason", "validation", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	cart, err := h.Svc.UpdateQuantity(ctx, userID, item)
	if err != nil {
		return fail(l, "update_cart_error", err)
	}

	l.Info("update_cart_success", "user_id", userID, "quantity", item.Quantity)
	return c.JSON(http.StatusOK, cart)
}

func (h *CartHTTP) RemoveItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.remove_item")

	userID := c.Param("userId")
	if middleware.UserID(c) != userID {
		l.Warn("remove_cart_item_error", "status", 403, "user_id", userID)
		return echo.NewHTTPError(http.StatusForbidden, "access denied")
	}

	var key models.ItemKey
	if err := c.Bind(&key); err != nil {
		l.Warn("remove_cart_item_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&key); err != nil {
		l.Warn("remove_cart_item_error", "status", 400, "reason", "validation", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	cart, err := h.Svc.RemoveItem(ctx, userID, key)
	if err != nil {
		return fail(l, "remove_cart_item_error", err)
	}

	l.Info("remove_cart_item_success", "user_id", userID)
	return c.JSON(http.StatusOK, cart)
}
