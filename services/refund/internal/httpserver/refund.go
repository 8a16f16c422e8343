package httpserver

import (
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/shoe_shop/pkg/httperr"
	"github.com/Skotchmaster/shoe_shop/pkg/logging"
	middleware "github.com/Skotchmaster/shoe_shop/pkg/middleware/auth"
	"github.com/Skotchmaster/shoe_shop/services/refund/internal/service"
	"github.com/Skotchmaster/shoe_shop/services/refund/internal/transport"
)

type RefundHTTP struct {
	Svc *service.RefundService
}

func fail(l *slog.Logger, event string, err error) error {
	switch {
	case errors.Is(err, service.ErrValidation):
		l.Warn(event, "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, httperr.Message(err, service.ErrValidation))
	case errors.Is(err, service.ErrConflict):
		l.Warn(event, "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, httperr.Message(err, service.ErrConflict))
	case errors.Is(err, service.ErrNotFound):
		l.Warn(event, "status", 404, "error", err)
		return echo.NewHTTPError(http.StatusNotFound, httperr.Message(err, service.ErrNotFound))
	default:
		l.Error(event, "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "refund operation failed")
	}
}

func (h *RefundHTTP) RequestRefund(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "refund.request")

	userID := middleware.UserID(c)
	if userID == "" {
		l.Warn("request_refund_error", "status", 401)
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	mf, err := c.MultipartForm()
	if err != nil {
		l.Warn("request_refund_error", "status", 400, "reason", "not multipart", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "multipart form expected")
	}

	var form transport.RefundForm
	if err := c.Bind(&form); err != nil {
		l.Warn("request_refund_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&form); err != nil {
		l.Warn("request_refund_error", "status", 400, "reason", "validation", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var files []*multipart.FileHeader
	if mf != nil {
		files = mf.File["images"]
	}

	refund, err := h.Svc.RequestRefund(ctx, userID, c.Param("orderId"), form, files)
	if err != nil {
		return fail(l, "request_refund_error", err)
	}
	l.Info("request_refund_success", "refund_id", refund.ID, "order_id", refund.OrderID, "images", len(refund.Images))
	return c.JSON(http.StatusCreated, refund)
}

func (h *RefundHTTP) ListByUser(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "refund.list_by_user")

	userID := c.Param("userId")
	if !middleware.CanAccessUser(c, userID) {
		l.Warn("list_refunds_error", "status", 403, "user_id", userID)
		return echo.NewHTTPError(http.StatusForbidden, "access denied")
	}

	refunds, err := h.Svc.ListByUser(ctx, userID)
	if err != nil {
		return fail(l, "list_refunds_error", err)
	}
	return c.JSON(http.StatusOK, refunds)
}

func (h *RefundHTTP) GetRefund(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "refund.get")

	refund, err := h.Svc.GetRefund(ctx, c.Param("refundId"), middleware.UserID(c), middleware.IsStaff(c))
	if err != nil {
		return fail(l, "get_refund_error", err)
	}
	return c.JSON(http.StatusOK, refund)
}

func (h *RefundHTTP) UpdateStatus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "refund.update_status")

	var req transport.UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_refund_status_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		l.Warn("update_refund_status_error", "status", 400, "reason", "validation", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	refund, err := h.Svc.UpdateStatus(ctx, c.Param("refundId"), req.Status)
	if err != nil {
		return fail(l, "update_refund_status_error", err)
	}
	l.Info("update_refund_status_success", "refund_id", refund.ID, "refund_status", refund.Status)
	return c.JSON(http.StatusOK, refund)
}
