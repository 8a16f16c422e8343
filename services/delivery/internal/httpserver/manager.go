package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/shoe_shop/pkg/logging"
	"github.com/Skotchmaster/shoe_shop/services/delivery/internal/service"
	"github.com/Skotchmaster/shoe_shop/services/delivery/internal/transport"
)

// ManagerHTTP serves the delivery manager dashboard.
type ManagerHTTP struct {
	Svc *service.DeliveryService
}

func (h *ManagerHTTP) ListPersons(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "delivery.list_persons")

	persons, err := h.Svc.ListPersons(ctx)
	if err != nil {
		return fail(l, "list_persons_error", err)
	}
	return c.JSON(http.StatusOK, transport.PersonsResponse{DeliveryPersons: persons})
}

func (h *ManagerHTTP) CreatePerson(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "delivery.create_person")

	var req transport.CreatePersonRequest
	if err := bindValid(c, l, "create_person_error", &req); err != nil {
		return err
	}

	p, err := h.Svc.CreatePerson(ctx, req)
	if err != nil {
		return fail(l, "create_person_error", err)
	}
	l.Info("create_person_success", "person_id", p.ID)
	return c.JSON(http.StatusCreated, p)
}

func (h *ManagerHTTP) UpdatePerson(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "delivery.update_person")

	var req transport.UpdatePersonRequest
	if err := bindValid(c, l, "update_person_error", &req); err != nil {
		return err
	}

	p, err := h.Svc.UpdatePerson(ctx, c.Param("id"), req)
	if err != nil {
		return fail(l, "update_person_error", err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *ManagerHTTP) DeletePerson(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "delivery.delete_person")

	p, err := h.Svc.DeletePerson(ctx, c.Param("id"))
	if err != nil {
		return fail(l, "delete_person_error", err)
	}
	l.Info("delete_person_success", "person_id", p.ID)
	return c.JSON(http.StatusOK, map[string]any{"message": "delivery person deleted", "deliveryPerson": p})
}

func (h *ManagerHTTP) Orders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "delivery.orders")

	resp, err := h.Svc.OrdersWithStats(ctx)
	if err != nil {
		return fail(l, "orders_error", err)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *ManagerHTTP) SetStatus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "delivery.set_status")

	var req transport.StatusRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("set_status_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	order, err := h.Svc.SetStatus(ctx, c.Param("id"), req.Value())
	if err != nil {
		return fail(l, "set_status_error", err)
	}
	return c.JSON(http.StatusOK, order)
}

func (h *ManagerHTTP) Assign(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "delivery.assign")

	var req transport.AssignRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("assign_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	order, err := h.Svc.Assign(ctx, c.Param("id"), req)
	if err != nil {
		return fail(l, "assign_error", err)
	}
	l.Info("assign_success", "order_id", order.ID, "person_id", req.DeliveryPersonID)
	return c.JSON(http.StatusOK, order)
}

func (h *ManagerHTTP) NotifyWelcome(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "delivery.notify_welcome")

	var req transport.WelcomeNotificationRequest
	if err := bindValid(c, l, "notify_welcome_error", &req); err != nil {
		return err
	}

	n, err := h.Svc.NotifyWelcome(ctx, req.DeliveryPersonID)
	if err != nil {
		return fail(l, "notify_welcome_error", err)
	}
	return c.JSON(http.StatusAccepted, n)
}

func (h *ManagerHTTP) NotifyAssignment(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "delivery.notify_assignment")

	var req transport.AssignmentNotificationRequest
	if err := bindValid(c, l, "notify_assignment_error", &req); err != nil {
		return err
	}

	n, err := h.Svc.NotifyAssignment(ctx, req.OrderID)
	if err != nil {
		return fail(l, "notify_assignment_error", err)
	}
	return c.JSON(http.StatusAccepted, n)
}
