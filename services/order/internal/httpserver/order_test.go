package httpserver

import (
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/shoe_shop/internal/models"
	"github.com/Skotchmaster/shoe_shop/internal/testutil"
	"github.com/Skotchmaster/shoe_shop/pkg/tokens"
	"github.com/Skotchmaster/shoe_shop/services/order/internal/repo"
	"github.com/Skotchmaster/shoe_shop/services/order/internal/service"
	"github.com/Skotchmaster/shoe_shop/services/order/internal/transport"
)

func newEcho(t *testing.T) *echo.Echo {
	t.Helper()

	svc := &service.OrderService{Repo: &repo.GormRepo{DB: testutil.NewDB(t)}, Publisher: testutil.AcceptAll()}
	e := testutil.NewEcho()
	Register(e, &Deps{OrderHandler: &OrderHTTP{Svc: svc}, JWTSecret: testutil.TestSecret})
	return e
}

func orderBody() map[string]any {
	return map[string]any{
		"firstName":       "Ann",
		"lastName":        "Lee",
		"email":           "ann@example.com",
		"phoneNumber":     "+100000",
		"shippingAddress": "1 Main St",
		"city":            "Springfield",
		"paymentMethod":   "card",
		"items":           []map[string]any{{"shoeId": "unknown", "color": "Black", "size": 42, "quantity": 1}},
	}
}

func TestCreateOrderAndRead(t *testing.T) {
	e := newEcho(t)
	u1 := testutil.Bearer(t, "u1", tokens.RoleCustomer)

	rec := testutil.DoJSON(t, e, http.MethodPost, "/orders", orderBody(), u1)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp transport.CreateOrderResponse
	testutil.DecodeJSON(t, rec, &resp)
	require.NotNil(t, resp.Order)
	assert.Equal(t, "u1", resp.Order.UserID)
	assert.Len(t, resp.SkippedItems, 1)

	rec = testutil.DoJSON(t, e, http.MethodGet, "/orders/u1", nil, u1)
	require.Equal(t, http.StatusOK, rec.Code)
	var orders []models.Order
	testutil.DecodeJSON(t, rec, &orders)
	assert.Len(t, orders, 1)

	path := "/order/" + resp.Order.ID.String()
	assert.Equal(t, http.StatusOK, testutil.DoJSON(t, e, http.MethodGet, path, nil, u1).Code)
	assert.Equal(t, http.StatusNotFound, testutil.DoJSON(t, e, http.MethodGet, path, nil, testutil.Bearer(t, "u2", tokens.RoleCustomer)).Code)
	assert.Equal(t, http.StatusOK, testutil.DoJSON(t, e, http.MethodGet, path, nil, testutil.Bearer(t, "a", tokens.RoleAdmin)).Code)
}

func TestCreateOrder_PaymentStatusFromStaffOnly(t *testing.T) {
	e := newEcho(t)

	body := orderBody()
	body["paymentStatus"] = "Paid"
	rec := testutil.DoJSON(t, e, http.MethodPost, "/orders", body, testutil.Bearer(t, "u1", tokens.RoleCustomer))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var resp transport.CreateOrderResponse
	testutil.DecodeJSON(t, rec, &resp)
	assert.Equal(t, models.PaymentUnpaid, resp.Order.PaymentStatus)

	rec = testutil.DoJSON(t, e, http.MethodPost, "/orders", body, testutil.Bearer(t, "m1", tokens.RoleManager))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	testutil.DecodeJSON(t, rec, &resp)
	assert.Equal(t, models.PaymentPaid, resp.Order.PaymentStatus)
}

func TestCreateOrder_Invalid(t *testing.T) {
	e := newEcho(t)
	u1 := testutil.Bearer(t, "u1", tokens.RoleCustomer)

	body := orderBody()
	body["items"] = []any{}
	assert.Equal(t, http.StatusBadRequest, testutil.DoJSON(t, e, http.MethodPost, "/orders", body, u1).Code)

	body = orderBody()
	delete(body, "city")
	assert.Equal(t, http.StatusBadRequest, testutil.DoJSON(t, e, http.MethodPost, "/orders", body, u1).Code)

	assert.Equal(t, http.StatusUnauthorized, testutil.DoJSON(t, e, http.MethodPost, "/orders", orderBody(), "").Code)
}

func TestUserOrders_EmptyAndForbidden(t *testing.T) {
	e := newEcho(t)

	rec := testutil.DoJSON(t, e, http.MethodGet, "/orders/u1", nil, testutil.Bearer(t, "u1", tokens.RoleCustomer))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())

	rec = testutil.DoJSON(t, e, http.MethodGet, "/orders/u1", nil, testutil.Bearer(t, "u2", tokens.RoleCustomer))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestStaffRoutes(t *testing.T) {
	e := newEcho(t)
	u1 := testutil.Bearer(t, "u1", tokens.RoleCustomer)
	manager := testutil.Bearer(t, "m1", tokens.RoleManager)

	rec := testutil.DoJSON(t, e, http.MethodPost, "/orders", orderBody(), u1)
	require.Equal(t, http.StatusCreated, rec.Code)
	var resp transport.CreateOrderResponse
	testutil.DecodeJSON(t, rec, &resp)

	assert.Equal(t, http.StatusForbidden, testutil.DoJSON(t, e, http.MethodGet, "/orders", nil, u1).Code)
	assert.Equal(t, http.StatusOK, testutil.DoJSON(t, e, http.MethodGet, "/orders", nil, manager).Code)

	path := "/orders/" + resp.Order.ID.String()
	assert.Equal(t, http.StatusForbidden, testutil.DoJSON(t, e, http.MethodPut, path, map[string]string{"paymentStatus": "Paid"}, u1).Code)

	rec = testutil.DoJSON(t, e, http.MethodPut, path, map[string]string{"deliveryStatus": "delivered"}, manager)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var order models.Order
	testutil.DecodeJSON(t, rec, &order)
	assert.Equal(t, models.DeliveryDelivered, order.DeliveryStatus)

	assert.Equal(t, http.StatusBadRequest, testutil.DoJSON(t, e, http.MethodPut, path, map[string]string{}, manager).Code)
	assert.Equal(t, http.StatusNotFound, testutil.DoJSON(t, e, http.MethodPut, "/orders/0b5b7d4e-8a57-4a3e-9b11-7f0a7d1a2b3c", map[string]string{"paymentStatus": "Paid"}, manager).Code)
}
