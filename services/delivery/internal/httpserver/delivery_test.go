package httpserver

import (
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/shoe_shop/internal/models"
	"github.com/Skotchmaster/shoe_shop/internal/testutil"
	pkgdb "github.com/Skotchmaster/shoe_shop/pkg/db"
	"github.com/Skotchmaster/shoe_shop/pkg/tokens"
	"github.com/Skotchmaster/shoe_shop/services/delivery/internal/repo"
	"github.com/Skotchmaster/shoe_shop/services/delivery/internal/service"
	"github.com/Skotchmaster/shoe_shop/services/delivery/internal/transport"
)

func newEcho(t *testing.T) (*echo.Echo, *gorm.DB) {
	t.Helper()

	db := testutil.NewDB(t)
	rdb, err := pkgdb.Reporting(db)
	require.NoError(t, err)

	svc := &service.DeliveryService{
		Repo:      &repo.GormRepo{DB: db},
		Stats:     repo.NewStatsRepo(rdb),
		Publisher: testutil.AcceptAll(),
		JWTSecret: testutil.TestSecret,
	}
	e := testutil.NewEcho()
	Register(e, &Deps{
		ManagerHandler: &ManagerHTTP{Svc: svc},
		PersonHandler:  &PersonHTTP{Svc: svc},
		JWTSecret:      testutil.TestSecret,
	})
	return e, db
}

func personBody(email string) map[string]any {
	return map[string]any{
		"name":          "Dan Driver",
		"email":         email,
		"password":      "secret1",
		"phone":         "+200000",
		"vehicleNumber": "AB123",
		"licenseNumber": "L-1",
	}
}

func TestManagerRoutes_RequireStaff(t *testing.T) {
	e, _ := newEcho(t)

	assert.Equal(t, http.StatusUnauthorized, testutil.DoJSON(t, e, http.MethodGet, "/delivery/manager/orders", nil, "").Code)
	customer := testutil.Bearer(t, "u1", tokens.RoleCustomer)
	assert.Equal(t, http.StatusForbidden, testutil.DoJSON(t, e, http.MethodGet, "/delivery/manager/orders", nil, customer).Code)
	manager := testutil.Bearer(t, "m1", tokens.RoleManager)
	assert.Equal(t, http.StatusOK, testutil.DoJSON(t, e, http.MethodGet, "/delivery/manager/orders", nil, manager).Code)
}

func TestManagerFlow(t *testing.T) {
	e, db := newEcho(t)
	manager := testutil.Bearer(t, "m1", tokens.RoleManager)

	rec := testutil.DoJSON(t, e, http.MethodPost, "/delivery/manager/delivery-persons", personBody("d@example.com"), manager)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var person models.DeliveryPerson
	testutil.DecodeJSON(t, rec, &person)
	assert.NotContains(t, rec.Body.String(), "secret1")

	rec = testutil.DoJSON(t, e, http.MethodPost, "/delivery/manager/delivery-persons", personBody("d@example.com"), manager)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	body := personBody("x@example.com")
	delete(body, "licenseNumber")
	assert.Equal(t, http.StatusBadRequest, testutil.DoJSON(t, e, http.MethodPost, "/delivery/manager/delivery-persons", body, manager).Code)

	order := testutil.SeedOrder(t, db, "u1")
	assignPath := "/delivery/manager/orders/" + order.ID.String() + "/assign"

	assert.Equal(t, http.StatusBadRequest, testutil.DoJSON(t, e, http.MethodPut, assignPath, map[string]any{}, manager).Code)
	assert.Equal(t, http.StatusNotFound, testutil.DoJSON(t, e, http.MethodPut, assignPath,
		map[string]any{"deliveryPersonId": "00000000-0000-0000-0000-000000000001"}, manager).Code)

	rec = testutil.DoJSON(t, e, http.MethodPut, assignPath, map[string]any{"deliveryPersonId": person.ID.String()}, manager)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var assigned models.Order
	testutil.DecodeJSON(t, rec, &assigned)
	require.NotNil(t, assigned.DeliveryPerson.ID)
	assert.Equal(t, person.ID, *assigned.DeliveryPerson.ID)

	statusPath := "/delivery/manager/orders/" + order.ID.String()
	assert.Equal(t, http.StatusBadRequest, testutil.DoJSON(t, e, http.MethodPut, statusPath, map[string]any{"status": "lost"}, manager).Code)
	assert.Equal(t, http.StatusOK, testutil.DoJSON(t, e, http.MethodPut, statusPath, map[string]any{"status": "cancelled"}, manager).Code)

	rec = testutil.DoJSON(t, e, http.MethodGet, "/delivery/manager/orders", nil, manager)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp transport.OrdersResponse
	testutil.DecodeJSON(t, rec, &resp)
	assert.Len(t, resp.Orders, 1)
	assert.Equal(t, int64(1), resp.Stats.Cancelled)
	assert.Equal(t, int64(1), resp.Stats.TotalDrivers)

	rec = testutil.DoJSON(t, e, http.MethodPost, "/delivery/manager/notifications/welcome", map[string]any{"deliveryPersonId": person.ID.String()}, manager)
	assert.Equal(t, http.StatusAccepted, rec.Code)
	rec = testutil.DoJSON(t, e, http.MethodPost, "/delivery/manager/notifications/order-assignment", map[string]any{"orderId": order.ID.String()}, manager)
	assert.Equal(t, http.StatusAccepted, rec.Code)

	assert.Equal(t, http.StatusOK, testutil.DoJSON(t, e, http.MethodDelete, "/delivery/manager/delivery-persons/"+person.ID.String(), nil, manager).Code)
	assert.Equal(t, http.StatusNotFound, testutil.DoJSON(t, e, http.MethodDelete, "/delivery/manager/delivery-persons/"+person.ID.String(), nil, manager).Code)
}

func TestDeliveryPersonFlow(t *testing.T) {
	e, db := newEcho(t)

	rec := testutil.DoJSON(t, e, http.MethodPost, "/delivery/delivery-person/signup", personBody("d@example.com"), "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var signup transport.AuthResponse
	testutil.DecodeJSON(t, rec, &signup)
	require.NotEmpty(t, signup.Token)

	assert.Equal(t, http.StatusNotFound, testutil.DoJSON(t, e, http.MethodPost, "/delivery/delivery-person/login",
		map[string]any{"email": "nobody@example.com", "password": "secret1"}, "").Code)
	assert.Equal(t, http.StatusUnauthorized, testutil.DoJSON(t, e, http.MethodPost, "/delivery/delivery-person/login",
		map[string]any{"email": "d@example.com", "password": "nope"}, "").Code)

	rec = testutil.DoJSON(t, e, http.MethodPost, "/delivery/delivery-person/login",
		map[string]any{"email": "d@example.com", "password": "secret1"}, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Set-Cookie"), "accessToken=")

	auth := "Bearer " + signup.Token
	rec = testutil.DoJSON(t, e, http.MethodGet, "/delivery/delivery-person/profile", nil, auth)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "d@example.com")

	customer := testutil.Bearer(t, "u1", tokens.RoleCustomer)
	assert.Equal(t, http.StatusForbidden, testutil.DoJSON(t, e, http.MethodGet, "/delivery/delivery-person/profile", nil, customer).Code)

	id := signup.DeliveryPerson.ID
	mine := testutil.SeedOrder(t, db, "u1", func(o *models.Order) {
		o.DeliveryPerson = models.DeliveryPersonSnapshot{ID: &id, Name: "Dan Driver"}
	})
	foreign := testutil.SeedOrder(t, db, "u2")

	rec = testutil.DoJSON(t, e, http.MethodGet, "/delivery/delivery-person/orders", nil, auth)
	require.Equal(t, http.StatusOK, rec.Code)
	var orders []models.Order
	testutil.DecodeJSON(t, rec, &orders)
	require.Len(t, orders, 1)
	assert.Equal(t, mine.ID, orders[0].ID)

	path := "/delivery/delivery-person/orders/" + mine.ID.String() + "/status"
	assert.Equal(t, http.StatusBadRequest, testutil.DoJSON(t, e, http.MethodPut, path, map[string]any{"status": "cancelled"}, auth).Code)
	assert.Equal(t, http.StatusOK, testutil.DoJSON(t, e, http.MethodPut, path, map[string]any{"status": "delivered"}, auth).Code)

	rec = testutil.DoJSON(t, e, http.MethodPut, "/delivery/delivery-person/orders/"+foreign.ID.String()+"/status", map[string]any{"status": "pickedup"}, auth)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "order not found or not assigned to you")
}
