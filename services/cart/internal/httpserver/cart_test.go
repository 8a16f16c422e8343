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
	"github.com/Skotchmaster/shoe_shop/services/cart/internal/repo"
	"github.com/Skotchmaster/shoe_shop/services/cart/internal/service"
)

func newEcho(t *testing.T) *echo.Echo {
	t.Helper()

	svc := &service.CartService{Repo: &repo.GormRepo{DB: testutil.NewDB(t)}}
	e := testutil.NewEcho()
	Register(e, &Deps{CartHandler: &CartHTTP{Svc: svc}, JWTSecret: testutil.TestSecret})
	return e
}

func addBody(brand string, qty int) map[string]any {
	return map[string]any{"items": []map[string]any{{
		"brand":    map[string]string{"brandId": brand},
		"color":    map[string]string{"colorId": "c1"},
		"size":     map[string]string{"sizeId": "s1"},
		"quantity": qty,
	}}}
}

func TestAddAndGetCart(t *testing.T) {
	e := newEcho(t)
	u1 := testutil.Bearer(t, "u1", tokens.RoleCustomer)

	rec := testutil.DoJSON(t, e, http.MethodPost, "/cart", addBody("b1", 2), u1)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = testutil.DoJSON(t, e, http.MethodPost, "/cart", addBody("b1", 1), u1)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "item is already in the cart", testutil.ErrorMessage(t, rec))

	rec = testutil.DoJSON(t, e, http.MethodGet, "/cart/u1", nil, u1)
	require.Equal(t, http.StatusOK, rec.Code)
	var cart models.Cart
	testutil.DecodeJSON(t, rec, &cart)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
}

func TestCartAccess(t *testing.T) {
	e := newEcho(t)
	u1 := testutil.Bearer(t, "u1", tokens.RoleCustomer)
	u2 := testutil.Bearer(t, "u2", tokens.RoleCustomer)

	require.Equal(t, http.StatusCreated, testutil.DoJSON(t, e, http.MethodPost, "/cart", addBody("b1", 1), u1).Code)

	assert.Equal(t, http.StatusForbidden, testutil.DoJSON(t, e, http.MethodGet, "/cart/u1", nil, u2).Code)
	assert.Equal(t, http.StatusOK, testutil.DoJSON(t, e, http.MethodGet, "/cart/u1", nil, testutil.Bearer(t, "m", tokens.RoleManager)).Code)
	assert.Equal(t, http.StatusUnauthorized, testutil.DoJSON(t, e, http.MethodGet, "/cart/u1", nil, "").Code)

	del := map[string]string{"brandId": "b1", "colorId": "c1", "sizeId": "s1"}
	assert.Equal(t, http.StatusForbidden, testutil.DoJSON(t, e, http.MethodDelete, "/cart/u1", del, u2).Code)
}

func TestAddCart_Validation(t *testing.T) {
	e := newEcho(t)
	u1 := testutil.Bearer(t, "u1", tokens.RoleCustomer)

	rec := testutil.DoJSON(t, e, http.MethodPost, "/cart", map[string]any{"items": []any{}}, u1)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = testutil.DoJSON(t, e, http.MethodPost, "/cart", addBody("", 1), u1)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetCart_Missing(t *testing.T) {
	e := newEcho(t)

	rec := testutil.DoJSON(t, e, http.MethodGet, "/cart/u1", nil, testutil.Bearer(t, "u1", tokens.RoleCustomer))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRemoveItem(t *testing.T) {
	e := newEcho(t)
	u1 := testutil.Bearer(t, "u1", tokens.RoleCustomer)
	require.Equal(t, http.StatusCreated, testutil.DoJSON(t, e, http.MethodPost, "/cart", addBody("b1", 1), u1).Code)

	rec := testutil.DoJSON(t, e, http.MethodDelete, "/cart/u1", map[string]string{"brandId": "b1", "colorId": "c1", "sizeId": "s1"}, u1)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var cart models.Cart
	testutil.DecodeJSON(t, rec, &cart)
	assert.Empty(t, cart.Items)
}

func TestUpdateQuantity_WrappedItem(t *testing.T) {
	e := newEcho(t)
	u1 := testutil.Bearer(t, "u1", tokens.RoleCustomer)

	body := map[string]any{"item": map[string]any{
		"brand":    map[string]string{"brandId": "not-a-shoe"},
		"color":    map[string]string{"colorId": "c1"},
		"size":     map[string]string{"sizeId": "s1"},
		"quantity": 1,
	}}
	rec := testutil.DoJSON(t, e, http.MethodPut, "/cart/u1", body, u1)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "shoe not found")
}
