package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/shoe_shop/internal/testutil"
	"github.com/Skotchmaster/shoe_shop/pkg/mykafka"
	"github.com/Skotchmaster/shoe_shop/services/catalog/internal/repo"
	"github.com/Skotchmaster/shoe_shop/services/catalog/internal/transport"
)

func newService(t *testing.T) (*CatalogService, *testutil.MockPublisher) {
	t.Helper()

	pub := &testutil.MockPublisher{}
	return &CatalogService{Repo: &repo.GormRepo{DB: testutil.NewDB(t)}, Publisher: pub}, pub
}

func createRequest() transport.CreateShoeRequest {
	return transport.CreateShoeRequest{
		Brand:  "Nike",
		Model:  "Pegasus",
		Wearer: "Men",
		Price:  decimal.RequireFromString("129.99"),
		Variants: []transport.VariantRequest{{
			Color: "Black",
			Sizes: []transport.SizeRequest{{Size: 42, Stock: 3}},
		}},
	}
}

func TestCreateShoe_PublishesEvent(t *testing.T) {
	svc, pub := newService(t)
	pub.On("PublishEvent", mock.Anything, mykafka.TopicShoeEvents, mock.Anything, testutil.EventOfType(EventShoeCreated)).Return(nil).Once()

	shoe, err := svc.CreateShoe(context.Background(), createRequest())
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, shoe.ID)
	assert.True(t, shoe.Availability)

	got, err := svc.GetShoe(context.Background(), shoe.ID)
	require.NoError(t, err)
	require.Len(t, got.Variants, 1)
	assert.Equal(t, 3, got.Variants[0].Sizes[0].Stock)
	pub.AssertExpectations(t)
}

func TestCreateShoe_Invalid(t *testing.T) {
	svc, pub := newService(t)

	req := createRequest()
	req.Price = decimal.NewFromInt(-1)
	_, err := svc.CreateShoe(context.Background(), req)
	assert.ErrorIs(t, err, ErrValidation)

	req = createRequest()
	req.Wearer = "Dogs"
	_, err = svc.CreateShoe(context.Background(), req)
	assert.ErrorIs(t, err, ErrValidation)

	pub.AssertNotCalled(t, "PublishEvent", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestPatchShoe(t *testing.T) {
	svc, pub := newService(t)
	pub.On("PublishEvent", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	shoe, err := svc.CreateShoe(context.Background(), createRequest())
	require.NoError(t, err)

	brand := "Asics"
	price := decimal.RequireFromString("99.50")
	patched, err := svc.PatchShoe(context.Background(), shoe.ID, transport.PatchShoeRequest{Brand: &brand, Price: &price})
	require.NoError(t, err)
	assert.Equal(t, "Asics", patched.Brand)
	assert.True(t, price.Equal(patched.Price))
	assert.Equal(t, "Pegasus", patched.Model)

	_, err = svc.PatchShoe(context.Background(), uuid.New(), transport.PatchShoeRequest{Brand: &brand})
	assert.ErrorIs(t, err, ErrNotFound)

	neg := decimal.NewFromInt(-5)
	_, err = svc.PatchShoe(context.Background(), shoe.ID, transport.PatchShoeRequest{Price: &neg})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSetStock(t *testing.T) {
	svc, pub := newService(t)
	pub.On("PublishEvent", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	shoe, err := svc.CreateShoe(context.Background(), createRequest())
	require.NoError(t, err)
	v := shoe.Variants[0]

	updated, err := svc.SetStock(context.Background(), shoe.ID, v.ID, v.Sizes[0].ID, 20)
	require.NoError(t, err)
	assert.Equal(t, 20, updated.Variants[0].Sizes[0].Stock)

	_, err = svc.SetStock(context.Background(), shoe.ID, v.ID, uuid.New(), 1)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.SetStock(context.Background(), shoe.ID, v.ID, v.Sizes[0].ID, -1)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestDeleteShoe(t *testing.T) {
	svc, pub := newService(t)
	pub.On("PublishEvent", mock.Anything, mock.Anything, mock.Anything, testutil.EventOfType(EventShoeCreated)).Return(nil)
	pub.On("PublishEvent", mock.Anything, mykafka.TopicShoeEvents, mock.Anything, testutil.EventOfType(EventShoeDeleted)).Return(nil).Once()

	shoe, err := svc.CreateShoe(context.Background(), createRequest())
	require.NoError(t, err)

	require.NoError(t, svc.DeleteShoe(context.Background(), shoe.ID))
	_, err = svc.GetShoe(context.Background(), shoe.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, svc.DeleteShoe(context.Background(), shoe.ID), ErrNotFound)
	pub.AssertExpectations(t)
}

func TestBestSellers_ClampsLimit(t *testing.T) {
	svc, _ := newService(t)
	db := svc.Repo.DB
	for i := 0; i < 3; i++ {
		testutil.SeedShoe(t, db, "Brand", "10.00", []string{"Black"}, map[float64]int{40: 1})
	}

	items, err := svc.BestSellers(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, items, 3)

	items, err = svc.BestSellers(context.Background(), 2)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestSeed_OnlyIntoEmptyCatalog(t *testing.T) {
	svc := &CatalogService{Repo: &repo.GormRepo{DB: testutil.NewDB(t)}, Publisher: testutil.AcceptAll()}

	n, err := svc.Seed(context.Background(), []transport.CreateShoeRequest{createRequest(), createRequest()})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = svc.Seed(context.Background(), []transport.CreateShoeRequest{createRequest()})
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestListShoes_InvalidWearer(t *testing.T) {
	svc, _ := newService(t)

	_, _, err := svc.ListShoes(context.Background(), transport.ShoeFilter{Wearer: "Aliens"}, 0, 10)
	assert.ErrorIs(t, err, ErrValidation)
}
