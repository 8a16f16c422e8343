package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/shoe_shop/internal/models"
	pkgdb "github.com/Skotchmaster/shoe_shop/pkg/db"
)

// NewDB opens a private in-memory sqlite database with every model migrated.
// A single connection keeps the memory database alive and serializes writers.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(pkgdb.Dialector(dsn), pkgdb.GormConfig())
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, models.Migrate(context.Background(), db))

	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

// SeedShoe stores a shoe with one variant per color and the given sizes and
// stock in each variant.
func SeedShoe(t *testing.T, db *gorm.DB, brand string, price string, colors []string, stock map[float64]int) *models.Shoe {
	t.Helper()

	shoe := &models.Shoe{
		Brand:        brand,
		Model:        brand + " Runner",
		Wearer:       models.WearerMen,
		ShoeType:     "sneaker",
		Price:        decimal.RequireFromString(price),
		Availability: true,
	}
	for _, color := range colors {
		v := models.Variant{Color: color, ImageURL: "/img/" + color + ".png"}
		for size, n := range stock {
			v.Sizes = append(v.Sizes, models.SizeStock{Size: size, Stock: n})
		}
		shoe.Variants = append(shoe.Variants, v)
	}

	require.NoError(t, db.Create(shoe).Error)
	return shoe
}

func ReloadShoe(t *testing.T, db *gorm.DB, id uuid.UUID) *models.Shoe {
	t.Helper()

	var shoe models.Shoe
	require.NoError(t, db.Preload("Variants.Sizes").First(&shoe, "id = ?", id).Error)
	return &shoe
}

// SeedOrder stores an unpaid, unassigned order for userID with one line.
// opts run before the insert.
func SeedOrder(t *testing.T, db *gorm.DB, userID string, opts ...func(*models.Order)) *models.Order {
	t.Helper()

	order := &models.Order{
		UserID:          userID,
		FirstName:       "Ann",
		LastName:        "Lee",
		Email:           "ann@example.com",
		PhoneNumber:     "+100000",
		ShippingAddress: "1 Main St",
		City:            "Springfield",
		PaymentMethod:   "card",
		PaymentStatus:   models.PaymentUnpaid,
		DeliveryStatus:  models.DeliveryProcessing,
		TotalAmount:     decimal.RequireFromString("100.00"),
		OrderDate:       time.Now().UTC(),
		Items: []models.OrderItem{{
			ShoeID: uuid.NewString(), BrandName: "Nike", ModelName: "Runner",
			Color: "Black", Size: 42, Quantity: 1, Price: decimal.RequireFromString("100.00"),
		}},
	}
	for _, opt := range opts {
		opt(order)
	}
	require.NoError(t, db.Create(order).Error)
	return order
}
