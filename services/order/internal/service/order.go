package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Skotchmaster/shoe_shop/internal/models"
	"github.com/Skotchmaster/shoe_shop/pkg/logging"
	"github.com/Skotchmaster/shoe_shop/pkg/mykafka"
	"github.com/Skotchmaster/shoe_shop/services/order/internal/repo"
	"github.com/Skotchmaster/shoe_shop/services/order/internal/transport"
)

var (
	ErrValidation = errors.New("validation")
	ErrNotFound   = errors.New("not found")
)

const (
	EventOrderPlaced        = "order_placed"
	EventOrderStatusChanged = "order_status_changed"
)

type OrderService struct {
	Repo      *repo.GormRepo
	Publisher mykafka.Publisher
}

func (s *OrderService) publish(ctx context.Context, typ string, order *models.Order) {
	if s.Publisher == nil {
		return
	}
	if err := s.Publisher.PublishEvent(ctx, mykafka.TopicOrderEvents, order.ID.String(), mykafka.NewEvent(typ, order)); err != nil {
		logging.FromContext(ctx).Error("publish_failed", "svc", "order", "type", typ, "order_id", order.ID, "error", err)
	}
}

// PlaceOrder stores the order, takes stock for every line that resolves to a
// shoe variant and size, and deletes the user's cart, all in one transaction.
// Lines that do not resolve stay on the order with the client snapshot and
// are reported back as skipped.
func (s *OrderService) PlaceOrder(ctx context.Context, userID string, req transport.CreateOrderRequest) (*transport.CreateOrderResponse, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrValidation)
	}
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: at least one item is required", ErrValidation)
	}
	for _, it := range req.Items {
		if it.Quantity < 1 {
			return nil, fmt.Errorf("%w: quantity must be at least 1", ErrValidation)
		}
	}

	paymentStatus := models.PaymentUnpaid
	if req.PaymentStatus != "" {
		paymentStatus = models.PaymentStatus(req.PaymentStatus)
		if !paymentStatus.Valid() {
			return nil, fmt.Errorf("%w: paymentStatus must be Unpaid or Paid", ErrValidation)
		}
	}

	l := logging.FromContext(ctx)
	order := &models.Order{
		UserID:          userID,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Email:           req.Email,
		PhoneNumber:     req.PhoneNumber,
		ShippingAddress: req.ShippingAddress,
		City:            req.City,
		PaymentMethod:   req.PaymentMethod,
		PaymentStatus:   paymentStatus,
		DeliveryStatus:  models.DeliveryProcessing,
	}
	skipped := make([]transport.SkippedItem, 0)

	err := s.Repo.InTx(ctx, func(tx *repo.GormRepo) error {
		order.Items = make([]models.OrderItem, 0, len(req.Items))

		type take struct {
			shoeID, sizeID uuid.UUID
			qty            int
		}
		var takes []take

		for i, it := range req.Items {
			line := models.OrderItem{
				ShoeID:    it.ShoeID,
				BrandName: it.BrandName,
				ModelName: it.ModelName,
				Color:     it.Color,
				Size:      it.Size,
				Quantity:  it.Quantity,
				ImageURL:  it.ImageURL,
			}
			if it.Price != nil {
				line.Price = *it.Price
			}

			shoe, variant, size, reason, err := resolve(ctx, tx, it)
			if err != nil {
				return err
			}
			if reason != "" {
				l.Warn("order_item_skipped", "svc", "order", "index", i, "shoe_id", it.ShoeID, "color", it.Color, "size", it.Size, "reason", reason)
				skipped = append(skipped, transport.SkippedItem{Index: i, ShoeID: it.ShoeID, Color: it.Color, Size: it.Size, Reason: reason})
			} else {
				line.BrandName = shoe.Brand
				line.ModelName = shoe.Model
				line.Color = variant.Color
				line.ImageURL = variant.ImageURL
				line.Price = shoe.Price
				takes = append(takes, take{shoeID: shoe.ID, sizeID: size.ID, qty: it.Quantity})
			}

			order.TotalAmount = order.TotalAmount.Add(line.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
			order.Items = append(order.Items, line)
		}

		if err := tx.CreateOrder(ctx, order); err != nil {
			return err
		}
		for _, t := range takes {
			if err := tx.DecrementStock(ctx, t.sizeID, t.qty); err != nil {
				return err
			}
			if err := tx.AddSales(ctx, t.shoeID, t.qty); err != nil {
				return err
			}
		}
		return tx.DeleteCart(ctx, userID)
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, EventOrderPlaced, order)
	return &transport.CreateOrderResponse{Order: order, SkippedItems: skipped}, nil
}

func resolve(ctx context.Context, tx *repo.GormRepo, it transport.CreateOrderItem) (*models.Shoe, *models.Variant, *models.SizeStock, string, error) {
	id, err := uuid.Parse(it.ShoeID)
	if err != nil {
		return nil, nil, nil, "shoe not found", nil
	}
	shoe, err := tx.FindShoe(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, nil, "shoe not found", nil
		}
		return nil, nil, nil, "", err
	}
	variant, ok := shoe.VariantByColor(it.Color)
	if !ok {
		return nil, nil, nil, "color not available", nil
	}
	size, ok := variant.SizeBySize(it.Size)
	if !ok {
		return nil, nil, nil, "size not available", nil
	}
	return shoe, variant, size, "", nil
}

func (s *OrderService) GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	order, err := s.Repo.GetOrder(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order not found", ErrNotFound)
		}
		return nil, err
	}
	return order, nil
}

func (s *OrderService) ListByUser(ctx context.Context, userID string) ([]models.Order, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrValidation)
	}
	return s.Repo.ListOrders(ctx, userID)
}

func (s *OrderService) ListAll(ctx context.Context) ([]models.Order, error) {
	return s.Repo.ListOrders(ctx, "")
}

func (s *OrderService) UpdateStatus(ctx context.Context, id uuid.UUID, req transport.UpdateStatusRequest) (*models.Order, error) {
	updates := map[string]any{}
	if req.PaymentStatus != nil && *req.PaymentStatus != "" {
		ps := models.PaymentStatus(*req.PaymentStatus)
		if !ps.Valid() {
			return nil, fmt.Errorf("%w: paymentStatus must be Unpaid or Paid", ErrValidation)
		}
		updates["payment_status"] = ps
	}
	if req.DeliveryStatus != nil && *req.DeliveryStatus != "" {
		ds := models.DeliveryStatus(*req.DeliveryStatus)
		if !ds.Valid() {
			return nil, fmt.Errorf("%w: deliveryStatus must be processing, pickedup, delivered or cancelled", ErrValidation)
		}
		updates["delivery_status"] = ds
	}
	if len(updates) == 0 {
		return nil, fmt.Errorf("%w: at least one status (payment or delivery) is required", ErrValidation)
	}

	order, err := s.Repo.UpdateOrder(ctx, id, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order not found", ErrNotFound)
		}
		return nil, err
	}

	s.publish(ctx, EventOrderStatusChanged, order)
	return order, nil
}
