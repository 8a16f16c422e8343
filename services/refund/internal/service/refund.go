package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/shoe_shop/internal/models"
	"github.com/Skotchmaster/shoe_shop/pkg/httperr"
	"github.com/Skotchmaster/shoe_shop/pkg/logging"
	"github.com/Skotchmaster/shoe_shop/pkg/mykafka"
	"github.com/Skotchmaster/shoe_shop/services/refund/internal/repo"
	"github.com/Skotchmaster/shoe_shop/services/refund/internal/storage"
	"github.com/Skotchmaster/shoe_shop/services/refund/internal/transport"
)

const (
	EventRefundRequested     = "refund_requested"
	EventRefundStatusChanged = "refund_status_changed"
)

type RefundService struct {
	Repo      *repo.GormRepo
	Images    *storage.ImageStore
	Publisher mykafka.Publisher
}

func (s *RefundService) publish(ctx context.Context, typ string, refund *models.Refund) {
	if s.Publisher == nil {
		return
	}
	if err := s.Publisher.PublishEvent(ctx, mykafka.TopicRefundEvents, refund.ID.String(), mykafka.NewEvent(typ, refund)); err != nil {
		logging.FromContext(ctx).Error("publish_failed", "svc", "refund", "type", typ, "refund_id", refund.ID, "error", err)
	}
}

// RequestRefund files a refund for an order the caller owns. Images are
// checked up front but written only once the order is eligible.
func (s *RefundService) RequestRefund(ctx context.Context, userID, rawOrderID string, form transport.RefundForm, files []*multipart.FileHeader) (*models.Refund, error) {
	orderID, err := uuid.Parse(rawOrderID)
	if err != nil {
		return nil, fmt.Errorf("invalid order id: %w", ErrValidation)
	}

	pref := models.ContactPreference(form.ContactPreference)
	switch pref {
	case "":
		pref = models.ContactEmail
	case models.ContactEmail, models.ContactPhone:
	default:
		return nil, fmt.Errorf("contactPreference must be email or phone: %w", ErrValidation)
	}

	if err := s.Images.Validate(files); err != nil {
		if errors.Is(err, storage.ErrInvalidImage) {
			return nil, fmt.Errorf("%s: %w", httperr.Message(err, storage.ErrInvalidImage), ErrValidation)
		}
		return nil, err
	}

	order, err := s.Repo.GetOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order not found: %w", ErrNotFound)
		}
		return nil, err
	}
	if order.UserID != userID {
		return nil, fmt.Errorf("order not found: %w", ErrNotFound)
	}
	if order.PaymentStatus != models.PaymentPaid {
		return nil, fmt.Errorf("only paid orders can be refunded: %w", ErrValidation)
	}
	if order.Status == models.OrderStatusRefunded {
		return nil, fmt.Errorf("order is already refunded: %w", ErrValidation)
	}
	exists, err := s.Repo.RefundExists(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("refund request already exists: %w", ErrConflict)
	}

	paths, err := s.Images.Save(files)
	if err != nil {
		return nil, err
	}

	refund := &models.Refund{
		OrderID:           orderID,
		UserID:            userID,
		Reason:            form.Reason,
		Description:       form.Description,
		Images:            paths,
		ContactPreference: pref,
		ContactDetails:    form.ContactDetails,
		Status:            models.RefundPending,
	}
	if err := s.Repo.CreateRefund(ctx, refund); err != nil {
		s.Images.Remove(paths)
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("refund request already exists: %w", ErrConflict)
		}
		return nil, err
	}

	s.publish(ctx, EventRefundRequested, refund)
	return refund, nil
}

func (s *RefundService) ListByUser(ctx context.Context, userID string) ([]models.Refund, error) {
	return s.Repo.ListByUser(ctx, userID)
}

// GetRefund hides refunds the viewer may not see behind ErrNotFound.
func (s *RefundService) GetRefund(ctx context.Context, rawID, viewerID string, staff bool) (*models.Refund, error) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, fmt.Errorf("refund not found: %w", ErrNotFound)
	}
	refund, err := s.Repo.GetRefund(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("refund not found: %w", ErrNotFound)
		}
		return nil, err
	}
	if !staff && refund.UserID != viewerID {
		return nil, fmt.Errorf("refund not found: %w", ErrNotFound)
	}
	return refund, nil
}

var orderStatusFor = map[models.RefundStatus]models.OrderStatus{
	models.RefundPending:  models.OrderStatusRefundRequested,
	models.RefundApproved: models.OrderStatusRefunded,
	models.RefundRejected: models.OrderStatusNone,
}

func (s *RefundService) UpdateStatus(ctx context.Context, rawID, status string) (*models.Refund, error) {
	st := models.RefundStatus(status)
	if !st.Valid() {
		return nil, fmt.Errorf("status must be pending, approved or rejected: %w", ErrValidation)
	}
	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, fmt.Errorf("refund not found: %w", ErrNotFound)
	}

	refund, err := s.Repo.SetStatus(ctx, id, st, orderStatusFor[st])
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("refund not found: %w", ErrNotFound)
		}
		return nil, err
	}

	s.publish(ctx, EventRefundStatusChanged, refund)
	return refund, nil
}
