package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/shoe_shop/internal/models"
	"github.com/Skotchmaster/shoe_shop/pkg/hash"
	"github.com/Skotchmaster/shoe_shop/pkg/logging"
	"github.com/Skotchmaster/shoe_shop/pkg/mykafka"
	"github.com/Skotchmaster/shoe_shop/pkg/tokens"
	"github.com/Skotchmaster/shoe_shop/services/delivery/internal/repo"
	"github.com/Skotchmaster/shoe_shop/services/delivery/internal/transport"
)

const (
	EventDeliveryAssigned      = "delivery_assigned"
	EventDeliveryStatusChanged = "delivery_status_changed"
	EventWelcomeNotification   = "delivery_person_welcome"
	EventAssignmentNotice      = "order_assignment"
)

type DeliveryService struct {
	Repo      *repo.GormRepo
	Stats     *repo.StatsRepo
	Publisher mykafka.Publisher

	JWTSecret []byte
	TokenTTL  time.Duration
}

func (s *DeliveryService) publish(ctx context.Context, topic, typ, key string, data any) {
	if s.Publisher == nil {
		return
	}
	if err := s.Publisher.PublishEvent(ctx, topic, key, mykafka.NewEvent(typ, data)); err != nil {
		logging.FromContext(ctx).Error("publish_failed", "svc", "delivery", "type", typ, "key", key, "error", err)
	}
}

func parseID(raw, what string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s is not a valid id: %w", what, ErrValidation)
	}
	return id, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *DeliveryService) CreatePerson(ctx context.Context, req transport.CreatePersonRequest) (*models.DeliveryPerson, error) {
	email := normalizeEmail(req.Email)
	taken, err := s.Repo.EmailTaken(ctx, email, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("a delivery person with this email already exists: %w", ErrConflict)
	}

	pwHash, err := hash.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	p := &models.DeliveryPerson{
		Name:          req.Name,
		Email:         email,
		PasswordHash:  pwHash,
		Phone:         req.Phone,
		VehicleNumber: req.VehicleNumber,
		LicenseNumber: req.LicenseNumber,
		Status:        models.PersonActive,
	}
	if err := s.Repo.CreatePerson(ctx, p); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("a delivery person with this email already exists: %w", ErrConflict)
		}
		return nil, err
	}
	return p, nil
}

func (s *DeliveryService) ListPersons(ctx context.Context) ([]models.DeliveryPerson, error) {
	return s.Repo.ListPersons(ctx)
}

func (s *DeliveryService) UpdatePerson(ctx context.Context, rawID string, req transport.UpdatePersonRequest) (*models.DeliveryPerson, error) {
	id, err := parseID(rawID, "delivery person id")
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Email != nil {
		email := normalizeEmail(*req.Email)
		taken, err := s.Repo.EmailTaken(ctx, email, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, fmt.Errorf("a delivery person with this email already exists: %w", ErrConflict)
		}
		updates["email"] = email
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.VehicleNumber != nil {
		updates["vehicle_number"] = *req.VehicleNumber
	}
	if req.LicenseNumber != nil {
		updates["license_number"] = *req.LicenseNumber
	}
	if req.Status != nil {
		st := models.PersonStatus(*req.Status)
		if st != models.PersonActive && st != models.PersonInactive {
			return nil, fmt.Errorf("status must be active or inactive: %w", ErrValidation)
		}
		updates["status"] = st
	}

	p, err := s.Repo.UpdatePerson(ctx, id, updates)
	if err != nil {
		return nil, notFound(err, "delivery person")
	}
	return p, nil
}

func (s *DeliveryService) DeletePerson(ctx context.Context, rawID string) (*models.DeliveryPerson, error) {
	id, err := parseID(rawID, "delivery person id")
	if err != nil {
		return nil, err
	}
	p, err := s.Repo.DeletePerson(ctx, id)
	if err != nil {
		return nil, notFound(err, "delivery person")
	}
	return p, nil
}

func (s *DeliveryService) OrdersWithStats(ctx context.Context) (*transport.OrdersResponse, error) {
	orders, err := s.Repo.ListOrders(ctx)
	if err != nil {
		return nil, err
	}
	stats, err := s.Stats.DeliveryStats(ctx)
	if err != nil {
		return nil, err
	}
	return &transport.OrdersResponse{Orders: orders, Stats: stats}, nil
}

type statusEvent struct {
	OrderID          uuid.UUID             `json:"orderId"`
	DeliveryStatus   models.DeliveryStatus `json:"deliveryStatus"`
	DeliveryPersonID *uuid.UUID            `json:"deliveryPersonId,omitempty"`
	ChangedBy        string                `json:"changedBy"`
}

// SetStatus is the manager path: any known status, any order.
func (s *DeliveryService) SetStatus(ctx context.Context, rawOrderID, status string) (*models.Order, error) {
	orderID, err := parseID(rawOrderID, "order id")
	if err != nil {
		return nil, err
	}
	st := models.DeliveryStatus(status)
	if !st.Valid() {
		return nil, fmt.Errorf("status must be processing, pickedup, delivered or cancelled: %w", ErrValidation)
	}

	order, err := s.Repo.SetDeliveryStatus(ctx, orderID, st)
	if err != nil {
		return nil, notFound(err, "order")
	}

	s.publish(ctx, mykafka.TopicDeliveryEvents, EventDeliveryStatusChanged, order.ID.String(), statusEvent{
		OrderID: order.ID, DeliveryStatus: st, DeliveryPersonID: order.DeliveryPerson.ID, ChangedBy: tokens.RoleManager,
	})
	return order, nil
}

func (s *DeliveryService) Assign(ctx context.Context, rawOrderID string, req transport.AssignRequest) (*models.Order, error) {
	orderID, err := parseID(rawOrderID, "order id")
	if err != nil {
		return nil, err
	}
	if req.DeliveryPersonID == "" {
		return nil, fmt.Errorf("deliveryPersonId is required: %w", ErrValidation)
	}
	personID, err := uuid.Parse(req.DeliveryPersonID)
	if err != nil {
		return nil, fmt.Errorf("delivery person not found: %w", ErrNotFound)
	}

	person, err := s.Repo.GetPerson(ctx, personID)
	if err != nil {
		return nil, notFound(err, "delivery person")
	}

	order, err := s.Repo.Assign(ctx, orderID, models.SnapshotOf(person, time.Now().UTC()))
	if err != nil {
		return nil, notFound(err, "order")
	}

	s.publish(ctx, mykafka.TopicDeliveryEvents, EventDeliveryAssigned, order.ID.String(), order)
	return order, nil
}

func (s *DeliveryService) NotifyWelcome(ctx context.Context, rawPersonID string) (*transport.Notification, error) {
	id, err := parseID(rawPersonID, "delivery person id")
	if err != nil {
		return nil, err
	}
	p, err := s.Repo.GetPerson(ctx, id)
	if err != nil {
		return nil, notFound(err, "delivery person")
	}

	n := &transport.Notification{Kind: EventWelcomeNotification, To: p.Email, Name: p.Name, Phone: p.Phone}
	s.publish(ctx, mykafka.TopicNotificationEvents, EventWelcomeNotification, p.ID.String(), n)
	return n, nil
}

func (s *DeliveryService) NotifyAssignment(ctx context.Context, rawOrderID string) (*transport.Notification, error) {
	id, err := parseID(rawOrderID, "order id")
	if err != nil {
		return nil, err
	}
	order, err := s.Repo.GetOrder(ctx, id)
	if err != nil {
		return nil, notFound(err, "order")
	}
	if !order.DeliveryPerson.Assigned() {
		return nil, fmt.Errorf("order has no delivery person: %w", ErrValidation)
	}

	dp := order.DeliveryPerson
	n := &transport.Notification{Kind: EventAssignmentNotice, To: dp.Email, Name: dp.Name, Phone: dp.Phone, OrderID: order.ID.String()}
	s.publish(ctx, mykafka.TopicNotificationEvents, EventAssignmentNotice, order.ID.String(), n)
	return n, nil
}
