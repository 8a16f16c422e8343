package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/shoe_shop/internal/models"
	"github.com/Skotchmaster/shoe_shop/pkg/hash"
	"github.com/Skotchmaster/shoe_shop/pkg/mykafka"
	"github.com/Skotchmaster/shoe_shop/pkg/tokens"
	"github.com/Skotchmaster/shoe_shop/services/delivery/internal/transport"
)

var personStatuses = map[models.DeliveryStatus]bool{
	models.DeliveryProcessing: true,
	models.DeliveryPickedUp:   true,
	models.DeliveryDelivered:  true,
}

func (s *DeliveryService) issueToken(p *models.DeliveryPerson) (string, time.Time, error) {
	ttl := s.TokenTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	exp := time.Now().Add(ttl)
	tok, err := tokens.SignAccess(p.ID.String(), tokens.RoleDeliveryPerson, exp, s.JWTSecret)
	return tok, exp, err
}

func (s *DeliveryService) Signup(ctx context.Context, req transport.CreatePersonRequest) (*transport.AuthResponse, time.Time, error) {
	p, err := s.CreatePerson(ctx, req)
	if err != nil {
		return nil, time.Time{}, err
	}
	tok, exp, err := s.issueToken(p)
	if err != nil {
		return nil, time.Time{}, err
	}
	return &transport.AuthResponse{Token: tok, DeliveryPerson: p}, exp, nil
}

func (s *DeliveryService) Login(ctx context.Context, req transport.LoginRequest) (*transport.AuthResponse, time.Time, error) {
	p, err := s.Repo.GetPersonByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, time.Time{}, fmt.Errorf("delivery person not found: %w", ErrNotFound)
		}
		return nil, time.Time{}, err
	}
	if !hash.CheckPassword(p.PasswordHash, req.Password) {
		return nil, time.Time{}, fmt.Errorf("invalid credentials: %w", ErrUnauthorized)
	}

	tok, exp, err := s.issueToken(p)
	if err != nil {
		return nil, time.Time{}, err
	}
	return &transport.AuthResponse{Token: tok, DeliveryPerson: p}, exp, nil
}

func (s *DeliveryService) Profile(ctx context.Context, personID string) (*models.DeliveryPerson, error) {
	id, err := uuid.Parse(personID)
	if err != nil {
		return nil, fmt.Errorf("delivery person not found: %w", ErrNotFound)
	}
	p, err := s.Repo.GetPerson(ctx, id)
	if err != nil {
		return nil, notFound(err, "delivery person")
	}
	return p, nil
}

func (s *DeliveryService) AssignedOrders(ctx context.Context, personID string) ([]models.Order, error) {
	id, err := uuid.Parse(personID)
	if err != nil {
		return nil, fmt.Errorf("delivery person not found: %w", ErrNotFound)
	}
	return s.Repo.ListAssigned(ctx, id)
}

// SetOwnStatus lets a delivery person move only orders assigned to them.
// Unknown, unassigned and foreign orders all look the same to the caller.
func (s *DeliveryService) SetOwnStatus(ctx context.Context, personID, rawOrderID, status string) (*models.Order, error) {
	st := models.DeliveryStatus(status)
	if !personStatuses[st] {
		return nil, fmt.Errorf("status must be processing, pickedup or delivered: %w", ErrValidation)
	}

	pid, err := uuid.Parse(personID)
	if err != nil {
		return nil, fmt.Errorf("order not found or not assigned to you: %w", ErrNotFound)
	}
	orderID, err := uuid.Parse(rawOrderID)
	if err != nil {
		return nil, fmt.Errorf("order not found or not assigned to you: %w", ErrNotFound)
	}

	order, err := s.Repo.SetAssignedStatus(ctx, orderID, pid, st)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order not found or not assigned to you: %w", ErrNotFound)
		}
		return nil, err
	}

	s.publish(ctx, mykafka.TopicDeliveryEvents, EventDeliveryStatusChanged, order.ID.String(), statusEvent{
		OrderID: order.ID, DeliveryStatus: st, DeliveryPersonID: &pid, ChangedBy: tokens.RoleDeliveryPerson,
	})
	return order, nil
}
