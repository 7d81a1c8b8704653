// Package bookings records room, food and event bookings for logged-in users.
package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bissquit/hotel-desk/internal/domain"
	"github.com/bissquit/hotel-desk/internal/pkg/ctxlog"
	"github.com/bissquit/hotel-desk/internal/pkg/metrics"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// DateLayout is the accepted event date format.
const DateLayout = "2006-01-02"

// Errors.
var (
	ErrInvalidBooking = errors.New("invalid booking")
	ErrNotLoggedIn    = errors.New("login required")
	ErrStorage        = errors.New("booking storage error")
)

// Repository appends booking records. Records are never read back.
type Repository interface {
	AppendRoomBooking(ctx context.Context, booking *domain.RoomBooking) error
	AppendFoodOrder(ctx context.Context, order *domain.FoodOrder) error
	AppendEventBooking(ctx context.Context, booking *domain.EventBooking) error
}

// Service validates and records bookings.
type Service struct {
	repo      Repository
	validator *validator.Validate
	now       func() time.Time
}

// NewService creates a new bookings service.
func NewService(repo Repository) *Service {
	return &Service{
		repo:      repo,
		validator: validator.New(),
		now:       time.Now,
	}
}

// RoomInput holds room booking data.
type RoomInput struct {
	Room       int    `validate:"min=1,max=5"`
	ClientName string `validate:"required"`
	Phone      string `validate:"required,len=10,number"`
}

// FoodInput holds food order data.
type FoodInput struct {
	Category   int    `validate:"min=1,max=4"`
	ClientName string `validate:"required"`
	Phone      string `validate:"required,len=10,number"`
}

// EventInput holds event booking data.
type EventInput struct {
	EventType  int    `validate:"min=1,max=5"`
	ClientName string `validate:"required"`
	Phone      string `validate:"required,len=10,number"`
	Date       string `validate:"required,datetime=2006-01-02"`
	Guests     int    `validate:"min=1"`
}

// BookRoom records a room booking.
func (s *Service) BookRoom(ctx context.Context, session *domain.Session, input RoomInput) (*domain.RoomBooking, error) {
	if err := s.check(session, input); err != nil {
		return nil, err
	}

	booking := &domain.RoomBooking{
		Reference:  uuid.NewString(),
		Username:   session.Username,
		Room:       input.Room,
		ClientName: input.ClientName,
		Phone:      input.Phone,
		CreatedAt:  s.now(),
	}

	if err := s.repo.AppendRoomBooking(ctx, booking); err != nil {
		return nil, err
	}

	s.recorded(ctx, "room", booking.Reference, session.Username)
	return booking, nil
}

// OrderFood records a food order.
func (s *Service) OrderFood(ctx context.Context, session *domain.Session, input FoodInput) (*domain.FoodOrder, error) {
	if err := s.check(session, input); err != nil {
		return nil, err
	}

	order := &domain.FoodOrder{
		Reference:  uuid.NewString(),
		Username:   session.Username,
		Category:   input.Category,
		ClientName: input.ClientName,
		Phone:      input.Phone,
		CreatedAt:  s.now(),
	}

	if err := s.repo.AppendFoodOrder(ctx, order); err != nil {
		return nil, err
	}

	s.recorded(ctx, "food", order.Reference, session.Username)
	return order, nil
}

// BookEvent records an event booking.
func (s *Service) BookEvent(ctx context.Context, session *domain.Session, input EventInput) (*domain.EventBooking, error) {
	if err := s.check(session, input); err != nil {
		return nil, err
	}

	date, err := time.Parse(DateLayout, input.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBooking, err)
	}

	booking := &domain.EventBooking{
		Reference:  uuid.NewString(),
		Username:   session.Username,
		EventType:  input.EventType,
		ClientName: input.ClientName,
		Phone:      input.Phone,
		Date:       date,
		Guests:     input.Guests,
		CreatedAt:  s.now(),
	}

	if err := s.repo.AppendEventBooking(ctx, booking); err != nil {
		return nil, err
	}

	s.recorded(ctx, "event", booking.Reference, session.Username)
	return booking, nil
}

// CheckPhone validates a phone number with the same rule bookings use.
func (s *Service) CheckPhone(phone string) error {
	if err := s.validator.Var(phone, "required,len=10,number"); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidBooking, err)
	}
	return nil
}

func (s *Service) check(session *domain.Session, input any) error {
	if session == nil || session.Username == "" {
		return ErrNotLoggedIn
	}
	if err := s.validator.Struct(input); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidBooking, err)
	}
	return nil
}

func (s *Service) recorded(ctx context.Context, kind, reference, username string) {
	metrics.RecordBooking(kind)
	ctxlog.FromContext(ctx).Info("booking recorded",
		"kind", kind,
		"reference", reference,
		"username", username,
	)
}
