// Package filestore provides append-only text ledgers for bookings.
package filestore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bissquit/hotel-desk/internal/bookings"
	"github.com/bissquit/hotel-desk/internal/domain"
)

// Config contains ledger file locations. File names are relative to Dir.
type Config struct {
	Dir        string
	RoomsFile  string
	FoodFile   string
	EventsFile string
}

// Ledger implements bookings.Repository.
type Ledger struct {
	config Config
}

// NewLedger creates a new ledger.
func NewLedger(config Config) *Ledger {
	return &Ledger{config: config}
}

// AppendRoomBooking writes one room booking line.
func (l *Ledger) AppendRoomBooking(ctx context.Context, b *domain.RoomBooking) error {
	line := fmt.Sprintf("Username: %s, Room: %d, Name: %s, Phone: %s, Ref: %s",
		b.Username, b.Room, b.ClientName, b.Phone, b.Reference)
	return l.append(ctx, l.config.RoomsFile, line)
}

// AppendFoodOrder writes one food order line.
func (l *Ledger) AppendFoodOrder(ctx context.Context, o *domain.FoodOrder) error {
	line := fmt.Sprintf("Username: %s, Food: %d, Name: %s, Phone: %s, Ref: %s",
		o.Username, o.Category, o.ClientName, o.Phone, o.Reference)
	return l.append(ctx, l.config.FoodFile, line)
}

// AppendEventBooking writes one event booking line.
func (l *Ledger) AppendEventBooking(ctx context.Context, b *domain.EventBooking) error {
	line := fmt.Sprintf("Username: %s, Event: %d, Name: %s, Phone: %s, Date: %s, Guests: %d, Ref: %s",
		b.Username, b.EventType, b.ClientName, b.Phone,
		b.Date.Format(bookings.DateLayout), b.Guests, b.Reference)
	return l.append(ctx, l.config.EventsFile, line)
}

func (l *Ledger) append(ctx context.Context, name, line string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.MkdirAll(l.config.Dir, 0o755); err != nil {
		return fmt.Errorf("%w: %w", bookings.ErrStorage, err)
	}

	path := filepath.Join(l.config.Dir, name)
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("%w: %w", bookings.ErrStorage, err)
	}

	_, writeErr := f.WriteString(line + "\n")
	closeErr := f.Close()
	if err := errors.Join(writeErr, closeErr); err != nil {
		return fmt.Errorf("%w: append %s: %w", bookings.ErrStorage, path, err)
	}

	return nil
}
