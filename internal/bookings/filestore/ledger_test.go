package filestore

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bissquit/hotel-desk/internal/bookings"
	"github.com/bissquit/hotel-desk/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLedger(t *testing.T) (*Ledger, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "data")
	return NewLedger(Config{
		Dir:        dir,
		RoomsFile:  "bookings.txt",
		FoodFile:   "food.txt",
		EventsFile: "event.txt",
	}), dir
}

func TestLedger_AppendsLines(t *testing.T) {
	ledger, dir := newTestLedger(t)
	ctx := context.Background()

	require.NoError(t, ledger.AppendRoomBooking(ctx, &domain.RoomBooking{
		Reference: "r1", Username: "bob", Room: 2, ClientName: "Bob", Phone: "1234567890",
	}))
	require.NoError(t, ledger.AppendRoomBooking(ctx, &domain.RoomBooking{
		Reference: "r2", Username: "bob", Room: 5, ClientName: "Ann", Phone: "0987654321",
	}))
	require.NoError(t, ledger.AppendFoodOrder(ctx, &domain.FoodOrder{
		Reference: "f1", Username: "alice", Category: 1, ClientName: "Al", Phone: "1112223334",
	}))
	require.NoError(t, ledger.AppendEventBooking(ctx, &domain.EventBooking{
		Reference: "e1", Username: "bob", EventType: 5, ClientName: "Bob", Phone: "1234567890",
		Date: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), Guests: 40,
	}))

	rooms, err := os.ReadFile(filepath.Join(dir, "bookings.txt"))
	require.NoError(t, err)
	assert.Equal(t,
		"Username: bob, Room: 2, Name: Bob, Phone: 1234567890, Ref: r1\n"+
			"Username: bob, Room: 5, Name: Ann, Phone: 0987654321, Ref: r2\n",
		string(rooms))

	food, err := os.ReadFile(filepath.Join(dir, "food.txt"))
	require.NoError(t, err)
	assert.Equal(t, "Username: alice, Food: 1, Name: Al, Phone: 1112223334, Ref: f1\n", string(food))

	events, err := os.ReadFile(filepath.Join(dir, "event.txt"))
	require.NoError(t, err)
	assert.Equal(t, "Username: bob, Event: 5, Name: Bob, Phone: 1234567890, Date: 2026-03-01, Guests: 40, Ref: e1\n", string(events))
}

func TestLedger_StorageError(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "data")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))
	ledger := NewLedger(Config{Dir: blocker, RoomsFile: "b", FoodFile: "f", EventsFile: "e"})

	err := ledger.AppendFoodOrder(context.Background(), &domain.FoodOrder{Username: "u"})

	assert.ErrorIs(t, err, bookings.ErrStorage)
}
