// Package identity provides account storage contracts, lookup and authentication.
package identity

import (
	"context"

	"github.com/bissquit/hotel-desk/internal/domain"
)

// Repository defines the interface for role-partitioned account stores.
type Repository interface {
	// Load reads the whole store for role. A missing store is empty.
	Load(ctx context.Context, role domain.Role) (*Snapshot, error)
	// Append adds one account to the store selected by account.Role.
	Append(ctx context.Context, account domain.Account) error
	// Rewrite replaces the store contents with snapshot, in snapshot order.
	Rewrite(ctx context.Context, role domain.Role, snapshot *Snapshot) error
	// Exists reports whether the backing store for role has been created.
	Exists(ctx context.Context, role domain.Role) (bool, error)
}
