package identity

import (
	"context"
	"errors"

	"github.com/bissquit/hotel-desk/internal/domain"
)

// Resolver looks usernames up across every role's store.
type Resolver struct {
	repo Repository
}

// NewResolver creates a new resolver.
func NewResolver(repo Repository) *Resolver {
	return &Resolver{repo: repo}
}

// FindGlobal returns the first account named username, walking the stores
// in domain.Roles order.
func (r *Resolver) FindGlobal(ctx context.Context, username string) (domain.Account, error) {
	for _, role := range domain.Roles {
		snapshot, err := r.repo.Load(ctx, role)
		if err != nil {
			return domain.Account{}, err
		}
		if account, ok := snapshot.Get(username); ok {
			return account, nil
		}
	}
	return domain.Account{}, ErrUsernameNotFound
}

// IsUnique reports whether no store holds username.
// The answer is not reserved: a concurrent writer may take the name.
func (r *Resolver) IsUnique(ctx context.Context, username string) (bool, error) {
	_, err := r.FindGlobal(ctx, username)
	if errors.Is(err, ErrUsernameNotFound) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return false, nil
}
