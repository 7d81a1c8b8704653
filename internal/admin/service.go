// Package admin provides the user management operations unlocked by an admin login.
package admin

import (
	"context"
	"fmt"

	"github.com/bissquit/hotel-desk/internal/domain"
	"github.com/bissquit/hotel-desk/internal/identity"
	"github.com/bissquit/hotel-desk/internal/pkg/ctxlog"
)

// Service implements admin console operations as store rewrites.
type Service struct {
	repo identity.Repository
}

// NewService creates a new admin service.
func NewService(repo identity.Repository) *Service {
	return &Service{repo: repo}
}

// Directory lists every account grouped by role, each in store order.
type Directory struct {
	Admins    []domain.Account
	Staff     []domain.Account
	Customers []domain.Account
}

// PositionGroup holds the staff usernames assigned to one position.
type PositionGroup struct {
	Position  domain.Position
	Usernames []string
}

// ListAll loads all three stores.
func (s *Service) ListAll(ctx context.Context, actor *domain.Session) (*Directory, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	var dir Directory
	for _, role := range domain.Roles {
		snapshot, err := s.repo.Load(ctx, role)
		if err != nil {
			return nil, err
		}
		switch role {
		case domain.RoleAdmin:
			dir.Admins = snapshot.Accounts()
		case domain.RoleStaff:
			dir.Staff = snapshot.Accounts()
		case domain.RoleCustomer:
			dir.Customers = snapshot.Accounts()
		}
	}

	return &dir, nil
}

// PromoteToAdmin moves a staff or customer account into the admin store,
// keeping its password. The admin record is written before the origin
// store is rewritten.
func (s *Service) PromoteToAdmin(ctx context.Context, actor *domain.Session, username string) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	if username == "" {
		return fmt.Errorf("%w: username is required", identity.ErrInvalidInput)
	}

	admins, err := s.repo.Load(ctx, domain.RoleAdmin)
	if err != nil {
		return err
	}
	if _, ok := admins.Get(username); ok {
		return identity.ErrAlreadyAdmin
	}

	for _, role := range []domain.Role{domain.RoleStaff, domain.RoleCustomer} {
		origin, err := s.repo.Load(ctx, role)
		if err != nil {
			return err
		}
		account, ok := origin.Get(username)
		if !ok {
			continue
		}

		if err := s.repo.Append(ctx, domain.Account{
			Username: account.Username,
			Password: account.Password,
			Role:     domain.RoleAdmin,
		}); err != nil {
			return fmt.Errorf("add admin record: %w", err)
		}

		origin.Delete(username)
		if err := s.repo.Rewrite(ctx, role, origin); err != nil {
			return fmt.Errorf("remove %s record: %w", role, err)
		}

		ctxlog.FromContext(ctx).Info("user promoted to admin",
			"username", username,
			"from_role", role,
			"by", actor.Username,
		)
		return nil
	}

	return identity.ErrUserNotFound
}

// DeleteUser removes username from the store of role.
func (s *Service) DeleteUser(ctx context.Context, actor *domain.Session, username string, role domain.Role) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	if !role.IsValid() {
		return fmt.Errorf("%w: unknown role %q", identity.ErrInvalidInput, role)
	}

	snapshot, err := s.repo.Load(ctx, role)
	if err != nil {
		return err
	}
	if _, ok := snapshot.Get(username); !ok {
		return identity.ErrUserNotFound
	}
	if role == domain.RoleAdmin && snapshot.Len() == 1 {
		return identity.ErrLastAdmin
	}

	snapshot.Delete(username)
	if err := s.repo.Rewrite(ctx, role, snapshot); err != nil {
		return err
	}

	ctxlog.FromContext(ctx).Info("user deleted",
		"username", username,
		"role", role,
		"by", actor.Username,
	)

	return nil
}

// ListByPosition groups staff usernames under every position, in the fixed
// position order.
func (s *Service) ListByPosition(ctx context.Context, actor *domain.Session) ([]PositionGroup, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	staff, err := s.repo.Load(ctx, domain.RoleStaff)
	if err != nil {
		return nil, err
	}

	groups := make([]PositionGroup, 0, len(domain.Positions))
	for _, position := range domain.Positions {
		group := PositionGroup{Position: position, Usernames: []string{}}
		for _, account := range staff.Accounts() {
			if account.Position == position {
				group.Usernames = append(group.Usernames, account.Username)
			}
		}
		groups = append(groups, group)
	}

	return groups, nil
}

// FindStaff returns the staff account named username.
func (s *Service) FindStaff(ctx context.Context, actor *domain.Session, username string) (domain.Account, error) {
	if err := requireAdmin(actor); err != nil {
		return domain.Account{}, err
	}

	staff, err := s.repo.Load(ctx, domain.RoleStaff)
	if err != nil {
		return domain.Account{}, err
	}
	account, ok := staff.Get(username)
	if !ok {
		return domain.Account{}, identity.ErrUserNotFound
	}
	return account, nil
}

// UpdatePosition changes one staff member's position and rewrites the staff
// store. Every other record is written back unchanged.
func (s *Service) UpdatePosition(ctx context.Context, actor *domain.Session, username, newPosition string) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}

	position, ok := domain.ParsePosition(newPosition)
	if !ok {
		return fmt.Errorf("%w: %q", identity.ErrInvalidPosition, newPosition)
	}

	staff, err := s.repo.Load(ctx, domain.RoleStaff)
	if err != nil {
		return err
	}

	account, ok := staff.Get(username)
	if !ok {
		return identity.ErrUserNotFound
	}

	account.Position = position
	staff.Put(account)

	if err := s.repo.Rewrite(ctx, domain.RoleStaff, staff); err != nil {
		return err
	}

	ctxlog.FromContext(ctx).Info("staff position updated",
		"username", username,
		"position", position,
		"by", actor.Username,
	)

	return nil
}

func requireAdmin(actor *domain.Session) error {
	if !actor.IsAdmin() {
		return identity.ErrForbidden
	}
	return nil
}
