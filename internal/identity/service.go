package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bissquit/hotel-desk/internal/domain"
	"github.com/bissquit/hotel-desk/internal/pkg/ctxlog"
	"github.com/bissquit/hotel-desk/internal/pkg/metrics"
	"golang.org/x/time/rate"
)

// Credential limits enforced on every account the service writes.
// bcrypt reads at most 72 bytes of a password.
const (
	MaxUsernameLength = 64
	MaxPasswordLength = 72
)

// Service provides signup, login and bootstrap.
type Service struct {
	repo     Repository
	resolver *Resolver
	scheme   PasswordScheme
	limiter  *rate.Limiter
}

// NewService creates a new identity service.
// A nil scheme stores plaintext; a nil limiter disables login throttling.
func NewService(repo Repository, scheme PasswordScheme, limiter *rate.Limiter) *Service {
	if scheme == nil {
		scheme = PlaintextScheme{}
	}
	return &Service{
		repo:     repo,
		resolver: NewResolver(repo),
		scheme:   scheme,
		limiter:  limiter,
	}
}

// Resolver returns the resolver used for lookups.
func (s *Service) Resolver() *Resolver {
	return s.resolver
}

// RegisterInput holds signup data.
type RegisterInput struct {
	Username string
	Password string
	Role     domain.Role
	Position string
}

// Register creates a staff or customer account.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*domain.Account, error) {
	if err := checkCredentials(input.Username, input.Password); err != nil {
		return nil, err
	}

	account := domain.Account{
		Username: input.Username,
		Role:     input.Role,
	}

	switch input.Role {
	case domain.RoleStaff:
		position, ok := domain.ParsePosition(input.Position)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrInvalidPosition, input.Position)
		}
		account.Position = position
	case domain.RoleCustomer:
	default:
		return nil, fmt.Errorf("%w: cannot sign up as %q", ErrInvalidInput, input.Role)
	}

	unique, err := s.resolver.IsUnique(ctx, input.Username)
	if err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if !unique {
		return nil, ErrDuplicateUsername
	}

	stored, err := s.scheme.Hash(input.Password)
	if err != nil {
		return nil, err
	}
	account.Password = stored

	if err := s.repo.Append(ctx, account); err != nil {
		return nil, fmt.Errorf("save account: %w", err)
	}

	ctxlog.FromContext(ctx).Info("account registered",
		"username", account.Username,
		"role", account.Role,
	)

	return &account, nil
}

// Authenticate verifies credentials. The first store holding the username
// decides the outcome; lower-priority stores are never consulted after it.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*domain.Session, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", ErrInvalidInput)
	}

	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("wait for login slot: %w", err)
		}
	}

	account, err := s.resolver.FindGlobal(ctx, username)
	if err != nil {
		if errors.Is(err, ErrUsernameNotFound) {
			metrics.RecordAuthAttempt("unknown_user")
		}
		return nil, err
	}

	if !s.scheme.Verify(account.Password, password) {
		metrics.RecordAuthAttempt("bad_password")
		ctxlog.FromContext(ctx).Warn("login failed", "username", username, "role", account.Role)
		return nil, ErrIncorrectPassword
	}

	metrics.RecordAuthAttempt("success")

	return &domain.Session{
		Username: account.Username,
		Role:     account.Role,
		Position: account.Position,
	}, nil
}

// Bootstrap creates the default admin when the admin store does not exist.
// It reports whether an account was created.
func (s *Service) Bootstrap(ctx context.Context, username, password string) (bool, error) {
	if err := checkCredentials(username, password); err != nil {
		return false, err
	}

	exists, err := s.repo.Exists(ctx, domain.RoleAdmin)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	stored, err := s.scheme.Hash(password)
	if err != nil {
		return false, err
	}

	if err := s.repo.Append(ctx, domain.Account{
		Username: username,
		Password: stored,
		Role:     domain.RoleAdmin,
	}); err != nil {
		return false, fmt.Errorf("create default admin: %w", err)
	}

	ctxlog.FromContext(ctx).Info("default admin created", "username", username)

	return true, nil
}

// checkCredentials rejects values that would not load back unchanged:
// stored lines are trimmed on read.
func checkCredentials(username, password string) error {
	switch {
	case username == "" || password == "":
		return fmt.Errorf("%w: username and password are required", ErrInvalidInput)
	case len(username) > MaxUsernameLength:
		return fmt.Errorf("%w: username longer than %d bytes", ErrInvalidInput, MaxUsernameLength)
	case len(password) > MaxPasswordLength:
		return fmt.Errorf("%w: password longer than %d bytes", ErrInvalidInput, MaxPasswordLength)
	case strings.TrimSpace(username) != username:
		return fmt.Errorf("%w: username has leading or trailing spaces", ErrInvalidInput)
	case strings.TrimSpace(password) != password:
		return fmt.Errorf("%w: password has leading or trailing spaces", ErrInvalidInput)
	}
	return nil
}
