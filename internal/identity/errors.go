package identity

import (
	"errors"
	"fmt"

	"github.com/bissquit/hotel-desk/internal/domain"
)

// Validation errors.
var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrInvalidPosition = errors.New("invalid position")
)

// Lookup errors.
var (
	ErrDuplicateUsername = errors.New("username already exists")
	ErrUsernameNotFound  = errors.New("username not found")
	ErrIncorrectPassword = errors.New("incorrect password")
	ErrUserNotFound      = errors.New("user not found")
)

// Admin operation errors.
var (
	ErrForbidden    = errors.New("admin session required")
	ErrAlreadyAdmin = errors.New("user is already an admin")
	ErrLastAdmin    = errors.New("cannot delete the last admin")
)

// ErrStorage is matched by every StorageError.
var ErrStorage = errors.New("storage error")

// StorageError reports an I/O failure on a role's backing store.
type StorageError struct {
	Op   string
	Role domain.Role
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s %s store %s: %v", e.Op, e.Role, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrStorage) true for any StorageError.
func (e *StorageError) Is(target error) bool {
	return target == ErrStorage
}
