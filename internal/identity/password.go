package identity

import (
	"crypto/subtle"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Password scheme names accepted by NewPasswordScheme.
const (
	SchemePlaintext = "plaintext"
	SchemeBcrypt    = "bcrypt"
)

// PasswordScheme turns passwords into stored values and checks them.
type PasswordScheme interface {
	Hash(password string) (string, error)
	Verify(stored, password string) bool
	Name() string
}

// NewPasswordScheme returns the scheme registered under name.
func NewPasswordScheme(name string, bcryptCost int) (PasswordScheme, error) {
	switch name {
	case "", SchemePlaintext:
		return PlaintextScheme{}, nil
	case SchemeBcrypt:
		if bcryptCost == 0 {
			bcryptCost = bcrypt.DefaultCost
		}
		if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
			return nil, fmt.Errorf("bcrypt cost %d out of range", bcryptCost)
		}
		return BcryptScheme{Cost: bcryptCost}, nil
	default:
		return nil, fmt.Errorf("unknown password scheme %q", name)
	}
}

// PlaintextScheme stores passwords verbatim.
type PlaintextScheme struct{}

// Hash returns the password unchanged.
func (PlaintextScheme) Hash(password string) (string, error) {
	return password, nil
}

// Verify compares in constant time.
func (PlaintextScheme) Verify(stored, password string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(password)) == 1
}

// Name returns the scheme name.
func (PlaintextScheme) Name() string { return SchemePlaintext }

// BcryptScheme stores bcrypt hashes. Stored values that are not bcrypt
// hashes are compared as plaintext, so stores written before the switch
// keep working.
type BcryptScheme struct {
	Cost int
}

// Hash returns the bcrypt hash of password.
func (s BcryptScheme) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.Cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// Verify checks password against a bcrypt hash or a legacy plaintext value.
func (s BcryptScheme) Verify(stored, password string) bool {
	if !isBcryptHash(stored) {
		return PlaintextScheme{}.Verify(stored, password)
	}
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
}

// Name returns the scheme name.
func (BcryptScheme) Name() string { return SchemeBcrypt }

func isBcryptHash(s string) bool {
	return len(s) == 60 && (strings.HasPrefix(s, "$2a$") ||
		strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$"))
}
