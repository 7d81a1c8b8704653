package identity

import "github.com/bissquit/hotel-desk/internal/domain"

// Snapshot is the in-memory copy of one role's store.
// It keeps first-insertion order so a rewrite is deterministic; putting an
// existing username replaces the value but keeps its place. Records loaded
// from a store remember their line, and Lines writes it back untouched
// until the record is replaced.
type Snapshot struct {
	Role     domain.Role
	Report   ParseReport
	order    []string
	accounts map[string]domain.Account
	raw      map[string]string
}

// NewSnapshot creates an empty snapshot for the role.
func NewSnapshot(role domain.Role) *Snapshot {
	return &Snapshot{
		Role:     role,
		accounts: make(map[string]domain.Account),
		raw:      make(map[string]string),
	}
}

// Get returns the account stored under username.
func (s *Snapshot) Get(username string) (domain.Account, bool) {
	account, ok := s.accounts[username]
	return account, ok
}

// Put inserts or replaces an account.
func (s *Snapshot) Put(account domain.Account) {
	if _, ok := s.accounts[account.Username]; !ok {
		s.order = append(s.order, account.Username)
	}
	s.accounts[account.Username] = account
	delete(s.raw, account.Username)
}

func (s *Snapshot) putLoaded(account domain.Account, line string) {
	s.Put(account)
	s.raw[account.Username] = line
}

// Delete removes username and reports whether it was present.
func (s *Snapshot) Delete(username string) bool {
	if _, ok := s.accounts[username]; !ok {
		return false
	}
	delete(s.accounts, username)
	delete(s.raw, username)
	for i, name := range s.order {
		if name == username {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

// Len returns the number of accounts.
func (s *Snapshot) Len() int {
	return len(s.order)
}

// Accounts returns all accounts in store order.
func (s *Snapshot) Accounts() []domain.Account {
	accounts := make([]domain.Account, 0, len(s.order))
	for _, name := range s.order {
		accounts = append(accounts, s.accounts[name])
	}
	return accounts
}

// Lines returns one store line per account in store order.
func (s *Snapshot) Lines() []string {
	lines := make([]string, 0, len(s.order))
	for _, name := range s.order {
		if line, ok := s.raw[name]; ok {
			lines = append(lines, line)
			continue
		}
		lines = append(lines, EncodeLine(s.accounts[name]))
	}
	return lines
}
