package domain

import "strings"

// Role determines which store owns an account and which menus it reaches.
type Role string

// Account roles.
const (
	RoleAdmin    Role = "admin"
	RoleStaff    Role = "staff"
	RoleCustomer Role = "customer"
)

// Roles lists every role in lookup priority order.
// Login and uniqueness checks walk the stores in this order.
var Roles = []Role{RoleAdmin, RoleStaff, RoleCustomer}

// IsValid checks if the role is known.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleStaff, RoleCustomer:
		return true
	}
	return false
}

// Position is the job of a staff member.
type Position string

// Staff positions.
const (
	PositionChef         Position = "chef"
	PositionWaiter       Position = "waiter"
	PositionReceptionist Position = "receptionist"
	PositionHousekeeper  Position = "housekeeper"
	PositionManager      Position = "manager"
)

// Positions lists every position in display order.
var Positions = []Position{
	PositionChef,
	PositionWaiter,
	PositionReceptionist,
	PositionHousekeeper,
	PositionManager,
}

// IsValid checks if the position is one of the fixed set.
func (p Position) IsValid() bool {
	switch p {
	case PositionChef, PositionWaiter, PositionReceptionist,
		PositionHousekeeper, PositionManager:
		return true
	}
	return false
}

// ParsePosition normalizes user input and checks it against the fixed set.
func ParsePosition(s string) (Position, bool) {
	p := Position(strings.ToLower(strings.TrimSpace(s)))
	return p, p.IsValid()
}

// Account is one credential entry. Position is set only for staff.
type Account struct {
	Username string
	Password string
	Role     Role
	Position Position
}

// Session is the identity returned by a successful login.
type Session struct {
	Username string
	Role     Role
	Position Position
}

// IsAdmin reports whether the session unlocks admin operations.
func (s *Session) IsAdmin() bool {
	return s != nil && s.Role == RoleAdmin
}
