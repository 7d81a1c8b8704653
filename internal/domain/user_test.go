package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePosition(t *testing.T) {
	tests := []struct {
		input string
		want  Position
		ok    bool
	}{
		{"chef", PositionChef, true},
		{"  Manager ", PositionManager, true},
		{"RECEPTIONIST", PositionReceptionist, true},
		{"pilot", "pilot", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParsePosition(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRole_IsValid(t *testing.T) {
	for _, r := range Roles {
		assert.True(t, r.IsValid(), r)
	}
	assert.False(t, Role("operator").IsValid())
}

func TestSession_IsAdmin(t *testing.T) {
	var nilSession *Session
	assert.False(t, nilSession.IsAdmin())
	assert.True(t, (&Session{Username: "admin", Role: RoleAdmin}).IsAdmin())
	assert.False(t, (&Session{Username: "bob", Role: RoleCustomer}).IsAdmin())
}
