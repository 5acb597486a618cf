package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var allRoles = []Role{RoleAdmin, RoleManager, RoleEditor, RoleStaff, RoleCustomer, RoleViewer}

func TestRole_Satisfies(t *testing.T) {
	tests := []struct {
		principal Role
		required  Role
		want      bool
	}{
		{RoleAdmin, RoleViewer, true},
		{RoleAdmin, RoleManager, true},
		{RoleManager, RoleAdmin, false},
		{RoleEditor, RoleStaff, true},
		{RoleStaff, RoleEditor, false},
		{RoleCustomer, RoleViewer, true},
		{RoleViewer, RoleAdmin, false},
		{RoleViewer, RoleCustomer, false},
		{Role("ghost"), RoleViewer, false},
	}

	for _, tt := range tests {
		assert.Equalf(t, tt.want, tt.principal.Satisfies(tt.required),
			"%s satisfies %s", tt.principal, tt.required)
	}

	// Reflexive for every known role.
	for _, r := range allRoles {
		assert.Truef(t, r.Satisfies(r), "%s should satisfy itself", r)
	}
}

func TestRole_Rank(t *testing.T) {
	// Total order: each role outranks the next.
	for i := 0; i < len(allRoles)-1; i++ {
		assert.Greater(t, allRoles[i].Rank(), allRoles[i+1].Rank())
	}
	assert.Equal(t, -1, Role("ghost").Rank())
}

func TestRole_IsAdmin(t *testing.T) {
	assert.True(t, RoleAdmin.IsAdmin())
	for _, r := range allRoles[1:] {
		assert.Falsef(t, r.IsAdmin(), "%s should not be admin", r)
	}
	// Strict equality, not rank: an unknown role never passes.
	assert.False(t, Role("superadmin").IsAdmin())
}
