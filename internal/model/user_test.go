package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleCapabilities_GrantedIndependently(t *testing.T) {
	cases := []struct {
		role   UserRole
		view   bool
		edit   bool
		manage bool
	}{
		{Student, false, false, false},
		{Viewer, true, false, false},
		{Editor, true, true, false},
		{Coach, true, true, false},
		{Admin, true, true, true},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.view, tc.role.Can(CapView), "%s view", tc.role)
		assert.Equal(t, tc.edit, tc.role.Can(CapEdit), "%s edit", tc.role)
		assert.Equal(t, tc.manage, tc.role.Can(CapManage), "%s manage", tc.role)
	}
}

func TestRoleCapabilities_NoImplication(t *testing.T) {
	// Holding manage does not come from edit, and edit does not come
	// from view; each capability is granted on its own.
	assert.False(t, Editor.Can(CapManage))
	assert.False(t, Viewer.Can(CapEdit))

	// An unknown role holds nothing.
	assert.False(t, UserRole("ghost").Can(CapView))
}
