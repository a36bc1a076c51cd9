package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Role
		wantErr bool
	}{
		{name: "user", input: "user", want: RoleUser},
		{name: "admin", input: "admin", want: RoleAdmin},
		{name: "superuser", input: "superuser", want: RoleSuperuser},
		{name: "unknown role", input: "moderator", wantErr: true},
		{name: "empty string", input: "", wantErr: true},
		{name: "case sensitive", input: "Admin", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRole(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRole_In(t *testing.T) {
	adminSet := []Role{RoleAdmin, RoleSuperuser}

	// Принадлежность набору определяется строгим равенством значений.
	for _, allowed := range adminSet {
		assert.True(t, allowed.In(adminSet...))
		assert.Equal(t, allowed, allowed)
	}

	assert.False(t, RoleUser.In(adminSet...))
	assert.True(t, RoleUser.In(RoleUser, RoleAdmin, RoleSuperuser))
	assert.False(t, RoleUser.In())
}
