package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRole(t *testing.T) {
	role := NewRole("Admin")

	assert.Len(t, role.ID, 32)
	assert.Equal(t, "Admin", role.Name)
	assert.Equal(t, "ADMIN", role.NormalizedName)
	assert.NotEmpty(t, role.ConcurrencyStamp)
	assert.Empty(t, role.Claims)
}

func TestRole_Claims(t *testing.T) {
	role := NewRole("Admin")
	claim := Claim{Type: "permission", Value: "users.manage"}

	role.AddClaim(claim)
	require.True(t, role.HasClaim(claim))

	role.RemoveClaim(claim)
	assert.False(t, role.HasClaim(claim))
	assert.Empty(t, role.Claims)
}

func TestRole_SetNormalizedName(t *testing.T) {
	role := NewRole("Admin")
	role.SetNormalizedName("CUSTOM")
	assert.Equal(t, "CUSTOM", role.NormalizedName)
}
