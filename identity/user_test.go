package identity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	user := NewUser("alice")

	assert.Equal(t, "alice", user.UserName)
	assert.Len(t, user.ID, 32)
	assert.NotEmpty(t, user.ConcurrencyStamp)
	require.NotNil(t, user.CreatedOn)
	assert.Nil(t, user.DeletedOn)
	assert.Zero(t, user.AccessFailedCount)
}

func TestNewUser_UniqueIDs(t *testing.T) {
	assert.NotEqual(t, NewUser("a").ID, NewUser("a").ID)
}

func TestNewUserWithEmail(t *testing.T) {
	user, err := NewUserWithEmail("alice", "Alice@Example.com")
	require.NoError(t, err)

	require.NotNil(t, user.Email)
	assert.Equal(t, ContactTypeEmail, user.Email.Type)
	assert.Equal(t, "Alice@Example.com", user.Email.Value)
	assert.False(t, user.Email.IsConfirmed)
}

func TestNewUserWithEmail_EmptyEmail(t *testing.T) {
	_, err := NewUserWithEmail("alice", "")
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestUser_SetNormalizedEmail_SyncsContactRecord(t *testing.T) {
	user, err := NewUserWithEmail("alice", "Alice@Example.com")
	require.NoError(t, err)

	user.SetNormalizedEmail("ALICE@EXAMPLE.COM")

	assert.Equal(t, "ALICE@EXAMPLE.COM", user.NormalizedEmail)
	assert.Equal(t, "ALICE@EXAMPLE.COM", user.Email.NormalizedValue)
}

func TestUser_Delete(t *testing.T) {
	user := NewUser("alice")

	require.NoError(t, user.Delete())
	require.NotNil(t, user.DeletedOn)
	assert.True(t, user.IsDeleted())

	err := user.Delete()
	require.ErrorIs(t, err, ErrAlreadyDeleted)
}

func TestUser_AddLogin_Duplicate(t *testing.T) {
	user := NewUser("alice")
	login := Login{LoginProvider: "google", ProviderKey: "key-1", ProviderDisplayName: "Google"}

	require.NoError(t, user.AddLogin(login))

	err := user.AddLogin(Login{LoginProvider: "google", ProviderKey: "key-1", ProviderDisplayName: "other"})
	require.ErrorIs(t, err, ErrDuplicateLogin)
	assert.Len(t, user.Logins, 1)
}

func TestUser_RemoveLogin_ThenReAdd(t *testing.T) {
	user := NewUser("alice")
	login := Login{LoginProvider: "google", ProviderKey: "key-1"}

	require.NoError(t, user.AddLogin(login))
	user.RemoveLogin("google", "key-1")
	assert.Empty(t, user.Logins)

	require.NoError(t, user.AddLogin(login))
	assert.Len(t, user.Logins, 1)
}

func TestUser_RemoveLogin_Absent(t *testing.T) {
	user := NewUser("alice")
	user.RemoveLogin("google", "missing")
	assert.Empty(t, user.Logins)
}

func TestUser_AccessFailedCount(t *testing.T) {
	user := NewUser("alice")

	for want := 1; want <= 5; want++ {
		assert.Equal(t, want, user.IncrementAccessFailedCount())
	}

	user.ResetAccessFailedCount()
	assert.Zero(t, user.AccessFailedCount)
}

func TestUser_IsLockedOut(t *testing.T) {
	now := time.Now().UTC()
	user := NewUser("alice")

	assert.False(t, user.IsLockedOut(now), "no lockout end set")

	user.LockUntil(now.Add(time.Hour))
	assert.True(t, user.IsLockedOut(now), "lockout end in the future")

	user.LockUntil(now.Add(-time.Hour))
	assert.False(t, user.IsLockedOut(now), "lockout end in the past")
}

func TestUser_Claims(t *testing.T) {
	user := NewUser("alice")
	claim := Claim{Type: "scope", Value: "read"}

	user.AddClaim(claim)
	user.AddClaim(Claim{Type: "scope", Value: "write"})
	assert.True(t, user.HasClaim(claim))

	user.ReplaceClaim(claim, Claim{Type: "scope", Value: "admin"})
	assert.False(t, user.HasClaim(claim))
	assert.True(t, user.HasClaim(Claim{Type: "scope", Value: "admin"}))

	user.RemoveClaim(Claim{Type: "scope", Value: "write"})
	user.RemoveClaim(Claim{Type: "scope", Value: "admin"})
	assert.Empty(t, user.Claims)
}

func TestUser_RemoveClaim_RemovesAllEqualPairs(t *testing.T) {
	user := NewUser("alice")
	claim := Claim{Type: "scope", Value: "read"}

	user.AddClaim(claim)
	user.AddClaim(claim)
	user.RemoveClaim(claim)

	assert.Empty(t, user.Claims)
}

func TestUser_Roles_CaseInsensitive(t *testing.T) {
	user := NewUser("alice")
	user.AddRole(NewRole("Admin"))

	assert.True(t, user.IsInRole("admin"))
	assert.True(t, user.IsInRole("ADMIN"))
	assert.False(t, user.IsInRole("auditor"))
	assert.Equal(t, []string{"Admin"}, user.RoleNames())

	user.RemoveRole("aDmIn")
	assert.Empty(t, user.Roles)
}

func TestUser_Tokens_LastWriteWins(t *testing.T) {
	user := NewUser("alice")

	user.SetToken("google", "refresh", "first")
	user.SetToken("google", "refresh", "second")

	value, ok := user.GetToken("google", "refresh")
	require.True(t, ok)
	assert.Equal(t, "second", value)
	assert.Len(t, user.Tokens, 1)
}

func TestUser_Tokens_KeyedByProviderAndName(t *testing.T) {
	user := NewUser("alice")

	user.SetToken("google", "refresh", "g")
	user.SetToken("github", "refresh", "h")

	value, ok := user.GetToken("github", "refresh")
	require.True(t, ok)
	assert.Equal(t, "h", value)

	user.RemoveToken("google", "refresh")
	_, ok = user.GetToken("google", "refresh")
	assert.False(t, ok)
	assert.Len(t, user.Tokens, 1)
}

func TestUser_RemoveToken_Absent(t *testing.T) {
	user := NewUser("alice")
	user.RemoveToken("google", "missing")
	assert.Empty(t, user.Tokens)
}

func TestUser_Flags(t *testing.T) {
	user := NewUser("alice")

	user.EnableTwoFactor()
	assert.True(t, user.TwoFactorEnabled)
	user.DisableTwoFactor()
	assert.False(t, user.TwoFactorEnabled)

	user.EnableLockout()
	assert.True(t, user.LockoutEnabled)
	user.DisableLockout()
	assert.False(t, user.LockoutEnabled)
}
