package identity

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewID generates an opaque document id (a dashless UUID string).
func NewID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// User is the aggregate root for a stored identity: account data, credential
// metadata, contact records, claims, external logins, provider tokens, role
// memberships, lockout state.
//
// All mutation helpers operate on the in-memory object only; nothing reaches
// storage until the user is passed to a store's Update.
type User struct {
	ID                 string         `bson:"_id"`
	UserName           string         `bson:"userName"`
	NormalizedUserName string         `bson:"normalizedUserName,omitempty"`
	Email              *ContactRecord `bson:"email,omitempty"`
	NormalizedEmail    string         `bson:"normalizedEmail,omitempty"`
	PasswordHash       string         `bson:"passwordHash,omitempty"`
	SecurityStamp      string         `bson:"securityStamp,omitempty"`
	ConcurrencyStamp   string         `bson:"concurrencyStamp"`
	PhoneNumber        *ContactRecord `bson:"phoneNumber,omitempty"`
	TwoFactorEnabled   bool           `bson:"twoFactorEnabled"`
	LockoutEnabled     bool           `bson:"lockoutEnabled"`
	LockoutEnd         *time.Time     `bson:"lockoutEnd,omitempty"`
	AccessFailedCount  int            `bson:"accessFailedCount"`
	Roles              []*Role        `bson:"roles,omitempty"`
	Claims             []Claim        `bson:"claims,omitempty"`
	Logins             []Login        `bson:"logins,omitempty"`
	Tokens             []Token        `bson:"tokens,omitempty"`
	CreatedOn          *time.Time     `bson:"createdOn,omitempty"`
	DeletedOn          *time.Time     `bson:"deletedOn,omitempty"`
}

// NewUser creates a user with a generated id and concurrency stamp.
func NewUser(userName string) *User {
	now := time.Now().UTC()
	return &User{
		ID:               NewID(),
		UserName:         userName,
		ConcurrencyStamp: uuid.NewString(),
		CreatedOn:        &now,
	}
}

// NewUserWithEmail creates a user with an email contact record attached.
func NewUserWithEmail(userName, email string) (*User, error) {
	record, err := NewEmail(email)
	if err != nil {
		return nil, err
	}

	user := NewUser(userName)
	user.Email = record
	return user, nil
}

func (u *User) SetUserName(userName string) {
	u.UserName = userName
}

// SetNormalizedUserName stores the canonical lookup form of the user name.
func (u *User) SetNormalizedUserName(normalized string) {
	u.NormalizedUserName = normalized
}

func (u *User) SetEmail(email *ContactRecord) {
	u.Email = email
}

// SetNormalizedEmail stores the canonical lookup form of the email address.
func (u *User) SetNormalizedEmail(normalized string) {
	u.NormalizedEmail = normalized
	if u.Email != nil {
		u.Email.SetNormalizedValue(normalized)
	}
}

func (u *User) SetPhoneNumber(phone *ContactRecord) {
	u.PhoneNumber = phone
}

func (u *User) SetPasswordHash(hash string) {
	u.PasswordHash = hash
}

func (u *User) SetSecurityStamp(stamp string) {
	u.SecurityStamp = stamp
}

func (u *User) EnableTwoFactor()  { u.TwoFactorEnabled = true }
func (u *User) DisableTwoFactor() { u.TwoFactorEnabled = false }
func (u *User) EnableLockout()    { u.LockoutEnabled = true }
func (u *User) DisableLockout()   { u.LockoutEnabled = false }

// LockUntil sets the lockout end timestamp. The store interprets a nil or
// past timestamp as "not locked out".
func (u *User) LockUntil(end time.Time) {
	u.LockoutEnd = &end
}

// IsLockedOut reports whether the lockout end is set and still in the future.
func (u *User) IsLockedOut(now time.Time) bool {
	return u.LockoutEnd != nil && u.LockoutEnd.After(now)
}

// IncrementAccessFailedCount bumps the failed-login counter and returns the
// new value.
func (u *User) IncrementAccessFailedCount() int {
	u.AccessFailedCount++
	return u.AccessFailedCount
}

func (u *User) ResetAccessFailedCount() {
	u.AccessFailedCount = 0
}

// AddLogin binds an external login. The (provider, key) pair must be unique
// within the user.
func (u *User) AddLogin(login Login) error {
	for _, l := range u.Logins {
		if l.Equal(login) {
			return fmt.Errorf("login %s/%s: %w", login.LoginProvider, login.ProviderKey, ErrDuplicateLogin)
		}
	}
	u.Logins = append(u.Logins, login)
	return nil
}

// RemoveLogin drops the login with the given (provider, key) pair. Removing
// an absent login is a no-op.
func (u *User) RemoveLogin(loginProvider, providerKey string) {
	probe := Login{LoginProvider: loginProvider, ProviderKey: providerKey}
	kept := u.Logins[:0]
	for _, l := range u.Logins {
		if !l.Equal(probe) {
			kept = append(kept, l)
		}
	}
	u.Logins = kept
}

// AddClaim appends a claim. Duplicate (type, value) pairs are permitted; the
// removal helpers operate on every equal pair.
func (u *User) AddClaim(claim Claim) {
	u.Claims = append(u.Claims, claim)
}

// RemoveClaim removes every claim equal to the given (type, value) pair.
func (u *User) RemoveClaim(claim Claim) {
	kept := u.Claims[:0]
	for _, c := range u.Claims {
		if !c.Equal(claim) {
			kept = append(kept, c)
		}
	}
	u.Claims = kept
}

// ReplaceClaim swaps every claim equal to old for the replacement.
func (u *User) ReplaceClaim(old, replacement Claim) {
	for i, c := range u.Claims {
		if c.Equal(old) {
			u.Claims[i] = replacement
		}
	}
}

// HasClaim reports whether the user carries an equal claim.
func (u *User) HasClaim(claim Claim) bool {
	for _, c := range u.Claims {
		if c.Equal(claim) {
			return true
		}
	}
	return false
}

// AddRole records membership in the given role. Membership is a weak
// reference by role identity; the role document itself lives in the role
// collection.
func (u *User) AddRole(role *Role) {
	u.Roles = append(u.Roles, role)
}

// RemoveRole drops membership in every role whose name matches
// case-insensitively.
func (u *User) RemoveRole(roleName string) {
	kept := u.Roles[:0]
	for _, r := range u.Roles {
		if !strings.EqualFold(r.Name, roleName) {
			kept = append(kept, r)
		}
	}
	u.Roles = kept
}

// IsInRole reports membership by case-insensitive role name.
func (u *User) IsInRole(roleName string) bool {
	for _, r := range u.Roles {
		if strings.EqualFold(r.Name, roleName) {
			return true
		}
	}
	return false
}

// RoleNames returns the names of every role the user belongs to.
func (u *User) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		names = append(names, r.Name)
	}
	return names
}

// SetToken stores a provider token, overwriting any existing token with the
// same (provider, name) key.
func (u *User) SetToken(loginProvider, name, value string) {
	for i, t := range u.Tokens {
		if t.LoginProvider == loginProvider && t.Name == name {
			u.Tokens[i].Value = value
			return
		}
	}
	u.Tokens = append(u.Tokens, Token{LoginProvider: loginProvider, Name: name, Value: value})
}

// GetToken returns the token value for the (provider, name) key.
func (u *User) GetToken(loginProvider, name string) (string, bool) {
	for _, t := range u.Tokens {
		if t.LoginProvider == loginProvider && t.Name == name {
			return t.Value, true
		}
	}
	return "", false
}

// RemoveToken drops the token with the (provider, name) key. Removing an
// absent token is a no-op.
func (u *User) RemoveToken(loginProvider, name string) {
	kept := u.Tokens[:0]
	for _, t := range u.Tokens {
		if t.LoginProvider != loginProvider || t.Name != name {
			kept = append(kept, t)
		}
	}
	u.Tokens = kept
}

// Delete marks the user soft-deleted at the current UTC time. Deleting an
// already-deleted user fails.
func (u *User) Delete() error {
	if u.DeletedOn != nil {
		return fmt.Errorf("user %q: %w", u.ID, ErrAlreadyDeleted)
	}
	now := time.Now().UTC()
	u.DeletedOn = &now
	return nil
}

// IsDeleted reports whether the user has been soft-deleted.
func (u *User) IsDeleted() bool {
	return u.DeletedOn != nil
}

func (u *User) String() string {
	return u.UserName
}
