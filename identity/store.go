package identity

import (
	"context"
	"time"
)

// The store contract is split into narrow capability interfaces so a consumer
// can depend on exactly the surface it needs. UserStore is the union of all
// user-side capabilities.

// UserAccountStore covers user CRUD and the primary lookups.
type UserAccountStore interface {
	Create(ctx context.Context, user *User) error
	Update(ctx context.Context, user *User) error
	Delete(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id string) (*User, error)
	FindByNormalizedUserName(ctx context.Context, normalizedUserName string) (*User, error)
}

// UserEmailStore covers email lookups.
type UserEmailStore interface {
	FindByNormalizedEmail(ctx context.Context, normalizedEmail string) (*User, error)
}

// UserLoginStore covers external login bindings.
type UserLoginStore interface {
	AddLogin(ctx context.Context, user *User, login Login) error
	RemoveLogin(ctx context.Context, user *User, loginProvider, providerKey string) error
	GetLogins(ctx context.Context, user *User) ([]Login, error)
	FindByLogin(ctx context.Context, loginProvider, providerKey string) (*User, error)
}

// UserRoleStore covers role membership.
type UserRoleStore interface {
	AddToRole(ctx context.Context, user *User, roleName string) error
	RemoveFromRole(ctx context.Context, user *User, roleName string) error
	GetRoles(ctx context.Context, user *User) ([]string, error)
	IsInRole(ctx context.Context, user *User, roleName string) (bool, error)
	GetUsersInRole(ctx context.Context, roleName string) ([]*User, error)
}

// UserClaimStore covers user claims.
type UserClaimStore interface {
	GetClaims(ctx context.Context, user *User) ([]Claim, error)
	AddClaims(ctx context.Context, user *User, claims []Claim) error
	ReplaceClaim(ctx context.Context, user *User, old, replacement Claim) error
	RemoveClaims(ctx context.Context, user *User, claims []Claim) error
	GetUsersForClaim(ctx context.Context, claim Claim) ([]*User, error)
}

// UserPasswordStore covers the stored password hash.
type UserPasswordStore interface {
	SetPasswordHash(ctx context.Context, user *User, passwordHash string) error
	GetPasswordHash(ctx context.Context, user *User) (string, error)
	HasPassword(ctx context.Context, user *User) (bool, error)
}

// UserSecurityStampStore covers the security stamp.
type UserSecurityStampStore interface {
	SetSecurityStamp(ctx context.Context, user *User, stamp string) error
	GetSecurityStamp(ctx context.Context, user *User) (string, error)
}

// UserLockoutStore covers lockout state. The store records the raw lockout
// end timestamp; "is locked out" means the timestamp is set and in the
// future, interpreted by the consuming layer.
type UserLockoutStore interface {
	GetLockoutEnd(ctx context.Context, user *User) (*time.Time, error)
	SetLockoutEnd(ctx context.Context, user *User, end *time.Time) error
	IncrementAccessFailedCount(ctx context.Context, user *User) (int, error)
	ResetAccessFailedCount(ctx context.Context, user *User) error
	GetAccessFailedCount(ctx context.Context, user *User) (int, error)
	GetLockoutEnabled(ctx context.Context, user *User) (bool, error)
	SetLockoutEnabled(ctx context.Context, user *User, enabled bool) error
}

// UserPhoneNumberStore covers the phone contact record.
type UserPhoneNumberStore interface {
	SetPhoneNumber(ctx context.Context, user *User, phoneNumber string) error
	GetPhoneNumber(ctx context.Context, user *User) (string, error)
	GetPhoneNumberConfirmed(ctx context.Context, user *User) (bool, error)
	SetPhoneNumberConfirmed(ctx context.Context, user *User, confirmed bool) error
}

// UserTwoFactorStore covers the two-factor flag.
type UserTwoFactorStore interface {
	SetTwoFactorEnabled(ctx context.Context, user *User, enabled bool) error
	GetTwoFactorEnabled(ctx context.Context, user *User) (bool, error)
}

// UserTokenStore covers provider tokens keyed by (loginProvider, name).
type UserTokenStore interface {
	SetToken(ctx context.Context, user *User, loginProvider, name, value string) error
	RemoveToken(ctx context.Context, user *User, loginProvider, name string) error
	GetToken(ctx context.Context, user *User, loginProvider, name string) (string, error)
}

// QueryableUserStore exposes enumeration over active users.
type QueryableUserStore interface {
	ListUsers(ctx context.Context) ([]*User, error)
}

// UserStore is the full user-side store contract.
type UserStore interface {
	UserAccountStore
	UserEmailStore
	UserLoginStore
	UserRoleStore
	UserClaimStore
	UserPasswordStore
	UserSecurityStampStore
	UserLockoutStore
	UserPhoneNumberStore
	UserTwoFactorStore
	UserTokenStore
	QueryableUserStore

	Close() error
}

// RoleStore covers role CRUD, lookups and role claims.
type RoleStore interface {
	Create(ctx context.Context, role *Role) error
	Update(ctx context.Context, role *Role) error
	Delete(ctx context.Context, role *Role) error
	FindByID(ctx context.Context, id string) (*Role, error)
	FindByNormalizedName(ctx context.Context, normalizedName string) (*Role, error)
	GetClaims(ctx context.Context, role *Role) ([]Claim, error)
	AddClaim(ctx context.Context, role *Role, claim Claim) error
	RemoveClaim(ctx context.Context, role *Role, claim Claim) error

	Close() error
}
