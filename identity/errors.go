package identity

import "errors"

var (
	// ErrNotFound is returned when a lookup matches no active document.
	ErrNotFound = errors.New("not found")
	// ErrInvalidArgument is returned for nil or empty required input.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrDuplicateKey is returned when an insert collides with an existing id
	// or unique index.
	ErrDuplicateKey = errors.New("duplicate key")
	// ErrDuplicateLogin is returned when a (provider, key) pair is already
	// bound to the user.
	ErrDuplicateLogin = errors.New("login already exists")
	// ErrConcurrencyConflict is returned when an update loses the optimistic
	// concurrency race. The caller must re-fetch and retry.
	ErrConcurrencyConflict = errors.New("concurrency conflict")
	// ErrAlreadyDeleted is returned on a second soft-delete of the same user.
	ErrAlreadyDeleted = errors.New("already deleted")
	// ErrRoleNotFound is returned when a role name resolves to no role.
	ErrRoleNotFound = errors.New("role not found")
	// ErrStoreClosed is returned by every operation after Close.
	ErrStoreClosed = errors.New("store is closed")
)
