package mongostore

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/miendev/mongo-identity/identity"
)

// AddLogin binds an external login to the user. The binding is in-memory
// only and reaches storage on the next Update.
func (s *UserStore) AddLogin(ctx context.Context, user *identity.User, login identity.Login) error {
	if err := s.guard(ctx); err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("user is required: %w", identity.ErrInvalidArgument)
	}
	if login.LoginProvider == "" || login.ProviderKey == "" {
		return fmt.Errorf("login provider and provider key are required: %w", identity.ErrInvalidArgument)
	}
	return user.AddLogin(login)
}

// RemoveLogin drops the (provider, key) binding from the user. Removing an
// absent login is a no-op.
func (s *UserStore) RemoveLogin(ctx context.Context, user *identity.User, loginProvider, providerKey string) error {
	if err := s.guard(ctx); err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("user is required: %w", identity.ErrInvalidArgument)
	}
	if loginProvider == "" || providerKey == "" {
		return fmt.Errorf("login provider and provider key are required: %w", identity.ErrInvalidArgument)
	}
	user.RemoveLogin(loginProvider, providerKey)
	return nil
}

// GetLogins returns a copy of the user's external login bindings.
func (s *UserStore) GetLogins(ctx context.Context, user *identity.User) ([]identity.Login, error) {
	if err := s.guard(ctx); err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("user is required: %w", identity.ErrInvalidArgument)
	}

	logins := make([]identity.Login, len(user.Logins))
	copy(logins, user.Logins)
	return logins, nil
}

// FindByLogin returns the active user bound to the (provider, key) pair.
func (s *UserStore) FindByLogin(ctx context.Context, loginProvider, providerKey string) (*identity.User, error) {
	if err := s.guard(ctx); err != nil {
		return nil, err
	}
	if loginProvider == "" || providerKey == "" {
		return nil, fmt.Errorf("login provider and provider key are required: %w", identity.ErrInvalidArgument)
	}

	filter := bson.M{
		"logins": bson.M{
			"$elemMatch": bson.M{
				"loginProvider": loginProvider,
				"providerKey":   providerKey,
			},
		},
	}
	return s.findOne(ctx, filter)
}
