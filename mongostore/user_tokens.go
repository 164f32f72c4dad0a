package mongostore

import (
	"context"
	"fmt"

	"github.com/miendev/mongo-identity/identity"
)

// SetToken stores a provider token on the user, overwriting any existing
// token with the same (provider, name) key. Last write wins.
func (s *UserStore) SetToken(ctx context.Context, user *identity.User, loginProvider, name, value string) error {
	if err := s.guard(ctx); err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("user is required: %w", identity.ErrInvalidArgument)
	}
	if loginProvider == "" || name == "" {
		return fmt.Errorf("login provider and token name are required: %w", identity.ErrInvalidArgument)
	}

	user.SetToken(loginProvider, name, value)
	return nil
}

// RemoveToken drops the token with the (provider, name) key. Removing an
// absent token is a no-op.
func (s *UserStore) RemoveToken(ctx context.Context, user *identity.User, loginProvider, name string) error {
	if err := s.guard(ctx); err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("user is required: %w", identity.ErrInvalidArgument)
	}
	if loginProvider == "" || name == "" {
		return fmt.Errorf("login provider and token name are required: %w", identity.ErrInvalidArgument)
	}

	user.RemoveToken(loginProvider, name)
	return nil
}

// GetToken returns the token value for the (provider, name) key.
func (s *UserStore) GetToken(ctx context.Context, user *identity.User, loginProvider, name string) (string, error) {
	if err := s.guard(ctx); err != nil {
		return "", err
	}
	if user == nil {
		return "", fmt.Errorf("user is required: %w", identity.ErrInvalidArgument)
	}
	if loginProvider == "" || name == "" {
		return "", fmt.Errorf("login provider and token name are required: %w", identity.ErrInvalidArgument)
	}

	value, ok := user.GetToken(loginProvider, name)
	if !ok {
		return "", fmt.Errorf("token %s/%s: %w", loginProvider, name, identity.ErrNotFound)
	}
	return value, nil
}
