package mongostore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/miendev/mongo-identity/identity"
)

// findRole resolves a role name (case-insensitively, via the normalized
// form) against the role collection.
func (s *UserStore) findRole(ctx context.Context, roleName string) (*identity.Role, error) {
	var role identity.Role
	filter := bson.M{"normalizedName": strings.ToUpper(roleName)}
	if err := s.roles.FindOne(ctx, filter).Decode(&role); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("role %q: %w", roleName, identity.ErrRoleNotFound)
		}
		return nil, fmt.Errorf("failed to find role: %w", err)
	}
	return &role, nil
}

// AddToRole resolves the role by name and records membership on the user.
// Membership is in-memory only and reaches storage on the next Update.
func (s *UserStore) AddToRole(ctx context.Context, user *identity.User, roleName string) error {
	if err := s.guard(ctx); err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("user is required: %w", identity.ErrInvalidArgument)
	}
	if roleName == "" {
		return fmt.Errorf("role name is required: %w", identity.ErrInvalidArgument)
	}

	role, err := s.findRole(ctx, roleName)
	if err != nil {
		return err
	}

	user.AddRole(role)
	return nil
}

// RemoveFromRole resolves the role by name and drops membership from the
// user. Removing membership the user does not hold is a no-op.
func (s *UserStore) RemoveFromRole(ctx context.Context, user *identity.User, roleName string) error {
	if err := s.guard(ctx); err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("user is required: %w", identity.ErrInvalidArgument)
	}
	if roleName == "" {
		return fmt.Errorf("role name is required: %w", identity.ErrInvalidArgument)
	}

	if _, err := s.findRole(ctx, roleName); err != nil {
		return err
	}

	user.RemoveRole(roleName)
	return nil
}

// GetRoles returns the names of the roles the user belongs to.
func (s *UserStore) GetRoles(ctx context.Context, user *identity.User) ([]string, error) {
	if err := s.guard(ctx); err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("user is required: %w", identity.ErrInvalidArgument)
	}
	return user.RoleNames(), nil
}

// IsInRole reports membership by case-insensitive role name.
func (s *UserStore) IsInRole(ctx context.Context, user *identity.User, roleName string) (bool, error) {
	if err := s.guard(ctx); err != nil {
		return false, err
	}
	if user == nil {
		return false, fmt.Errorf("user is required: %w", identity.ErrInvalidArgument)
	}
	if roleName == "" {
		return false, fmt.Errorf("role name is required: %w", identity.ErrInvalidArgument)
	}
	return user.IsInRole(roleName), nil
}

// GetUsersInRole returns every active user whose memberships include a role
// with the matching normalized name.
func (s *UserStore) GetUsersInRole(ctx context.Context, roleName string) ([]*identity.User, error) {
	if err := s.guard(ctx); err != nil {
		return nil, err
	}
	if roleName == "" {
		return nil, fmt.Errorf("role name is required: %w", identity.ErrInvalidArgument)
	}

	filter := bson.M{
		"roles": bson.M{
			"$elemMatch": bson.M{"normalizedName": strings.ToUpper(roleName)},
		},
	}
	return s.findAll(ctx, filter)
}
