package mongostore

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/miendev/mongo-identity/identity"
)

var _ identity.RoleStore = (*RoleStore)(nil)

// RoleStore persists identity.Role documents. Roles are hard-deleted; the
// update path applies the same optimistic-concurrency discipline as the user
// store.
type RoleStore struct {
	roles  Collection
	closed atomic.Bool
}

// NewRoleStore builds a store over the default role collection.
func NewRoleStore(conn *Connection) *RoleStore {
	return NewRoleStoreWithCollection(conn.Collection(RolesCollection))
}

// NewRoleStoreWithCollection builds a store over an explicit collection.
func NewRoleStoreWithCollection(roles Collection) *RoleStore {
	return &RoleStore{roles: roles}
}

// Close marks the store unusable. Subsequent calls fail with ErrStoreClosed.
func (s *RoleStore) Close() error {
	s.closed.Store(true)
	return nil
}

func (s *RoleStore) guard(ctx context.Context) error {
	if s.closed.Load() {
		return identity.ErrStoreClosed
	}
	return ctx.Err()
}

// Create inserts a new role document.
func (s *RoleStore) Create(ctx context.Context, role *identity.Role) error {
	if err := s.guard(ctx); err != nil {
		return err
	}
	if role == nil {
		return fmt.Errorf("role is required: %w", identity.ErrInvalidArgument)
	}

	if _, err := s.roles.InsertOne(ctx, role); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("role %q: %w", role.ID, identity.ErrDuplicateKey)
		}
		return fmt.Errorf("failed to create role: %w", err)
	}
	return nil
}

// Update replaces the stored document, conditional on the concurrency stamp
// the caller read. A fresh stamp is written with the replacement; on
// conflict the in-memory stamp is left as read.
func (s *RoleStore) Update(ctx context.Context, role *identity.Role) error {
	if err := s.guard(ctx); err != nil {
		return err
	}
	if role == nil {
		return fmt.Errorf("role is required: %w", identity.ErrInvalidArgument)
	}

	readStamp := role.ConcurrencyStamp
	role.ConcurrencyStamp = uuid.NewString()

	filter := bson.M{"_id": role.ID, "concurrencyStamp": readStamp}
	result, err := s.roles.ReplaceOne(ctx, filter, role)
	if err != nil {
		role.ConcurrencyStamp = readStamp
		return fmt.Errorf("failed to update role: %w", err)
	}
	if result.ModifiedCount != 1 {
		role.ConcurrencyStamp = readStamp
		return fmt.Errorf("role %q: %w", role.ID, identity.ErrConcurrencyConflict)
	}
	return nil
}

// Delete removes the role document. Roles are not soft-deleted.
func (s *RoleStore) Delete(ctx context.Context, role *identity.Role) error {
	if err := s.guard(ctx); err != nil {
		return err
	}
	if role == nil {
		return fmt.Errorf("role is required: %w", identity.ErrInvalidArgument)
	}

	result, err := s.roles.DeleteOne(ctx, bson.M{"_id": role.ID})
	if err != nil {
		return fmt.Errorf("failed to delete role: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("role %q: %w", role.ID, identity.ErrNotFound)
	}
	return nil
}

// FindByID returns the role with the given id.
func (s *RoleStore) FindByID(ctx context.Context, id string) (*identity.Role, error) {
	if err := s.guard(ctx); err != nil {
		return nil, err
	}
	if id == "" {
		return nil, fmt.Errorf("role id is required: %w", identity.ErrInvalidArgument)
	}
	return s.findOne(ctx, bson.M{"_id": id})
}

// FindByNormalizedName returns the role with the given normalized name.
func (s *RoleStore) FindByNormalizedName(ctx context.Context, normalizedName string) (*identity.Role, error) {
	if err := s.guard(ctx); err != nil {
		return nil, err
	}
	if normalizedName == "" {
		return nil, fmt.Errorf("normalized role name is required: %w", identity.ErrInvalidArgument)
	}
	return s.findOne(ctx, bson.M{"normalizedName": normalizedName})
}

// GetClaims returns a copy of the role's claims.
func (s *RoleStore) GetClaims(ctx context.Context, role *identity.Role) ([]identity.Claim, error) {
	if err := s.guard(ctx); err != nil {
		return nil, err
	}
	if role == nil {
		return nil, fmt.Errorf("role is required: %w", identity.ErrInvalidArgument)
	}

	claims := make([]identity.Claim, len(role.Claims))
	copy(claims, role.Claims)
	return claims, nil
}

// AddClaim appends a claim to the role. The claim is in-memory only and
// reaches storage on the next Update.
func (s *RoleStore) AddClaim(ctx context.Context, role *identity.Role, claim identity.Claim) error {
	if err := s.guard(ctx); err != nil {
		return err
	}
	if role == nil {
		return fmt.Errorf("role is required: %w", identity.ErrInvalidArgument)
	}
	if claim.Type == "" {
		return fmt.Errorf("claim type is required: %w", identity.ErrInvalidArgument)
	}

	role.AddClaim(claim)
	return nil
}

// RemoveClaim removes every claim equal to the given (type, value) pair.
func (s *RoleStore) RemoveClaim(ctx context.Context, role *identity.Role, claim identity.Claim) error {
	if err := s.guard(ctx); err != nil {
		return err
	}
	if role == nil {
		return fmt.Errorf("role is required: %w", identity.ErrInvalidArgument)
	}

	role.RemoveClaim(claim)
	return nil
}

func (s *RoleStore) findOne(ctx context.Context, filter bson.M) (*identity.Role, error) {
	var role identity.Role
	if err := s.roles.FindOne(ctx, filter).Decode(&role); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, identity.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find role: %w", err)
	}
	return &role, nil
}
