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

var _ identity.UserStore = (*UserStore)(nil)

// UserStore persists identity.User aggregates in a mongo collection. It is
// the sole gateway between in-memory users and storage: it enforces the
// soft-delete visibility rule, optimistic concurrency on update, and login
// uniqueness.
//
// Entity mutations (claims, logins, lockout counters, ...) touch only the
// in-memory aggregate; they reach storage on the next Update.
type UserStore struct {
	users  Collection
	roles  Collection
	closed atomic.Bool
}

// NewUserStore builds a store over the default collection names.
func NewUserStore(conn *Connection) *UserStore {
	return NewUserStoreWithCollections(conn.Collection(UsersCollection), conn.Collection(RolesCollection))
}

// NewUserStoreWithCollections builds a store over explicit collections. The
// role collection is consulted for role-name resolution only.
func NewUserStoreWithCollections(users, roles Collection) *UserStore {
	return &UserStore{
		users: users,
		roles: roles,
	}
}

// Close marks the store unusable. Subsequent calls fail with ErrStoreClosed;
// in-flight calls are not aborted.
func (s *UserStore) Close() error {
	s.closed.Store(true)
	return nil
}

// guard rejects calls on a closed store or an already-done context.
func (s *UserStore) guard(ctx context.Context) error {
	if s.closed.Load() {
		return identity.ErrStoreClosed
	}
	return ctx.Err()
}

// activeOnly extends a filter with the soft-delete visibility predicate. A
// nil deletedOn matches documents where the field is absent or null.
func activeOnly(filter bson.M) bson.M {
	filter["deletedOn"] = nil
	return filter
}

func (s *UserStore) findOne(ctx context.Context, filter bson.M) (*identity.User, error) {
	var user identity.User
	if err := s.users.FindOne(ctx, activeOnly(filter)).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, identity.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &user, nil
}

func (s *UserStore) findAll(ctx context.Context, filter bson.M) ([]*identity.User, error) {
	cursor, err := s.users.Find(ctx, activeOnly(filter))
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}

	var users []*identity.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}
	return users, nil
}

// Create inserts a new user document.
func (s *UserStore) Create(ctx context.Context, user *identity.User) error {
	if err := s.guard(ctx); err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("user is required: %w", identity.ErrInvalidArgument)
	}

	if _, err := s.users.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("user %q: %w", user.ID, identity.ErrDuplicateKey)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// Update replaces the stored document, conditional on the id, the document
// still being active, and the concurrency stamp the caller read. A fresh
// stamp is written with the replacement; on conflict the in-memory stamp is
// left as read so the caller can re-fetch and retry.
func (s *UserStore) Update(ctx context.Context, user *identity.User) error {
	if err := s.guard(ctx); err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("user is required: %w", identity.ErrInvalidArgument)
	}

	readStamp := user.ConcurrencyStamp
	user.ConcurrencyStamp = uuid.NewString()

	filter := activeOnly(bson.M{"_id": user.ID, "concurrencyStamp": readStamp})
	result, err := s.users.ReplaceOne(ctx, filter, user)
	if err != nil {
		user.ConcurrencyStamp = readStamp
		return fmt.Errorf("failed to update user: %w", err)
	}
	if result.ModifiedCount != 1 {
		user.ConcurrencyStamp = readStamp
		return fmt.Errorf("user %q: %w", user.ID, identity.ErrConcurrencyConflict)
	}
	return nil
}

// Delete soft-deletes the user: the deletedOn timestamp is set and persisted
// via a field update; the document is retained.
func (s *UserStore) Delete(ctx context.Context, user *identity.User) error {
	if err := s.guard(ctx); err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("user is required: %w", identity.ErrInvalidArgument)
	}

	if err := user.Delete(); err != nil {
		return err
	}

	result, err := s.users.UpdateOne(ctx,
		bson.M{"_id": user.ID},
		bson.M{"$set": bson.M{"deletedOn": user.DeletedOn}},
	)
	if err != nil {
		user.DeletedOn = nil
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if result.MatchedCount == 0 {
		user.DeletedOn = nil
		return fmt.Errorf("user %q: %w", user.ID, identity.ErrNotFound)
	}
	return nil
}

// FindByID returns the active user with the given id.
func (s *UserStore) FindByID(ctx context.Context, id string) (*identity.User, error) {
	if err := s.guard(ctx); err != nil {
		return nil, err
	}
	if id == "" {
		return nil, fmt.Errorf("user id is required: %w", identity.ErrInvalidArgument)
	}
	return s.findOne(ctx, bson.M{"_id": id})
}

// FindByNormalizedUserName returns the active user with the given normalized
// user name.
func (s *UserStore) FindByNormalizedUserName(ctx context.Context, normalizedUserName string) (*identity.User, error) {
	if err := s.guard(ctx); err != nil {
		return nil, err
	}
	if normalizedUserName == "" {
		return nil, fmt.Errorf("normalized user name is required: %w", identity.ErrInvalidArgument)
	}
	return s.findOne(ctx, bson.M{"normalizedUserName": normalizedUserName})
}

// FindByNormalizedEmail returns the active user with the given normalized
// email.
func (s *UserStore) FindByNormalizedEmail(ctx context.Context, normalizedEmail string) (*identity.User, error) {
	if err := s.guard(ctx); err != nil {
		return nil, err
	}
	if normalizedEmail == "" {
		return nil, fmt.Errorf("normalized email is required: %w", identity.ErrInvalidArgument)
	}
	return s.findOne(ctx, bson.M{"normalizedEmail": normalizedEmail})
}

// ListUsers returns every active user.
func (s *UserStore) ListUsers(ctx context.Context) ([]*identity.User, error) {
	if err := s.guard(ctx); err != nil {
		return nil, err
	}
	return s.findAll(ctx, bson.M{})
}
