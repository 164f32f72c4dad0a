package mongostore

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Default collection names; override by constructing stores from explicit
// collections.
const (
	UsersCollection = "users"
	RolesCollection = "roles"
)

// Connection wraps a mongo client scoped to one database.
type Connection struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewConnection connects to the given URI and pings the primary.
func NewConnection(ctx context.Context, uri, database string) (*Connection, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &Connection{
		client: client,
		db:     client.Database(database),
	}, nil
}

// Collection returns a handle to the named collection.
func (c *Connection) Collection(name string) *mongo.Collection {
	return c.db.Collection(name)
}

func (c *Connection) Close(ctx context.Context) error {
	if c.client == nil {
		return nil
	}
	return c.client.Disconnect(ctx)
}

func (c *Connection) Ping(ctx context.Context) error {
	if c.client == nil {
		return fmt.Errorf("mongo client is nil")
	}
	return c.client.Ping(ctx, readpref.Primary())
}

// EnsureIndexes creates the index set both stores rely on. It is meant to be
// invoked once by the process bootstrap, before any store is constructed.
//
// The user name/email indexes are lookup indexes, not unique: soft-deleted
// documents stay in the collection, and a unique index would block reuse of
// a retired name. Uniqueness among active users is the consuming layer's
// normalization contract.
func (c *Connection) EnsureIndexes(ctx context.Context, usersCollection, rolesCollection string) error {
	userIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "normalizedUserName", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "normalizedEmail", Value: 1}},
		},
		{
			Keys: bson.D{
				{Key: "logins.loginProvider", Value: 1},
				{Key: "logins.providerKey", Value: 1},
			},
		},
	}
	if _, err := c.Collection(usersCollection).Indexes().CreateMany(ctx, userIndexes); err != nil {
		return fmt.Errorf("failed to create user indexes: %w", err)
	}

	roleIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "normalizedName", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	if _, err := c.Collection(rolesCollection).Indexes().CreateMany(ctx, roleIndexes); err != nil {
		return fmt.Errorf("failed to create role indexes: %w", err)
	}

	return nil
}
