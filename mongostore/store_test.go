package mongostore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewUserStoreWithCollections(t *testing.T) {
	users := &mockCollection{}
	roles := &mockCollection{}
	store := NewUserStoreWithCollections(users, roles)

	assert.NotNil(t, store)
	assert.Equal(t, Collection(users), store.users)
	assert.Equal(t, Collection(roles), store.roles)
	assert.False(t, store.closed.Load())
}

func TestNewRoleStoreWithCollection(t *testing.T) {
	roles := &mockCollection{}
	store := NewRoleStoreWithCollection(roles)

	assert.NotNil(t, store)
	assert.Equal(t, Collection(roles), store.roles)
	assert.False(t, store.closed.Load())
}
