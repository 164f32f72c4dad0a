package identity

import (
	"strings"

	"github.com/google/uuid"
)

// Role is a named group of users carrying its own claims.
type Role struct {
	ID               string  `bson:"_id"`
	Name             string  `bson:"name"`
	NormalizedName   string  `bson:"normalizedName"`
	ConcurrencyStamp string  `bson:"concurrencyStamp"`
	Claims           []Claim `bson:"claims,omitempty"`
}

// NewRole creates a role with a generated id and concurrency stamp. The
// normalized name defaults to the upper-cased name; callers with a different
// folding policy may overwrite it via SetNormalizedName.
func NewRole(name string) *Role {
	return &Role{
		ID:               NewID(),
		Name:             name,
		NormalizedName:   strings.ToUpper(name),
		ConcurrencyStamp: uuid.NewString(),
	}
}

// SetName updates the role name. The normalized name must be kept in sync by
// the caller.
func (r *Role) SetName(name string) {
	r.Name = name
}

// SetNormalizedName stores the canonical lookup form of the role name.
func (r *Role) SetNormalizedName(normalized string) {
	r.NormalizedName = normalized
}

// AddClaim appends a claim to the role.
func (r *Role) AddClaim(claim Claim) {
	r.Claims = append(r.Claims, claim)
}

// RemoveClaim removes every claim equal to the given (type, value) pair.
func (r *Role) RemoveClaim(claim Claim) {
	kept := r.Claims[:0]
	for _, c := range r.Claims {
		if !c.Equal(claim) {
			kept = append(kept, c)
		}
	}
	r.Claims = kept
}

// HasClaim reports whether the role carries an equal claim.
func (r *Role) HasClaim(claim Claim) bool {
	for _, c := range r.Claims {
		if c.Equal(claim) {
			return true
		}
	}
	return false
}

func (r *Role) String() string {
	return r.Name
}
