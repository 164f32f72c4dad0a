package mongostore

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/miendev/mongo-identity/identity"
)

// GetClaims returns a copy of the user's claims.
func (s *UserStore) GetClaims(ctx context.Context, user *identity.User) ([]identity.Claim, error) {
	if err := s.guard(ctx); err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("user is required: %w", identity.ErrInvalidArgument)
	}

	claims := make([]identity.Claim, len(user.Claims))
	copy(claims, user.Claims)
	return claims, nil
}

// AddClaims appends the given claims to the user. Claims are in-memory only
// and reach storage on the next Update.
func (s *UserStore) AddClaims(ctx context.Context, user *identity.User, claims []identity.Claim) error {
	if err := s.guard(ctx); err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("user is required: %w", identity.ErrInvalidArgument)
	}

	for _, claim := range claims {
		if claim.Type == "" {
			return fmt.Errorf("claim type is required: %w", identity.ErrInvalidArgument)
		}
		user.AddClaim(claim)
	}
	return nil
}

// ReplaceClaim swaps every claim equal to old for the replacement.
func (s *UserStore) ReplaceClaim(ctx context.Context, user *identity.User, old, replacement identity.Claim) error {
	if err := s.guard(ctx); err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("user is required: %w", identity.ErrInvalidArgument)
	}
	if old.Type == "" || replacement.Type == "" {
		return fmt.Errorf("claim type is required: %w", identity.ErrInvalidArgument)
	}

	user.ReplaceClaim(old, replacement)
	return nil
}

// RemoveClaims removes every claim equal to one of the given (type, value)
// pairs.
func (s *UserStore) RemoveClaims(ctx context.Context, user *identity.User, claims []identity.Claim) error {
	if err := s.guard(ctx); err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("user is required: %w", identity.ErrInvalidArgument)
	}

	for _, claim := range claims {
		user.RemoveClaim(claim)
	}
	return nil
}

// GetUsersForClaim returns every active user carrying an equal claim.
func (s *UserStore) GetUsersForClaim(ctx context.Context, claim identity.Claim) ([]*identity.User, error) {
	if err := s.guard(ctx); err != nil {
		return nil, err
	}
	if claim.Type == "" {
		return nil, fmt.Errorf("claim type is required: %w", identity.ErrInvalidArgument)
	}

	filter := bson.M{
		"claims": bson.M{
			"$elemMatch": bson.M{
				"claimType":  claim.Type,
				"claimValue": claim.Value,
			},
		},
	}
	return s.findAll(ctx, filter)
}
