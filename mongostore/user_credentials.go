package mongostore

import (
	"context"
	"fmt"
	"time"

	"github.com/miendev/mongo-identity/identity"
)

// Password, security stamp, lockout, phone number and two-factor operations.
// All of these mutate the in-memory aggregate; the next Update persists them.

func (s *UserStore) SetPasswordHash(ctx context.Context, user *identity.User, passwordHash string) error {
	if err := s.guardUser(ctx, user); err != nil {
		return err
	}
	user.SetPasswordHash(passwordHash)
	return nil
}

func (s *UserStore) GetPasswordHash(ctx context.Context, user *identity.User) (string, error) {
	if err := s.guardUser(ctx, user); err != nil {
		return "", err
	}
	return user.PasswordHash, nil
}

func (s *UserStore) HasPassword(ctx context.Context, user *identity.User) (bool, error) {
	if err := s.guardUser(ctx, user); err != nil {
		return false, err
	}
	return user.PasswordHash != "", nil
}

func (s *UserStore) SetSecurityStamp(ctx context.Context, user *identity.User, stamp string) error {
	if err := s.guardUser(ctx, user); err != nil {
		return err
	}
	user.SetSecurityStamp(stamp)
	return nil
}

func (s *UserStore) GetSecurityStamp(ctx context.Context, user *identity.User) (string, error) {
	if err := s.guardUser(ctx, user); err != nil {
		return "", err
	}
	return user.SecurityStamp, nil
}

// GetLockoutEnd returns the raw lockout end timestamp. A nil or past value
// means the user is not locked out; the store does not clear stale values.
func (s *UserStore) GetLockoutEnd(ctx context.Context, user *identity.User) (*time.Time, error) {
	if err := s.guardUser(ctx, user); err != nil {
		return nil, err
	}
	return user.LockoutEnd, nil
}

func (s *UserStore) SetLockoutEnd(ctx context.Context, user *identity.User, end *time.Time) error {
	if err := s.guardUser(ctx, user); err != nil {
		return err
	}
	user.LockoutEnd = end
	return nil
}

// IncrementAccessFailedCount bumps the failed-login counter and returns the
// new value. No upper bound is enforced at this layer.
func (s *UserStore) IncrementAccessFailedCount(ctx context.Context, user *identity.User) (int, error) {
	if err := s.guardUser(ctx, user); err != nil {
		return 0, err
	}
	return user.IncrementAccessFailedCount(), nil
}

func (s *UserStore) ResetAccessFailedCount(ctx context.Context, user *identity.User) error {
	if err := s.guardUser(ctx, user); err != nil {
		return err
	}
	user.ResetAccessFailedCount()
	return nil
}

func (s *UserStore) GetAccessFailedCount(ctx context.Context, user *identity.User) (int, error) {
	if err := s.guardUser(ctx, user); err != nil {
		return 0, err
	}
	return user.AccessFailedCount, nil
}

func (s *UserStore) GetLockoutEnabled(ctx context.Context, user *identity.User) (bool, error) {
	if err := s.guardUser(ctx, user); err != nil {
		return false, err
	}
	return user.LockoutEnabled, nil
}

func (s *UserStore) SetLockoutEnabled(ctx context.Context, user *identity.User, enabled bool) error {
	if err := s.guardUser(ctx, user); err != nil {
		return err
	}
	if enabled {
		user.EnableLockout()
	} else {
		user.DisableLockout()
	}
	return nil
}

// SetPhoneNumber attaches a mobile contact record built from the raw value.
func (s *UserStore) SetPhoneNumber(ctx context.Context, user *identity.User, phoneNumber string) error {
	if err := s.guardUser(ctx, user); err != nil {
		return err
	}

	record, err := identity.NewMobile(phoneNumber)
	if err != nil {
		return err
	}
	user.SetPhoneNumber(record)
	return nil
}

func (s *UserStore) GetPhoneNumber(ctx context.Context, user *identity.User) (string, error) {
	if err := s.guardUser(ctx, user); err != nil {
		return "", err
	}
	if user.PhoneNumber == nil {
		return "", nil
	}
	return user.PhoneNumber.Value, nil
}

func (s *UserStore) GetPhoneNumberConfirmed(ctx context.Context, user *identity.User) (bool, error) {
	if err := s.guardUser(ctx, user); err != nil {
		return false, err
	}
	return user.PhoneNumber != nil && user.PhoneNumber.IsConfirmed, nil
}

// SetPhoneNumberConfirmed confirms or unconfirms the phone contact record.
// Unconfirming clears the confirmation timestamp.
func (s *UserStore) SetPhoneNumberConfirmed(ctx context.Context, user *identity.User, confirmed bool) error {
	if err := s.guardUser(ctx, user); err != nil {
		return err
	}
	if user.PhoneNumber == nil {
		return fmt.Errorf("user has no phone number: %w", identity.ErrInvalidArgument)
	}

	if confirmed {
		user.PhoneNumber.Confirm()
	} else {
		user.PhoneNumber.Unconfirm()
	}
	return nil
}

func (s *UserStore) SetTwoFactorEnabled(ctx context.Context, user *identity.User, enabled bool) error {
	if err := s.guardUser(ctx, user); err != nil {
		return err
	}
	if enabled {
		user.EnableTwoFactor()
	} else {
		user.DisableTwoFactor()
	}
	return nil
}

func (s *UserStore) GetTwoFactorEnabled(ctx context.Context, user *identity.User) (bool, error) {
	if err := s.guardUser(ctx, user); err != nil {
		return false, err
	}
	return user.TwoFactorEnabled, nil
}

func (s *UserStore) guardUser(ctx context.Context, user *identity.User) error {
	if err := s.guard(ctx); err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("user is required: %w", identity.ErrInvalidArgument)
	}
	return nil
}
