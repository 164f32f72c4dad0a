package identity

import (
	"fmt"
	"time"
)

// ContactType discriminates contact records. The numeric values are part of
// the persisted wire format and must never be renumbered.
type ContactType int

const (
	ContactTypeNone      ContactType = 0
	ContactTypeEmail     ContactType = 1
	ContactTypeMobile    ContactType = 2
	ContactTypeTelephone ContactType = 4
)

// ContactRecord is a normalized email or phone value with confirmation state.
// Two records are considered equal when their normalized values match.
type ContactRecord struct {
	Type            ContactType `bson:"type"`
	Value           string      `bson:"value"`
	NormalizedValue string      `bson:"normalizedValue,omitempty"`
	IsConfirmed     bool        `bson:"isConfirmed"`
	ConfirmedOn     *time.Time  `bson:"confirmedOn,omitempty"`
}

func newContactRecord(contactType ContactType, value string) (*ContactRecord, error) {
	if value == "" {
		return nil, fmt.Errorf("contact value is required: %w", ErrInvalidArgument)
	}
	return &ContactRecord{Type: contactType, Value: value}, nil
}

// NewEmail creates an email contact record.
func NewEmail(value string) (*ContactRecord, error) {
	return newContactRecord(ContactTypeEmail, value)
}

// NewMobile creates a mobile phone contact record.
func NewMobile(value string) (*ContactRecord, error) {
	return newContactRecord(ContactTypeMobile, value)
}

// NewTelephone creates a landline contact record.
func NewTelephone(value string) (*ContactRecord, error) {
	return newContactRecord(ContactTypeTelephone, value)
}

// SetNormalizedValue stores the canonical form used for uniqueness lookups.
// Case-folding policy belongs to the caller.
func (c *ContactRecord) SetNormalizedValue(normalized string) {
	c.NormalizedValue = normalized
}

// Confirm marks the contact as confirmed at the current UTC time.
func (c *ContactRecord) Confirm() {
	now := time.Now().UTC()
	c.IsConfirmed = true
	c.ConfirmedOn = &now
}

// Unconfirm clears the confirmation state, including the confirmation time.
func (c *ContactRecord) Unconfirm() {
	c.IsConfirmed = false
	c.ConfirmedOn = nil
}

// Equal reports whether both records share the same normalized value.
func (c *ContactRecord) Equal(other *ContactRecord) bool {
	if other == nil {
		return false
	}
	return c.NormalizedValue == other.NormalizedValue
}

func (c *ContactRecord) String() string {
	return c.Value
}
