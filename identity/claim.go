package identity

// Claim is a key/value security claim owned by exactly one user or role.
type Claim struct {
	Type  string `bson:"claimType"`
	Value string `bson:"claimValue"`
}

// Equal reports whether both claims share the same (type, value) pair.
func (c Claim) Equal(other Claim) bool {
	return c.Type == other.Type && c.Value == other.Value
}
