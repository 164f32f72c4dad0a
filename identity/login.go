package identity

// Login binds a user to an external login provider identity.
type Login struct {
	LoginProvider       string `bson:"loginProvider"`
	ProviderKey         string `bson:"providerKey"`
	ProviderDisplayName string `bson:"providerDisplayName,omitempty"`
}

// Equal reports whether both logins name the same (provider, key) pair.
// The display name does not participate in equality.
func (l Login) Equal(other Login) bool {
	return l.LoginProvider == other.LoginProvider && l.ProviderKey == other.ProviderKey
}
