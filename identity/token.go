package identity

// Token is an authentication token issued by an external provider, keyed by
// (loginProvider, name). Values are opaque to the store and last-write-wins.
type Token struct {
	LoginProvider string `bson:"loginProvider"`
	Name          string `bson:"name"`
	Value         string `bson:"value"`
}
