package memory

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// TokenBlacklist remembers revoked access tokens until they would have
// expired anyway. In-process only: a restart forgets revocations, which is
// acceptable because tokens are short-lived.
type TokenBlacklist struct {
	store *gocache.Cache
}

func NewTokenBlacklist() *TokenBlacklist {
	return &TokenBlacklist{
		store: gocache.New(gocache.NoExpiration, 10*time.Minute),
	}
}

// Revoke blacklists a token for the remaining lifetime it had.
func (b *TokenBlacklist) Revoke(token string, until time.Time) {
	ttl := time.Until(until)
	if ttl <= 0 {
		return
	}
	b.store.Set(token, struct{}{}, ttl)
}

func (b *TokenBlacklist) IsRevoked(token string) bool {
	_, found := b.store.Get(token)
	return found
}
