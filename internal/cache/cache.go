package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache stores fetched catalog blobs so repeated loads of the same remote
// source skip the network. The dataset is a static artifact, so a generous
// TTL is safe.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key generates a cache key from a catalog source URL or path
func Key(source string) string {
	hash := sha256.Sum256([]byte(source))
	return "koiscope:v1:" + hex.EncodeToString(hash[:])
}
