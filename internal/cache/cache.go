package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the interface for the byte-value cache layers.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key generates a stable cache key for a fetched page URL.
func Key(url string) string {
	hash := sha256.Sum256([]byte(url))
	return "tnw:v1:" + hex.EncodeToString(hash[:])
}
