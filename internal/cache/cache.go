package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the interface for caching
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key builds a cache key from document content and the ontology fingerprint,
// so a changed document or a changed ontology both invalidate the entry.
func Key(content []byte, ontologyFingerprint string) string {
	hash := sha256.Sum256(content)
	return "ipolock:v1:" + ontologyFingerprint + ":" + hex.EncodeToString(hash[:])
}
