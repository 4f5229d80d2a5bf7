package cache

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashToken hashes a token before it is used as a cache or storage
// key, so raw access tokens never land in the cache backend.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
