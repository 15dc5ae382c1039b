package prefs

import (
	"crypto/sha256"
	"encoding/hex"
)

// hashKey returns the first 16 hex characters of the SHA-256 of key, a
// filesystem-safe file stem for any key.
func hashKey(key string) string {
	h := sha256.Sum256([]byte(key))
	return hex.EncodeToString(h[:8])
}
