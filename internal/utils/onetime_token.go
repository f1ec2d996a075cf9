package utils

import (
	"crypto/sha256"
	"encoding/hex"
)

// One-time tokens (email verification, password reset, refresh-token storage)
// are persisted only as SHA-256 digests; the raw value is transmitted once and
// never stored.

// HashToken returns the hex-encoded SHA-256 digest of a raw token string.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// CompareTokenHash compares a raw token against a stored SHA-256 digest.
func CompareTokenHash(token, storedHash string) bool {
	return HashToken(token) == storedHash
}

// GenerateOneTimeToken creates a new 32-byte random token, returning the raw
// hex value (for the out-of-band email channel) and its digest (for storage).
func GenerateOneTimeToken() (raw string, digest string, err error) {
	raw, err = GenerateSecureRandomString(32)
	if err != nil {
		return "", "", err
	}
	return raw, HashToken(raw), nil
}
