// Package auth provides password credentials, session identity, and the
// authentication guard.
package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// pbkdf2Iterations matches the cost the stored hashes were created with.
	// Changing it invalidates every stored credential.
	pbkdf2Iterations = 100_000

	saltEntropyBytes = 60
	saltHexLen       = 64 // hex(SHA-256(...)) of the raw entropy
	digestLen        = 32
)

// HashPassword derives a stored credential from a plaintext password.
//
// The stored form is salt||digest: a 64-char hex salt followed by the
// 64-char hex PBKDF2-SHA256 digest. Two calls on the same password produce
// different stored forms because the salt is random.
func HashPassword(password string) (string, error) {
	entropy := make([]byte, saltEntropyBytes)
	if _, err := rand.Read(entropy); err != nil {
		return "", fmt.Errorf("generating salt: %w", err)
	}

	sum := sha256.Sum256(entropy)
	salt := hex.EncodeToString(sum[:])

	digest := pbkdf2.Key([]byte(password), []byte(salt), pbkdf2Iterations, digestLen, sha256.New)
	return salt + hex.EncodeToString(digest), nil
}

// VerifyPassword reports whether candidate matches the stored credential.
// The comparison is constant-time over the digest.
func VerifyPassword(stored, candidate string) bool {
	if len(stored) != saltHexLen+digestLen*2 {
		return false
	}

	salt := stored[:saltHexLen]
	want := stored[saltHexLen:]

	digest := pbkdf2.Key([]byte(candidate), []byte(salt), pbkdf2Iterations, digestLen, sha256.New)
	got := hex.EncodeToString(digest)

	return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}
