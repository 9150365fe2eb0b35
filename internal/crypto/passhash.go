// Package crypto implements server-side password digesting and verification.
package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Hasher turns a plaintext secret into a stored digest and checks a presented
// secret against one. Implementations must never expose the plaintext.
type Hasher interface {
	// Hash computes the stored digest for a secret.
	Hash(secret string) (string, error)
	// Verify reports whether secret matches the stored digest.
	Verify(secret, digest string) bool
}

// NewHasher returns the Hasher for a configured scheme name.
// Unknown schemes fall back to the legacy one.
func NewHasher(scheme string) Hasher {
	if scheme == "argon2id" {
		return Argon2Hasher{}
	}
	return LegacyHasher{}
}

// LegacyHasher is an unsalted SHA-256 digest encoded as standard base64,
// byte-compatible with digests already stored by earlier deployments.
//
// Known weakness: with no per-account salt, identical passwords produce
// identical digests and the scheme is open to precomputed-table attacks.
// Kept as the default because changing it would invalidate stored digests;
// new deployments should pick Argon2Hasher instead.
type LegacyHasher struct{}

// Hash returns base64(SHA-256(secret)). Deterministic for the same input.
func (LegacyHasher) Hash(secret string) (string, error) {
	sum := sha256.Sum256([]byte(secret))
	return base64.StdEncoding.EncodeToString(sum[:]), nil
}

// Verify recomputes the digest and compares in constant time.
func (LegacyHasher) Verify(secret, digest string) bool {
	sum := sha256.Sum256([]byte(secret))
	want, err := base64.StdEncoding.DecodeString(digest)
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare(sum[:], want) == 1
}

// Argon2id parameters (tuned for server-side hashing).
const (
	argonTime    uint32 = 3         // iterations
	argonMemory  uint32 = 64 * 1024 // 64 MB
	argonThreads uint8  = 1
	argonKeyLen  uint32 = 32
	argonSaltLen        = 16
)

// Argon2Hasher is a salted Argon2id scheme. Each digest carries its own random
// salt in a "$argon2id$<base64 salt>$<base64 key>" form, so Verify needs no
// external state and the Hasher contract is unchanged.
type Argon2Hasher struct{}

// Hash derives an Argon2id key under a fresh random salt.
func (Argon2Hasher) Hash(secret string) (string, error) {
	salt, err := RandBytes(argonSaltLen)
	if err != nil {
		return "", err
	}
	key := argon2.IDKey([]byte(secret), salt, argonTime, argonMemory, argonThreads, argonKeyLen)
	return fmt.Sprintf("$argon2id$%s$%s",
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key)), nil
}

// Verify re-derives the key under the digest's embedded salt and compares in
// constant time. Malformed digests verify as false, never as an error.
func (Argon2Hasher) Verify(secret, digest string) bool {
	parts := strings.Split(digest, "$")
	if len(parts) != 4 || parts[0] != "" || parts[1] != "argon2id" {
		return false
	}
	salt, err := base64.RawStdEncoding.DecodeString(parts[2])
	if err != nil {
		return false
	}
	want, err := base64.RawStdEncoding.DecodeString(parts[3])
	if err != nil {
		return false
	}
	got := argon2.IDKey([]byte(secret), salt, argonTime, argonMemory, argonThreads, argonKeyLen)
	return subtle.ConstantTimeCompare(got, want) == 1
}

// RandBytes returns n cryptographically secure random bytes.
func RandBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	_, err := rand.Read(b)
	return b, err
}
