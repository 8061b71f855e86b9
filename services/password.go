package services

import (
	"crypto/rand"
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/argon2"
)

// argon2id parameters. Changing any of them invalidates stored digests.
const (
	saltLength    = 16
	argonTime     = 1
	argonMemory   = 64 * 1024
	argonThreads  = 4
	argonKeyBytes = 32
)

// NewSalt returns a fresh random salt for one password.
func NewSalt() ([]byte, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}
	return salt, nil
}

// HashPassword derives the stored digest for password under salt.
func HashPassword(password string, salt []byte) []byte {
	return argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, argonKeyBytes)
}

// VerifyPassword recomputes the digest and compares it in constant time.
func VerifyPassword(password string, salt, digest []byte) bool {
	if len(salt) == 0 || len(digest) == 0 {
		return false
	}
	return subtle.ConstantTimeCompare(HashPassword(password, salt), digest) == 1
}
