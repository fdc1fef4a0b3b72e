package user

import (
	"crypto/rand"
	"crypto/sha512"
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

const (
	saltLength     = 16
	hashIterations = 120_000
	hashKeyLength  = 64
)

// hashPassword derives a digest and a fresh random salt for the password.
func hashPassword(password string) (digest, salt []byte, err error) {
	salt = make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return nil, nil, fmt.Errorf("generate salt: %w", err)
	}
	digest = pbkdf2.Key([]byte(password), salt, hashIterations, hashKeyLength, sha512.New)
	return digest, salt, nil
}

// verifyPassword re-derives the digest with the stored salt and compares in
// constant time.
func verifyPassword(password string, digest, salt []byte) bool {
	computed := pbkdf2.Key([]byte(password), salt, hashIterations, hashKeyLength, sha512.New)
	return subtle.ConstantTimeCompare(computed, digest) == 1
}
