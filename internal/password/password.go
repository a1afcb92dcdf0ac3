// Package password hashes and verifies account passwords with bcrypt.
package password

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
)

// MaxBytes is the longest input bcrypt considers.
const MaxBytes = 72

// Truncate cuts pw to MaxBytes without splitting a UTF-8 sequence.
func Truncate(pw string) string {
	if len(pw) <= MaxBytes {
		return pw
	}
	cut := MaxBytes
	for cut > 0 && !utf8.RuneStart(pw[cut]) {
		cut--
	}
	return pw[:cut]
}

// Hash returns the bcrypt hash of pw after truncation.
func Hash(pw string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(Truncate(pw)), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(h), nil
}

// IsHash reports whether s is a well-formed bcrypt hash.
func IsHash(s string) bool {
	_, err := bcrypt.Cost([]byte(s))
	return err == nil
}

// Verify reports whether pw matches hash. A stored value that is not a bcrypt
// hash never matches.
func Verify(hash, pw string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(Truncate(pw)))
	return err == nil
}

// ErrAlreadyHashed is returned by Upgrade for values that need no migration.
var ErrAlreadyHashed = errors.New("password is already a bcrypt hash")

// Upgrade hashes a legacy plaintext value.
func Upgrade(stored string) (string, error) {
	if IsHash(stored) {
		return "", ErrAlreadyHashed
	}
	return Hash(stored)
}
