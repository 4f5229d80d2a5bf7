// Package auth provides the bcrypt hasher used for portal passcodes.
package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// BcryptPasswordHasher implements services.PasswordHasher using
// bcrypt.
type BcryptPasswordHasher struct {
	Cost int
}

// NewBcryptPasswordHasher creates a hasher. Cost <= 0 falls back to
// bcrypt.DefaultCost.
func NewBcryptPasswordHasher(cost int) *BcryptPasswordHasher {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	return &BcryptPasswordHasher{Cost: cost}
}

// Hash generates a bcrypt hash for the given passcode.
func (h *BcryptPasswordHasher) Hash(passcode string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(passcode), h.Cost)
	if err != nil {
		return "", fmt.Errorf("bcrypt hash generation failed: %w", err)
	}
	return string(hashedBytes), nil
}

// Verify compares a bcrypt hash with its possible plaintext
// equivalent. Returns nil on match.
func (h *BcryptPasswordHasher) Verify(hashedPasscode, passcode string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPasscode), []byte(passcode))
}
