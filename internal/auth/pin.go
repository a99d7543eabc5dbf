// Package auth gates admin operations behind a single shared PIN.
package auth

import (
	"fmt"

	"github.com/arjunmehra/stumped/internal/cricket"
	"golang.org/x/crypto/bcrypt"
)

// HashPIN returns a salted bcrypt hash of the admin PIN. The plaintext is
// never stored.
func HashPIN(pin string) (string, error) {
	if pin == "" {
		return "", fmt.Errorf("%w: pin must not be empty", cricket.ErrValidation)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash pin: %w", err)
	}
	return string(hash), nil
}

// VerifyPIN checks a submitted PIN against the stored hash. Returns
// ErrUnauthorized on mismatch so handlers can map it straight to a 401.
func VerifyPIN(hash, pin string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(pin)); err != nil {
		return fmt.Errorf("%w: admin pin rejected", cricket.ErrUnauthorized)
	}
	return nil
}
