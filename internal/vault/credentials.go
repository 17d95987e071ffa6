package vault

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Bcrypt cost is fixed per deployment. The default keeps a single
// verification in the tens of milliseconds, which is the point: offline
// brute-forcing of short PINs has to pay that cost per guess.
const DefaultHashCost = bcrypt.DefaultCost

// CredentialManager derives and verifies the salted one-way password
// hashes stored on a document record.
type CredentialManager struct {
	cost int
}

func NewCredentialManager(cost int) *CredentialManager {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultHashCost
	}
	return &CredentialManager{cost: cost}
}

// Hash returns the salted bcrypt hash of password.
func (c *CredentialManager) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), c.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// Verify reports whether password matches the stored hash. Comparison is
// bcrypt's own constant-shape check; it does not short-circuit on a
// prefix mismatch.
func (c *CredentialManager) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
