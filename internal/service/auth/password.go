package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordService defines hashing and verification of local passwords.
type PasswordService interface {
	// Hash produces a salted, self-describing digest of the password.
	// Hashing the same password twice yields different digests; both verify.
	Hash(password string) (string, error)

	// Compare compares a hashed password with its possible plaintext
	// equivalent. Returns nil on success, or an error on failure (mismatch
	// or malformed digest). Never panics on malformed digest input.
	Compare(hashedPassword, password string) error
}

// BcryptService implements PasswordService using bcrypt. The digest embeds
// the algorithm, cost, and salt, so the cost can be raised later without
// invalidating existing digests. Comparison is constant-time inside bcrypt.
type BcryptService struct {
	cost int
}

// NewBcryptService creates a BcryptService with the given cost.
// A cost outside bcrypt's supported range falls back to the default.
func NewBcryptService(cost int) *BcryptService {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptService{cost: cost}
}

// Ensure BcryptService implements PasswordService interface
var _ PasswordService = (*BcryptService)(nil)

// Hash implements PasswordService.Hash.
func (s *BcryptService) Hash(password string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(digest), nil
}

// Compare implements PasswordService.Compare using bcrypt.
func (s *BcryptService) Compare(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}
