package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost is the bcrypt work factor used unless configured otherwise.
const DefaultCost = 10

// saltLen is the length of "$2a$NN$" plus the 22-character encoded salt.
const saltLen = 29

// ErrMalformedHash reports stored password material that cannot be checked.
var ErrMalformedHash = errors.New("malformed password hash")

// BcryptHasher hashes passwords with bcrypt. The salt it reports is the
// prefix of the bcrypt string, so a stored (salt, hash) pair can be checked
// for consistency before comparing.
type BcryptHasher struct {
	cost int
}

func NewBcryptHasher(cost int) *BcryptHasher {
	if cost == 0 {
		cost = DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

// Hash salts and hashes plaintext with a fresh random salt.
func (h *BcryptHasher) Hash(plaintext string) (salt string, hash string, err error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", "", fmt.Errorf("hash password: %w", err)
	}
	hash = string(b)
	return hash[:saltLen], hash, nil
}

// Verify recomputes the hash of plaintext with the stored salt and
// compares it in constant time. A mismatch is (false, nil); unusable
// stored material is an error.
func (h *BcryptHasher) Verify(plaintext, hash, salt string) (bool, error) {
	if len(hash) < saltLen || hash[:saltLen] != salt {
		return false, ErrMalformedHash
	}

	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("%w: %v", ErrMalformedHash, err)
	}
}
