package service

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrPasswordMismatch is returned when the password does not match the
	// stored hash.
	ErrPasswordMismatch = errors.New("password does not match")
	// ErrMalformedHash is returned when the stored hash cannot be decoded.
	// This indicates store corruption, not a caller mistake.
	ErrMalformedHash = errors.New("stored password hash is malformed")
)

// bcryptCost matches the 10 rounds used when the user rows were written.
const bcryptCost = bcrypt.DefaultCost

// PasswordHasher performs one-way password hashing and verification.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) error
}

type bcryptHasher struct{}

// NewPasswordHasher creates a bcrypt-backed PasswordHasher.
func NewPasswordHasher() PasswordHasher {
	return &bcryptHasher{}
}

func (h *bcryptHasher) Hash(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify recomputes the digest and compares. A mismatch is an expected
// outcome and distinct from an undecodable stored hash.
func (h *bcryptHasher) Verify(plaintext, hash string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return ErrPasswordMismatch
	default:
		return ErrMalformedHash
	}
}
