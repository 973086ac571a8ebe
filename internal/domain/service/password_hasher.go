// Package service defines interfaces for core, stateless domain logic.
// These services encapsulate rules that don't naturally fit within a single
// entity.
package service

// PasswordHasher defines the interface for password hashing and verification.
// This abstracts the underlying hashing algorithm (bcrypt), keeping the
// domain pure.
type PasswordHasher interface {
	// Hash generates a salted one-way digest from a plaintext password.
	// Every call produces a distinct digest because the salt is fresh.
	Hash(password string) (string, error)

	// Check compares a plaintext password with a digest in constant time.
	// A malformed digest yields false, never an error.
	Check(password, hash string) bool
}
