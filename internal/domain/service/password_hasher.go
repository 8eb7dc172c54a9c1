// Package service declares the collaborators the catalog core depends on but does not implement:
// token validation, event publishing, tool handlers and the primitives built-in tools use.
package service

import "errors"

// ErrMalformedHash is returned by Verify when the stored hash cannot be parsed.
var ErrMalformedHash = errors.New("malformed hash")

// HashInfo describes a hash produced by a PasswordHasher.
type HashInfo struct {
	Algorithm string
	Cost      int
}

// PasswordHasher backs the bcrypt-hash tool.
type PasswordHasher interface {
	Hash(password string) (string, error)

	// Verify reports whether password matches hash. A mismatch is (false, nil);
	// a hash that is not in the hasher's format yields ErrMalformedHash.
	Verify(password, hash string) (bool, error)

	Inspect(hash string) (HashInfo, error)
}
