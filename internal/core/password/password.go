// Package password wraps bcrypt behind a hash/verify pair.
//
// Hashing is deliberately expensive (adaptive work factor); the salt is
// generated per call and embedded in the output, so hashing the same
// plaintext twice yields different digests.
package password

import "golang.org/x/crypto/bcrypt"

// WorkFactor is the bcrypt cost applied to new hashes.
const WorkFactor = bcrypt.DefaultCost

// Hash returns the salted bcrypt digest of plaintext.
func Hash(plaintext string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(plaintext), WorkFactor)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// Verify reports whether plaintext matches the stored hash. A malformed or
// truncated hash is simply a non-match, never an error.
func Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
