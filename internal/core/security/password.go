// Package security holds the two cryptographic building blocks of the auth
// core: the bcrypt credential hasher and the JWT token codec.
package security

import "golang.org/x/crypto/bcrypt"

// HashPassword derives a salted bcrypt hash from a plaintext password.
func HashPassword(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether plaintext matches the stored hash. A malformed
// hash is treated as a mismatch, never an error.
func CheckPassword(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}

// dummyHash is a valid bcrypt hash of a random string. Login compares against
// it when the email is unknown so both rejection paths cost one bcrypt round.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// BurnCompare performs a bcrypt comparison that always fails, equalizing the
// timing of the unknown-email and wrong-password login paths.
func BurnCompare(plaintext string) {
	_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(plaintext))
}
