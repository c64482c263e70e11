package utils

import "golang.org/x/crypto/bcrypt"

// VerifyPassword safely compares a bcrypt hash and a plain password.
// Used to check the operator password against the configured hash.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
