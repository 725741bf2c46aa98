// Package password provides bcrypt hashing for broker credentials.
package password

import "golang.org/x/crypto/bcrypt"

// bcryptCost of 12 keeps hashing around 250ms on current hardware.
const bcryptCost = 12

// Hash hashes a plaintext password with bcrypt.
func Hash(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify reports whether the plaintext matches the stored hash.
func Verify(hash, plaintext string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
