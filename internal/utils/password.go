package utils

import "golang.org/x/crypto/bcrypt" // Password hashing

// bcrypt only reads the first 72 bytes of its input
const maxPasswordBytes = 72

// HashPassword returns a salted bcrypt digest; each call picks a fresh salt
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(passwordBytes(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches digest.
// A malformed digest is treated as a mismatch.
func CheckPassword(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), passwordBytes(password)) == nil
}

// passwordBytes truncates to the bcrypt input limit so long passwords hash instead of failing
func passwordBytes(password string) []byte {
	b := []byte(password)
	if len(b) > maxPasswordBytes {
		b = b[:maxPasswordBytes]
	}
	return b
}
