package password

import "golang.org/x/crypto/bcrypt"

// DefaultCost is the bcrypt cost used for new credentials.
const DefaultCost = 12

// MinLength matches the client-side requirement.
const MinLength = 8

// Hash hashes a password using bcrypt.
func Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), DefaultCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// Verify compares a password with a hash.
func Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// Valid checks if a password meets requirements.
func Valid(password string) bool {
	return len(password) >= MinLength
}
