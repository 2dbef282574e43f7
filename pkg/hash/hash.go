package hash

import "golang.org/x/crypto/bcrypt"

// Cost matches what the credential records were historically hashed with.
const Cost = 12

func HashPassword(password string) (string, error) {
	hashBytes, err := bcrypt.GenerateFromPassword([]byte(password), Cost)
	if err != nil {
		return "", err
	}
	return string(hashBytes), nil
}

// CheckPassword compares in constant time through bcrypt; the plaintext is
// never compared directly.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
