package security

import "golang.org/x/crypto/bcrypt"

// MinCost is the floor for the adaptive hash cost factor.
const MinCost = 10

// HashPassword hashes a plain text password with bcrypt.
func HashPassword(plain string, cost int) (string, error) {
	if cost < MinCost {
		cost = MinCost
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(plain), cost)

	if err != nil {
		return "", err
	}

	return string(hash), nil
}

// CheckPassword compares a bcrypt hash with a plaintext password.
func CheckPassword(hash, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
}
