package pkg

import "golang.org/x/crypto/bcrypt"

// DefaultHashCost is used for admin secrets stored in the environment.
const DefaultHashCost = 14

func HashSecret(secret string, cost int) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(secret), cost)
	return BytesToString(bytes), err
}

func CheckSecretHash(secret, hash string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret)) == nil
}
