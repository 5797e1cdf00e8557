package auth

import "golang.org/x/crypto/bcrypt"

// HashOperatorKey is used by deploy tooling to produce OPERATOR_KEY_HASH.
func HashOperatorKey(key string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.DefaultCost)
	return string(b), err
}

func VerifyOperatorKey(key, hash string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(key))
}
