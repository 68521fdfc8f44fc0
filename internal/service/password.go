package service

import (
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// PasswordCost matches the cost used by the client service.
const PasswordCost = 12

// legacyHashPrefix marks hashes written by the previous admin backend.
const legacyHashPrefix = "bcrypt_pure$"

// HashPassword returns a $2a$ bcrypt hash readable by the client service.
func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), PasswordCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword compares plain against a stored hash, accepting the legacy prefix.
func CheckPassword(stored, plain string) bool {
	stored = strings.TrimPrefix(stored, legacyHashPrefix)
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(plain)) == nil
}
