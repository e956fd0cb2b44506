package utils

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrPasswordTooLong is returned for passwords bcrypt would truncate.
var ErrPasswordTooLong = errors.New("password longer than 72 bytes")

// SealPassword turns an operator password into the bcrypt hash stored in
// users.password_hash. A cost outside bcrypt's range falls back to
// bcrypt.DefaultCost.
func SealPassword(plain string, cost int) (string, error) {
	if len(plain) > 72 {
		return "", ErrPasswordTooLong
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	sealed, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(sealed), nil
}

// PasswordMatches reports whether plain is the password behind sealed.
// A malformed hash never matches.
func PasswordMatches(sealed, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(sealed), []byte(plain)) == nil
}
