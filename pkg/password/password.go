// Package password hashea y verifica contraseñas con bcrypt.
// Son funciones puras: no hay encoder compartido ni estado global.
package password

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrTooLong bcrypt solo considera los primeros 72 bytes; se rechaza lo que exceda.
var ErrTooLong = errors.New("password: supera 72 bytes")

// Hash devuelve el hash bcrypt (con sal) de plain.
func Hash(plain string) (string, error) {
	if len(plain) > 72 {
		return "", ErrTooLong
	}
	h, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// Matches compara en tiempo constante plain contra un hash bcrypt.
func Matches(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
