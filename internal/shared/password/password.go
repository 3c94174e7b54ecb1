package password

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"golang.org/x/crypto/bcrypt"
)

// Cost is the bcrypt cost used by Hash. Tests lower it to bcrypt.MinCost.
var Cost = bcrypt.DefaultCost

// tempAlphabet omits look-alike characters (0/O, 1/l/I).
const tempAlphabet = "abcdefghjkmnpqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// Hash returns the bcrypt hash of plain.
func Hash(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), Cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

// Matches reports whether plain matches the stored hash.
func Matches(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// GenerateTemporary returns a random password of the given length for newly provisioned accounts.
func GenerateTemporary(length int) (string, error) {
	limit := big.NewInt(int64(len(tempAlphabet)))
	buf := make([]byte, length)
	for i := range buf {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", fmt.Errorf("generate temporary password: %w", err)
		}
		buf[i] = tempAlphabet[n.Int64()]
	}
	return string(buf), nil
}
