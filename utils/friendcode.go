package utils

import (
	"crypto/rand"
	"math/big"
	"strings"
)

// FriendCodeLength is the fixed length of every friend code.
const FriendCodeLength = 6

const friendCodeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateFriendCode returns a random 6-character uppercase alphanumeric
// code. Uniqueness is enforced by the database; callers retry on conflict.
func GenerateFriendCode() (string, error) {
	code := make([]byte, FriendCodeLength)
	max := big.NewInt(int64(len(friendCodeCharset)))
	for i := range code {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		code[i] = friendCodeCharset[n.Int64()]
	}
	return string(code), nil
}

// NormalizeFriendCode trims whitespace and upper-cases user input so lookup
// is case-insensitive.
func NormalizeFriendCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
