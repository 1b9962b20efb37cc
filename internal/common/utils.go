package common

import (
	"crypto/rand"
	"errors"
	"math/big"
)

// RandomCode returns a string of the given length whose characters are drawn
// uniformly from alphabet using crypto/rand.
//
// Example:
//
//	code, err := RandomCode(InviteCodeLength, InviteCodeAlphabet)
//	// code == "Q7K2ZD"
func RandomCode(length int, alphabet string) (string, error) {
	if alphabet == "" {
		return "", errors.New("empty alphabet")
	}

	max := big.NewInt(int64(len(alphabet)))
	b := make([]byte, length)
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b[i] = alphabet[n.Int64()]
	}

	return string(b), nil
}
