package security

import (
	"crypto/rand"
	"errors"
	"math/big"
)

const digits = "0123456789"

// VerificationCodeLength is the size of emailed verification codes.
const VerificationCodeLength = 6

var (
	errNegativeLength = errors.New("length must be non-negative")
	errEmptyAlphabet  = errors.New("alphabet must not be empty")
)

// RandomString returns a cryptographically secure, unbiased string of the
// requested length drawn from the alphabet.
func RandomString(length int, alphabet string) (string, error) {
	if length < 0 {
		return "", errNegativeLength
	}
	if length == 0 {
		return "", nil
	}
	if len(alphabet) == 0 {
		return "", errEmptyAlphabet
	}

	limit := big.NewInt(int64(len(alphabet)))
	value := make([]byte, length)
	for index := range value {
		position, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", err
		}
		value[index] = alphabet[position.Int64()]
	}

	return string(value), nil
}

// VerificationCode returns a 6-digit numeric code for email verification
// and password-reset flows.
func VerificationCode() (string, error) {
	return RandomString(VerificationCodeLength, digits)
}
