package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"
)

// GenerateOTP returns a numeric code of the given length, 6 when length <= 0.
func GenerateOTP(length int) (string, error) {
	if length <= 0 {
		length = 6
	}

	var sb strings.Builder
	sb.Grow(length)
	ten := big.NewInt(10)
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, ten)
		if err != nil {
			return "", err
		}
		sb.WriteByte(byte('0' + n.Int64()))
	}

	return sb.String(), nil
}

// GenerateTransactionID formats PAY-YYYYMMDD-HHMMSS-NNNN.
func GenerateTransactionID(now time.Time) (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(10000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("PAY-%s-%s-%04d", now.Format("20060102"), now.Format("150405"), n.Int64()), nil
}
