// AngelaMos | 2026
// otp.go

package auth

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

const CodeLength = 6

var codeSpace = big.NewInt(1_000_000)

// GenerateCode returns a uniformly random six-digit code, zero-padded.
// crypto/rand.Int rejects biased draws, so every code in "000000".."999999"
// is equally likely.
func GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, codeSpace)
	if err != nil {
		return "", fmt.Errorf("generate code: %w", err)
	}

	return fmt.Sprintf("%06d", n.Int64()), nil
}

func ComputeExpiry(now time.Time, ttl time.Duration) time.Time {
	return now.Add(ttl)
}

func CodeValidAt(expiry, now time.Time) bool {
	return now.Before(expiry)
}
