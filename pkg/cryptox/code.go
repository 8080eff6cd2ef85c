package cryptox

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// GenerateCode returns a 6-digit numeric challenge code (100000-999999).
// The leading digit is never zero so the code survives naive integer
// round-trips on the client side.
func GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("cryptox: failed to generate challenge code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
