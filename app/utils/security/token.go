package security

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"user-auth-service/app/port"
)

// tokenBytes gives 256 bits of entropy per token, well above the 128-bit
// floor required for statistically-unique opaque identifiers.
const tokenBytes = 32

// RandomTokenSource implements port.TokenSource with crypto/rand
type RandomTokenSource struct{}

// NewRandomTokenSource creates a new token source
func NewRandomTokenSource() *RandomTokenSource {
	return &RandomTokenSource{}
}

// NewToken returns a cryptographically random opaque token.
// The result is URL-safe base64 without padding (43 characters) and carries
// no semantic structure other than being a lookup key.
func (s *RandomTokenSource) NewToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(b), nil
}

// Ensure RandomTokenSource implements port.TokenSource
var _ port.TokenSource = (*RandomTokenSource)(nil)
