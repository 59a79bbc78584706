package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// StaticVerifier accepts any non-empty token and derives a deterministic user
// ID from it. Dev/test only; never wired in production.
type StaticVerifier struct{}

// Verify hashes the token into a stable uid.
func (StaticVerifier) Verify(ctx context.Context, idToken string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if strings.TrimSpace(idToken) == "" {
		return "", ErrInvalidToken
	}
	sum := sha256.Sum256([]byte(idToken))
	return "dev-" + hex.EncodeToString(sum[:8]), nil
}

var _ TokenVerifier = StaticVerifier{}
