package auth

import (
	"context"
	"errors"
)

// ErrInvalidToken indicates a missing, malformed, or expired credential.
var ErrInvalidToken = errors.New("invalid or expired token")

// TokenVerifier validates a bearer credential and yields a stable user ID.
type TokenVerifier interface {
	Verify(ctx context.Context, idToken string) (string, error)
}
