package auth

import (
	"context"
	"fmt"
	"strings"

	fbauth "firebase.google.com/go/v4/auth"
)

// FirebaseVerifier verifies Firebase ID tokens via the Admin SDK.
type FirebaseVerifier struct {
	client *fbauth.Client
}

// NewFirebaseVerifier wraps an initialized Firebase auth client.
func NewFirebaseVerifier(client *fbauth.Client) (*FirebaseVerifier, error) {
	if client == nil {
		return nil, fmt.Errorf("firebase auth client is required")
	}
	return &FirebaseVerifier{client: client}, nil
}

// Verify checks the ID token signature and expiry and returns the Firebase UID.
func (v *FirebaseVerifier) Verify(ctx context.Context, idToken string) (string, error) {
	if strings.TrimSpace(idToken) == "" {
		return "", ErrInvalidToken
	}
	token, err := v.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return token.UID, nil
}

var _ TokenVerifier = (*FirebaseVerifier)(nil)
