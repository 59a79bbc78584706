package records

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/firestore"
)

const usersCollection = "users"

// FirestoreRecorder appends records under users/{uid}/{collection} documents.
type FirestoreRecorder struct {
	client *firestore.Client
}

// NewFirestoreRecorder wraps an initialized Firestore client.
func NewFirestoreRecorder(client *firestore.Client) (*FirestoreRecorder, error) {
	if client == nil {
		return nil, fmt.Errorf("firestore client is required")
	}
	return &FirestoreRecorder{client: client}, nil
}

// Append adds the record as a new auto-ID document.
func (r *FirestoreRecorder) Append(ctx context.Context, userID, collection string, record Record) (string, error) {
	if strings.TrimSpace(userID) == "" || strings.TrimSpace(collection) == "" {
		return "", ErrInvalidInput
	}

	ref, _, err := r.client.Collection(usersCollection).
		Doc(userID).
		Collection(collection).
		Add(ctx, map[string]any(record))
	if err != nil {
		return "", fmt.Errorf("firestore append user=%s collection=%s: %w", userID, collection, err)
	}
	return ref.ID, nil
}

var _ Recorder = (*FirestoreRecorder)(nil)
