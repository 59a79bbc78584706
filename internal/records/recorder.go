package records

import (
	"context"
	"errors"
)

// Record is one append-only result entry. Values must be JSON-encodable.
type Record map[string]any

// ErrInvalidInput indicates a missing user ID or collection name.
var ErrInvalidInput = errors.New("invalid record input")

// Recorder appends result records to a per-user collection.
type Recorder interface {
	// Append writes the record under the user's collection and returns the
	// new record's ID.
	Append(ctx context.Context, userID, collection string, record Record) (string, error)
}
