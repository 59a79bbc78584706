package records

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// StoredRecord is a record with its assigned ID and timestamp, as held by the
// in-memory recorder.
type StoredRecord struct {
	ID        string
	UserID    string
	Record    Record
	CreatedAt time.Time
}

// MemoryRecorder stores records in memory and is safe for concurrent use.
// Dev/test fallback when neither Firestore nor Postgres is configured.
type MemoryRecorder struct {
	mu           sync.RWMutex
	byCollection map[string][]StoredRecord
}

// NewMemoryRecorder constructs a MemoryRecorder.
func NewMemoryRecorder() *MemoryRecorder {
	return &MemoryRecorder{byCollection: make(map[string][]StoredRecord)}
}

// Append stores the record under userID/collection.
func (r *MemoryRecorder) Append(ctx context.Context, userID, collection string, record Record) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if strings.TrimSpace(userID) == "" || strings.TrimSpace(collection) == "" {
		return "", ErrInvalidInput
	}

	stored := StoredRecord{
		ID:        uuid.NewString(),
		UserID:    userID,
		Record:    record,
		CreatedAt: time.Now().UTC(),
	}

	key := userID + "/" + collection
	r.mu.Lock()
	r.byCollection[key] = append(r.byCollection[key], stored)
	r.mu.Unlock()
	return stored.ID, nil
}

// ListByUser returns the records for userID/collection in append order.
func (r *MemoryRecorder) ListByUser(ctx context.Context, userID, collection string) ([]StoredRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	stored := r.byCollection[userID+"/"+collection]
	out := make([]StoredRecord, len(stored))
	copy(out, stored)
	return out, nil
}

var _ Recorder = (*MemoryRecorder)(nil)
