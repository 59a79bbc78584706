package records

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
)

// PGRecorder implements Recorder using Postgres, with the record payload
// stored as jsonb.
type PGRecorder struct {
	DB *sql.DB
}

// Append inserts a record row.
func (r *PGRecorder) Append(ctx context.Context, userID, collection string, record Record) (string, error) {
	if strings.TrimSpace(userID) == "" || strings.TrimSpace(collection) == "" {
		return "", ErrInvalidInput
	}

	payload, err := json.Marshal(record)
	if err != nil {
		return "", err
	}

	id := uuid.NewString()
	const query = `
INSERT INTO operation_records (id, user_id, collection, record, created_at)
VALUES ($1, $2, $3, $4, $5)`
	if _, err := r.DB.ExecContext(ctx, query, id, userID, collection, payload, time.Now().UTC()); err != nil {
		return "", err
	}
	return id, nil
}

var _ Recorder = (*PGRecorder)(nil)
