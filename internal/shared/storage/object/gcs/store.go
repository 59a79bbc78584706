package gcs

import (
	"context"
	"fmt"
	"io"
	"strings"

	"cloud.google.com/go/storage"

	"resume-ai-backend/internal/shared/storage/object"
)

// Store implements ObjectStore on a Firebase / Google Cloud Storage bucket.
type Store struct {
	bucket     *storage.BucketHandle
	bucketName string
}

// New wraps an existing bucket handle, typically obtained from the Firebase app.
func New(bucket *storage.BucketHandle, bucketName string) (*Store, error) {
	if bucket == nil {
		return nil, fmt.Errorf("gcs bucket handle is required")
	}
	if strings.TrimSpace(bucketName) == "" {
		return nil, fmt.Errorf("gcs bucket name is required")
	}
	return &Store{bucket: bucket, bucketName: bucketName}, nil
}

// Fetch opens the object at reference for reading.
func (s *Store) Fetch(ctx context.Context, reference string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r, err := s.bucket.Object(reference).NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("gcs read object bucket=%s key=%s: %w", s.bucketName, reference, err)
	}
	return r, nil
}

// Store uploads data at key, makes the object publicly readable, and returns
// its public URL. Public-read matches how the frontend consumes pdf links.
func (s *Store) Store(ctx context.Context, key string, contentType string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	obj := s.bucket.Object(key)
	w := obj.NewWriter(ctx)
	w.ContentType = contentType

	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("gcs write object bucket=%s key=%s: %w", s.bucketName, key, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("gcs close object bucket=%s key=%s: %w", s.bucketName, key, err)
	}

	if err := obj.ACL().Set(ctx, storage.AllUsers, storage.RoleReader); err != nil {
		return "", fmt.Errorf("gcs make public bucket=%s key=%s: %w", s.bucketName, key, err)
	}

	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucketName, key), nil
}

// Delete removes the object at key.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.bucket.Object(key).Delete(ctx); err != nil {
		return fmt.Errorf("gcs delete object bucket=%s key=%s: %w", s.bucketName, key, err)
	}
	return nil
}

var _ object.ObjectStore = (*Store)(nil)
