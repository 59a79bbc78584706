package local

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
)

func TestStoreFetchDeleteRoundTrip(t *testing.T) {
	store := New(t.TempDir())
	ctx := context.Background()

	url, err := store.Store(ctx, "users/u1/optimized_resumes/a.pdf", "application/pdf", bytes.NewReader([]byte("%PDF-1.4 data")))
	if err != nil {
		t.Fatalf("Store: %v", err)
	}
	if !strings.HasPrefix(url, "file://") {
		t.Fatalf("expected file:// url, got %q", url)
	}

	rc, err := store.Fetch(ctx, "users/u1/optimized_resumes/a.pdf")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	data, err := io.ReadAll(rc)
	rc.Close()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "%PDF-1.4 data" {
		t.Fatalf("unexpected content %q", data)
	}

	if err := store.Delete(ctx, "users/u1/optimized_resumes/a.pdf"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.Fetch(ctx, "users/u1/optimized_resumes/a.pdf"); err == nil {
		t.Fatalf("expected fetch to fail after delete")
	}
}

func TestStoreRejectsTraversal(t *testing.T) {
	store := New(t.TempDir())

	if _, err := store.Store(context.Background(), "../escape.pdf", "application/pdf", bytes.NewReader([]byte("x"))); err == nil {
		t.Fatalf("expected traversal key rejected")
	}
	if _, err := store.Fetch(context.Background(), "/etc/passwd"); err == nil {
		t.Fatalf("expected absolute key rejected")
	}
}
