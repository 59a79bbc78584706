package resumes

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"

	"resume-ai-backend/internal/llm"
	"resume-ai-backend/internal/records"
)

type stubVerifier struct {
	uid string
	err error
}

func (v *stubVerifier) Verify(ctx context.Context, idToken string) (string, error) {
	if v.err != nil {
		return "", v.err
	}
	return v.uid, nil
}

type stubStore struct {
	mu       sync.Mutex
	objects  map[string][]byte
	fetchErr error
	storeErr error

	fetched []string
	stored  []string
	deleted []string
}

func newStubStore() *stubStore {
	return &stubStore{objects: map[string][]byte{}}
}

func (s *stubStore) Fetch(ctx context.Context, reference string) (io.ReadCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fetched = append(s.fetched, reference)
	if s.fetchErr != nil {
		return nil, s.fetchErr
	}
	data, ok := s.objects[reference]
	if !ok {
		return nil, fmt.Errorf("object %s not found", reference)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *stubStore) Store(ctx context.Context, key string, contentType string, r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.storeErr != nil {
		return "", s.storeErr
	}
	s.objects[key] = data
	s.stored = append(s.stored, key)
	return "https://example.test/" + key, nil
}

func (s *stubStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted = append(s.deleted, key)
	delete(s.objects, key)
	return nil
}

type stubLLM struct {
	mu          sync.Mutex
	optimizeRes llm.OptimizeResult
	createRes   llm.CreateResult
	err         error

	optimizeCalls []string
	createCalls   []string
}

func (c *stubLLM) Optimize(ctx context.Context, resumeText, prompt string) (llm.OptimizeResult, error) {
	c.mu.Lock()
	c.optimizeCalls = append(c.optimizeCalls, resumeText)
	c.mu.Unlock()
	if c.err != nil {
		return llm.OptimizeResult{}, c.err
	}
	return c.optimizeRes, nil
}

func (c *stubLLM) Create(ctx context.Context, resumeText, prompt string) (llm.CreateResult, error) {
	c.mu.Lock()
	c.createCalls = append(c.createCalls, resumeText)
	c.mu.Unlock()
	if c.err != nil {
		return llm.CreateResult{}, c.err
	}
	return c.createRes, nil
}

type stubRenderer struct {
	err   error
	calls int
}

func (r *stubRenderer) RenderPDF(ctx context.Context, markdown string) ([]byte, error) {
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	return []byte("%PDF-1.4 " + markdown), nil
}

type failingRecorder struct {
	err error
}

func (r *failingRecorder) Append(ctx context.Context, userID, collection string, record records.Record) (string, error) {
	return "", r.err
}

type pipelineFixture struct {
	verifier *stubVerifier
	store    *stubStore
	client   *stubLLM
	renderer *stubRenderer
	recorder *records.MemoryRecorder
	svc      *Service
}

func newPipelineFixture() *pipelineFixture {
	f := &pipelineFixture{
		verifier: &stubVerifier{uid: "user-1"},
		store:    newStubStore(),
		client: &stubLLM{
			optimizeRes: llm.OptimizeResult{MatchScore: 82, Feedback: "Add metrics", Markdown: "# Optimized"},
			createRes:   llm.CreateResult{Markdown: "# Created"},
		},
		renderer: &stubRenderer{},
		recorder: records.NewMemoryRecorder(),
	}
	f.svc = NewService(f.verifier, f.store, f.client, f.renderer, f.recorder, 0)
	return f
}

func TestOptimizeSuccess(t *testing.T) {
	f := newPipelineFixture()
	f.store.objects["resumes/source.pdf"] = []byte("not really a pdf")

	out, err := f.svc.Optimize(context.Background(), OptimizeInput{
		IDToken: "token",
		Prompt:  "Senior backend engineer",
		FileURL: "resumes/source.pdf",
	})
	if err != nil {
		t.Fatalf("optimize: %v", err)
	}
	if out.MatchScore != 82 {
		t.Fatalf("expected match score 82, got %v", out.MatchScore)
	}
	if out.Feedback != "Add metrics" {
		t.Fatalf("expected feedback, got %q", out.Feedback)
	}
	if !strings.Contains(out.PDFLink, "users/user-1/optimized_resumes/optimized_") {
		t.Fatalf("expected pdf link under user namespace, got %q", out.PDFLink)
	}

	stored, err := f.recorder.ListByUser(context.Background(), "user-1", "optimizations")
	if err != nil {
		t.Fatalf("list records: %v", err)
	}
	if len(stored) != 1 {
		t.Fatalf("expected 1 record, got %d", len(stored))
	}
	if stored[0].Record["feedback"] != "Add metrics" {
		t.Fatalf("expected feedback in record, got %v", stored[0].Record["feedback"])
	}
	if stored[0].Record["match_score"] != float64(82) {
		t.Fatalf("expected match_score in record, got %v", stored[0].Record["match_score"])
	}
	if stored[0].Record["pdf_url"] != out.PDFLink {
		t.Fatalf("expected record to reference %q, got %v", out.PDFLink, stored[0].Record["pdf_url"])
	}
}

func TestOptimizeInvalidTokenHasNoSideEffects(t *testing.T) {
	f := newPipelineFixture()
	f.verifier.err = errors.New("token expired")

	_, err := f.svc.Optimize(context.Background(), OptimizeInput{
		IDToken: "bad",
		Prompt:  "p",
		FileURL: "resumes/source.pdf",
	})
	if !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}

	if len(f.store.fetched) != 0 {
		t.Fatalf("expected no fetch after auth failure, got %v", f.store.fetched)
	}
	if len(f.client.optimizeCalls) != 0 {
		t.Fatalf("expected no llm call after auth failure")
	}
	if len(f.store.stored) != 0 {
		t.Fatalf("expected nothing stored after auth failure")
	}
}

func TestOptimizeFetchFailure(t *testing.T) {
	f := newPipelineFixture()
	f.store.fetchErr = errors.New("object missing")

	_, err := f.svc.Optimize(context.Background(), OptimizeInput{
		IDToken: "token",
		Prompt:  "p",
		FileURL: "resumes/missing.pdf",
	})
	if !errors.Is(err, ErrStorageFetch) {
		t.Fatalf("expected ErrStorageFetch, got %v", err)
	}
	if len(f.client.optimizeCalls) != 0 {
		t.Fatalf("expected no llm call after fetch failure")
	}
}

func TestOptimizeUnextractableSourceStillRuns(t *testing.T) {
	f := newPipelineFixture()
	// Content no extractor recognizes: treated as empty context, not fatal.
	f.store.objects["resumes/source.pdf"] = []byte("garbage bytes")

	_, err := f.svc.Optimize(context.Background(), OptimizeInput{
		IDToken: "token",
		Prompt:  "p",
		FileURL: "resumes/source.pdf",
	})
	if err != nil {
		t.Fatalf("optimize: %v", err)
	}
	if len(f.client.optimizeCalls) != 1 {
		t.Fatalf("expected 1 llm call, got %d", len(f.client.optimizeCalls))
	}
	if f.client.optimizeCalls[0] != "" {
		t.Fatalf("expected empty resume text, got %q", f.client.optimizeCalls[0])
	}
}

func TestOptimizeParseFailureStopsPipeline(t *testing.T) {
	f := newPipelineFixture()
	f.store.objects["resumes/source.pdf"] = []byte("x")
	f.client.err = fmt.Errorf("%w: not json", llm.ErrParse)

	_, err := f.svc.Optimize(context.Background(), OptimizeInput{
		IDToken: "token",
		Prompt:  "p",
		FileURL: "resumes/source.pdf",
	})
	if !errors.Is(err, ErrGenerativeParse) {
		t.Fatalf("expected ErrGenerativeParse, got %v", err)
	}
	if f.renderer.calls != 0 {
		t.Fatalf("expected no render after parse failure")
	}
	if len(f.store.stored) != 0 {
		t.Fatalf("expected nothing stored after parse failure")
	}
	stored, _ := f.recorder.ListByUser(context.Background(), "user-1", "optimizations")
	if len(stored) != 0 {
		t.Fatalf("expected no records after parse failure, got %d", len(stored))
	}
}

func TestOptimizeRenderFailure(t *testing.T) {
	f := newPipelineFixture()
	f.store.objects["resumes/source.pdf"] = []byte("x")
	f.renderer.err = errors.New("chrome crashed")

	_, err := f.svc.Optimize(context.Background(), OptimizeInput{
		IDToken: "token",
		Prompt:  "p",
		FileURL: "resumes/source.pdf",
	})
	if !errors.Is(err, ErrRender) {
		t.Fatalf("expected ErrRender, got %v", err)
	}
	if len(f.store.stored) != 0 {
		t.Fatalf("expected nothing stored after render failure")
	}
}

func TestOptimizeRecordFailureDeletesArtifact(t *testing.T) {
	f := newPipelineFixture()
	f.store.objects["resumes/source.pdf"] = []byte("x")
	f.svc = NewService(f.verifier, f.store, f.client, f.renderer,
		&failingRecorder{err: errors.New("firestore down")}, 0)

	_, err := f.svc.Optimize(context.Background(), OptimizeInput{
		IDToken: "token",
		Prompt:  "p",
		FileURL: "resumes/source.pdf",
	})
	if !errors.Is(err, ErrPersistence) {
		t.Fatalf("expected ErrPersistence, got %v", err)
	}
	if len(f.store.stored) != 1 {
		t.Fatalf("expected artifact stored before record write, got %d", len(f.store.stored))
	}
	if len(f.store.deleted) != 1 || f.store.deleted[0] != f.store.stored[0] {
		t.Fatalf("expected compensating delete of %q, got %v", f.store.stored, f.store.deleted)
	}
}

func TestCreateWithoutSourcePassesEmptyContext(t *testing.T) {
	f := newPipelineFixture()

	out, err := f.svc.Create(context.Background(), CreateInput{
		IDToken: "token",
		Prompt:  "Write a resume for a data engineer",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(f.store.fetched) != 0 {
		t.Fatalf("expected no fetch without file_url, got %v", f.store.fetched)
	}
	if len(f.client.createCalls) != 1 || f.client.createCalls[0] != "" {
		t.Fatalf("expected one create call with empty context, got %v", f.client.createCalls)
	}
	if !strings.Contains(out.PDFLink, "users/user-1/created_resumes/created_") {
		t.Fatalf("expected created namespace, got %q", out.PDFLink)
	}
}

func TestCreateRecordShape(t *testing.T) {
	f := newPipelineFixture()

	_, err := f.svc.Create(context.Background(), CreateInput{
		IDToken: "token",
		Prompt:  "Write one",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	stored, err := f.recorder.ListByUser(context.Background(), "user-1", "resumes")
	if err != nil {
		t.Fatalf("list records: %v", err)
	}
	if len(stored) != 1 {
		t.Fatalf("expected 1 record, got %d", len(stored))
	}
	rec := stored[0].Record
	if rec["type"] != "create_resume" {
		t.Fatalf("expected type create_resume, got %v", rec["type"])
	}
	if rec["created_resume"] != "# Created" {
		t.Fatalf("expected raw markdown in record, got %v", rec["created_resume"])
	}
	if _, ok := rec["file_url"]; ok {
		t.Fatalf("expected no file_url for sourceless create")
	}
}

func TestConcurrentRunsProduceDistinctKeys(t *testing.T) {
	f := newPipelineFixture()
	f.store.objects["resumes/source.pdf"] = []byte("x")

	const runs = 8
	var wg sync.WaitGroup
	errs := make([]error, runs)
	for i := 0; i < runs; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.svc.Optimize(context.Background(), OptimizeInput{
				IDToken: "token",
				Prompt:  "p",
				FileURL: "resumes/source.pdf",
			})
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("run %d: %v", i, err)
		}
	}
	seen := map[string]bool{}
	for _, key := range f.store.stored {
		if seen[key] {
			t.Fatalf("duplicate artifact key %q", key)
		}
		seen[key] = true
	}
	if len(seen) != runs {
		t.Fatalf("expected %d distinct keys, got %d", runs, len(seen))
	}

	stored, err := f.recorder.ListByUser(context.Background(), "user-1", "optimizations")
	if err != nil {
		t.Fatalf("list records: %v", err)
	}
	if len(stored) != runs {
		t.Fatalf("expected %d records, got %d", runs, len(stored))
	}
}
