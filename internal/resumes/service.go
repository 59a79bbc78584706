package resumes

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"resume-ai-backend/internal/auth"
	"resume-ai-backend/internal/extract"
	"resume-ai-backend/internal/llm"
	"resume-ai-backend/internal/records"
	"resume-ai-backend/internal/render"
	"resume-ai-backend/internal/shared/storage/object"
	"resume-ai-backend/internal/shared/telemetry"
)

const (
	optimizationsCollection = "optimizations"
	resumesCollection       = "resumes"
)

// Service orchestrates a full generation run: verify the caller, fetch and
// extract the source document, invoke the generative provider, render the
// result to PDF, store the artifact, and append a result record.
type Service struct {
	verifier auth.TokenVerifier
	store    object.ObjectStore
	client   llm.Client
	renderer render.Renderer
	recorder records.Recorder
	timeout  time.Duration
	now      func() time.Time
}

// NewService wires the orchestrator with constructed dependencies. A zero
// timeout disables the per-run deadline.
func NewService(
	verifier auth.TokenVerifier,
	store object.ObjectStore,
	client llm.Client,
	renderer render.Renderer,
	recorder records.Recorder,
	timeout time.Duration,
) *Service {
	return &Service{
		verifier: verifier,
		store:    store,
		client:   client,
		renderer: renderer,
		recorder: recorder,
		timeout:  timeout,
		now:      time.Now,
	}
}

// OptimizeInput carries the caller-supplied fields for an optimize run.
type OptimizeInput struct {
	IDToken string
	Prompt  string
	FileURL string
}

// OptimizeOutput is the result of a successful optimize run.
type OptimizeOutput struct {
	UserID     string
	MatchScore float64
	Feedback   string
	PDFLink    string
}

// CreateInput carries the caller-supplied fields for a create run. FileURL is
// optional; when set, the referenced document's text seeds the generation.
type CreateInput struct {
	IDToken string
	Prompt  string
	FileURL string
}

// CreateOutput is the result of a successful create run.
type CreateOutput struct {
	UserID  string
	PDFLink string
}

// Optimize scores and rewrites an existing resume against the caller's prompt
// and returns a link to the rendered PDF.
func (s *Service) Optimize(ctx context.Context, in OptimizeInput) (OptimizeOutput, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	userID, err := s.verifier.Verify(ctx, in.IDToken)
	if err != nil {
		return OptimizeOutput{}, fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}

	resumeText, err := s.fetchAndExtract(ctx, userID, in.FileURL)
	if err != nil {
		return OptimizeOutput{}, err
	}

	result, err := s.client.Optimize(ctx, resumeText, in.Prompt)
	if err != nil {
		return OptimizeOutput{}, wrapGenerative(err)
	}

	pdfLink, key, err := s.renderAndStore(ctx, result.Markdown, optimizedResumeKey(userID, s.now()))
	if err != nil {
		return OptimizeOutput{}, err
	}

	record := records.Record{
		"prompt":      in.Prompt,
		"file_url":    in.FileURL,
		"match_score": result.MatchScore,
		"feedback":    result.Feedback,
		"pdf_url":     pdfLink,
		"created_at":  s.now().UTC(),
	}
	if err := s.appendRecord(ctx, userID, optimizationsCollection, record, key); err != nil {
		return OptimizeOutput{}, err
	}

	return OptimizeOutput{
		UserID:     userID,
		MatchScore: result.MatchScore,
		Feedback:   result.Feedback,
		PDFLink:    pdfLink,
	}, nil
}

// Create authors a new resume from the caller's prompt, optionally seeded with
// an existing document, and returns a link to the rendered PDF.
func (s *Service) Create(ctx context.Context, in CreateInput) (CreateOutput, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	userID, err := s.verifier.Verify(ctx, in.IDToken)
	if err != nil {
		return CreateOutput{}, fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}

	var resumeText string
	if in.FileURL != "" {
		resumeText, err = s.fetchAndExtract(ctx, userID, in.FileURL)
		if err != nil {
			return CreateOutput{}, err
		}
	}

	result, err := s.client.Create(ctx, resumeText, in.Prompt)
	if err != nil {
		return CreateOutput{}, wrapGenerative(err)
	}

	pdfLink, key, err := s.renderAndStore(ctx, result.Markdown, createdResumeKey(userID, s.now()))
	if err != nil {
		return CreateOutput{}, err
	}

	record := records.Record{
		"type":           "create_resume",
		"prompt":         in.Prompt,
		"created_resume": result.Markdown,
		"pdf_url":        pdfLink,
		"created_at":     s.now().UTC(),
	}
	if in.FileURL != "" {
		record["file_url"] = in.FileURL
	}
	if err := s.appendRecord(ctx, userID, resumesCollection, record, key); err != nil {
		return CreateOutput{}, err
	}

	return CreateOutput{
		UserID:  userID,
		PDFLink: pdfLink,
	}, nil
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.timeout)
}

// fetchAndExtract downloads the source document and pulls out its plain text.
// Extraction trouble is tolerated: the run proceeds with empty context so the
// provider still sees the prompt. Fetch failure is fatal.
func (s *Service) fetchAndExtract(ctx context.Context, userID, fileURL string) (string, error) {
	body, err := s.store.Fetch(ctx, fileURL)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrStorageFetch, err)
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return "", fmt.Errorf("%w: read source: %v", ErrStorageFetch, err)
	}

	text, err := extract.TextFromBytes(ctx, data, fileURL)
	if err != nil || text == "" {
		telemetry.Warn("extract.empty", map[string]any{
			"user_id":  userID,
			"file_url": fileURL,
			"error":    errString(err),
		})
		return "", nil
	}
	return text, nil
}

func (s *Service) renderAndStore(ctx context.Context, markdown, key string) (pdfLink, storedKey string, err error) {
	pdfBytes, err := s.renderer.RenderPDF(ctx, markdown)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrRender, err)
	}

	link, err := s.store.Store(ctx, key, "application/pdf", bytes.NewReader(pdfBytes))
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrStorageWrite, err)
	}
	return link, key, nil
}

// appendRecord writes the result record. If the write fails, the stored
// artifact is deleted so a record-less PDF does not linger in storage.
func (s *Service) appendRecord(ctx context.Context, userID, collection string, record records.Record, storedKey string) error {
	if _, err := s.recorder.Append(ctx, userID, collection, record); err != nil {
		if delErr := s.store.Delete(context.WithoutCancel(ctx), storedKey); delErr != nil {
			telemetry.Error("artifact.orphaned", map[string]any{
				"user_id": userID,
				"key":     storedKey,
				"error":   delErr.Error(),
			})
		}
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}

func wrapGenerative(err error) error {
	if errors.Is(err, llm.ErrParse) {
		return fmt.Errorf("%w: %v", ErrGenerativeParse, err)
	}
	return fmt.Errorf("%w: %v", ErrGenerative, err)
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
