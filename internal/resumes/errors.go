package resumes

import "errors"

// Pipeline error kinds. Each stage of a generation run fails with exactly one
// of these, so handlers can map failures to stable HTTP codes and callers can
// test with errors.Is.
var (
	// ErrUnauthenticated indicates the caller's credential failed verification.
	ErrUnauthenticated = errors.New("authentication failed")

	// ErrStorageFetch indicates the source document could not be retrieved.
	ErrStorageFetch = errors.New("source document fetch failed")

	// ErrStorageWrite indicates the rendered artifact could not be stored.
	ErrStorageWrite = errors.New("artifact write failed")

	// ErrGenerative indicates the generative provider call itself failed.
	ErrGenerative = errors.New("generative invocation failed")

	// ErrGenerativeParse indicates the provider responded but the payload was
	// not usable structured output.
	ErrGenerativeParse = errors.New("generative output parse failed")

	// ErrRender indicates Markdown to PDF rendering failed.
	ErrRender = errors.New("pdf render failed")

	// ErrPersistence indicates the result record could not be written.
	ErrPersistence = errors.New("record persistence failed")
)
