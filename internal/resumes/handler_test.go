package resumes

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"resume-ai-backend/internal/llm"
)

func setupHandlerRouter(f *pipelineFixture) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(f.svc).RegisterRoutes(r.Group("/"))
	return r
}

func postJSON(t *testing.T, router *gin.Engine, path string, payload map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestOptimizeResumeEndpoint(t *testing.T) {
	f := newPipelineFixture()
	f.store.objects["resumes/source.pdf"] = []byte("x")
	router := setupHandlerRouter(f)

	resp := postJSON(t, router, "/optimize-resume", map[string]string{
		"id_token": "token",
		"prompt":   "Senior backend engineer",
		"file_url": "resumes/source.pdf",
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var got struct {
		MatchScore float64 `json:"match_score"`
		Feedback   string  `json:"feedback"`
		PDFLink    string  `json:"pdf_link"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.MatchScore != 82 {
		t.Fatalf("expected match_score 82, got %v", got.MatchScore)
	}
	if got.Feedback != "Add metrics" {
		t.Fatalf("expected feedback, got %q", got.Feedback)
	}
	if got.PDFLink == "" {
		t.Fatalf("expected pdf_link, got empty")
	}
}

func TestOptimizeResumeValidation(t *testing.T) {
	f := newPipelineFixture()
	router := setupHandlerRouter(f)

	resp := postJSON(t, router, "/optimize-resume", map[string]string{
		"id_token": "token",
		// prompt and file_url missing
	})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
	if len(f.client.optimizeCalls) != 0 {
		t.Fatalf("expected no pipeline run on validation failure")
	}
}

func TestOptimizeResumeUnauthorized(t *testing.T) {
	f := newPipelineFixture()
	f.verifier.err = errors.New("bad token")
	router := setupHandlerRouter(f)

	resp := postJSON(t, router, "/optimize-resume", map[string]string{
		"id_token": "bad",
		"prompt":   "p",
		"file_url": "resumes/source.pdf",
	})
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}

	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if body.Error.Code != "unauthorized" {
		t.Fatalf("expected code unauthorized, got %q", body.Error.Code)
	}
}

func TestOptimizeResumeSourceNotFound(t *testing.T) {
	f := newPipelineFixture()
	f.store.fetchErr = errors.New("no such object")
	router := setupHandlerRouter(f)

	resp := postJSON(t, router, "/optimize-resume", map[string]string{
		"id_token": "token",
		"prompt":   "p",
		"file_url": "resumes/missing.pdf",
	})
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestOptimizeResumeBadGatewayOnParseFailure(t *testing.T) {
	f := newPipelineFixture()
	f.store.objects["resumes/source.pdf"] = []byte("x")
	f.client.err = fmt.Errorf("%w: prose instead of JSON", llm.ErrParse)
	router := setupHandlerRouter(f)

	resp := postJSON(t, router, "/optimize-resume", map[string]string{
		"id_token": "token",
		"prompt":   "p",
		"file_url": "resumes/source.pdf",
	})
	if resp.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", resp.Code)
	}

	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if body.Error.Code != "invalid_llm_output" {
		t.Fatalf("expected code invalid_llm_output, got %q", body.Error.Code)
	}
}

func TestCreateResumeEndpoint(t *testing.T) {
	f := newPipelineFixture()
	router := setupHandlerRouter(f)

	resp := postJSON(t, router, "/create-resume", map[string]string{
		"id_token": "token",
		"prompt":   "Write a resume for a data engineer",
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var got struct {
		PDFLink string `json:"pdf_link"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.PDFLink == "" {
		t.Fatalf("expected pdf_link, got empty")
	}
}

func TestCreateResumeRequiresPrompt(t *testing.T) {
	f := newPipelineFixture()
	router := setupHandlerRouter(f)

	resp := postJSON(t, router, "/create-resume", map[string]string{
		"id_token": "token",
	})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}
