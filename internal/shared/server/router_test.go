package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"resume-ai-backend/internal/resumes"
	"resume-ai-backend/internal/shared/config"
)

func TestRouterHealthAndMetrics(t *testing.T) {
	cfg := config.Config{Env: "dev", CORSAllowOrigin: []string{"http://localhost:3000"}}
	router := NewRouter(cfg, resumes.NewHandler(nil))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("health expected 200, got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/metrics", nil)
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("metrics expected 200, got %d", resp.Code)
	}
	if ct := resp.Header().Get("Content-Type"); ct == "" {
		t.Fatalf("expected content type on metrics response")
	}
}

func TestAddr(t *testing.T) {
	cases := map[string]string{
		"":      ":8080",
		"9090":  ":9090",
		":7000": ":7000",
	}
	for in, want := range cases {
		if got := Addr(in); got != want {
			t.Fatalf("Addr(%q) = %q, want %q", in, got, want)
		}
	}
}
