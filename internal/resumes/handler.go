package resumes

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"resume-ai-backend/internal/shared/metrics"
	"resume-ai-backend/internal/shared/server/respond"
)

// Handler wires the two generation endpoints to the orchestrator service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches the generation routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/optimize-resume", h.optimizeResume)
	rg.POST("/create-resume", h.createResume)
}

func (h *Handler) optimizeResume(c *gin.Context) {
	var req optimizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "id_token, prompt and file_url are required", nil)
		return
	}
	c.Set("operation", "optimize_resume")

	started := time.Now()
	metrics.IncPipelineStarted()

	out, err := h.Svc.Optimize(c.Request.Context(), OptimizeInput{
		IDToken: req.IDToken,
		Prompt:  req.Prompt,
		FileURL: req.FileURL,
	})
	metrics.ObservePipelineDurationMs(float64(time.Since(started).Milliseconds()))
	if err != nil {
		metrics.IncPipelineFailed()
		respondPipelineError(c, err)
		return
	}
	metrics.IncPipelineCompleted()

	c.Set("userId", out.UserID)
	c.Set("pdfLink", out.PDFLink)
	respond.OK(c, optimizeResponse{
		MatchScore: out.MatchScore,
		Feedback:   out.Feedback,
		PDFLink:    out.PDFLink,
	})
}

func (h *Handler) createResume(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "id_token and prompt are required", nil)
		return
	}
	c.Set("operation", "create_resume")

	started := time.Now()
	metrics.IncPipelineStarted()

	out, err := h.Svc.Create(c.Request.Context(), CreateInput{
		IDToken: req.IDToken,
		Prompt:  req.Prompt,
		FileURL: req.FileURL,
	})
	metrics.ObservePipelineDurationMs(float64(time.Since(started).Milliseconds()))
	if err != nil {
		metrics.IncPipelineFailed()
		respondPipelineError(c, err)
		return
	}
	metrics.IncPipelineCompleted()

	c.Set("userId", out.UserID)
	c.Set("pdfLink", out.PDFLink)
	respond.OK(c, createResponse{PDFLink: out.PDFLink})
}

// respondPipelineError maps pipeline error kinds to stable status codes and
// public error codes. Internal detail stays in the logs.
func respondPipelineError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrUnauthenticated):
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "invalid or expired credential", nil)
	case errors.Is(err, ErrStorageFetch):
		respond.Error(c, http.StatusNotFound, "source_not_found", "source document could not be retrieved", nil)
	case errors.Is(err, ErrGenerativeParse):
		respond.Error(c, http.StatusBadGateway, "invalid_llm_output", "generative provider returned unusable output", nil)
	case errors.Is(err, ErrGenerative):
		respond.Error(c, http.StatusBadGateway, "llm_failed", "generative provider call failed", nil)
	case errors.Is(err, ErrRender):
		respond.Error(c, http.StatusInternalServerError, "render_failed", "failed to render the PDF", nil)
	case errors.Is(err, ErrStorageWrite):
		respond.Error(c, http.StatusInternalServerError, "storage_failed", "failed to store the PDF", nil)
	case errors.Is(err, ErrPersistence):
		respond.Error(c, http.StatusInternalServerError, "record_failed", "failed to record the result", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "resume generation failed", nil)
	}
}
