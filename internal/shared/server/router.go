package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-ai-backend/internal/resumes"
	"resume-ai-backend/internal/shared/config"
	"resume-ai-backend/internal/shared/metrics"
	"resume-ai-backend/internal/shared/server/middleware"
	"resume-ai-backend/internal/shared/server/respond"
)

// NewRouter constructs the Gin engine with middleware and routes registered.
// Dependencies are built once in bootstrap and injected here.
func NewRouter(cfg config.Config, resumeHandler *resumes.Handler) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
	)

	r.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	r.GET("/metrics", metrics.Handler())

	// The generation endpoints hold an LLM call and a headless-Chrome render
	// open per request, so they get their own slow bucket.
	pipeline := r.Group("/")
	pipeline.Use(middleware.RateLimit(
		middleware.RateLimitRule{Rate: 0.2, Burst: 3},
		middleware.NewRateLimiter(nil),
	))
	resumeHandler.RegisterRoutes(pipeline)

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
