package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"chempaper-backend/internal/credentials"
	"chempaper-backend/internal/export"
	"chempaper-backend/internal/geometry"
	"chempaper-backend/internal/llm/gemini"
	"chempaper-backend/internal/papers"
	"chempaper-backend/internal/pdfinfo"
	"chempaper-backend/internal/sessions"
	"chempaper-backend/internal/shared/config"
	"chempaper-backend/internal/shared/server/middleware"
	"chempaper-backend/internal/shared/server/respond"
)

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(cfg config.Config) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	sessionSvc := sessions.NewService(sessions.NewMemoryRepo(), cfg.AccessPassword)

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
		middleware.SessionAuth(sessionSvc),
	)

	// Dependencies
	mapper := geometry.NewMapper(
		geometry.NewFitzRenderer(),
		int(cfg.RenderDPI),
		geometry.PolicyFromName(cfg.PaddingPolicy),
	)
	paperSvc := &papers.Service{
		Papers:      papers.NewMemoryPaperRepo(),
		Analyses:    papers.NewMemoryAnalysisRepo(),
		Credentials: credentials.NewRandomFromTime(cfg.GeminiAPIKeys),
		LLM:         gemini.NewClient(cfg.GeminiModel, cfg.AuthorSearchModel, int32(cfg.ThinkingBudget)),
		Extractor:   mapper,
		Pages:       pdfinfo.NewReader(),
	}
	paperHandler := papers.NewHandler(paperSvc, export.NewRenderer(), cfg.MaxUploadBytes)
	sessionHandler := sessions.NewHandler(sessionSvc, paperSvc)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	sessionHandler.RegisterRoutes(api)
	paperHandler.RegisterRoutes(api)

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
