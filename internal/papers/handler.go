package papers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"chempaper-backend/internal/credentials"
	"chempaper-backend/internal/llm"
	"chempaper-backend/internal/shared/server/middleware"
	"chempaper-backend/internal/shared/server/respond"
	"chempaper-backend/internal/shared/util"
)

// Exporter renders a completed analysis as a standalone document.
type Exporter interface {
	Render(rec AnalysisRecord) ([]byte, error)
}

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc            *Service
	Export         Exporter
	MaxUploadBytes int64
}

func NewHandler(svc *Service, export Exporter, maxUploadBytes int64) *Handler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = 50 << 20
	}
	return &Handler{Svc: svc, Export: export, MaxUploadBytes: maxUploadBytes}
}

// RegisterRoutes attaches paper and analysis routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/papers", h.upload)
	rg.POST("/papers/:id/analyze", h.analyze)
	rg.GET("/analyses/:id", h.get)
	rg.GET("/analyses/:id/export", h.export)
	rg.POST("/analyses/:id/authors", h.authors)
}

func (h *Handler) upload(c *gin.Context) {
	sessionID := middleware.SessionFromContext(c)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxUploadBytes)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is required", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}

	ctx := WithRequestID(c.Request.Context(), middleware.RequestIDFromContext(c))
	paper, err := h.Svc.Upload(ctx, sessionID, util.SanitizeFileName(fileHeader.Filename), data)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotPDF), errors.Is(err, ErrEmptyUpload):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to store upload", nil)
		}
		return
	}

	c.Set("paperId", paper.ID)
	respond.JSON(c, http.StatusCreated, toUploadResponse(paper))
}

func (h *Handler) analyze(c *gin.Context) {
	sessionID := middleware.SessionFromContext(c)
	paperID := c.Param("id")

	ctx := WithRequestID(c.Request.Context(), middleware.RequestIDFromContext(c))
	analysis, err := h.Svc.StartAnalysis(ctx, sessionID, paperID)
	if err != nil {
		switch {
		case errors.Is(err, ErrPaperNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "paper not found", nil)
		case errors.Is(err, ErrAnalysisInFlight):
			respond.Error(c, http.StatusConflict, "analysis_in_flight", err.Error(), nil)
		case errors.Is(err, credentials.ErrNoCredential):
			respond.Error(c, http.StatusServiceUnavailable, "no_credential", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to start analysis", nil)
		}
		return
	}

	c.Set("analysisId", analysis.ID)
	respond.JSON(c, http.StatusAccepted, analyzeResponse{
		AnalysisID: analysis.ID,
		Status:     analysis.Status,
	})
}

func (h *Handler) get(c *gin.Context) {
	sessionID := middleware.SessionFromContext(c)

	analysis, err := h.Svc.Get(c.Request.Context(), sessionID, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrAnalysisNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "analysis not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch analysis", nil)
		}
		return
	}

	c.Set("analysisId", analysis.ID)
	respond.OK(c, toAnalysisResponse(analysis))
}

func (h *Handler) export(c *gin.Context) {
	sessionID := middleware.SessionFromContext(c)

	analysis, err := h.Svc.Get(c.Request.Context(), sessionID, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrAnalysisNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "analysis not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch analysis", nil)
		}
		return
	}
	if analysis.Status != StatusCompleted || analysis.Record == nil {
		respond.Error(c, http.StatusConflict, "not_completed", "analysis has not completed", nil)
		return
	}

	doc, err := h.Export.Render(*analysis.Record)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to render report", nil)
		return
	}

	c.Set("analysisId", analysis.ID)
	c.Header("Content-Disposition", `attachment; filename="report.html"`)
	c.Data(http.StatusOK, "text/html; charset=utf-8", doc)
}

func (h *Handler) authors(c *gin.Context) {
	sessionID := middleware.SessionFromContext(c)

	background, err := h.Svc.LookupAuthors(c.Request.Context(), sessionID, c.Param("id"))
	if err != nil {
		var backendErr *llm.BackendError
		var parseErr *llm.ParseError
		switch {
		case errors.Is(err, ErrAnalysisNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "analysis not found", nil)
		case errors.Is(err, ErrNotCompleted):
			respond.Error(c, http.StatusConflict, "not_completed", err.Error(), nil)
		case errors.Is(err, credentials.ErrNoCredential):
			respond.Error(c, http.StatusServiceUnavailable, "no_credential", err.Error(), nil)
		case errors.As(err, &backendErr):
			respond.Error(c, http.StatusBadGateway, "llm_error", "author search failed", nil)
		case errors.As(err, &parseErr):
			respond.Error(c, http.StatusBadGateway, "llm_error", "author search returned an unusable response", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "author search failed", nil)
		}
		return
	}

	respond.OK(c, authorsResponse{
		Summary: background.Summary,
		Sources: background.Sources,
	})
}
