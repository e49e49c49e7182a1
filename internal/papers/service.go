package papers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"chempaper-backend/internal/credentials"
	"chempaper-backend/internal/geometry"
	"chempaper-backend/internal/llm"
	"chempaper-backend/internal/shared/telemetry"
)

var pdfMagic = []byte("%PDF-")

// PageInfo reads page count and media box sizes from raw PDF bytes.
type PageInfo interface {
	Count(data []byte) (int, error)
	Sizes(data []byte) ([]geometry.PageSize, error)
}

// CropExtractor turns reported figure boxes into PNG crops.
type CropExtractor interface {
	Extract(ctx context.Context, pdf []byte, figures []geometry.Figure, pages []geometry.PageSize) [][]byte
}

// Service contains business logic for papers and analyses.
type Service struct {
	Papers      PaperRepo
	Analyses    AnalysisRepo
	Credentials credentials.Provider
	LLM         llm.Client
	Extractor   CropExtractor
	Pages       PageInfo
}

// Upload validates and stores an uploaded PDF.
func (s *Service) Upload(ctx context.Context, sessionID, fileName string, data []byte) (Paper, error) {
	if len(data) == 0 {
		return Paper{}, ErrEmptyUpload
	}
	if !bytes.HasPrefix(data, pdfMagic) {
		return Paper{}, ErrNotPDF
	}

	pageCount := 0
	if s.Pages != nil {
		n, err := s.Pages.Count(data)
		if err != nil {
			telemetry.Error("paper.page_count", map[string]any{
				"request_id": requestIDFromContext(ctx),
				"file_name":  fileName,
				"error":      err.Error(),
			})
		} else {
			pageCount = n
		}
	}

	paper := Paper{
		ID:         uuid.NewString(),
		SessionID:  sessionID,
		FileName:   fileName,
		SizeBytes:  len(data),
		PageCount:  pageCount,
		Data:       data,
		UploadedAt: time.Now().UTC(),
	}
	if err := s.Papers.Save(ctx, paper); err != nil {
		return Paper{}, err
	}
	return paper, nil
}

// StartAnalysis enqueues an analysis for a paper and kicks off asynchronous
// completion. The credential is picked up front so a misconfigured pool
// fails the request before any network call.
func (s *Service) StartAnalysis(ctx context.Context, sessionID, paperID string) (Analysis, error) {
	if paperID == "" {
		return Analysis{}, errors.New("paperID is required")
	}

	paper, err := s.Papers.GetByID(ctx, sessionID, paperID)
	if err != nil {
		return Analysis{}, err
	}

	active, err := s.Analyses.HasActive(ctx, sessionID)
	if err != nil {
		return Analysis{}, err
	}
	if active {
		return Analysis{}, ErrAnalysisInFlight
	}

	credential, err := s.Credentials.Pick()
	if err != nil {
		return Analysis{}, err
	}

	analysis := Analysis{
		ID:        uuid.NewString(),
		PaperID:   paper.ID,
		SessionID: sessionID,
		Status:    StatusQueued,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.Analyses.Save(ctx, analysis); err != nil {
		return Analysis{}, err
	}

	go s.completeAsync(backgroundWithRequestID(ctx), analysis, paper, credential)

	return analysis, nil
}

// Get returns an analysis by ID.
func (s *Service) Get(ctx context.Context, sessionID, analysisID string) (Analysis, error) {
	if analysisID == "" {
		return Analysis{}, errors.New("analysisID is required")
	}
	return s.Analyses.GetByID(ctx, sessionID, analysisID)
}

// LookupAuthors runs a grounded web search about a completed analysis'
// authors and returns the summary with its source URLs.
func (s *Service) LookupAuthors(ctx context.Context, sessionID, analysisID string) (llm.AuthorBackground, error) {
	analysis, err := s.Analyses.GetByID(ctx, sessionID, analysisID)
	if err != nil {
		return llm.AuthorBackground{}, err
	}
	if analysis.Status != StatusCompleted || analysis.Record == nil {
		return llm.AuthorBackground{}, ErrNotCompleted
	}

	credential, err := s.Credentials.Pick()
	if err != nil {
		return llm.AuthorBackground{}, err
	}

	return s.LLM.LookupAuthors(ctx, llm.AuthorLookupInput{
		Title:      analysis.Record.TitleOriginal,
		SourceInfo: analysis.Record.SourceInfo,
		Credential: credential,
	})
}

// Reset discards all papers and analyses belonging to a session.
func (s *Service) Reset(ctx context.Context, sessionID string) error {
	if err := s.Analyses.DeleteBySession(ctx, sessionID); err != nil {
		return err
	}
	return s.Papers.DeleteBySession(ctx, sessionID)
}

func (s *Service) completeAsync(ctx context.Context, analysis Analysis, paper Paper, credential string) {
	defer func() {
		if r := recover(); r != nil {
			s.failAnalysis(ctx, analysis, fmt.Errorf("panic: %v", r))
		}
	}()

	startedAt := time.Now().UTC()
	analysis.Status = StatusProcessing
	if err := s.Analyses.Update(ctx, analysis); err != nil {
		s.failAnalysis(ctx, analysis, fmt.Errorf("set processing failed: %w", err))
		return
	}
	s.logStatus(ctx, analysis, "queued->processing", startedAt)

	raw, err := s.LLM.Analyze(ctx, llm.AnalyzeInput{PDF: paper.Data, Credential: credential})
	if err != nil {
		s.failAnalysis(ctx, analysis, fmt.Errorf("llm analyze: %w", err))
		return
	}

	record, err := ParseRecord(raw)
	if err != nil {
		s.failAnalysis(ctx, analysis, fmt.Errorf("llm output invalid: %w", err))
		return
	}

	// Page sizes are best effort; the mapper falls back to US Letter.
	var pages []geometry.PageSize
	if s.Pages != nil {
		pages, err = s.Pages.Sizes(paper.Data)
		if err != nil {
			telemetry.Error("analysis.page_sizes", map[string]any{
				"request_id":  requestIDFromContext(ctx),
				"analysis_id": analysis.ID,
				"error":       err.Error(),
			})
			pages = nil
		}
	}

	crops := s.Extractor.Extract(ctx, paper.Data, figureGeometry(record.Figures), pages)
	enriched := Aggregate(record, crops)

	completedAt := time.Now().UTC()
	analysis.Status = StatusCompleted
	analysis.Record = &enriched
	analysis.CompletedAt = &completedAt
	if err := s.Analyses.Update(ctx, analysis); err != nil {
		s.failAnalysis(ctx, analysis, fmt.Errorf("set analysis result failed: %w", err))
		return
	}
	s.logStatus(ctx, analysis, "processing->completed", startedAt)
}

func (s *Service) failAnalysis(ctx context.Context, analysis Analysis, err error) {
	completedAt := time.Now().UTC()
	analysis.Status = StatusFailed
	analysis.Error = sanitizeError(err)
	analysis.Record = nil
	analysis.CompletedAt = &completedAt
	if updateErr := s.Analyses.Update(context.Background(), analysis); updateErr != nil {
		telemetry.Error("analysis.fail_update", map[string]any{
			"analysis_id": analysis.ID,
			"error":       updateErr.Error(),
			"original":    err.Error(),
		})
	}
	s.logStatus(ctx, analysis, "processing->failed", analysis.CreatedAt)
}

func (s *Service) logStatus(ctx context.Context, analysis Analysis, transition string, since time.Time) {
	telemetry.Info("analysis.status", map[string]any{
		"request_id":        requestIDFromContext(ctx),
		"analysis_id":       analysis.ID,
		"paper_id":          analysis.PaperID,
		"status":            analysis.Status,
		"status_transition": transition,
		"duration_ms":       float64(time.Since(since).Microseconds()) / 1000.0,
		"error":             analysis.Error,
	})
}

func figureGeometry(figures []FigureRef) []geometry.Figure {
	out := make([]geometry.Figure, len(figures))
	for i, fig := range figures {
		out[i] = geometry.Figure{
			Label:      fig.Label,
			PageNumber: fig.PageNumber,
			BBox:       fig.BBox,
		}
	}
	return out
}

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	msg := strings.ReplaceAll(err.Error(), "\n", " ")
	msg = strings.ReplaceAll(msg, "\r", " ")
	msg = strings.TrimSpace(msg)
	const maxLen = 500
	if len(msg) > maxLen {
		msg = msg[:maxLen]
	}
	return msg
}
