package papers

import "time"

type uploadResponse struct {
	ID         string    `json:"id"`
	FileName   string    `json:"fileName"`
	SizeBytes  int       `json:"sizeBytes"`
	PageCount  int       `json:"pageCount"`
	UploadedAt time.Time `json:"uploadedAt"`
}

type analyzeResponse struct {
	AnalysisID string `json:"analysisId"`
	Status     string `json:"status"`
}

type analysisResponse struct {
	ID          string          `json:"id"`
	PaperID     string          `json:"paperId"`
	Status      string          `json:"status"`
	Record      *AnalysisRecord `json:"record,omitempty"`
	Error       string          `json:"error,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	CompletedAt *time.Time      `json:"completedAt,omitempty"`
}

type authorsResponse struct {
	Summary string   `json:"summary"`
	Sources []string `json:"sources"`
}

func toUploadResponse(p Paper) uploadResponse {
	return uploadResponse{
		ID:         p.ID,
		FileName:   p.FileName,
		SizeBytes:  p.SizeBytes,
		PageCount:  p.PageCount,
		UploadedAt: p.UploadedAt,
	}
}

func toAnalysisResponse(a Analysis) analysisResponse {
	return analysisResponse{
		ID:          a.ID,
		PaperID:     a.PaperID,
		Status:      a.Status,
		Record:      a.Record,
		Error:       a.Error,
		CreatedAt:   a.CreatedAt,
		CompletedAt: a.CompletedAt,
	}
}
