package papers

import "time"

const (
	StatusQueued     = "queued"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// Paper holds an uploaded PDF for the lifetime of a session.
type Paper struct {
	ID         string    `json:"id"`
	SessionID  string    `json:"-"`
	FileName   string    `json:"fileName"`
	SizeBytes  int       `json:"sizeBytes"`
	PageCount  int       `json:"pageCount"`
	Data       []byte    `json:"-"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// Analysis tracks one analysis job for a paper.
type Analysis struct {
	ID          string          `json:"id"`
	PaperID     string          `json:"paperId"`
	SessionID   string          `json:"-"`
	Status      string          `json:"status"`
	Record      *AnalysisRecord `json:"record,omitempty"`
	Error       string          `json:"error,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	CompletedAt *time.Time      `json:"completedAt,omitempty"`
}

// AnalysisRecord is the structured digest of one paper.
type AnalysisRecord struct {
	TitleOriginal   string      `json:"title_original"`
	TitleTranslated string      `json:"title_translated"`
	SourceInfo      string      `json:"source_info"`
	PublicationYear string      `json:"publication_year"`
	Background      string      `json:"background"`
	ResultsSummary  string      `json:"results_summary"`
	Figures         []FigureRef `json:"figures"`
	Novelty         string      `json:"novelty"`
	Conclusions     string      `json:"conclusions"`
}

// FigureRef locates and explains one Figure/Table/Scheme. BBox is
// [y_min, x_min, y_max, x_max] on a 0-1000 scale. CroppedImage is PNG
// bytes, attached only by Aggregate; encoding/json renders it as base64.
type FigureRef struct {
	Label        string `json:"label"`
	Explanation  string `json:"explanation"`
	PageNumber   int    `json:"page_number"`
	BBox         []int  `json:"bbox"`
	CroppedImage []byte `json:"cropped_image,omitempty"`
}
