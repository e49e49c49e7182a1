package papers

import "errors"

var (
	ErrPaperNotFound    = errors.New("paper not found")
	ErrAnalysisNotFound = errors.New("analysis not found")
	ErrNotPDF           = errors.New("file is not a PDF")
	ErrEmptyUpload      = errors.New("uploaded file is empty")
	ErrAnalysisInFlight = errors.New("an analysis is already running for this session")
	ErrNotCompleted     = errors.New("analysis has not completed")
)
