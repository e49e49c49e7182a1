package papers

import "context"

// PaperRepo stores uploaded papers.
type PaperRepo interface {
	Save(ctx context.Context, p Paper) error
	GetByID(ctx context.Context, sessionID, id string) (Paper, error)
	DeleteBySession(ctx context.Context, sessionID string) error
}

// AnalysisRepo stores analysis jobs and their results.
type AnalysisRepo interface {
	Save(ctx context.Context, a Analysis) error
	GetByID(ctx context.Context, sessionID, id string) (Analysis, error)
	Update(ctx context.Context, a Analysis) error
	HasActive(ctx context.Context, sessionID string) (bool, error)
	DeleteBySession(ctx context.Context, sessionID string) error
}
