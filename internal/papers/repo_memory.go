package papers

import (
	"context"
	"sync"
)

// MemoryPaperRepo is an in-memory PaperRepo.
type MemoryPaperRepo struct {
	mu    sync.RWMutex
	items map[string]Paper
}

func NewMemoryPaperRepo() *MemoryPaperRepo {
	return &MemoryPaperRepo{items: make(map[string]Paper)}
}

func (r *MemoryPaperRepo) Save(ctx context.Context, p Paper) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[p.ID] = p
	return nil
}

func (r *MemoryPaperRepo) GetByID(ctx context.Context, sessionID, id string) (Paper, error) {
	if err := ctx.Err(); err != nil {
		return Paper{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.items[id]
	if !ok || p.SessionID != sessionID {
		return Paper{}, ErrPaperNotFound
	}
	return p, nil
}

func (r *MemoryPaperRepo) DeleteBySession(ctx context.Context, sessionID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, p := range r.items {
		if p.SessionID == sessionID {
			delete(r.items, id)
		}
	}
	return nil
}

// MemoryAnalysisRepo is an in-memory AnalysisRepo.
type MemoryAnalysisRepo struct {
	mu    sync.RWMutex
	items map[string]Analysis
}

func NewMemoryAnalysisRepo() *MemoryAnalysisRepo {
	return &MemoryAnalysisRepo{items: make(map[string]Analysis)}
}

func (r *MemoryAnalysisRepo) Save(ctx context.Context, a Analysis) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[a.ID] = a
	return nil
}

func (r *MemoryAnalysisRepo) GetByID(ctx context.Context, sessionID, id string) (Analysis, error) {
	if err := ctx.Err(); err != nil {
		return Analysis{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.items[id]
	if !ok || a.SessionID != sessionID {
		return Analysis{}, ErrAnalysisNotFound
	}
	return a, nil
}

func (r *MemoryAnalysisRepo) Update(ctx context.Context, a Analysis) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[a.ID]; !ok {
		return ErrAnalysisNotFound
	}
	r.items[a.ID] = a
	return nil
}

func (r *MemoryAnalysisRepo) HasActive(ctx context.Context, sessionID string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, a := range r.items {
		if a.SessionID == sessionID && (a.Status == StatusQueued || a.Status == StatusProcessing) {
			return true, nil
		}
	}
	return false, nil
}

func (r *MemoryAnalysisRepo) DeleteBySession(ctx context.Context, sessionID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, a := range r.items {
		if a.SessionID == sessionID {
			delete(r.items, id)
		}
	}
	return nil
}
