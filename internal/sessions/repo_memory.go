package sessions

import "sync"

// MemoryRepo is an in-memory session store.
type MemoryRepo struct {
	mu    sync.RWMutex
	items map[string]Session
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{items: make(map[string]Session)}
}

func (r *MemoryRepo) Save(s Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[s.Token] = s
}

func (r *MemoryRepo) Exists(token string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.items[token]
	return ok
}

func (r *MemoryRepo) Delete(token string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, token)
}
