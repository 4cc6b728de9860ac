package assets

import (
	"context"
	"errors"
	"sync"
)

// ErrNotFound is returned when no blob matches the requested kind or id.
var ErrNotFound = errors.New("file not found")

// Repository persists inline file blobs.
type Repository interface {
	// UpsertByKind overwrites the singleton blob for the given kind.
	UpsertByKind(ctx context.Context, f *StoredFile) error
	GetByKind(ctx context.Context, kind string) (*StoredFile, error)
	DeleteByKind(ctx context.Context, kind string) error
	// Insert stores a non-singleton blob under its id.
	Insert(ctx context.Context, f *StoredFile) error
	GetByID(ctx context.Context, id string) (*StoredFile, error)
}

// MemoryRepository is an in-memory Repository for tests and local runs.
type MemoryRepository struct {
	mu    sync.RWMutex
	byID  map[string]*StoredFile
	kinds map[string]*StoredFile
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		byID:  make(map[string]*StoredFile),
		kinds: make(map[string]*StoredFile),
	}
}

func (r *MemoryRepository) UpsertByKind(ctx context.Context, f *StoredFile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *f
	r.kinds[f.Kind] = &cp
	return nil
}

func (r *MemoryRepository) GetByKind(ctx context.Context, kind string) (*StoredFile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.kinds[kind]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *f
	return &cp, nil
}

func (r *MemoryRepository) DeleteByKind(ctx context.Context, kind string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.kinds[kind]; !ok {
		return ErrNotFound
	}
	delete(r.kinds, kind)
	return nil
}

func (r *MemoryRepository) Insert(ctx context.Context, f *StoredFile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *f
	r.byID[f.ID] = &cp
	return nil
}

func (r *MemoryRepository) GetByID(ctx context.Context, id string) (*StoredFile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *f
	return &cp, nil
}
