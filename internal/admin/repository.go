package admin

import (
	"context"
	"errors"
	"sync"
)

var (
	ErrNotFound       = errors.New("principal not found")
	ErrDuplicateEmail = errors.New("email already registered")
)

// Repository defines persistence operations for admin principals.
type Repository interface {
	Create(ctx context.Context, p *Principal) error
	GetByEmail(ctx context.Context, email string) (*Principal, error)
}

// MemoryRepository is an in-memory Repository for tests.
type MemoryRepository struct {
	mu      sync.RWMutex
	byEmail map[string]*Principal
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{byEmail: make(map[string]*Principal)}
}

func (r *MemoryRepository) Create(ctx context.Context, p *Principal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byEmail[p.Email]; ok {
		return ErrDuplicateEmail
	}
	cp := *p
	r.byEmail[p.Email] = &cp
	return nil
}

func (r *MemoryRepository) GetByEmail(ctx context.Context, email string) (*Principal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.byEmail[email]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}
