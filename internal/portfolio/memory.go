package portfolio

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryProjectRepository is an in-memory ProjectRepository used for unit
// tests and local development without a MongoDB instance.
type MemoryProjectRepository struct {
	mu    sync.RWMutex
	store map[string]*Project
}

func NewMemoryProjectRepository() *MemoryProjectRepository {
	return &MemoryProjectRepository{store: make(map[string]*Project)}
}

func (m *MemoryProjectRepository) Create(ctx context.Context, p *Project) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	cp := *p
	m.store[p.ID] = &cp
	return p.ID, nil
}

func (m *MemoryProjectRepository) Get(ctx context.Context, id string) (*Project, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if p, ok := m.store[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, ErrNotFound
}

func (m *MemoryProjectRepository) List(ctx context.Context) ([]*Project, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Project, 0, len(m.store))
	for _, p := range m.store {
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out, nil
}

func (m *MemoryProjectRepository) Update(ctx context.Context, p *Project) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[p.ID]; !ok {
		return ErrNotFound
	}
	p.UpdatedAt = time.Now().UTC()
	cp := *p
	m.store[p.ID] = &cp
	return nil
}

func (m *MemoryProjectRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[id]; !ok {
		return ErrNotFound
	}
	delete(m.store, id)
	return nil
}

// Reorder applies all order changes under one lock; readers see the old or the
// new ordering, never a mix.
func (m *MemoryProjectRepository) Reorder(ctx context.Context, orderedIDs []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range orderedIDs {
		if _, ok := m.store[id]; !ok {
			return ErrNotFound
		}
	}
	now := time.Now().UTC()
	for i, id := range orderedIDs {
		m.store[id].Order = i
		m.store[id].UpdatedAt = now
	}
	return nil
}

// MemoryExperienceRepository is the in-memory ExperienceRepository.
type MemoryExperienceRepository struct {
	mu    sync.RWMutex
	store map[string]*Experience
}

func NewMemoryExperienceRepository() *MemoryExperienceRepository {
	return &MemoryExperienceRepository{store: make(map[string]*Experience)}
}

func (m *MemoryExperienceRepository) Create(ctx context.Context, e *Experience) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	e.CreatedAt = now
	e.UpdatedAt = now
	cp := *e
	m.store[e.ID] = &cp
	return e.ID, nil
}

func (m *MemoryExperienceRepository) Get(ctx context.Context, id string) (*Experience, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if e, ok := m.store[id]; ok {
		cp := *e
		return &cp, nil
	}
	return nil, ErrNotFound
}

func (m *MemoryExperienceRepository) List(ctx context.Context) ([]*Experience, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Experience, 0, len(m.store))
	for _, e := range m.store {
		cp := *e
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate.After(out[j].StartDate) })
	return out, nil
}

func (m *MemoryExperienceRepository) Update(ctx context.Context, e *Experience) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[e.ID]; !ok {
		return ErrNotFound
	}
	e.UpdatedAt = time.Now().UTC()
	cp := *e
	m.store[e.ID] = &cp
	return nil
}

func (m *MemoryExperienceRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[id]; !ok {
		return ErrNotFound
	}
	delete(m.store, id)
	return nil
}

// MemoryBlogRepository is the in-memory BlogRepository.
type MemoryBlogRepository struct {
	mu    sync.RWMutex
	store map[string]*BlogPost
}

func NewMemoryBlogRepository() *MemoryBlogRepository {
	return &MemoryBlogRepository{store: make(map[string]*BlogPost)}
}

func (m *MemoryBlogRepository) Create(ctx context.Context, b *BlogPost) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	b.CreatedAt = now
	b.UpdatedAt = now
	cp := *b
	m.store[b.ID] = &cp
	return b.ID, nil
}

func (m *MemoryBlogRepository) Get(ctx context.Context, id string) (*BlogPost, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if b, ok := m.store[id]; ok {
		cp := *b
		return &cp, nil
	}
	return nil, ErrNotFound
}

func (m *MemoryBlogRepository) GetBySlug(ctx context.Context, slug string) (*BlogPost, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, b := range m.store {
		if b.Slug == slug {
			cp := *b
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryBlogRepository) List(ctx context.Context, publishedOnly bool) ([]*BlogPost, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*BlogPost, 0, len(m.store))
	for _, b := range m.store {
		if publishedOnly && !b.Published {
			continue
		}
		cp := *b
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		ti, tj := out[i].CreatedAt, out[j].CreatedAt
		if out[i].PublishedAt != nil {
			ti = *out[i].PublishedAt
		}
		if out[j].PublishedAt != nil {
			tj = *out[j].PublishedAt
		}
		return ti.After(tj)
	})
	return out, nil
}

func (m *MemoryBlogRepository) Update(ctx context.Context, b *BlogPost) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[b.ID]; !ok {
		return ErrNotFound
	}
	b.UpdatedAt = time.Now().UTC()
	cp := *b
	m.store[b.ID] = &cp
	return nil
}

func (m *MemoryBlogRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[id]; !ok {
		return ErrNotFound
	}
	delete(m.store, id)
	return nil
}
