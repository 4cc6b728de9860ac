package portfolio

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("not found")

// ProjectRepository defines persistence operations for projects.
// Reorder must rewrite the order field of every listed project atomically:
// a concurrent reader sees either the old ordering or the new one.
type ProjectRepository interface {
	Create(ctx context.Context, p *Project) (string, error)
	Get(ctx context.Context, id string) (*Project, error)
	List(ctx context.Context) ([]*Project, error)
	Update(ctx context.Context, p *Project) error
	Delete(ctx context.Context, id string) error
	Reorder(ctx context.Context, orderedIDs []string) error
}

// ExperienceRepository defines persistence operations for work history.
type ExperienceRepository interface {
	Create(ctx context.Context, e *Experience) (string, error)
	Get(ctx context.Context, id string) (*Experience, error)
	List(ctx context.Context) ([]*Experience, error)
	Update(ctx context.Context, e *Experience) error
	Delete(ctx context.Context, id string) error
}

// BlogRepository defines persistence operations for blog posts.
type BlogRepository interface {
	Create(ctx context.Context, b *BlogPost) (string, error)
	Get(ctx context.Context, id string) (*BlogPost, error)
	GetBySlug(ctx context.Context, slug string) (*BlogPost, error)
	List(ctx context.Context, publishedOnly bool) ([]*BlogPost, error)
	Update(ctx context.Context, b *BlogPost) error
	Delete(ctx context.Context, id string) error
}
