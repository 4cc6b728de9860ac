package portfolio

import (
	"context"
	"errors"
	"strings"
	"time"
)

var ErrValidation = errors.New("validation failed")

// Service encapsulates portfolio content business logic over the three
// repositories.
type Service struct {
	projects   ProjectRepository
	experience ExperienceRepository
	blog       BlogRepository
}

func NewService(p ProjectRepository, e ExperienceRepository, b BlogRepository) *Service {
	return &Service{projects: p, experience: e, blog: b}
}

func (s *Service) CreateProject(ctx context.Context, p *Project) (string, error) {
	if strings.TrimSpace(p.Title) == "" || strings.TrimSpace(p.Description) == "" {
		return "", ErrValidation
	}
	// new projects go to the end of the display order
	existing, err := s.projects.List(ctx)
	if err != nil {
		return "", err
	}
	p.Order = len(existing)
	return s.projects.Create(ctx, p)
}

func (s *Service) GetProject(ctx context.Context, id string) (*Project, error) {
	return s.projects.Get(ctx, id)
}

func (s *Service) ListProjects(ctx context.Context) ([]*Project, error) {
	return s.projects.List(ctx)
}

func (s *Service) UpdateProject(ctx context.Context, p *Project) error {
	if strings.TrimSpace(p.Title) == "" || strings.TrimSpace(p.Description) == "" {
		return ErrValidation
	}
	return s.projects.Update(ctx, p)
}

func (s *Service) DeleteProject(ctx context.Context, id string) error {
	return s.projects.Delete(ctx, id)
}

// ReorderProjects rewrites the display order to match orderedIDs. The id list
// must cover every stored project; the repository applies it as one atomic
// batch.
func (s *Service) ReorderProjects(ctx context.Context, orderedIDs []string) error {
	existing, err := s.projects.List(ctx)
	if err != nil {
		return err
	}
	if len(orderedIDs) != len(existing) {
		return ErrValidation
	}
	seen := make(map[string]bool, len(orderedIDs))
	for _, id := range orderedIDs {
		if seen[id] {
			return ErrValidation
		}
		seen[id] = true
	}
	for _, p := range existing {
		if !seen[p.ID] {
			return ErrValidation
		}
	}
	return s.projects.Reorder(ctx, orderedIDs)
}

func (s *Service) CreateExperience(ctx context.Context, e *Experience) (string, error) {
	if strings.TrimSpace(e.Company) == "" || strings.TrimSpace(e.Position) == "" {
		return "", ErrValidation
	}
	if e.IsCurrentRole {
		e.EndDate = nil
	}
	return s.experience.Create(ctx, e)
}

func (s *Service) ListExperience(ctx context.Context) ([]*Experience, error) {
	return s.experience.List(ctx)
}

func (s *Service) UpdateExperience(ctx context.Context, e *Experience) error {
	if strings.TrimSpace(e.Company) == "" || strings.TrimSpace(e.Position) == "" {
		return ErrValidation
	}
	if e.IsCurrentRole {
		e.EndDate = nil
	}
	return s.experience.Update(ctx, e)
}

func (s *Service) DeleteExperience(ctx context.Context, id string) error {
	return s.experience.Delete(ctx, id)
}

func (s *Service) CreateBlogPost(ctx context.Context, b *BlogPost) (string, error) {
	if strings.TrimSpace(b.Title) == "" || strings.TrimSpace(b.Content) == "" {
		return "", ErrValidation
	}
	b.Slug = Slugify(b.Title)
	b.ReadTime = readTime(b.Content)
	if b.Published && b.PublishedAt == nil {
		now := time.Now().UTC()
		b.PublishedAt = &now
	}
	return s.blog.Create(ctx, b)
}

func (s *Service) GetBlogPost(ctx context.Context, id string) (*BlogPost, error) {
	return s.blog.Get(ctx, id)
}

func (s *Service) GetBlogPostBySlug(ctx context.Context, slug string) (*BlogPost, error) {
	return s.blog.GetBySlug(ctx, slug)
}

func (s *Service) ListBlogPosts(ctx context.Context, publishedOnly bool) ([]*BlogPost, error) {
	return s.blog.List(ctx, publishedOnly)
}

func (s *Service) UpdateBlogPost(ctx context.Context, b *BlogPost) error {
	if strings.TrimSpace(b.Title) == "" || strings.TrimSpace(b.Content) == "" {
		return ErrValidation
	}
	b.Slug = Slugify(b.Title)
	b.ReadTime = readTime(b.Content)
	return s.blog.Update(ctx, b)
}

// PublishBlogPost marks a post published and stamps publishedAt.
func (s *Service) PublishBlogPost(ctx context.Context, id string) (*BlogPost, error) {
	b, err := s.blog.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !b.Published {
		now := time.Now().UTC()
		b.Published = true
		b.PublishedAt = &now
		if err := s.blog.Update(ctx, b); err != nil {
			return nil, err
		}
	}
	return b, nil
}

func (s *Service) DeleteBlogPost(ctx context.Context, id string) error {
	return s.blog.Delete(ctx, id)
}

// readTime estimates reading minutes at ~200 words per minute, minimum 1.
func readTime(content string) int {
	words := len(strings.Fields(content))
	rt := (words + 199) / 200
	if rt < 1 {
		rt = 1
	}
	return rt
}
