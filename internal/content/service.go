package content

import "context"

// Service is a thin read-only layer over the content repository.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) FAQs(ctx context.Context) ([]*FAQ, error) {
	return s.repo.ListFAQs(ctx)
}

func (s *Service) Posts(ctx context.Context, category string) ([]*Post, error) {
	return s.repo.ListPosts(ctx, category)
}

func (s *Service) PostBySlug(ctx context.Context, slug string) (*Post, error) {
	return s.repo.GetPostBySlug(ctx, slug)
}
