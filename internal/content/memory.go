package content

import (
	"context"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryRepository serves content from memory. Used in tests and as a
// seedable fallback when the site runs without pre-loaded collections.
type MemoryRepository struct {
	mu    sync.Mutex
	faqs  []*FAQ
	posts []*Post
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (m *MemoryRepository) AddFAQ(f *FAQ) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if f.ID.IsZero() {
		f.ID = primitive.NewObjectID()
	}
	cp := *f
	m.faqs = append(m.faqs, &cp)
}

func (m *MemoryRepository) AddPost(p *Post) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	cp := *p
	m.posts = append(m.posts, &cp)
}

func (m *MemoryRepository) ListFAQs(ctx context.Context) ([]*FAQ, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*FAQ, 0, len(m.faqs))
	for _, f := range m.faqs {
		cp := *f
		out = append(out, &cp)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].Order < out[j].Order
	})
	return out, nil
}

func (m *MemoryRepository) ListPosts(ctx context.Context, category string) ([]*Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*Post{}
	for _, p := range m.posts {
		if category != "" && p.Category != category {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PublishedAt.After(out[j].PublishedAt)
	})
	return out, nil
}

func (m *MemoryRepository) GetPostBySlug(ctx context.Context, slug string) (*Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.posts {
		if p.Slug == slug {
			cp := *p
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}
