package reviews

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryRepository keeps reviews in memory. Used in tests.
type MemoryRepository struct {
	mu   sync.Mutex
	list []*Review
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (m *MemoryRepository) Create(ctx context.Context, r *Review) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r.ID.IsZero() {
		r.ID = primitive.NewObjectID()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	cp := *r
	m.list = append(m.list, &cp)
	return nil
}

func (m *MemoryRepository) ListApproved(ctx context.Context) ([]*Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*Review{}
	for _, r := range m.list {
		if r.Approved {
			cp := *r
			out = append(out, &cp)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if len(out) > PublicLimit {
		out = out[:PublicLimit]
	}
	return out, nil
}

func (m *MemoryRepository) ListPending(ctx context.Context) ([]*Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*Review{}
	for _, r := range m.list {
		if !r.Approved {
			cp := *r
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *MemoryRepository) Approve(ctx context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.list {
		if r.ID == id {
			r.Approved = true
			return nil
		}
	}
	return ErrNotFound
}
