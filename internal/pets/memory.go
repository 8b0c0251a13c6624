package pets

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryRepository is an in-memory Repository used for unit tests.
// Listing preserves insertion order, mirroring Mongo's natural order.
type MemoryRepository struct {
	mu    sync.RWMutex
	store map[primitive.ObjectID]*Pet
	order []primitive.ObjectID
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{store: make(map[primitive.ObjectID]*Pet)}
}

func (m *MemoryRepository) Create(ctx context.Context, p *Pet) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	cp := *p
	m.store[p.ID] = &cp
	m.order = append(m.order, p.ID)
	return nil
}

func (m *MemoryRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*Pet, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.store[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *MemoryRepository) ListByOwner(ctx context.Context, owner primitive.ObjectID) ([]*Pet, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []*Pet{}
	for _, id := range m.order {
		p, ok := m.store[id]
		if !ok || p.Owner != owner {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (m *MemoryRepository) Update(ctx context.Context, p *Pet) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[p.ID]; !ok {
		return ErrNotFound
	}
	p.UpdatedAt = time.Now().UTC()
	cp := *p
	cp.CreatedAt = m.store[p.ID].CreatedAt
	m.store[p.ID] = &cp
	return nil
}

func (m *MemoryRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[id]; !ok {
		return ErrNotFound
	}
	delete(m.store, id)
	return nil
}
