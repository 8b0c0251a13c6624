package appointments

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryRepository is an in-memory Repository used for unit tests. The mutex
// makes CreateIfSlotFree atomic the same way the Mongo upsert is.
type MemoryRepository struct {
	mu    sync.RWMutex
	store map[primitive.ObjectID]*Appointment
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{store: make(map[primitive.ObjectID]*Appointment)}
}

func (m *MemoryRepository) CreateIfSlotFree(ctx context.Context, a *Appointment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, ex := range m.store {
		if ex.Date == a.Date && ex.Time == a.Time && ex.Status != StatusCancelled {
			return ErrSlotTaken
		}
	}
	now := time.Now().UTC()
	a.CreatedAt = now
	a.UpdatedAt = now
	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	cp := *a
	m.store[a.ID] = &cp
	return nil
}

func (m *MemoryRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*Appointment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.store[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (m *MemoryRepository) ListByOwner(ctx context.Context, owner primitive.ObjectID) ([]*Appointment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []*Appointment{}
	for _, a := range m.store {
		if a.Owner == owner {
			cp := *a
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].Time < out[j].Time
	})
	return out, nil
}

func (m *MemoryRepository) ListActiveByDate(ctx context.Context, date string) ([]*Appointment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []*Appointment{}
	for _, a := range m.store {
		if a.Date == date && a.Status != StatusCancelled {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *MemoryRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status Status) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.store[id]
	if !ok {
		return ErrNotFound
	}
	a.Status = status
	a.UpdatedAt = time.Now().UTC()
	return nil
}
