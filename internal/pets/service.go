package pets

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	// ErrForbidden is returned when the pet exists but belongs to another user.
	ErrForbidden = errors.New("pet belongs to another user")
)

const (
	maxAge    = 30
	maxWeight = 100
)

// Service applies validation and the owner-scope rule on top of a Repository.
// Callers pass the authenticated owner id with every operation; the service
// verifies ownership in application code before any mutation reaches the store.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type Input struct {
	Name           string  `json:"name"`
	Species        string  `json:"species"`
	Breed          string  `json:"breed"`
	Age            int     `json:"age"`
	Weight         float64 `json:"weight"`
	MedicalHistory string  `json:"medicalHistory"`
}

func validate(in Input) error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if !ValidSpecies(Species(in.Species)) {
		return fmt.Errorf("%w: species must be dog, cat or other", ErrInvalidInput)
	}
	if in.Age < 0 || in.Age > maxAge {
		return fmt.Errorf("%w: age must be between 0 and %d", ErrInvalidInput, maxAge)
	}
	if in.Weight < 0 || in.Weight > maxWeight {
		return fmt.Errorf("%w: weight must be between 0 and %d", ErrInvalidInput, maxWeight)
	}
	return nil
}

func (s *Service) Create(ctx context.Context, owner primitive.ObjectID, in Input) (*Pet, error) {
	if err := validate(in); err != nil {
		return nil, err
	}
	p := &Pet{
		Owner:          owner,
		Name:           strings.TrimSpace(in.Name),
		Species:        Species(in.Species),
		Breed:          strings.TrimSpace(in.Breed),
		Age:            in.Age,
		Weight:         in.Weight,
		MedicalHistory: strings.TrimSpace(in.MedicalHistory),
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) List(ctx context.Context, owner primitive.ObjectID) ([]*Pet, error) {
	return s.repo.ListByOwner(ctx, owner)
}

// Get returns the pet only when it belongs to the given owner.
func (s *Service) Get(ctx context.Context, owner primitive.ObjectID, id string) (*Pet, error) {
	p, err := s.getOwned(ctx, owner, id)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) Update(ctx context.Context, owner primitive.ObjectID, id string, in Input) (*Pet, error) {
	if err := validate(in); err != nil {
		return nil, err
	}
	p, err := s.getOwned(ctx, owner, id)
	if err != nil {
		return nil, err
	}
	p.Name = strings.TrimSpace(in.Name)
	p.Species = Species(in.Species)
	p.Breed = strings.TrimSpace(in.Breed)
	p.Age = in.Age
	p.Weight = in.Weight
	p.MedicalHistory = strings.TrimSpace(in.MedicalHistory)
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) Delete(ctx context.Context, owner primitive.ObjectID, id string) error {
	p, err := s.getOwned(ctx, owner, id)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, p.ID)
}

// SetPhotoKey records the object-storage key of the pet's uploaded photo.
func (s *Service) SetPhotoKey(ctx context.Context, owner primitive.ObjectID, id, key string) (*Pet, error) {
	p, err := s.getOwned(ctx, owner, id)
	if err != nil {
		return nil, err
	}
	p.PhotoKey = key
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// getOwned loads a pet by hex id and enforces the ownership invariant.
func (s *Service) getOwned(ctx context.Context, owner primitive.ObjectID, id string) (*Pet, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	p, err := s.repo.GetByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if p.Owner != owner {
		return nil, ErrForbidden
	}
	return p, nil
}
