package reviews

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrInvalidInput = errors.New("invalid input")

type Service struct {
	repo        Repository
	autoApprove bool
}

// NewService builds the review service. When autoApprove is set, submitted
// reviews are published immediately instead of waiting for moderation.
func NewService(repo Repository, autoApprove bool) *Service {
	return &Service{repo: repo, autoApprove: autoApprove}
}

type SubmitInput struct {
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	PetType PetType `json:"petType"`
	Rating  int     `json:"rating"`
	Comment string  `json:"comment"`
}

func (s *Service) Submit(ctx context.Context, in SubmitInput) (*Review, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Comment = strings.TrimSpace(in.Comment)
	if in.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if in.Rating < 1 || in.Rating > 5 {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", ErrInvalidInput)
	}
	if !ValidPetType(in.PetType) {
		return nil, fmt.Errorf("%w: petType must be dog, cat or other", ErrInvalidInput)
	}
	if in.Comment == "" {
		return nil, fmt.Errorf("%w: comment is required", ErrInvalidInput)
	}

	rev := &Review{
		Name:      in.Name,
		Email:     strings.ToLower(strings.TrimSpace(in.Email)),
		PetType:   in.PetType,
		Rating:    in.Rating,
		Comment:   in.Comment,
		Approved:  s.autoApprove,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, rev); err != nil {
		return nil, err
	}
	return rev, nil
}

// ListPublic returns the approved reviews shown on the marketing site.
func (s *Service) ListPublic(ctx context.Context) ([]*Review, error) {
	return s.repo.ListApproved(ctx)
}

func (s *Service) ListPending(ctx context.Context) ([]*Review, error) {
	return s.repo.ListPending(ctx)
}

func (s *Service) Approve(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	return s.repo.Approve(ctx, oid)
}
