package appointments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/patitas/patitas/backend/api/internal/pets"
	"github.com/patitas/patitas/backend/api/pkg/metrics"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	// ErrForbidden is returned when the appointment or pet belongs to another user.
	ErrForbidden = errors.New("appointment belongs to another user")
)

// Service implements scheduling and cancellation on top of a Repository.
// Identity arrives pre-resolved (owner id from the access token); the service
// verifies pet and appointment ownership before anything reaches the store.
type Service struct {
	repo Repository
	pets pets.Repository
}

func NewService(repo Repository, petsRepo pets.Repository) *Service {
	return &Service{repo: repo, pets: petsRepo}
}

type ScheduleInput struct {
	Date  string `json:"date"`
	Time  string `json:"time"`
	PetID string `json:"petId"`
	Notes string `json:"notes"`
}

// Schedule books a slot for one of the caller's pets. The slot check and the
// insert are a single atomic operation in the repository, so two concurrent
// requests for the same (date,time) cannot both succeed.
func (s *Service) Schedule(ctx context.Context, owner primitive.ObjectID, in ScheduleInput) (*Appointment, error) {
	metrics.BookingAttempts.Inc()

	if _, err := time.Parse(DateLayout, in.Date); err != nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
	}
	if !ValidSlot(in.Time) {
		return nil, fmt.Errorf("%w: time is not a bookable slot", ErrInvalidInput)
	}
	petID, err := primitive.ObjectIDFromHex(in.PetID)
	if err != nil {
		return nil, fmt.Errorf("%w: petId is malformed", ErrInvalidInput)
	}
	pet, err := s.pets.GetByID(ctx, petID)
	if err != nil {
		return nil, err
	}
	if pet.Owner != owner {
		return nil, ErrForbidden
	}

	a := &Appointment{
		Owner:  owner,
		PetID:  petID,
		Date:   in.Date,
		Time:   in.Time,
		Status: StatusScheduled,
		Notes:  in.Notes,
	}
	if err := s.repo.CreateIfSlotFree(ctx, a); err != nil {
		if errors.Is(err, ErrSlotTaken) {
			metrics.BookingConflicts.Inc()
		}
		return nil, err
	}
	a.Pet = pet
	return a, nil
}

// List returns the caller's appointments ordered by date and time, with the
// referenced pet populated one level deep.
func (s *Service) List(ctx context.Context, owner primitive.ObjectID) ([]*Appointment, error) {
	list, err := s.repo.ListByOwner(ctx, owner)
	if err != nil {
		return nil, err
	}
	for _, a := range list {
		pet, err := s.pets.GetByID(ctx, a.PetID)
		if err != nil {
			// the pet may have been deleted; the appointment still renders
			continue
		}
		a.Pet = pet
	}
	return list, nil
}

// Cancel marks the appointment cancelled after verifying the caller owns it,
// freeing the slot for rebooking.
func (s *Service) Cancel(ctx context.Context, owner primitive.ObjectID, id string) (*Appointment, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	a, err := s.repo.GetByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if a.Owner != owner {
		return nil, ErrForbidden
	}
	if a.Status == StatusCancelled {
		return a, nil
	}
	if err := s.repo.UpdateStatus(ctx, oid, StatusCancelled); err != nil {
		return nil, err
	}
	a.Status = StatusCancelled
	return a, nil
}

// Availability reports, for every slot of the given date, whether it is free.
func (s *Service) Availability(ctx context.Context, date string) ([]SlotAvailability, error) {
	if _, err := time.Parse(DateLayout, date); err != nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
	}
	active, err := s.repo.ListActiveByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	taken := make(map[string]bool, len(active))
	for _, a := range active {
		taken[a.Time] = true
	}
	out := make([]SlotAvailability, 0, len(Slots))
	for _, slot := range Slots {
		out = append(out, SlotAvailability{Time: slot, Available: !taken[slot]})
	}
	return out, nil
}
