package appointments

import (
	"time"

	"github.com/patitas/patitas/backend/api/internal/pets"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Status of an appointment. A cancelled appointment frees its slot.
type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// DateLayout is the calendar-day representation stored on the wire and in the
// store. Slot matching is exact string equality on date and time; there is no
// timezone normalization or duration-overlap logic.
const DateLayout = "2006-01-02"

// Slots is the clinic's fixed bookable time-of-day list (morning block and
// afternoon block).
var Slots = []string{"09:00", "10:00", "11:00", "12:00", "15:00", "16:00", "17:00", "18:00"}

func ValidSlot(t string) bool {
	for _, s := range Slots {
		if s == t {
			return true
		}
	}
	return false
}

// Appointment references exactly one pet and one owning user. At most one
// non-cancelled appointment may exist per (date,time) pair, globally.
type Appointment struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Owner     primitive.ObjectID `bson:"owner" json:"owner"`
	PetID     primitive.ObjectID `bson:"pet" json:"petId"`
	Date      string             `bson:"date" json:"date"`
	Time      string             `bson:"time" json:"time"`
	Status    Status             `bson:"status" json:"status"`
	Notes     string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`

	// Pet is populated one level deep on reads; never persisted here.
	Pet *pets.Pet `bson:"-" json:"pet,omitempty"`
}

// SlotAvailability reports whether a single slot is free on a given date.
type SlotAvailability struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
}
