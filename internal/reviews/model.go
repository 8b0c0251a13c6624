package reviews

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PetType is the kind of animal the review is about. It is free of any
// relation to the reviewer's registered pets; anyone may leave a review.
type PetType string

const (
	PetTypeDog   PetType = "dog"
	PetTypeCat   PetType = "cat"
	PetTypeOther PetType = "other"
)

func ValidPetType(p PetType) bool {
	switch p {
	case PetTypeDog, PetTypeCat, PetTypeOther:
		return true
	}
	return false
}

type Review struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"-"`
	PetType   PetType            `bson:"petType" json:"petType"`
	Rating    int                `bson:"rating" json:"rating"`
	Comment   string             `bson:"comment" json:"comment"`
	Approved  bool               `bson:"approved" json:"approved"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
