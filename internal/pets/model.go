package pets

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Species groups pets into the categories the clinic cares about.
type Species string

const (
	SpeciesDog   Species = "dog"
	SpeciesCat   Species = "cat"
	SpeciesOther Species = "other"
)

func ValidSpecies(s Species) bool {
	switch s {
	case SpeciesDog, SpeciesCat, SpeciesOther:
		return true
	}
	return false
}

// Pet is a client's animal. Every read and mutation is scoped to Owner.
type Pet struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Owner          primitive.ObjectID `bson:"owner" json:"owner"`
	Name           string             `bson:"name" json:"name"`
	Species        Species            `bson:"species" json:"species"`
	Breed          string             `bson:"breed" json:"breed"`
	Age            int                `bson:"age" json:"age"`
	Weight         float64            `bson:"weight" json:"weight"`
	MedicalHistory string             `bson:"medicalHistory,omitempty" json:"medicalHistory,omitempty"`
	PhotoKey       string             `bson:"photoKey,omitempty" json:"-"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}
