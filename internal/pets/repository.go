package pets

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var ErrNotFound = errors.New("pet not found")

// Repository defines persistence operations for pets
type Repository interface {
	Create(ctx context.Context, p *Pet) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*Pet, error)
	ListByOwner(ctx context.Context, owner primitive.ObjectID) ([]*Pet, error)
	Update(ctx context.Context, p *Pet) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// MongoRepository implements Repository using MongoDB
type MongoRepository struct {
	col *mongo.Collection
}

func NewMongoRepository(col *mongo.Collection) *MongoRepository {
	return &MongoRepository{col: col}
}

func (r *MongoRepository) Create(ctx context.Context, p *Pet) error {
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	_, err := r.col.InsertOne(ctx, p)
	return err
}

func (r *MongoRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*Pet, error) {
	var p Pet
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *MongoRepository) ListByOwner(ctx context.Context, owner primitive.ObjectID) ([]*Pet, error) {
	cur, err := r.col.Find(ctx, bson.M{"owner": owner})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []*Pet{}
	for cur.Next(ctx) {
		var p Pet
		if err := cur.Decode(&p); err != nil {
			return nil, err
		}
		out = append(out, &p)
	}
	return out, cur.Err()
}

func (r *MongoRepository) Update(ctx context.Context, p *Pet) error {
	p.UpdatedAt = time.Now().UTC()
	set := bson.M{
		"name":           p.Name,
		"species":        p.Species,
		"breed":          p.Breed,
		"age":            p.Age,
		"weight":         p.Weight,
		"medicalHistory": p.MedicalHistory,
		"photoKey":       p.PhotoKey,
		"updatedAt":      p.UpdatedAt,
	}
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": p.ID}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
