package reviews

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrNotFound = errors.New("review not found")

// PublicLimit caps the number of reviews shown on the public site.
const PublicLimit = 10

type Repository interface {
	Create(ctx context.Context, r *Review) error
	// ListApproved returns at most PublicLimit approved reviews, newest first.
	ListApproved(ctx context.Context) ([]*Review, error)
	ListPending(ctx context.Context) ([]*Review, error)
	Approve(ctx context.Context, id primitive.ObjectID) error
}

type MongoRepository struct {
	col *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{col: db.Collection("reviews")}
}

func (r *MongoRepository) Create(ctx context.Context, rev *Review) error {
	if rev.ID.IsZero() {
		rev.ID = primitive.NewObjectID()
	}
	if rev.CreatedAt.IsZero() {
		rev.CreatedAt = time.Now().UTC()
	}
	_, err := r.col.InsertOne(ctx, rev)
	return err
}

func (r *MongoRepository) ListApproved(ctx context.Context) ([]*Review, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(PublicLimit)
	cur, err := r.col.Find(ctx, bson.M{"approved": true}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []*Review{}
	for cur.Next(ctx) {
		var rev Review
		if err := cur.Decode(&rev); err != nil {
			return nil, err
		}
		out = append(out, &rev)
	}
	return out, cur.Err()
}

func (r *MongoRepository) ListPending(ctx context.Context) ([]*Review, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cur, err := r.col.Find(ctx, bson.M{"approved": false}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []*Review{}
	for cur.Next(ctx) {
		var rev Review
		if err := cur.Decode(&rev); err != nil {
			return nil, err
		}
		out = append(out, &rev)
	}
	return out, cur.Err()
}

func (r *MongoRepository) Approve(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"approved": true}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
