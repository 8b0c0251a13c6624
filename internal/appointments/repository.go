package appointments

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrNotFound = errors.New("appointment not found")
	// ErrSlotTaken means a non-cancelled appointment already holds the (date,time) pair.
	ErrSlotTaken = errors.New("slot already booked")
)

// Repository defines persistence operations for appointments
type Repository interface {
	// CreateIfSlotFree inserts the appointment only when no non-cancelled
	// appointment holds the same (date,time). Returns ErrSlotTaken otherwise.
	CreateIfSlotFree(ctx context.Context, a *Appointment) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*Appointment, error)
	ListByOwner(ctx context.Context, owner primitive.ObjectID) ([]*Appointment, error)
	ListActiveByDate(ctx context.Context, date string) ([]*Appointment, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status Status) error
}

// MongoRepository implements Repository using MongoDB
type MongoRepository struct {
	col *mongo.Collection
}

func NewMongoRepository(col *mongo.Collection) *MongoRepository {
	return &MongoRepository{col: col}
}

// CreateIfSlotFree performs the slot check and the insert as one atomic
// upsert instead of a separate read followed by a write: the filter matches
// any active appointment on the slot, and $setOnInsert only fires when the
// filter matched nothing. Two concurrent bookings for the same slot cannot
// both insert; the partial unique index on (date,time) backstops the upsert.
func (r *MongoRepository) CreateIfSlotFree(ctx context.Context, a *Appointment) error {
	now := time.Now().UTC()
	a.CreatedAt = now
	a.UpdatedAt = now
	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	filter := bson.M{
		"date":   a.Date,
		"time":   a.Time,
		"status": bson.M{"$ne": string(StatusCancelled)},
	}
	update := bson.M{"$setOnInsert": bson.M{
		"_id":       a.ID,
		"owner":     a.Owner,
		"pet":       a.PetID,
		"status":    a.Status,
		"notes":     a.Notes,
		"createdAt": a.CreatedAt,
		"updatedAt": a.UpdatedAt,
	}}
	res, err := r.col.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrSlotTaken
		}
		return err
	}
	if res.UpsertedCount == 0 {
		// an active appointment matched the filter; nothing was created
		return ErrSlotTaken
	}
	return nil
}

func (r *MongoRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*Appointment, error) {
	var a Appointment
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&a); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *MongoRepository) ListByOwner(ctx context.Context, owner primitive.ObjectID) ([]*Appointment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "time", Value: 1}})
	cur, err := r.col.Find(ctx, bson.M{"owner": owner}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	return decodeAll(ctx, cur)
}

func (r *MongoRepository) ListActiveByDate(ctx context.Context, date string) ([]*Appointment, error) {
	filter := bson.M{"date": date, "status": bson.M{"$ne": string(StatusCancelled)}}
	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	return decodeAll(ctx, cur)
}

func (r *MongoRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status Status) error {
	set := bson.M{"status": status, "updatedAt": time.Now().UTC()}
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func decodeAll(ctx context.Context, cur *mongo.Cursor) ([]*Appointment, error) {
	out := []*Appointment{}
	for cur.Next(ctx) {
		var a Appointment
		if err := cur.Decode(&a); err != nil {
			return nil, err
		}
		out = append(out, &a)
	}
	return out, cur.Err()
}
