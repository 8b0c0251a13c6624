package content

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrNotFound = errors.New("content not found")

type Repository interface {
	ListFAQs(ctx context.Context) ([]*FAQ, error)
	// ListPosts returns published posts newest first. An empty category
	// means all categories.
	ListPosts(ctx context.Context, category string) ([]*Post, error)
	GetPostBySlug(ctx context.Context, slug string) (*Post, error)
}

type MongoRepository struct {
	faqs  *mongo.Collection
	posts *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{
		faqs:  db.Collection("faqs"),
		posts: db.Collection("posts"),
	}
}

func (r *MongoRepository) ListFAQs(ctx context.Context) ([]*FAQ, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "category", Value: 1},
		{Key: "order", Value: 1},
	})
	cur, err := r.faqs.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []*FAQ{}
	for cur.Next(ctx) {
		var f FAQ
		if err := cur.Decode(&f); err != nil {
			return nil, err
		}
		out = append(out, &f)
	}
	return out, cur.Err()
}

func (r *MongoRepository) ListPosts(ctx context.Context, category string) ([]*Post, error) {
	filter := bson.M{}
	if category != "" {
		filter["category"] = category
	}
	opts := options.Find().SetSort(bson.D{{Key: "publishedAt", Value: -1}})
	cur, err := r.posts.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []*Post{}
	for cur.Next(ctx) {
		var p Post
		if err := cur.Decode(&p); err != nil {
			return nil, err
		}
		out = append(out, &p)
	}
	return out, cur.Err()
}

func (r *MongoRepository) GetPostBySlug(ctx context.Context, slug string) (*Post, error) {
	var p Post
	err := r.posts.FindOne(ctx, bson.M{"slug": slug}).Decode(&p)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}
