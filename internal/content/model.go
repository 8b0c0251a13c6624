package content

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FAQ is a single question/answer pair shown on the public FAQ page.
// Entries are ordered by Order within their category.
type FAQ struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Question string             `bson:"question" json:"question"`
	Answer   string             `bson:"answer" json:"answer"`
	Category string             `bson:"category" json:"category"`
	Order    int                `bson:"order" json:"order"`
}

// Post is a published blog article. Content is managed out of band; the API
// only serves it.
type Post struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Slug        string             `bson:"slug" json:"slug"`
	Excerpt     string             `bson:"excerpt" json:"excerpt"`
	Body        string             `bson:"body" json:"body"`
	Category    string             `bson:"category" json:"category"`
	Tags        []string           `bson:"tags" json:"tags"`
	PublishedAt time.Time          `bson:"publishedAt" json:"publishedAt"`
}
