package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/inkpress/blog-api/internal/core/domain"
	"github.com/inkpress/blog-api/internal/core/ports"
)

const postsCollection = "posts"

// PostRepository implements ports.PostRepository on a MongoDB collection.
type PostRepository struct {
	coll *mongo.Collection
}

func NewPostRepository(db *mongo.Database) *PostRepository {
	return &PostRepository{coll: db.Collection(postsCollection)}
}

type mongoPost struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Title     string             `bson:"title"`
	Summary   string             `bson:"summary"`
	Content   string             `bson:"content"`
	CoverPath string             `bson:"cover_path"`
	AuthorID  primitive.ObjectID `bson:"author_id"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`

	// Author is only populated by the FindRecent $lookup.
	Author *struct {
		Username string `bson:"username"`
	} `bson:"author,omitempty"`
}

func (mp *mongoPost) toDomain() *domain.Post {
	p := &domain.Post{
		ID:        mp.ID.Hex(),
		Title:     mp.Title,
		Summary:   mp.Summary,
		Content:   mp.Content,
		CoverPath: mp.CoverPath,
		AuthorID:  mp.AuthorID.Hex(),
		CreatedAt: mp.CreatedAt.UTC(),
		UpdatedAt: mp.UpdatedAt.UTC(),
	}
	if mp.Author != nil {
		p.AuthorName = mp.Author.Username
	}
	return p
}

func (r *PostRepository) Create(ctx context.Context, post *domain.Post) (*domain.Post, error) {
	authorOID, err := primitive.ObjectIDFromHex(post.AuthorID)
	if err != nil {
		return nil, fmt.Errorf("insert post: bad author id: %w", err)
	}

	now := time.Now().UTC()
	doc := mongoPost{
		Title:     post.Title,
		Summary:   post.Summary,
		Content:   post.Content,
		CoverPath: post.CoverPath,
		AuthorID:  authorOID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert post: %w", err)
	}

	created := *post
	created.CreatedAt = now
	created.UpdatedAt = now
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *PostRepository) FindByID(ctx context.Context, id string) (*domain.Post, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrPostNotFound
	}

	var mp mongoPost
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mp); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPostNotFound
		}
		return nil, fmt.Errorf("find post: %w", err)
	}
	return mp.toDomain(), nil
}

// FindRecent returns the newest posts joined with each author's username.
// The $unwind preserves posts whose author has been deleted; those come back
// with an empty AuthorName.
func (r *PostRepository) FindRecent(ctx context.Context, limit int) ([]*domain.Post, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}}}},
		{{Key: "$limit", Value: limit}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: usersCollection},
			{Key: "localField", Value: "author_id"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "author"},
		}}},
		{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$author"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer cursor.Close(ctx)

	posts := make([]*domain.Post, 0, limit)
	for cursor.Next(ctx) {
		var mp mongoPost
		if err := cursor.Decode(&mp); err != nil {
			return nil, fmt.Errorf("list posts: decode: %w", err)
		}
		posts = append(posts, mp.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("list posts: cursor: %w", err)
	}
	return posts, nil
}

func (r *PostRepository) UpdateByID(ctx context.Context, id string, upd ports.PostUpdate) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrPostNotFound
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	if upd.Title != "" {
		set["title"] = upd.Title
	}
	if upd.Summary != "" {
		set["summary"] = upd.Summary
	}
	if upd.Content != "" {
		set["content"] = upd.Content
	}
	if upd.CoverPath != "" {
		set["cover_path"] = upd.CoverPath
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("update post: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}

func (r *PostRepository) DeleteByID(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrPostNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}

// EnsureIndexes creates the indexes backing the feed query and the author filter.
func (r *PostRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "author_id", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
