package forum

import (
	"context"
	"errors"
	"time"

	"github.com/xyz-asif/tradehub/internal/database"
	"github.com/xyz-asif/tradehub/internal/pkg/logger"
	apperrors "github.com/xyz-asif/tradehub/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store persists posts and comments. Vote counters move by $inc only.
type Store interface {
	InsertPost(ctx context.Context, post *Post) error
	FindPost(ctx context.Context, id primitive.ObjectID) (*Post, error)
	PostExists(ctx context.Context, id primitive.ObjectID) (bool, error)
	IncrementVote(ctx context.Context, id primitive.ObjectID, dir Direction, at time.Time) (*Post, error)
	DeletePost(ctx context.Context, id primitive.ObjectID) error

	InsertComment(ctx context.Context, comment *Comment) error
	FindComment(ctx context.Context, id primitive.ObjectID) (*Comment, error)
	ListComments(ctx context.Context, postID primitive.ObjectID) ([]Comment, error)
	DeleteComment(ctx context.Context, id primitive.ObjectID) error
}

type Repository struct {
	posts    *mongo.Collection
	comments *mongo.Collection
}

func NewRepository(db *mongo.Database) *Repository {
	posts := db.Collection("forum_posts")
	comments := db.Collection("forum_comments")

	if err := database.EnsureIndexes(posts, []mongo.IndexModel{
		{Keys: bson.D{{Key: "authorId", Value: 1}}},
		{Keys: bson.D{{Key: "category", Value: 1}, {Key: "createdAt", Value: -1}}},
	}); err != nil {
		logger.Warn("forum: %v", err)
	}
	if err := database.EnsureIndexes(comments, []mongo.IndexModel{
		{Keys: bson.D{{Key: "postId", Value: 1}, {Key: "createdAt", Value: 1}}},
		{Keys: bson.D{{Key: "authorId", Value: 1}}},
	}); err != nil {
		logger.Warn("forum: %v", err)
	}

	return &Repository{posts: posts, comments: comments}
}

func (r *Repository) InsertPost(ctx context.Context, post *Post) error {
	result, err := r.posts.InsertOne(ctx, post)
	if err != nil {
		return err
	}
	post.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *Repository) FindPost(ctx context.Context, id primitive.ObjectID) (*Post, error) {
	var post Post
	if err := r.posts.FindOne(ctx, bson.M{"_id": id}).Decode(&post); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound("post")
		}
		return nil, err
	}
	return &post, nil
}

func (r *Repository) PostExists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	count, err := r.posts.CountDocuments(ctx, bson.M{"_id": id}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *Repository) IncrementVote(ctx context.Context, id primitive.ObjectID, dir Direction, at time.Time) (*Post, error) {
	field := "upvotes"
	if dir == Down {
		field = "downvotes"
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var post Post
	err := r.posts.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$inc": bson.M{field: 1}, "$set": bson.M{"updatedAt": at}},
		opts,
	).Decode(&post)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound("post")
		}
		return nil, err
	}
	return &post, nil
}

func (r *Repository) DeletePost(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.posts.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return apperrors.NotFound("post")
	}
	return nil
}

func (r *Repository) InsertComment(ctx context.Context, comment *Comment) error {
	result, err := r.comments.InsertOne(ctx, comment)
	if err != nil {
		return err
	}
	comment.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *Repository) FindComment(ctx context.Context, id primitive.ObjectID) (*Comment, error) {
	var comment Comment
	if err := r.comments.FindOne(ctx, bson.M{"_id": id}).Decode(&comment); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound("comment")
		}
		return nil, err
	}
	return &comment, nil
}

func (r *Repository) ListComments(ctx context.Context, postID primitive.ObjectID) ([]Comment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := r.comments.Find(ctx, bson.M{"postId": postID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	comments := []Comment{}
	if err := cursor.All(ctx, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *Repository) DeleteComment(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.comments.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return apperrors.NotFound("comment")
	}
	return nil
}
