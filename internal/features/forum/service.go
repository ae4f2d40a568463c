package forum

import (
	"context"
	"fmt"
	"strings"

	"github.com/xyz-asif/tradehub/internal/lifecycle"
	apperrors "github.com/xyz-asif/tradehub/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserDirectory answers whether a referenced user exists.
type UserDirectory interface {
	Exists(ctx context.Context, id primitive.ObjectID) (bool, error)
}

type Service struct {
	store Store
	users UserDirectory
	clock lifecycle.Clock
}

func NewService(store Store, users UserDirectory, clock lifecycle.Clock) *Service {
	if clock == nil {
		clock = lifecycle.SystemClock{}
	}
	return &Service{store: store, users: users, clock: clock}
}

func (s *Service) requireAuthor(ctx context.Context, id primitive.ObjectID) error {
	exists, err := s.users.Exists(ctx, id)
	if err != nil {
		return fmt.Errorf("lookup author: %w", err)
	}
	if !exists {
		return apperrors.NotFound("author")
	}
	return nil
}

// CreatePost starts a thread with zeroed vote counters.
func (s *Service) CreatePost(ctx context.Context, in CreatePostInput) (*Post, error) {
	if err := validatePost(&in); err != nil {
		return nil, err
	}
	if err := s.requireAuthor(ctx, in.AuthorID); err != nil {
		return nil, err
	}

	images := in.Images
	if images == nil {
		images = []Image{}
	}
	now := s.clock.Now()
	post := &Post{
		AuthorID:  in.AuthorID,
		Category:  in.Category,
		Title:     in.Title,
		Content:   in.Content,
		Images:    images,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.InsertPost(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *Service) GetPost(ctx context.Context, id primitive.ObjectID) (*Post, error) {
	return s.store.FindPost(ctx, id)
}

// Vote adds one to the chosen counter. Repeated votes keep counting.
func (s *Service) Vote(ctx context.Context, postID primitive.ObjectID, dir Direction) (*Post, error) {
	if dir != Up && dir != Down {
		return nil, apperrors.Validation("direction", "must be up or down")
	}
	return s.store.IncrementVote(ctx, postID, dir, s.clock.Now())
}

func (s *Service) DeletePost(ctx context.Context, id primitive.ObjectID) error {
	return s.store.DeletePost(ctx, id)
}

// CreateComment replies to an existing post.
func (s *Service) CreateComment(ctx context.Context, postID, authorID primitive.ObjectID, content string) (*Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperrors.Validation("content", "is required")
	}
	if authorID.IsZero() {
		return nil, apperrors.Validation("authorId", "is required")
	}

	exists, err := s.store.PostExists(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("lookup post: %w", err)
	}
	if !exists {
		return nil, apperrors.NotFound("post")
	}
	if err := s.requireAuthor(ctx, authorID); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	comment := &Comment{
		PostID:    postID,
		AuthorID:  authorID,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.InsertComment(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *Service) GetComment(ctx context.Context, id primitive.ObjectID) (*Comment, error) {
	return s.store.FindComment(ctx, id)
}

func (s *Service) ListComments(ctx context.Context, postID primitive.ObjectID) ([]Comment, error) {
	exists, err := s.store.PostExists(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("lookup post: %w", err)
	}
	if !exists {
		return nil, apperrors.NotFound("post")
	}
	return s.store.ListComments(ctx, postID)
}

func (s *Service) DeleteComment(ctx context.Context, id primitive.ObjectID) error {
	return s.store.DeleteComment(ctx, id)
}
