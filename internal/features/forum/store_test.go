package forum

import (
	"context"
	"sort"
	"sync"
	"time"

	apperrors "github.com/xyz-asif/tradehub/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type memStore struct {
	mu       sync.Mutex
	posts    map[primitive.ObjectID]*Post
	comments map[primitive.ObjectID]*Comment
}

func newMemStore() *memStore {
	return &memStore{
		posts:    make(map[primitive.ObjectID]*Post),
		comments: make(map[primitive.ObjectID]*Comment),
	}
}

func clonePost(p *Post) *Post {
	cp := *p
	cp.Images = append([]Image{}, p.Images...)
	return &cp
}

func (s *memStore) InsertPost(_ context.Context, post *Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	post.ID = primitive.NewObjectID()
	s.posts[post.ID] = clonePost(post)
	return nil
}

func (s *memStore) FindPost(_ context.Context, id primitive.ObjectID) (*Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[id]
	if !ok {
		return nil, apperrors.NotFound("post")
	}
	return clonePost(p), nil
}

func (s *memStore) PostExists(_ context.Context, id primitive.ObjectID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.posts[id]
	return ok, nil
}

func (s *memStore) IncrementVote(_ context.Context, id primitive.ObjectID, dir Direction, at time.Time) (*Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[id]
	if !ok {
		return nil, apperrors.NotFound("post")
	}
	if dir == Down {
		p.Downvotes++
	} else {
		p.Upvotes++
	}
	p.UpdatedAt = at
	return clonePost(p), nil
}

func (s *memStore) DeletePost(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.posts[id]; !ok {
		return apperrors.NotFound("post")
	}
	delete(s.posts, id)
	return nil
}

func (s *memStore) InsertComment(_ context.Context, comment *Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	comment.ID = primitive.NewObjectID()
	cp := *comment
	s.comments[comment.ID] = &cp
	return nil
}

func (s *memStore) FindComment(_ context.Context, id primitive.ObjectID) (*Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.comments[id]
	if !ok {
		return nil, apperrors.NotFound("comment")
	}
	cp := *c
	return &cp, nil
}

func (s *memStore) ListComments(_ context.Context, postID primitive.ObjectID) ([]Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []Comment{}
	for _, c := range s.comments {
		if c.PostID == postID {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *memStore) DeleteComment(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.comments[id]; !ok {
		return apperrors.NotFound("comment")
	}
	delete(s.comments, id)
	return nil
}

type directory map[primitive.ObjectID]bool

func (d directory) Exists(_ context.Context, id primitive.ObjectID) (bool, error) {
	return d[id], nil
}
