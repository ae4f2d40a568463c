// Package userstest provides an in-memory users.Store for tests.
package userstest

import (
	"context"
	"sync"
	"time"

	"github.com/xyz-asif/tradehub/internal/features/users"
	apperrors "github.com/xyz-asif/tradehub/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemStore mirrors the Mongo repository: unique username and email, and
// every write applied under one lock.
type MemStore struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]*users.User
}

func New() *MemStore {
	return &MemStore{users: make(map[primitive.ObjectID]*users.User)}
}

func clone(u *users.User) *users.User {
	cp := *u
	cp.Tokens = append([]users.SessionToken{}, u.Tokens...)
	if u.BannedAt != nil {
		t := *u.BannedAt
		cp.BannedAt = &t
	}
	if u.LastLogin != nil {
		t := *u.LastLogin
		cp.LastLogin = &t
	}
	return &cp
}

func (s *MemStore) conflict(field, value string, exclude primitive.ObjectID) bool {
	for id, u := range s.users {
		if id == exclude {
			continue
		}
		if (field == "username" && u.Username == value) || (field == "email" && u.Email == value) {
			return true
		}
	}
	return false
}

func (s *MemStore) Insert(_ context.Context, user *users.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conflict("username", user.Username, primitive.NilObjectID) {
		return apperrors.Validation("username", "is already taken")
	}
	if s.conflict("email", user.Email, primitive.NilObjectID) {
		return apperrors.Validation("email", "is already taken")
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	s.users[user.ID] = clone(user)
	return nil
}

func (s *MemStore) find(match func(*users.User) bool) (*users.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if match(u) {
			return clone(u), nil
		}
	}
	return nil, apperrors.NotFound("user")
}

func (s *MemStore) FindByID(_ context.Context, id primitive.ObjectID) (*users.User, error) {
	return s.find(func(u *users.User) bool { return u.ID == id })
}

func (s *MemStore) FindByUsername(_ context.Context, username string) (*users.User, error) {
	return s.find(func(u *users.User) bool { return u.Username == username })
}

func (s *MemStore) FindByEmail(_ context.Context, email string) (*users.User, error) {
	return s.find(func(u *users.User) bool { return u.Email == email })
}

func (s *MemStore) Taken(_ context.Context, field, value string, exclude primitive.ObjectID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conflict(field, value, exclude), nil
}

func (s *MemStore) Apply(_ context.Context, id primitive.ObjectID, p *users.Patch, at time.Time) (*users.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, apperrors.NotFound("user")
	}
	if p.Username != nil && s.conflict("username", *p.Username, id) {
		return nil, apperrors.Validation("username", "is already taken")
	}
	if p.Email != nil && s.conflict("email", *p.Email, id) {
		return nil, apperrors.Validation("email", "is already taken")
	}

	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&u.Username, p.Username)
	set(&u.Email, p.Email)
	set(&u.RobloxUsername, p.RobloxUsername)
	set(&u.AvatarURL, p.AvatarURL)
	set(&u.Bio, p.Bio)
	set(&u.DiscordUsername, p.DiscordUsername)
	set(&u.Timezone, p.Timezone)
	if p.VerificationRequested != nil {
		u.VerificationRequested = *p.VerificationRequested
	}
	if p.MiddlemanRequested != nil {
		u.MiddlemanRequested = *p.MiddlemanRequested
	}
	if p.LastLogin != nil {
		t := *p.LastLogin
		u.LastLogin = &t
	}
	if p.Role != nil {
		u.Role = *p.Role
		if *p.Role == users.RoleBanned {
			u.BanReason = p.BanReason
			t := *p.BannedAt
			u.BannedAt = &t
		}
	}
	if p.ClearBan {
		u.BanReason = ""
		u.BannedAt = nil
	}
	u.UpdatedAt = at
	return clone(u), nil
}

func (s *MemStore) PushToken(_ context.Context, id primitive.ObjectID, tok users.SessionToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return apperrors.NotFound("user")
	}
	u.Tokens = append(u.Tokens, tok)
	return nil
}

func (s *MemStore) PullToken(_ context.Context, id primitive.ObjectID, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return apperrors.NotFound("user")
	}
	kept := u.Tokens[:0]
	for _, t := range u.Tokens {
		if t.Token != token {
			kept = append(kept, t)
		}
	}
	u.Tokens = kept
	return nil
}

func (s *MemStore) ClearTokens(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return apperrors.NotFound("user")
	}
	u.Tokens = []users.SessionToken{}
	return nil
}

func (s *MemStore) IncrementCredibility(_ context.Context, id primitive.ObjectID, delta int, at time.Time) (*users.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, apperrors.NotFound("user")
	}
	u.CredibilityScore += delta
	u.UpdatedAt = at
	return clone(u), nil
}

func (s *MemStore) Exists(_ context.Context, id primitive.ObjectID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.users[id]
	return ok, nil
}
