package events

import (
	"context"
	"sync"
	"time"

	"github.com/xyz-asif/tradehub/internal/database"
	apperrors "github.com/xyz-asif/tradehub/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type memStore struct {
	mu     sync.Mutex
	events map[primitive.ObjectID]*Event
	// staleReplaces makes the next n Replace calls lose the race.
	staleReplaces int
}

func newMemStore() *memStore {
	return &memStore{events: make(map[primitive.ObjectID]*Event)}
}

func cloneEvent(e *Event) *Event {
	cp := *e
	cp.Participants = append([]primitive.ObjectID{}, e.Participants...)
	cp.Prizes = append([]string{}, e.Prizes...)
	cp.Requirements = append([]string{}, e.Requirements...)
	return &cp
}

func (s *memStore) Insert(_ context.Context, event *Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	event.ID = primitive.NewObjectID()
	s.events[event.ID] = cloneEvent(event)
	return nil
}

func (s *memStore) FindByID(_ context.Context, id primitive.ObjectID) (*Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.events[id]
	if !ok {
		return nil, apperrors.NotFound("event")
	}
	return cloneEvent(e), nil
}

func (s *memStore) ListByCreator(_ context.Context, creatorID primitive.ObjectID) ([]Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []Event{}
	for _, e := range s.events {
		if e.CreatorID == creatorID {
			out = append(out, *cloneEvent(e))
		}
	}
	return out, nil
}

func (s *memStore) Replace(_ context.Context, event *Event) (*Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.events[event.ID]
	if !ok || stored.Version != event.Version {
		return nil, database.ErrStale
	}
	if s.staleReplaces > 0 {
		s.staleReplaces--
		stored.Version++
		return nil, database.ErrStale
	}
	next := cloneEvent(event)
	next.Version++
	s.events[event.ID] = next
	return cloneEvent(next), nil
}

func (s *memStore) AddParticipant(_ context.Context, id, userID primitive.ObjectID, at time.Time) (*Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.events[id]
	if !ok {
		return nil, apperrors.NotFound("event")
	}
	if e.HasParticipant(userID) {
		return nil, apperrors.ErrAlreadyJoined
	}
	if e.Full() {
		return nil, apperrors.ErrCapacity
	}
	e.Participants = append(e.Participants, userID)
	e.ParticipantCount++
	e.Version++
	e.UpdatedAt = at
	return cloneEvent(e), nil
}

func (s *memStore) RemoveParticipant(_ context.Context, id, userID primitive.ObjectID, at time.Time) (*Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.events[id]
	if !ok {
		return nil, apperrors.NotFound("event")
	}
	if !e.HasParticipant(userID) {
		return nil, ErrNotParticipant
	}
	kept := e.Participants[:0]
	for _, p := range e.Participants {
		if p != userID {
			kept = append(kept, p)
		}
	}
	e.Participants = kept
	e.ParticipantCount--
	e.Version++
	e.UpdatedAt = at
	return cloneEvent(e), nil
}

func (s *memStore) Delete(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.events[id]; !ok {
		return apperrors.NotFound("event")
	}
	delete(s.events, id)
	return nil
}

// directory treats every ID as an existing user unless listed as missing.
type directory struct {
	missing map[primitive.ObjectID]bool
}

func (d directory) Exists(_ context.Context, id primitive.ObjectID) (bool, error) {
	return !d.missing[id], nil
}
