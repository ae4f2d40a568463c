package events

import (
	"context"
	"fmt"

	"github.com/xyz-asif/tradehub/internal/database"
	"github.com/xyz-asif/tradehub/internal/lifecycle"
	"github.com/xyz-asif/tradehub/internal/pkg/broker"
	apperrors "github.com/xyz-asif/tradehub/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserDirectory answers whether a referenced user exists.
type UserDirectory interface {
	Exists(ctx context.Context, id primitive.ObjectID) (bool, error)
}

type Service struct {
	store  Store
	users  UserDirectory
	clock  lifecycle.Clock
	events broker.Publisher
}

func NewService(store Store, users UserDirectory, clock lifecycle.Clock, events broker.Publisher) *Service {
	if clock == nil {
		clock = lifecycle.SystemClock{}
	}
	if events == nil {
		events = broker.Nop{}
	}
	return &Service{store: store, users: users, clock: clock, events: events}
}

func (s *Service) requireUser(ctx context.Context, id primitive.ObjectID, entity string) error {
	exists, err := s.users.Exists(ctx, id)
	if err != nil {
		return fmt.Errorf("lookup %s: %w", entity, err)
	}
	if !exists {
		return apperrors.NotFound(entity)
	}
	return nil
}

func orEmpty(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}

// Create stores a new event with an empty roster and the status derived
// from its dates at creation time.
func (s *Service) Create(ctx context.Context, in CreateEventInput) (*Event, error) {
	if err := validateCreate(&in); err != nil {
		return nil, err
	}
	if err := s.requireUser(ctx, in.CreatorID, "creator"); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	event := &Event{
		Title:           in.Title,
		Description:     in.Description,
		Type:            in.Type,
		Status:          lifecycle.DeriveEventStatus(now, in.StartDate, in.EndDate),
		Prizes:          orEmpty(in.Prizes),
		Requirements:    orEmpty(in.Requirements),
		MaxParticipants: in.MaxParticipants,
		Participants:    []primitive.ObjectID{},
		StartDate:       in.StartDate,
		EndDate:         in.EndDate,
		CreatorID:       in.CreatorID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.store.Insert(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// Get returns the stored event, status as of its last write.
func (s *Service) Get(ctx context.Context, id primitive.ObjectID) (*Event, error) {
	return s.store.FindByID(ctx, id)
}

// View returns the stored event together with its status derived now.
func (s *Service) View(ctx context.Context, id primitive.ObjectID) (*EventResponse, error) {
	event, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &EventResponse{Event: event, CurrentStatus: event.CurrentStatus(s.clock.Now())}, nil
}

func (s *Service) ListByCreator(ctx context.Context, creatorID primitive.ObjectID) ([]Event, error) {
	return s.store.ListByCreator(ctx, creatorID)
}

func apply(event *Event, in *UpdateEventInput) {
	if in.Title != nil {
		event.Title = *in.Title
	}
	if in.Description != nil {
		event.Description = *in.Description
	}
	if in.Type != nil {
		event.Type = *in.Type
	}
	if in.Prizes != nil {
		event.Prizes = orEmpty(*in.Prizes)
	}
	if in.Requirements != nil {
		event.Requirements = orEmpty(*in.Requirements)
	}
	if in.MaxParticipants != nil {
		limit := *in.MaxParticipants
		event.MaxParticipants = &limit
	}
	if in.ClearMaxParticipants {
		event.MaxParticipants = nil
	}
	if in.StartDate != nil {
		event.StartDate = in.StartDate
	}
	if in.ClearStartDate {
		event.StartDate = nil
	}
	if in.EndDate != nil {
		event.EndDate = in.EndDate
	}
	if in.ClearEndDate {
		event.EndDate = nil
	}
}

// Update edits an event. Status is re-derived only when a date changes;
// other edits keep the stored status as it was.
func (s *Service) Update(ctx context.Context, id primitive.ObjectID, in UpdateEventInput) (*Event, error) {
	if err := validateUpdate(&in); err != nil {
		return nil, err
	}

	return database.RetryCAS(ctx, func(ctx context.Context) (*Event, error) {
		event, err := s.store.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}

		apply(event, &in)
		if err := validateDates(event.StartDate, event.EndDate); err != nil {
			return nil, err
		}
		if event.MaxParticipants != nil && *event.MaxParticipants < event.ParticipantCount {
			return nil, apperrors.Validation("maxParticipants", "cannot be below the %d current participants", event.ParticipantCount)
		}

		now := s.clock.Now()
		if in.touchesDates() {
			event.Status = lifecycle.DeriveEventStatus(now, event.StartDate, event.EndDate)
		}
		event.UpdatedAt = now
		return s.store.Replace(ctx, event)
	})
}

// Refresh re-derives the stored status against the current time.
func (s *Service) Refresh(ctx context.Context, id primitive.ObjectID) (*Event, error) {
	return database.RetryCAS(ctx, func(ctx context.Context) (*Event, error) {
		event, err := s.store.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}

		now := s.clock.Now()
		status := event.CurrentStatus(now)
		if status == event.Status {
			return event, nil
		}
		event.Status = status
		event.UpdatedAt = now
		return s.store.Replace(ctx, event)
	})
}

// Join adds userID to the roster. It fails with ErrCapacity when the cap is
// reached and ErrAlreadyJoined when the user is already in.
func (s *Service) Join(ctx context.Context, eventID, userID primitive.ObjectID) (*Event, error) {
	if err := s.requireUser(ctx, userID, "user"); err != nil {
		return nil, err
	}

	event, err := database.RetryCAS(ctx, func(ctx context.Context) (*Event, error) {
		return s.store.AddParticipant(ctx, eventID, userID, s.clock.Now())
	})
	if err != nil {
		return nil, err
	}

	broker.Emit(ctx, s.events, broker.KeyEventJoined, broker.MembershipChanged{
		EventID:          event.ID.Hex(),
		UserID:           userID.Hex(),
		ParticipantCount: event.ParticipantCount,
		ChangedAt:        event.UpdatedAt,
	})
	return event, nil
}

// Leave removes userID from the roster, failing with ErrNotParticipant when
// the user is not in it.
func (s *Service) Leave(ctx context.Context, eventID, userID primitive.ObjectID) (*Event, error) {
	event, err := database.RetryCAS(ctx, func(ctx context.Context) (*Event, error) {
		return s.store.RemoveParticipant(ctx, eventID, userID, s.clock.Now())
	})
	if err != nil {
		return nil, err
	}

	broker.Emit(ctx, s.events, broker.KeyEventLeft, broker.MembershipChanged{
		EventID:          event.ID.Hex(),
		UserID:           userID.Hex(),
		ParticipantCount: event.ParticipantCount,
		ChangedAt:        event.UpdatedAt,
	})
	return event, nil
}

func (s *Service) Delete(ctx context.Context, id primitive.ObjectID) error {
	return s.store.Delete(ctx, id)
}
