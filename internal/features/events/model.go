package events

import (
	"time"

	"github.com/xyz-asif/tradehub/internal/lifecycle"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type EventType string

const (
	TypeGiveaway    EventType = "giveaway"
	TypeCompetition EventType = "competition"
	TypeEvent       EventType = "event"
)

func (t EventType) Valid() bool {
	switch t {
	case TypeGiveaway, TypeCompetition, TypeEvent:
		return true
	}
	return false
}

// Event is a time-bounded campaign. Status is derived from the dates when
// the event is written; ParticipantCount always equals len(Participants).
type Event struct {
	ID               primitive.ObjectID    `bson:"_id,omitempty" json:"id"`
	Title            string                `bson:"title" json:"title"`
	Description      string                `bson:"description" json:"description"`
	Type             EventType             `bson:"type" json:"type"`
	Status           lifecycle.EventStatus `bson:"status" json:"status"`
	Prizes           []string              `bson:"prizes" json:"prizes"`
	Requirements     []string              `bson:"requirements" json:"requirements"`
	MaxParticipants  *int                  `bson:"maxParticipants" json:"maxParticipants,omitempty"`
	ParticipantCount int                   `bson:"participantCount" json:"participantCount"`
	Participants     []primitive.ObjectID  `bson:"participants" json:"participants"`
	StartDate        *time.Time            `bson:"startDate,omitempty" json:"startDate,omitempty"`
	EndDate          *time.Time            `bson:"endDate,omitempty" json:"endDate,omitempty"`
	CreatorID        primitive.ObjectID    `bson:"creatorId" json:"creatorId"`
	Version          int64                 `bson:"version" json:"-"`
	CreatedAt        time.Time             `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time             `bson:"updatedAt" json:"updatedAt"`
}

// CurrentStatus derives the status against now instead of the last write.
func (e *Event) CurrentStatus(now time.Time) lifecycle.EventStatus {
	return lifecycle.DeriveEventStatus(now, e.StartDate, e.EndDate)
}

func (e *Event) HasParticipant(userID primitive.ObjectID) bool {
	for _, p := range e.Participants {
		if p == userID {
			return true
		}
	}
	return false
}

// Full reports whether the roster has reached its cap.
func (e *Event) Full() bool {
	return e.MaxParticipants != nil && e.ParticipantCount >= *e.MaxParticipants
}

type CreateEventInput struct {
	Title           string
	Description     string
	Type            EventType
	Prizes          []string
	Requirements    []string
	StartDate       *time.Time
	EndDate         *time.Time
	CreatorID       primitive.ObjectID
	MaxParticipants *int
}

// UpdateEventInput lists the fields to change; nil fields are left alone.
type UpdateEventInput struct {
	Title                *string
	Description          *string
	Type                 *EventType
	Prizes               *[]string
	Requirements         *[]string
	MaxParticipants      *int
	ClearMaxParticipants bool
	StartDate            *time.Time
	EndDate              *time.Time
	ClearStartDate       bool
	ClearEndDate         bool
}

func (in *UpdateEventInput) touchesDates() bool {
	return in.StartDate != nil || in.EndDate != nil || in.ClearStartDate || in.ClearEndDate
}

// CreateEventRequest represents the payload for creating an event
type CreateEventRequest struct {
	Title           string     `json:"title" binding:"required,max=255"`
	Description     string     `json:"description"`
	Type            EventType  `json:"type" binding:"required"`
	Prizes          []string   `json:"prizes"`
	Requirements    []string   `json:"requirements"`
	MaxParticipants *int       `json:"maxParticipants"`
	StartDate       *time.Time `json:"startDate"`
	EndDate         *time.Time `json:"endDate"`
}

// UpdateEventRequest represents the payload for editing an event
type UpdateEventRequest struct {
	Title                *string    `json:"title" binding:"omitempty,max=255"`
	Description          *string    `json:"description"`
	Type                 *EventType `json:"type"`
	Prizes               *[]string  `json:"prizes"`
	Requirements         *[]string  `json:"requirements"`
	MaxParticipants      *int       `json:"maxParticipants"`
	ClearMaxParticipants bool       `json:"clearMaxParticipants"`
	StartDate            *time.Time `json:"startDate"`
	EndDate              *time.Time `json:"endDate"`
	ClearStartDate       bool       `json:"clearStartDate"`
	ClearEndDate         bool       `json:"clearEndDate"`
}

// EventResponse pairs the stored snapshot with the status derived at read time.
type EventResponse struct {
	*Event
	CurrentStatus lifecycle.EventStatus `json:"currentStatus"`
}
