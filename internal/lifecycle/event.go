package lifecycle

import "time"

// EventStatus is the time-derived state of an event.
type EventStatus string

const (
	EventActive   EventStatus = "active"
	EventUpcoming EventStatus = "upcoming"
	EventEnded    EventStatus = "ended"
)

func (s EventStatus) Valid() bool {
	switch s {
	case EventActive, EventUpcoming, EventEnded:
		return true
	}
	return false
}

// DeriveEventStatus computes an event's status at now from its optional
// start and end dates. An elapsed end date wins over a future start date.
func DeriveEventStatus(now time.Time, start, end *time.Time) EventStatus {
	if end != nil && now.After(*end) {
		return EventEnded
	}
	if start != nil && now.Before(*start) {
		return EventUpcoming
	}
	return EventActive
}
