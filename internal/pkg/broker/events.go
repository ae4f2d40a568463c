// Package broker publishes entity lifecycle events to the message broker.
// Publishing is best effort: callers log failures and carry on.
package broker

import "time"

// Routing keys on the lifecycle exchange.
const (
	KeyTradeStatusChanged  = "trade.status_changed"
	KeyReportStatusChanged = "report.status_changed"
	KeyUserBanned          = "user.banned"
	KeyUserUnbanned        = "user.unbanned"
	KeyEventJoined         = "event.joined"
	KeyEventLeft           = "event.left"
)

// StatusChanged is sent when a trade or report moves along its workflow.
type StatusChanged struct {
	ID        string    `json:"id"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	ChangedAt time.Time `json:"changed_at"`
}

// BanStateChanged is sent when a user is banned or unbanned.
type BanStateChanged struct {
	UserID    string    `json:"user_id"`
	Role      string    `json:"role"`
	Reason    string    `json:"reason,omitempty"`
	ChangedAt time.Time `json:"changed_at"`
}

// MembershipChanged is sent when a user joins or leaves an event.
type MembershipChanged struct {
	EventID          string    `json:"event_id"`
	UserID           string    `json:"user_id"`
	ParticipantCount int       `json:"participant_count"`
	ChangedAt        time.Time `json:"changed_at"`
}
