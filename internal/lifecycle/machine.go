package lifecycle

import (
	apperrors "github.com/xyz-asif/tradehub/pkg/errors"
)

// Machine is a forward-only status graph. States with no outgoing edges are
// terminal.
type Machine[S ~string] struct {
	entity string
	edges  map[S][]S
}

// NewMachine builds a machine for entity from an adjacency list.
func NewMachine[S ~string](entity string, edges map[S][]S) *Machine[S] {
	return &Machine[S]{entity: entity, edges: edges}
}

// Allowed reports whether from -> to is an edge of the graph.
func (m *Machine[S]) Allowed(from, to S) bool {
	for _, next := range m.edges[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Check returns a *TransitionError when from -> to is not permitted.
func (m *Machine[S]) Check(from, to S) error {
	if m.Allowed(from, to) {
		return nil
	}
	return &apperrors.TransitionError{Entity: m.entity, From: string(from), To: string(to)}
}

// Terminal reports whether s has no outgoing edges.
func (m *Machine[S]) Terminal(s S) bool {
	return len(m.edges[s]) == 0
}

// Next returns the single successor of s for linear workflows. It fails when
// s is terminal or has more than one successor.
func (m *Machine[S]) Next(s S) (S, error) {
	next := m.edges[s]
	if len(next) != 1 {
		return s, &apperrors.TransitionError{Entity: m.entity, From: string(s), To: "next"}
	}
	return next[0], nil
}

// TradeStatus is the workflow state of a trade listing.
type TradeStatus string

const (
	TradeOpen       TradeStatus = "open"
	TradeInProgress TradeStatus = "in_progress"
	TradeCompleted  TradeStatus = "completed"
	TradeCancelled  TradeStatus = "cancelled"
)

func (s TradeStatus) Valid() bool {
	switch s {
	case TradeOpen, TradeInProgress, TradeCompleted, TradeCancelled:
		return true
	}
	return false
}

// TradeMachine: open -> in_progress -> completed, cancellable until completed.
var TradeMachine = NewMachine("trade", map[TradeStatus][]TradeStatus{
	TradeOpen:       {TradeInProgress, TradeCancelled},
	TradeInProgress: {TradeCompleted, TradeCancelled},
})

// ReportStatus is the moderation review state of a report.
type ReportStatus string

const (
	ReportPending  ReportStatus = "pending"
	ReportReviewed ReportStatus = "reviewed"
	ReportResolved ReportStatus = "resolved"
)

func (s ReportStatus) Valid() bool {
	switch s {
	case ReportPending, ReportReviewed, ReportResolved:
		return true
	}
	return false
}

// ReportMachine: pending -> reviewed -> resolved.
var ReportMachine = NewMachine("report", map[ReportStatus][]ReportStatus{
	ReportPending:  {ReportReviewed},
	ReportReviewed: {ReportResolved},
})
