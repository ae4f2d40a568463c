package reports

import (
	"context"
	"fmt"
	"strings"

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

// Create files a pending report. Users cannot report themselves.
func (s *Service) Create(ctx context.Context, reported, reporting primitive.ObjectID, reason string) (*Report, error) {
	reason = strings.TrimSpace(reason)
	if reported.IsZero() {
		return nil, apperrors.Validation("reportedUserId", "is required")
	}
	if reporting.IsZero() {
		return nil, apperrors.Validation("reportingUserId", "is required")
	}
	if reason == "" {
		return nil, apperrors.Validation("reason", "is required")
	}
	if reported == reporting {
		return nil, apperrors.ErrSelfReport
	}
	if err := s.requireUser(ctx, reported, "reported user"); err != nil {
		return nil, err
	}
	if err := s.requireUser(ctx, reporting, "reporting user"); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	report := &Report{
		ReportedUserID:  reported,
		ReportingUserID: reporting,
		Reason:          reason,
		Status:          lifecycle.ReportPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.store.Insert(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}

func (s *Service) Get(ctx context.Context, id primitive.ObjectID) (*Report, error) {
	return s.store.FindByID(ctx, id)
}

// ListByStatus is the moderation queue for one review state.
func (s *Service) ListByStatus(ctx context.Context, status lifecycle.ReportStatus) ([]Report, error) {
	if !status.Valid() {
		return nil, apperrors.Validation("status", "%q is not a report status", status)
	}
	return s.store.ListByStatus(ctx, status)
}

func (s *Service) ListAgainstUser(ctx context.Context, userID primitive.ObjectID) ([]Report, error) {
	return s.store.ListAgainst(ctx, userID)
}

// Advance moves a report one step: pending to reviewed, reviewed to resolved.
func (s *Service) Advance(ctx context.Context, id primitive.ObjectID) (*Report, error) {
	return s.move(ctx, id, func(from lifecycle.ReportStatus) (lifecycle.ReportStatus, error) {
		return lifecycle.ReportMachine.Next(from)
	})
}

// Transition moves a report to an explicit status. Only the single forward
// step is accepted; anything else is an invalid transition.
func (s *Service) Transition(ctx context.Context, id primitive.ObjectID, to lifecycle.ReportStatus) (*Report, error) {
	return s.move(ctx, id, func(from lifecycle.ReportStatus) (lifecycle.ReportStatus, error) {
		return to, lifecycle.ReportMachine.Check(from, to)
	})
}

func (s *Service) move(ctx context.Context, id primitive.ObjectID, target func(lifecycle.ReportStatus) (lifecycle.ReportStatus, error)) (*Report, error) {
	var from lifecycle.ReportStatus
	report, err := database.RetryCAS(ctx, func(ctx context.Context) (*Report, error) {
		current, err := s.store.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		next, err := target(current.Status)
		if err != nil {
			return nil, err
		}
		from = current.Status
		return s.store.SetStatus(ctx, id, current.Status, next, s.clock.Now())
	})
	if err != nil {
		return nil, err
	}

	broker.Emit(ctx, s.events, broker.KeyReportStatusChanged, broker.StatusChanged{
		ID:        report.ID.Hex(),
		From:      string(from),
		To:        string(report.Status),
		ChangedAt: report.UpdatedAt,
	})
	return report, nil
}
