package trades

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

// Create opens a new listing for an existing owner.
func (s *Service) Create(ctx context.Context, in CreateTradeInput) (*Trade, error) {
	if err := validateCreate(&in); err != nil {
		return nil, err
	}
	exists, err := s.users.Exists(ctx, in.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("lookup owner: %w", err)
	}
	if !exists {
		return nil, apperrors.NotFound("owner")
	}

	now := s.clock.Now()
	trade := &Trade{
		OwnerID:       in.OwnerID,
		ItemOffered:   in.ItemOffered,
		ItemRequested: in.ItemRequested,
		Description:   in.Description,
		Status:        lifecycle.TradeOpen,
		Images:        []Image{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.store.Insert(ctx, trade); err != nil {
		return nil, err
	}
	return trade, nil
}

func (s *Service) Get(ctx context.Context, id primitive.ObjectID) (*Trade, error) {
	return s.store.FindByID(ctx, id)
}

func (s *Service) ListByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]Trade, error) {
	return s.store.ListByOwner(ctx, ownerID)
}

// Transition moves a trade along the workflow. Any target without an edge
// from the current status, unknown names included, is an invalid transition.
// The write only lands if the status read is still current; a concurrent
// change triggers a re-check.
func (s *Service) Transition(ctx context.Context, id primitive.ObjectID, to lifecycle.TradeStatus) (*Trade, error) {
	var from lifecycle.TradeStatus
	trade, err := database.RetryCAS(ctx, func(ctx context.Context) (*Trade, error) {
		current, err := s.store.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if err := lifecycle.TradeMachine.Check(current.Status, to); err != nil {
			return nil, err
		}
		from = current.Status
		return s.store.SetStatus(ctx, id, current.Status, to, s.clock.Now())
	})
	if err != nil {
		return nil, err
	}

	broker.Emit(ctx, s.events, broker.KeyTradeStatusChanged, broker.StatusChanged{
		ID:        trade.ID.Hex(),
		From:      string(from),
		To:        string(to),
		ChangedAt: trade.UpdatedAt,
	})
	return trade, nil
}

// AttachImage appends an uploaded image with a server-assigned timestamp.
func (s *Service) AttachImage(ctx context.Context, id primitive.ObjectID, url string) (*Trade, error) {
	if err := validateImageURL(url); err != nil {
		return nil, err
	}
	return s.store.PushImage(ctx, id, Image{URL: url, UploadedAt: s.clock.Now()})
}

func (s *Service) UpdateDetails(ctx context.Context, id primitive.ObjectID, d Details) (*Trade, error) {
	if err := validateDetails(&d); err != nil {
		return nil, err
	}
	return s.store.UpdateDetails(ctx, id, d, s.clock.Now())
}

func (s *Service) Delete(ctx context.Context, id primitive.ObjectID) error {
	return s.store.Delete(ctx, id)
}
