package wishlist

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/xyz-asif/tradehub/internal/lifecycle"
	apperrors "github.com/xyz-asif/tradehub/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const maxItemNameLen = 255

type UserDirectory interface {
	Exists(ctx context.Context, id primitive.ObjectID) (bool, error)
}

type Service struct {
	store Store
	users UserDirectory
	clock lifecycle.Clock
}

func NewService(store Store, users UserDirectory, clock lifecycle.Clock) *Service {
	if clock == nil {
		clock = lifecycle.SystemClock{}
	}
	return &Service{store: store, users: users, clock: clock}
}

// Add puts itemName on the owner's wishlist.
func (s *Service) Add(ctx context.Context, ownerID primitive.ObjectID, itemName string) (*Item, error) {
	itemName = strings.TrimSpace(itemName)
	if ownerID.IsZero() {
		return nil, apperrors.Validation("ownerId", "is required")
	}
	if itemName == "" {
		return nil, apperrors.Validation("itemName", "is required")
	}
	if utf8.RuneCountInString(itemName) > maxItemNameLen {
		return nil, apperrors.Validation("itemName", "must be at most %d characters", maxItemNameLen)
	}

	exists, err := s.users.Exists(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("lookup owner: %w", err)
	}
	if !exists {
		return nil, apperrors.NotFound("owner")
	}

	now := s.clock.Now()
	item := &Item{
		OwnerID:   ownerID,
		ItemName:  itemName,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.Insert(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *Service) List(ctx context.Context, ownerID primitive.ObjectID) ([]Item, error) {
	return s.store.ListByOwner(ctx, ownerID)
}

// Remove deletes an item. Items owned by someone else read as not found.
func (s *Service) Remove(ctx context.Context, ownerID, id primitive.ObjectID) error {
	return s.store.DeleteOwned(ctx, ownerID, id)
}
