package trades

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/xyz-asif/tradehub/internal/database"
	"github.com/xyz-asif/tradehub/internal/lifecycle"
	apperrors "github.com/xyz-asif/tradehub/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type memStore struct {
	mu     sync.Mutex
	trades map[primitive.ObjectID]*Trade
	// beforeSet runs inside SetStatus before the status comparison.
	beforeSet func(t *Trade)
}

func newMemStore() *memStore {
	return &memStore{trades: make(map[primitive.ObjectID]*Trade)}
}

func cloneTrade(t *Trade) *Trade {
	cp := *t
	cp.Images = append([]Image{}, t.Images...)
	return &cp
}

func (s *memStore) Insert(_ context.Context, trade *Trade) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	trade.ID = primitive.NewObjectID()
	s.trades[trade.ID] = cloneTrade(trade)
	return nil
}

func (s *memStore) FindByID(_ context.Context, id primitive.ObjectID) (*Trade, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.trades[id]
	if !ok {
		return nil, apperrors.NotFound("trade")
	}
	return cloneTrade(t), nil
}

func (s *memStore) ListByOwner(_ context.Context, ownerID primitive.ObjectID) ([]Trade, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []Trade{}
	for _, t := range s.trades {
		if t.OwnerID == ownerID {
			out = append(out, *cloneTrade(t))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *memStore) SetStatus(_ context.Context, id primitive.ObjectID, from, to lifecycle.TradeStatus, at time.Time) (*Trade, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.trades[id]
	if !ok {
		return nil, database.ErrStale
	}
	if s.beforeSet != nil {
		s.beforeSet(t)
	}
	if t.Status != from {
		return nil, database.ErrStale
	}
	t.Status = to
	t.UpdatedAt = at
	return cloneTrade(t), nil
}

func (s *memStore) PushImage(_ context.Context, id primitive.ObjectID, img Image) (*Trade, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.trades[id]
	if !ok {
		return nil, apperrors.NotFound("trade")
	}
	t.Images = append(t.Images, img)
	t.UpdatedAt = img.UploadedAt
	return cloneTrade(t), nil
}

func (s *memStore) UpdateDetails(_ context.Context, id primitive.ObjectID, d Details, at time.Time) (*Trade, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.trades[id]
	if !ok {
		return nil, apperrors.NotFound("trade")
	}
	if d.ItemOffered != nil {
		t.ItemOffered = *d.ItemOffered
	}
	if d.ItemRequested != nil {
		t.ItemRequested = *d.ItemRequested
	}
	if d.Description != nil {
		t.Description = *d.Description
	}
	t.UpdatedAt = at
	return cloneTrade(t), nil
}

func (s *memStore) Delete(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.trades[id]; !ok {
		return apperrors.NotFound("trade")
	}
	delete(s.trades, id)
	return nil
}

// directory is a fixed set of known users.
type directory map[primitive.ObjectID]bool

func (d directory) Exists(_ context.Context, id primitive.ObjectID) (bool, error) {
	return d[id], nil
}
