package events

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xyz-asif/tradehub/internal/lifecycle"
	"github.com/xyz-asif/tradehub/internal/pkg/broker"
	apperrors "github.com/xyz-asif/tradehub/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const day = 24 * time.Hour

var epoch = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

type fixture struct {
	svc     *Service
	store   *memStore
	clock   *lifecycle.ManualClock
	rec     *broker.Recorder
	creator primitive.ObjectID
}

func newFixture() *fixture {
	f := &fixture{
		store:   newMemStore(),
		clock:   lifecycle.NewManualClock(epoch),
		rec:     &broker.Recorder{},
		creator: primitive.NewObjectID(),
	}
	f.svc = NewService(f.store, directory{}, f.clock, f.rec)
	return f
}

func at(t time.Time) *time.Time { return &t }

func intp(n int) *int { return &n }

func (f *fixture) create(t *testing.T, in CreateEventInput) *Event {
	t.Helper()
	if in.Title == "" {
		in.Title = "Summer Giveaway"
	}
	if in.Type == "" {
		in.Type = TypeGiveaway
	}
	in.CreatorID = f.creator
	event, err := f.svc.Create(context.Background(), in)
	require.NoError(t, err)
	return event
}

func requireRosterConsistent(t *testing.T, e *Event) {
	t.Helper()
	require.Equal(t, len(e.Participants), e.ParticipantCount)
	if e.MaxParticipants != nil {
		require.LessOrEqual(t, e.ParticipantCount, *e.MaxParticipants)
	}
}

func TestCreateDerivesStatus(t *testing.T) {
	f := newFixture()
	now := epoch

	cases := []struct {
		name       string
		start, end *time.Time
		want       lifecycle.EventStatus
	}{
		{"no dates", nil, nil, lifecycle.EventActive},
		{"future start", at(now.Add(day)), nil, lifecycle.EventUpcoming},
		{"past end", nil, at(now.Add(-day)), lifecycle.EventEnded},
		{"running", at(now.Add(-day)), at(now.Add(day)), lifecycle.EventActive},
		{"both past", at(now.Add(-2 * day)), at(now.Add(-day)), lifecycle.EventEnded},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := f.create(t, CreateEventInput{StartDate: tc.start, EndDate: tc.end})
			require.Equal(t, tc.want, e.Status)
			require.Zero(t, e.ParticipantCount)
			require.Empty(t, e.Participants)
		})
	}
}

func TestCreateValidation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	long := make([]rune, 256)
	for i := range long {
		long[i] = 'x'
	}

	_, err := f.svc.Create(ctx, CreateEventInput{Title: " ", Type: TypeEvent, CreatorID: f.creator})
	require.ErrorIs(t, err, apperrors.ErrValidation)
	_, err = f.svc.Create(ctx, CreateEventInput{Title: string(long), Type: TypeEvent, CreatorID: f.creator})
	require.ErrorIs(t, err, apperrors.ErrValidation)
	_, err = f.svc.Create(ctx, CreateEventInput{Title: "Raffle", Type: "raffle", CreatorID: f.creator})
	require.ErrorIs(t, err, apperrors.ErrValidation)
	_, err = f.svc.Create(ctx, CreateEventInput{Title: "Raffle", Type: TypeEvent})
	require.ErrorIs(t, err, apperrors.ErrValidation)
	_, err = f.svc.Create(ctx, CreateEventInput{Title: "Raffle", Type: TypeEvent, CreatorID: f.creator, MaxParticipants: intp(-1)})
	require.ErrorIs(t, err, apperrors.ErrValidation)
	_, err = f.svc.Create(ctx, CreateEventInput{
		Title: "Raffle", Type: TypeEvent, CreatorID: f.creator,
		StartDate: at(epoch.Add(day)), EndDate: at(epoch),
	})
	require.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestCreateRequiresExistingCreator(t *testing.T) {
	f := newFixture()
	ghost := primitive.NewObjectID()
	f.svc = NewService(f.store, directory{missing: map[primitive.ObjectID]bool{ghost: true}}, f.clock, f.rec)

	_, err := f.svc.Create(context.Background(), CreateEventInput{Title: "Cup", Type: TypeCompetition, CreatorID: ghost})
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

// Status is a snapshot taken at write time and moves only when dates are
// touched again.
func TestStatusFollowsClockOnDateWrites(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	start, end := epoch.Add(day), epoch.Add(2*day)

	e := f.create(t, CreateEventInput{StartDate: &start, EndDate: &end})
	require.Equal(t, lifecycle.EventUpcoming, e.Status)

	f.clock.Set(epoch.Add(36 * time.Hour))
	e, err := f.svc.Update(ctx, e.ID, UpdateEventInput{StartDate: &start})
	require.NoError(t, err)
	require.Equal(t, lifecycle.EventActive, e.Status)

	f.clock.Set(epoch.Add(3 * day))
	e, err = f.svc.Update(ctx, e.ID, UpdateEventInput{EndDate: &end})
	require.NoError(t, err)
	require.Equal(t, lifecycle.EventEnded, e.Status)
}

func TestNonDateEditKeepsStoredStatus(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	start := epoch.Add(day)
	e := f.create(t, CreateEventInput{StartDate: &start})

	f.clock.Advance(2 * day)
	title := "Renamed"
	e, err := f.svc.Update(ctx, e.ID, UpdateEventInput{Title: &title})
	require.NoError(t, err)
	require.Equal(t, "Renamed", e.Title)
	require.Equal(t, lifecycle.EventUpcoming, e.Status)

	view, err := f.svc.View(ctx, e.ID)
	require.NoError(t, err)
	require.Equal(t, lifecycle.EventUpcoming, view.Status)
	require.Equal(t, lifecycle.EventActive, view.CurrentStatus)

	e, err = f.svc.Refresh(ctx, e.ID)
	require.NoError(t, err)
	require.Equal(t, lifecycle.EventActive, e.Status)
}

func TestClearingDatesRederives(t *testing.T) {
	f := newFixture()
	start := epoch.Add(day)
	e := f.create(t, CreateEventInput{StartDate: &start})
	require.Equal(t, lifecycle.EventUpcoming, e.Status)

	e, err := f.svc.Update(context.Background(), e.ID, UpdateEventInput{ClearStartDate: true})
	require.NoError(t, err)
	require.Nil(t, e.StartDate)
	require.Equal(t, lifecycle.EventActive, e.Status)
}

func TestUpdateRetriesStaleWrites(t *testing.T) {
	f := newFixture()
	e := f.create(t, CreateEventInput{})

	f.store.staleReplaces = 2
	title := "Second try"
	e, err := f.svc.Update(context.Background(), e.ID, UpdateEventInput{Title: &title})
	require.NoError(t, err)
	require.Equal(t, "Second try", e.Title)

	f.store.staleReplaces = 100
	_, err = f.svc.Update(context.Background(), e.ID, UpdateEventInput{Title: &title})
	require.ErrorIs(t, err, apperrors.ErrConcurrency)
}

func TestJoinAndLeave(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	e := f.create(t, CreateEventInput{MaxParticipants: intp(2)})
	alice, bob, carol := primitive.NewObjectID(), primitive.NewObjectID(), primitive.NewObjectID()

	e, err := f.svc.Join(ctx, e.ID, alice)
	require.NoError(t, err)
	requireRosterConsistent(t, e)

	_, err = f.svc.Join(ctx, e.ID, alice)
	require.ErrorIs(t, err, apperrors.ErrAlreadyJoined)

	e, err = f.svc.Join(ctx, e.ID, bob)
	require.NoError(t, err)
	require.Equal(t, 2, e.ParticipantCount)
	requireRosterConsistent(t, e)

	_, err = f.svc.Join(ctx, e.ID, carol)
	require.ErrorIs(t, err, apperrors.ErrCapacity)

	e, err = f.svc.Leave(ctx, e.ID, alice)
	require.NoError(t, err)
	require.Equal(t, 1, e.ParticipantCount)
	requireRosterConsistent(t, e)

	_, err = f.svc.Leave(ctx, e.ID, alice)
	require.ErrorIs(t, err, ErrNotParticipant)
	require.ErrorIs(t, err, apperrors.ErrNotFound)

	e, err = f.svc.Join(ctx, e.ID, carol)
	require.NoError(t, err)
	require.True(t, e.HasParticipant(carol))
	requireRosterConsistent(t, e)

	require.Equal(t, []string{
		broker.KeyEventJoined, broker.KeyEventJoined, broker.KeyEventLeft, broker.KeyEventJoined,
	}, f.rec.Keys())
}

func TestJoinZeroCapacity(t *testing.T) {
	f := newFixture()
	e := f.create(t, CreateEventInput{MaxParticipants: intp(0)})

	_, err := f.svc.Join(context.Background(), e.ID, primitive.NewObjectID())
	require.ErrorIs(t, err, apperrors.ErrCapacity)
}

func TestJoinMissingEventOrUser(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.svc.Join(ctx, primitive.NewObjectID(), primitive.NewObjectID())
	require.ErrorIs(t, err, apperrors.ErrNotFound)

	ghost := primitive.NewObjectID()
	f.svc = NewService(f.store, directory{missing: map[primitive.ObjectID]bool{ghost: true}}, f.clock, f.rec)
	e := f.create(t, CreateEventInput{})
	_, err = f.svc.Join(ctx, e.ID, ghost)
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestConcurrentJoinsNeverExceedCap(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	e := f.create(t, CreateEventInput{MaxParticipants: intp(5)})

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		joined   int
		rejected int
	)
	for i := 0; i < 40; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.Join(ctx, e.ID, primitive.NewObjectID())
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				joined++
				return
			}
			assert.ErrorIs(t, err, apperrors.ErrCapacity)
			rejected++
		}()
	}
	wg.Wait()

	require.Equal(t, 5, joined)
	require.Equal(t, 35, rejected)
	got, err := f.svc.Get(ctx, e.ID)
	require.NoError(t, err)
	requireRosterConsistent(t, got)
}

func TestLowerCapBelowRosterRejected(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	e := f.create(t, CreateEventInput{})
	for i := 0; i < 3; i++ {
		_, err := f.svc.Join(ctx, e.ID, primitive.NewObjectID())
		require.NoError(t, err)
	}

	_, err := f.svc.Update(ctx, e.ID, UpdateEventInput{MaxParticipants: intp(2)})
	require.ErrorIs(t, err, apperrors.ErrValidation)

	e, err = f.svc.Update(ctx, e.ID, UpdateEventInput{MaxParticipants: intp(3)})
	require.NoError(t, err)
	require.True(t, e.Full())
}

func TestUpdatePreservesRosterWrittenBetweenReads(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	e := f.create(t, CreateEventInput{})

	stale, err := f.svc.Get(ctx, e.ID)
	require.NoError(t, err)
	_, err = f.svc.Join(ctx, e.ID, primitive.NewObjectID())
	require.NoError(t, err)

	// A replace built from the pre-join read must not land.
	stale.Title = "overwrite"
	_, err = f.store.Replace(ctx, stale)
	require.Error(t, err)

	got, err := f.svc.Get(ctx, e.ID)
	require.NoError(t, err)
	require.Equal(t, 1, got.ParticipantCount)
	requireRosterConsistent(t, got)
}
