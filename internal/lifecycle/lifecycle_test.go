package lifecycle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	apperrors "github.com/xyz-asif/tradehub/pkg/errors"
)

func ptr(t time.Time) *time.Time { return &t }

func TestDeriveEventStatus(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	day := 24 * time.Hour

	cases := []struct {
		name       string
		start, end *time.Time
		want       EventStatus
	}{
		{"no dates", nil, nil, EventActive},
		{"future start", ptr(now.Add(day)), nil, EventUpcoming},
		{"past start", ptr(now.Add(-day)), nil, EventActive},
		{"past end", nil, ptr(now.Add(-day)), EventEnded},
		{"future end", nil, ptr(now.Add(day)), EventActive},
		{"running window", ptr(now.Add(-day)), ptr(now.Add(day)), EventActive},
		{"future window", ptr(now.Add(day)), ptr(now.Add(2 * day)), EventUpcoming},
		{"elapsed window", ptr(now.Add(-2 * day)), ptr(now.Add(-day)), EventEnded},
		{"end wins over start", ptr(now.Add(day)), ptr(now.Add(-day)), EventEnded},
		{"exactly at start", ptr(now), nil, EventActive},
		{"exactly at end", nil, ptr(now), EventActive},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, DeriveEventStatus(now, tc.start, tc.end))
		})
	}
}

func TestDeriveEventStatus_ClockScenario(t *testing.T) {
	clock := NewManualClock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	start := clock.Now().Add(24 * time.Hour)
	end := clock.Now().Add(48 * time.Hour)

	require.Equal(t, EventUpcoming, DeriveEventStatus(clock.Now(), &start, &end))

	clock.Advance(36 * time.Hour)
	require.Equal(t, EventActive, DeriveEventStatus(clock.Now(), &start, &end))

	clock.Advance(36 * time.Hour)
	require.Equal(t, EventEnded, DeriveEventStatus(clock.Now(), &start, &end))
}

func TestTradeMachine(t *testing.T) {
	allowed := [][2]TradeStatus{
		{TradeOpen, TradeInProgress},
		{TradeOpen, TradeCancelled},
		{TradeInProgress, TradeCompleted},
		{TradeInProgress, TradeCancelled},
	}
	for _, e := range allowed {
		require.NoError(t, TradeMachine.Check(e[0], e[1]), "%s -> %s", e[0], e[1])
	}

	denied := [][2]TradeStatus{
		{TradeOpen, TradeCompleted},
		{TradeOpen, TradeOpen},
		{TradeInProgress, TradeOpen},
		{TradeCompleted, TradeCancelled},
		{TradeCompleted, TradeOpen},
		{TradeCancelled, TradeInProgress},
		{TradeCancelled, TradeOpen},
	}
	for _, e := range denied {
		err := TradeMachine.Check(e[0], e[1])
		require.ErrorIs(t, err, apperrors.ErrInvalidTransition, "%s -> %s", e[0], e[1])
	}

	require.True(t, TradeMachine.Terminal(TradeCompleted))
	require.True(t, TradeMachine.Terminal(TradeCancelled))
	require.False(t, TradeMachine.Terminal(TradeOpen))
}

func TestReportMachine(t *testing.T) {
	next, err := ReportMachine.Next(ReportPending)
	require.NoError(t, err)
	require.Equal(t, ReportReviewed, next)

	next, err = ReportMachine.Next(next)
	require.NoError(t, err)
	require.Equal(t, ReportResolved, next)

	_, err = ReportMachine.Next(ReportResolved)
	require.ErrorIs(t, err, apperrors.ErrInvalidTransition)

	require.ErrorIs(t, ReportMachine.Check(ReportPending, ReportResolved), apperrors.ErrInvalidTransition)
	require.ErrorIs(t, ReportMachine.Check(ReportResolved, ReportReviewed), apperrors.ErrInvalidTransition)
}

func TestStatusValid(t *testing.T) {
	require.True(t, TradeInProgress.Valid())
	require.False(t, TradeStatus("archived").Valid())
	require.True(t, ReportReviewed.Valid())
	require.False(t, ReportStatus("closed").Valid())
	require.True(t, EventEnded.Valid())
	require.False(t, EventStatus("paused").Valid())
}
