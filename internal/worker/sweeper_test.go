package worker

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/event-ticketing/internal/clock"
	"github.com/spec-kit/event-ticketing/internal/domain"
	"github.com/spec-kit/event-ticketing/internal/events"
	"github.com/spec-kit/event-ticketing/internal/observability"
)

type fakeTicketSource struct {
	tickets  map[string]domain.ExpirableTicket
	invalid  map[string]bool
	failures map[string]error
	listErr  error
}

func newFakeTicketSource(tickets ...domain.ExpirableTicket) *fakeTicketSource {
	source := &fakeTicketSource{
		tickets:  make(map[string]domain.ExpirableTicket),
		invalid:  make(map[string]bool),
		failures: make(map[string]error),
	}
	for _, ticket := range tickets {
		source.tickets[ticket.TicketID] = ticket
	}
	return source
}

func (s *fakeTicketSource) ListExpirable(context.Context) ([]domain.ExpirableTicket, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	var result []domain.ExpirableTicket
	for _, ticket := range s.tickets {
		if !s.invalid[ticket.TicketID] {
			result = append(result, ticket)
		}
	}
	return result, nil
}

func (s *fakeTicketSource) MarkInvalid(_ context.Context, ticketID string) error {
	if err := s.failures[ticketID]; err != nil {
		return err
	}
	s.invalid[ticketID] = true
	return nil
}

func newTestSweeper(source TicketSource, now time.Time) (*Sweeper, *observability.Metrics) {
	metrics := observability.NewMetrics()
	return NewSweeper(source, events.NewInMemoryDispatcher(), clock.NewFixed(now), metrics, zap.NewNop()), metrics
}

func TestSweepInvalidatesPastEventTickets(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	source := newFakeTicketSource(
		domain.ExpirableTicket{TicketID: "past", EventStartsAt: now.Add(-time.Hour)},
		domain.ExpirableTicket{TicketID: "future", EventStartsAt: now.Add(time.Hour)},
	)
	sweeper, _ := newTestSweeper(source, now)

	stats, err := sweeper.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, stats.Scanned)
	require.Equal(t, 1, stats.Invalidated)
	require.Equal(t, 0, stats.Failed)

	require.True(t, source.invalid["past"])
	require.False(t, source.invalid["future"])
}

func TestSweepUsesStrictComparison(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	source := newFakeTicketSource(
		domain.ExpirableTicket{TicketID: "exactly-now", EventStartsAt: now},
	)
	sweeper, _ := newTestSweeper(source, now)

	stats, err := sweeper.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 0, stats.Invalidated)
	require.False(t, source.invalid["exactly-now"])
}

func TestSweepIsIdempotent(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	source := newFakeTicketSource(
		domain.ExpirableTicket{TicketID: "past", EventStartsAt: now.Add(-time.Hour)},
		domain.ExpirableTicket{TicketID: "future", EventStartsAt: now.Add(time.Hour)},
	)
	sweeper, _ := newTestSweeper(source, now)

	_, err := sweeper.Run(context.Background())
	require.NoError(t, err)
	require.True(t, source.invalid["past"])

	// A second run finds nothing left to do and flips nothing back.
	stats, err := sweeper.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 0, stats.Invalidated)
	require.True(t, source.invalid["past"])
	require.False(t, source.invalid["future"])
}

func TestSweepIsolatesPerTicketFailures(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	var tickets []domain.ExpirableTicket
	for i := 1; i <= 10; i++ {
		tickets = append(tickets, domain.ExpirableTicket{
			TicketID:      fmt.Sprintf("ticket-%d", i),
			EventStartsAt: now.Add(-time.Hour),
		})
	}
	source := newFakeTicketSource(tickets...)
	source.failures["ticket-5"] = errors.New("connection reset")

	sweeper, metrics := newTestSweeper(source, now)

	stats, err := sweeper.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 9, stats.Invalidated)
	require.Equal(t, 1, stats.Failed)

	for i := 1; i <= 10; i++ {
		id := fmt.Sprintf("ticket-%d", i)
		if id == "ticket-5" {
			require.False(t, source.invalid[id])
		} else {
			require.True(t, source.invalid[id], "expected %s invalidated", id)
		}
	}

	// The failed ticket is picked up by the next run.
	delete(source.failures, "ticket-5")
	stats, err = sweeper.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, stats.Invalidated)
	require.True(t, source.invalid["ticket-5"])

	runs, invalidated, failures := metrics.SweepTotals()
	require.Equal(t, int64(2), runs)
	require.Equal(t, int64(10), invalidated)
	require.Equal(t, int64(1), failures)
}

func TestSweepPropagatesSnapshotLoadFailure(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	source := newFakeTicketSource()
	source.listErr = errors.New("database unavailable")

	sweeper, _ := newTestSweeper(source, now)

	_, err := sweeper.Run(context.Background())
	require.Error(t, err)
}

func TestSweepPublishesInvalidationEvents(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	source := newFakeTicketSource(
		domain.ExpirableTicket{TicketID: "past", EventStartsAt: now.Add(-time.Hour)},
	)

	dispatcher := events.NewInMemoryDispatcher()
	var published []events.Event
	dispatcher.Subscribe(events.EventTicketInvalidated, func(_ context.Context, event events.Event) error {
		published = append(published, event)
		return nil
	})

	sweeper := NewSweeper(source, dispatcher, clock.NewFixed(now), observability.NewMetrics(), zap.NewNop())
	_, err := sweeper.Run(context.Background())
	require.NoError(t, err)

	require.Len(t, published, 1)
	payload, ok := published[0].Payload.(events.TicketInvalidatedPayload)
	require.True(t, ok)
	require.Equal(t, "past", payload.TicketID)
}
