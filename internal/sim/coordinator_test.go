package sim

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/vegas-air-market/internal/hub"
	"github.com/iliyamo/vegas-air-market/internal/model"
)

func newTestCoordinator(store *memStore, h *hub.Hub, tick time.Duration, step, initialHours int) *Coordinator {
	clock := NewClock(tick, step, h)
	// The bot loop is effectively disabled (zero rate, huge tick) so the
	// lifecycle under test is deterministic.
	bots := NewBots(BotConfig{TickInterval: time.Hour, BaseHourlyRate: 0, Seed: 1}, clock, memSeats{store}, h, nil)
	archiver := NewArchiver(store, memSeats{store}, memHistory{store})
	return NewCoordinator(clock, bots, h, store, memSeats{store}, archiver, nil, DefaultLayout(), initialHours)
}

func TestBootstrapCreatesFirstFlight(t *testing.T) {
	store := newMemStore()
	h := hub.New()
	c := newTestCoordinator(store, h, time.Hour, 4, 2880)

	require.NoError(t, c.Bootstrap(context.Background()))
	defer c.Shutdown(1)

	flight, err := store.Latest(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "001", flight.FlightNumber)

	seats, err := memSeats{store}.GetByFlight(context.Background(), flight.ID)
	require.NoError(t, err)
	assert.Len(t, seats, 120)
	for _, s := range seats {
		assert.False(t, s.IsOccupied)
	}

	assert.True(t, c.clock.Active(flight.ID))
	assert.Equal(t, 2880, c.clock.HoursRemaining(flight.ID))
	assert.True(t, c.bots.Running(flight.ID))
}

func TestBootstrapResumesLatestFlight(t *testing.T) {
	store := newMemStore()
	h := hub.New()
	flightID := store.addFlight("007")
	c := newTestCoordinator(store, h, time.Hour, 4, 500)

	require.NoError(t, c.Bootstrap(context.Background()))
	defer c.Shutdown(flightID)

	// No new flight; the existing one relaunches with the full duration.
	store.mu.Lock()
	count := len(store.flights)
	store.mu.Unlock()
	assert.Equal(t, 1, count)
	assert.True(t, c.clock.Active(flightID))
	assert.Equal(t, 500, c.clock.HoursRemaining(flightID))
}

func TestRolloverChainsToNextFlight(t *testing.T) {
	store := newMemStore()
	h := hub.New()
	// 100 simulated hours at 1 hour per 2ms tick: roughly 200ms of wall
	// time before departure, enough room to place a purchase first.
	c := newTestCoordinator(store, h, 2*time.Millisecond, 1, 100)

	require.NoError(t, c.Bootstrap(context.Background()))
	first, err := store.Latest(context.Background())
	require.NoError(t, err)
	sub := h.Subscribe(first.ID)
	defer h.Unsubscribe(sub)

	// Sell one seat so the archiver has something to record.
	seats, err := memSeats{store}.GetByFlight(context.Background(), first.ID)
	require.NoError(t, err)
	var sold model.Seat
	for _, s := range seats {
		if s.ClassType == model.ClassEconomy {
			sold = s
			break
		}
	}
	applied, err := memSeats{store}.Sell(context.Background(), sold.ID, 225, 3)
	require.NoError(t, err)
	require.True(t, applied)

	// Wait for the departure announcement on the old flight's stream.
	var departure *model.DeparturePayload
	deadline := time.After(5 * time.Second)
	for departure == nil {
		select {
		case ev, ok := <-sub.C:
			require.True(t, ok, "stream closed before departure")
			if ev.Type == model.EventFlightDeparture {
				departure = ev.FlightDeparture
			}
		case <-deadline:
			t.Fatal("no departure event")
		}
	}
	defer c.Shutdown(departure.NewFlight)

	assert.Equal(t, "001", departure.DepartedFlight)

	next, err := store.GetByID(context.Background(), departure.NewFlight)
	require.NoError(t, err)
	assert.Equal(t, "002", next.FlightNumber)

	nextSeats, err := memSeats{store}.GetByFlight(context.Background(), next.ID)
	require.NoError(t, err)
	require.Len(t, nextSeats, 120)
	for _, s := range nextSeats {
		assert.False(t, s.IsOccupied, "the successor starts with a fresh cabin")
	}

	assert.True(t, c.clock.Active(next.ID))
	assert.False(t, c.clock.Active(first.ID))

	// The archived record reflects the one sale.
	store.mu.Lock()
	history := append([]model.PurchaseHistory(nil), store.history...)
	store.mu.Unlock()
	require.Len(t, history, 1)
	assert.Equal(t, "001", history[0].FlightNumber)
	assert.Equal(t, model.ClassEconomy, history[0].ClassType)
	assert.Equal(t, map[int]int{3: 1}, history[0].DailyPurchases)
}

func TestNextFlightNumber(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"001", "002"},
		{"009", "010"},
		{"099", "100"},
		{"999", "1000"},
		{"", "001"},
		{"abc", "001"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, nextFlightNumber(tc.in), "from %q", tc.in)
	}
}
