package sim

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/iliyamo/vegas-air-market/internal/hub"
	"github.com/iliyamo/vegas-air-market/internal/model"
	"github.com/iliyamo/vegas-air-market/internal/monitoring"
)

// flightTimer is the runtime state of one flight's countdown.  It is the
// single source of truth for "what time is it" in that flight's
// simulation; the hours value only ever decreases while active.
type flightTimer struct {
	hoursRemaining int
	active         bool
	cancel         context.CancelFunc
	done           chan struct{}
}

// Clock runs one simulated countdown per active flight.  Each countdown
// is its own goroutine on a fixed ticker; every tick subtracts a fixed
// number of simulated hours and broadcasts a TIME_UPDATE.  When the
// countdown reaches zero the completion callback fires exactly once and
// the flight is marked inactive.
type Clock struct {
	tick time.Duration // wall-clock interval between decrements
	step int           // simulated hours removed per tick

	broadcast *hub.Hub

	mu     sync.Mutex
	timers map[uint64]*flightTimer
}

// NewClock builds a Clock.  tick is the wall-clock tick interval and step
// the simulated hours each tick consumes; both come from configuration,
// the ratio is deliberately not 1:1 so a full 120-day flight finishes in
// bounded wall time.
func NewClock(tick time.Duration, step int, broadcast *hub.Hub) *Clock {
	if step < 1 {
		step = 1
	}
	return &Clock{
		tick:      tick,
		step:      step,
		broadcast: broadcast,
		timers:    make(map[uint64]*flightTimer),
	}
}

// Start launches the countdown for a flight with the given initial hours.
// It is idempotent: a second call for a flight that is already running is
// a no-op.  onComplete is invoked from the countdown goroutine exactly
// once, after the final TIME_UPDATE has been published and the flight has
// been marked inactive.
func (c *Clock) Start(flightID uint64, initialHours int, onComplete func(flightID uint64)) {
	c.mu.Lock()
	if t, ok := c.timers[flightID]; ok && t.active {
		c.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	t := &flightTimer{
		hoursRemaining: initialHours,
		active:         true,
		cancel:         cancel,
		done:           make(chan struct{}),
	}
	c.timers[flightID] = t
	c.mu.Unlock()

	monitoring.ActiveFlights.Inc()
	logrus.WithFields(logrus.Fields{"flight_id": flightID, "hours": initialHours}).
		Info("countdown started")

	go c.run(ctx, flightID, t, onComplete)
}

// Stop cancels a running countdown and marks the flight inactive.  The
// last committed hours value stays readable.  Stopping a flight that was
// never started is a no-op.
func (c *Clock) Stop(flightID uint64) {
	c.mu.Lock()
	t, ok := c.timers[flightID]
	if !ok || !t.active {
		c.mu.Unlock()
		return
	}
	t.cancel()
	done := t.done
	c.mu.Unlock()
	<-done
}

// HoursRemaining returns the last committed hours value for a flight, or
// 0 if its countdown was never started.
func (c *Clock) HoursRemaining(flightID uint64) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if t, ok := c.timers[flightID]; ok {
		return t.hoursRemaining
	}
	return 0
}

// Active reports whether a flight's countdown is currently running.
func (c *Clock) Active(flightID uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	t, ok := c.timers[flightID]
	return ok && t.active
}

// run is the countdown loop for one flight.  A panic anywhere in the loop
// or in the completion callback is confined to this flight.
func (c *Clock) run(ctx context.Context, flightID uint64, t *flightTimer, onComplete func(uint64)) {
	defer close(t.done)
	defer func() {
		if r := recover(); r != nil {
			logrus.WithFields(logrus.Fields{"flight_id": flightID, "panic": r}).
				Error("countdown loop crashed")
			c.deactivate(flightID, t)
		}
	}()

	ticker := time.NewTicker(c.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			// Cancelled mid-flight: the last committed hours value stands.
			c.deactivate(flightID, t)
			logrus.WithField("flight_id", flightID).Info("countdown cancelled")
			return
		case <-ticker.C:
		}

		c.mu.Lock()
		t.hoursRemaining -= c.step
		if t.hoursRemaining < 0 {
			t.hoursRemaining = 0
		}
		remaining := t.hoursRemaining
		c.mu.Unlock()

		c.broadcast.Publish(flightID, model.TimeUpdate(remaining))

		if remaining%24 == 0 {
			logrus.WithFields(logrus.Fields{"flight_id": flightID, "days": remaining / 24}).
				Debug("countdown tick")
		}

		if remaining <= 0 {
			c.deactivate(flightID, t)
			logrus.WithField("flight_id", flightID).Info("countdown reached departure")
			if onComplete != nil {
				onComplete(flightID)
			}
			return
		}
	}
}

// deactivate flips the timer to inactive once; repeated calls are no-ops.
func (c *Clock) deactivate(flightID uint64, t *flightTimer) {
	c.mu.Lock()
	was := t.active
	t.active = false
	c.mu.Unlock()
	if was {
		monitoring.ActiveFlights.Dec()
	}
}
