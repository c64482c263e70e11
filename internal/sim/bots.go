package sim

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/iliyamo/vegas-air-market/internal/hub"
	"github.com/iliyamo/vegas-air-market/internal/model"
	"github.com/iliyamo/vegas-air-market/internal/monitoring"
)

// EventNotifier receives domain events for delivery outside the process
// (the message broker).  Implementations must be best-effort and never
// block the simulation for long; errors are their own problem.
type EventNotifier interface {
	SeatSold(ctx context.Context, flightID uint64, seat model.Seat)
	FlightDeparted(ctx context.Context, departedNumber string, newFlightID uint64)
}

// BotConfig carries the purchasing-loop tunables.
type BotConfig struct {
	TickInterval        time.Duration  // wall-clock pause between purchase opportunities
	BaseHourlyRate      float64        // expected purchases per simulated day, before demand
	AdjacentProbability float64        // chance a sale pulls in one neighboring seat
	Preferences         BotPreferences // population taste
	Seed                int64          // base RNG seed; 0 means wall clock
}

// botEngine is the per-flight purchasing state: the loop's cancellation
// token and the claim set of seats a purchase decision has taken but the
// next seat snapshot may not reflect yet.
type botEngine struct {
	cancel context.CancelFunc
	done   chan struct{}

	mu     sync.Mutex
	claims map[uint64]struct{}
}

// claim reserves a seat id for this engine.  Returns false when already
// claimed, which means another decision in this tick window got there
// first.
func (e *botEngine) claim(seatID uint64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, taken := e.claims[seatID]; taken {
		return false
	}
	e.claims[seatID] = struct{}{}
	return true
}

// unclaim releases a seat id after a failed commit so a later tick can
// retry it.
func (e *botEngine) unclaim(seatID uint64) {
	e.mu.Lock()
	delete(e.claims, seatID)
	e.mu.Unlock()
}

func (e *botEngine) claimed(seatID uint64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, taken := e.claims[seatID]
	return taken
}

// Bots runs one purchasing loop per active flight.  On every tick the
// loop reads the countdown, asks the demand model for the current
// purchase probability, and with that probability selects and buys one
// seat (occasionally chaining into a single adjacent seat).
type Bots struct {
	cfg       BotConfig
	clock     *Clock
	seats     SeatStore
	broadcast *hub.Hub
	notifier  EventNotifier // may be nil

	mu      sync.Mutex
	engines map[uint64]*botEngine
}

// NewBots builds the bot engine supervisor.  notifier may be nil when no
// broker is configured.
func NewBots(cfg BotConfig, clock *Clock, seats SeatStore, broadcast *hub.Hub, notifier EventNotifier) *Bots {
	if cfg.Preferences.ClassPreference == nil {
		cfg.Preferences = DefaultPreferences()
	}
	return &Bots{
		cfg:       cfg,
		clock:     clock,
		seats:     seats,
		broadcast: broadcast,
		notifier:  notifier,
		engines:   make(map[uint64]*botEngine),
	}
}

// Start launches the purchasing loop for a flight.  Idempotent per flight
// id.
func (b *Bots) Start(flightID uint64) {
	b.mu.Lock()
	if _, running := b.engines[flightID]; running {
		b.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	engine := &botEngine{
		cancel: cancel,
		done:   make(chan struct{}),
		claims: make(map[uint64]struct{}),
	}
	b.engines[flightID] = engine
	b.mu.Unlock()

	seed := b.cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	// Per-flight RNG so one flight's draws never disturb another's.
	rng := rand.New(rand.NewSource(seed + int64(flightID)))

	logrus.WithField("flight_id", flightID).Info("bots started")
	go b.run(ctx, flightID, engine, rng)
}

// Stop cancels the flight's purchasing loop and discards its claim set.
// Safe to call on a flight without a running loop.
func (b *Bots) Stop(flightID uint64) {
	b.mu.Lock()
	engine, ok := b.engines[flightID]
	if ok {
		delete(b.engines, flightID)
	}
	b.mu.Unlock()
	if !ok {
		return
	}
	engine.cancel()
	<-engine.done
	logrus.WithField("flight_id", flightID).Info("bots stopped")
}

// Running reports whether a purchasing loop exists for the flight.
func (b *Bots) Running(flightID uint64) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.engines[flightID]
	return ok
}

// run is the per-flight purchasing loop.
func (b *Bots) run(ctx context.Context, flightID uint64, engine *botEngine, rng *rand.Rand) {
	defer close(engine.done)
	defer func() {
		if r := recover(); r != nil {
			logrus.WithFields(logrus.Fields{"flight_id": flightID, "panic": r}).
				Error("bot loop crashed")
		}
	}()

	ticker := time.NewTicker(b.cfg.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		hours := b.clock.HoursRemaining(flightID)
		if hours <= 0 {
			logrus.WithField("flight_id", flightID).Info("bots done, flight departed")
			return
		}
		b.tickOnce(ctx, flightID, engine, rng, hours)
	}
}

// tickOnce evaluates a single purchase opportunity.
func (b *Bots) tickOnce(ctx context.Context, flightID uint64, engine *botEngine, rng *rand.Rand, hours int) {
	days := hours / 24

	available, byClass, err := b.availableSeats(ctx, flightID, engine)
	if err != nil {
		// Transient storage failure: this tick's opportunity is forfeited.
		logrus.WithFields(logrus.Fields{"flight_id": flightID, "err": err}).
			Warn("bot tick: seat fetch failed")
		return
	}
	if len(available) == 0 {
		return
	}

	prob := (b.cfg.BaseHourlyRate / 24) *
		DemandMultiplier(days, byClass, b.cfg.Preferences.ClassPreference)
	if rng.Float64() >= prob {
		return
	}

	seat := SelectSeat(rng, available, b.cfg.Preferences)
	if seat == nil {
		return
	}
	if !b.purchase(ctx, flightID, engine, *seat, days) {
		return
	}

	// At most one adjacent follow-on per sale, decided here rather than by
	// recursion so the depth bound is structural.
	if rng.Float64() < b.cfg.AdjacentProbability {
		b.purchaseAdjacent(ctx, flightID, engine, rng, *seat, days)
	}
}

// availableSeats snapshots the flight's unsold seats, excluding seats the
// claim set already holds, and counts availability per class.
func (b *Bots) availableSeats(ctx context.Context, flightID uint64, engine *botEngine) ([]model.Seat, map[string]int, error) {
	seats, err := b.seats.GetByFlight(ctx, flightID)
	if err != nil {
		return nil, nil, err
	}
	available := make([]model.Seat, 0, len(seats))
	byClass := make(map[string]int, len(model.Classes))
	for _, s := range seats {
		if s.IsOccupied || engine.claimed(s.ID) {
			continue
		}
		available = append(available, s)
		byClass[s.ClassType]++
	}
	return available, byClass, nil
}

// purchase commits one seat sale.  The claim set closes the window between
// snapshot and commit inside this engine; the conditional update at the
// store closes it against everyone else.  A commit that finds the seat
// already occupied is a silent no-op and is not re-broadcast.
func (b *Bots) purchase(ctx context.Context, flightID uint64, engine *botEngine, seat model.Seat, days int) bool {
	if !engine.claim(seat.ID) {
		return false
	}

	price := SalePrice(seat, days)
	applied, err := b.seats.Sell(ctx, seat.ID, price, days)
	if err != nil {
		engine.unclaim(seat.ID)
		logrus.WithFields(logrus.Fields{"flight_id": flightID, "seat_id": seat.ID, "err": err}).
			Warn("bot purchase: commit failed")
		return false
	}
	if !applied {
		monitoring.PurchaseConflicts.Inc()
		return false
	}

	seat.IsOccupied = true
	seat.SalePrice = price
	seat.DaysUntilDeparture = days

	logrus.WithFields(logrus.Fields{
		"flight_id":  flightID,
		"seat_id":    seat.ID,
		"row":        seat.RowNumber,
		"letter":     seat.SeatLetter,
		"class":      seat.ClassType,
		"days":       days,
		"sale_price": price,
	}).Info("bot purchase")

	monitoring.SeatsSold.WithLabelValues(seat.ClassType).Inc()
	b.broadcast.Publish(flightID, model.SeatUpdateEvent(seat))
	if b.notifier != nil {
		b.notifier.SeatSold(ctx, flightID, seat)
	}
	return true
}

// purchaseAdjacent tries to also sell one seat next to a just-sold seat,
// re-reading availability first.  Candidates are the letter-neighbors on
// the sold seat's side of the aisle in the same row; never across it.
func (b *Bots) purchaseAdjacent(ctx context.Context, flightID uint64, engine *botEngine, rng *rand.Rand, sold model.Seat, days int) {
	available, _, err := b.availableSeats(ctx, flightID, engine)
	if err != nil {
		logrus.WithFields(logrus.Fields{"flight_id": flightID, "err": err}).
			Warn("adjacent purchase: seat fetch failed")
		return
	}

	letters := model.AdjacentLetters(sold.SeatLetter)
	var candidates []model.Seat
	for _, s := range available {
		if s.RowNumber != sold.RowNumber {
			continue
		}
		for _, l := range letters {
			if s.SeatLetter == l {
				candidates = append(candidates, s)
				break
			}
		}
	}
	if len(candidates) == 0 {
		return
	}
	b.purchase(ctx, flightID, engine, candidates[rng.Intn(len(candidates))], days)
}
