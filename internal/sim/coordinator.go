package sim

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/iliyamo/vegas-air-market/internal/hub"
	"github.com/iliyamo/vegas-air-market/internal/model"
	"github.com/iliyamo/vegas-air-market/internal/monitoring"
)

// flightNumberWidth is the zero-padded width of flight numbers ("001").
const flightNumberWidth = 3

// Coordinator ties one flight's clock and bot loop together and chains
// the simulation from flight to flight: when a countdown completes it
// archives the flight, creates the successor with a fresh seat map, and
// launches it.  The chain runs indefinitely with no operator involvement;
// a rollover failure ends only that lineage.
type Coordinator struct {
	clock     *Clock
	bots      *Bots
	broadcast *hub.Hub
	flights   FlightStore
	seats     SeatStore
	archiver  *Archiver
	notifier  EventNotifier // may be nil

	layout       SeatLayout
	initialHours int
}

// NewCoordinator wires the lifecycle coordinator.  initialHours is the
// fixed full-simulation duration every new flight starts with; it is a
// constant of the deployment, never derived from the previous flight.
func NewCoordinator(clock *Clock, bots *Bots, broadcast *hub.Hub,
	flights FlightStore, seats SeatStore, archiver *Archiver,
	notifier EventNotifier, layout SeatLayout, initialHours int) *Coordinator {
	return &Coordinator{
		clock:        clock,
		bots:         bots,
		broadcast:    broadcast,
		flights:      flights,
		seats:        seats,
		archiver:     archiver,
		notifier:     notifier,
		layout:       layout,
		initialHours: initialHours,
	}
}

// Bootstrap resumes or starts the simulation chain.  If no flight exists
// yet, flight "001" is created with a freshly generated cabin.  The
// newest flight is then launched with the full duration.
func (c *Coordinator) Bootstrap(ctx context.Context) error {
	flight, err := c.flights.Latest(ctx)
	if err != nil {
		if !isNotFound(err) {
			return fmt.Errorf("bootstrap: %w", err)
		}
		flight, err = c.createFlight(ctx, formatFlightNumber(1))
		if err != nil {
			return fmt.Errorf("bootstrap: %w", err)
		}
	}
	c.Launch(flight.ID)
	return nil
}

// Launch starts the countdown and the purchasing loop for a flight
// together, registering rollover as the countdown's completion callback.
// Both starts are idempotent, so launching an already running flight is
// harmless.
func (c *Coordinator) Launch(flightID uint64) {
	c.clock.Start(flightID, c.initialHours, c.rollover)
	c.bots.Start(flightID)
	logrus.WithField("flight_id", flightID).Info("flight launched")
}

// Shutdown stops a flight's clock and bots together.  Process teardown
// only; the normal path is the countdown completing on its own.
func (c *Coordinator) Shutdown(flightID uint64) {
	c.clock.Stop(flightID)
	c.bots.Stop(flightID)
}

// rollover is the countdown completion callback.  The clock guarantees a
// single invocation per flight, which is what keeps the archiver's
// double-count hazard closed.
func (c *Coordinator) rollover(departedID uint64) {
	ctx := context.Background()
	log := logrus.WithField("flight_id", departedID)

	// The bot loop for the departed flight winds down on its own when it
	// observes zero hours; stopping it here releases the claim set now.
	c.bots.Stop(departedID)

	if err := c.archiver.Archive(ctx, departedID); err != nil {
		log.WithError(err).Error("rollover: archive failed")
	}

	departed, err := c.flights.GetByID(ctx, departedID)
	if err != nil {
		log.WithError(err).Error("rollover: departed flight unreadable, lineage ends")
		return
	}

	next, err := c.createFlight(ctx, nextFlightNumber(departed.FlightNumber))
	if err != nil {
		log.WithError(err).Error("rollover: next flight not created, lineage ends")
		return
	}

	c.Launch(next.ID)
	monitoring.FlightsRolledOver.Inc()

	// Tell the departed flight's observers where the simulation went;
	// their subscriptions drain naturally, no forced disconnect.
	c.broadcast.Publish(departedID, model.FlightDepartureEvent(departed.FlightNumber, next.ID))
	if c.notifier != nil {
		c.notifier.FlightDeparted(ctx, departed.FlightNumber, next.ID)
	}

	log.WithFields(logrus.Fields{"departed": departed.FlightNumber, "next_id": next.ID}).
		Info("rollover complete")
}

// createFlight persists a new flight and its generated, fully unoccupied
// seat map.
func (c *Coordinator) createFlight(ctx context.Context, number string) (*model.Flight, error) {
	flight := &model.Flight{
		FlightNumber:  number,
		DepartureDate: time.Now().UTC().Add(time.Duration(c.initialHours) * time.Hour),
	}
	if err := c.flights.Create(ctx, flight); err != nil {
		return nil, fmt.Errorf("create flight %s: %w", number, err)
	}
	if err := c.seats.CreateBulk(ctx, GenerateSeats(flight.ID, c.layout)); err != nil {
		return nil, fmt.Errorf("create seats for %s: %w", number, err)
	}
	logrus.WithFields(logrus.Fields{"flight_id": flight.ID, "flight": number}).
		Info("flight created")
	return flight, nil
}

// nextFlightNumber increments a zero-padded flight number.  Unparseable
// input restarts the sequence rather than killing the lineage.
func nextFlightNumber(current string) string {
	n, err := strconv.Atoi(current)
	if err != nil {
		logrus.WithField("flight", current).Warn("unparseable flight number, restarting sequence")
		n = 0
	}
	return formatFlightNumber(n + 1)
}

func formatFlightNumber(n int) string {
	return fmt.Sprintf("%0*d", flightNumberWidth, n)
}
