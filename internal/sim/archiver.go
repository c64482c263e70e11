package sim

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/iliyamo/vegas-air-market/internal/model"
)

// Archiver condenses a completed flight's sales into per-class purchase
// history records: for every occupied seat, its frozen days-until-departure
// value (clamped to [0, HistoryBucketMax]) increments that class's bucket.
// Classes without a single sale produce no record.
//
// Archiving is not idempotent; running it twice for the same flight
// double-counts.  The lifecycle coordinator is the only caller and invokes
// it exactly once, from the countdown completion path.
type Archiver struct {
	flights FlightStore
	seats   SeatStore
	history HistoryStore
}

// NewArchiver builds an Archiver over the given stores.
func NewArchiver(flights FlightStore, seats SeatStore, history HistoryStore) *Archiver {
	return &Archiver{flights: flights, seats: seats, history: history}
}

// Archive aggregates and persists the purchase summary for one flight.
// A missing flight is nothing to do, not a failure.
func (a *Archiver) Archive(ctx context.Context, flightID uint64) error {
	flight, err := a.flights.GetByID(ctx, flightID)
	if err != nil {
		if isNotFound(err) {
			logrus.WithField("flight_id", flightID).Warn("archive: flight missing, nothing to do")
			return nil
		}
		return fmt.Errorf("archive: load flight: %w", err)
	}

	seats, err := a.seats.GetByFlight(ctx, flightID)
	if err != nil {
		return fmt.Errorf("archive: load seats: %w", err)
	}

	buckets := BucketPurchases(seats)
	for _, class := range model.Classes {
		daily := buckets[class]
		if len(daily) == 0 {
			continue
		}
		record := &model.PurchaseHistory{
			FlightNumber:   flight.FlightNumber,
			ClassType:      class,
			DailyPurchases: daily,
			DepartureDate:  flight.DepartureDate,
		}
		if err := a.history.Create(ctx, record); err != nil {
			return fmt.Errorf("archive: store %s history: %w", class, err)
		}
	}

	logrus.WithFields(logrus.Fields{"flight_id": flightID, "flight": flight.FlightNumber}).
		Info("purchase history archived")
	return nil
}

// BucketPurchases builds the per-class day-bucket counts for a seat list.
// Split out of Archive so it can be exercised without storage.
func BucketPurchases(seats []model.Seat) map[string]map[int]int {
	buckets := make(map[string]map[int]int, len(model.Classes))
	for _, s := range seats {
		if !s.IsOccupied {
			continue
		}
		day := s.DaysUntilDeparture
		if day < 0 {
			day = 0
		}
		if day > model.HistoryBucketMax {
			day = model.HistoryBucketMax
		}
		if buckets[s.ClassType] == nil {
			buckets[s.ClassType] = make(map[int]int)
		}
		buckets[s.ClassType][day]++
	}
	return buckets
}
