// Package sim contains the simulation core: the per-flight countdown
// clock, the bot purchasing engine, the demand model, the lifecycle
// coordinator and the history archiver.  Storage is reached only through
// the narrow interfaces below so the core stays independent of the
// relational layer behind them.
package sim

import (
	"context"

	"github.com/iliyamo/vegas-air-market/internal/model"
)

// FlightStore is the slice of the inventory store the simulation needs
// for flights.
type FlightStore interface {
	Create(ctx context.Context, f *model.Flight) error
	GetByID(ctx context.Context, id uint64) (*model.Flight, error)
	Latest(ctx context.Context) (*model.Flight, error)
}

// SeatStore is the slice of the inventory store the simulation needs for
// seats.  Sell is the conditional update closing the purchase race: it
// applies only when the seat is still unoccupied and reports whether it
// did.  A false return with a nil error means the commit lost the race
// and must be treated as a no-op.
type SeatStore interface {
	CreateBulk(ctx context.Context, seats []model.Seat) error
	GetByFlight(ctx context.Context, flightID uint64) ([]model.Seat, error)
	GetByID(ctx context.Context, id uint64) (*model.Seat, error)
	Sell(ctx context.Context, seatID uint64, salePrice float64, daysUntilDeparture int) (bool, error)
}

// HistoryStore persists the archiver's per-class purchase summaries.
type HistoryStore interface {
	Create(ctx context.Context, h *model.PurchaseHistory) error
}
