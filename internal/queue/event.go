// Package queue defines message payloads exchanged over the message broker.
package queue

// Queue names used on the default exchange.
const (
	SeatSoldQueue       = "seat.sold"
	FlightDepartedQueue = "flight.departed"
)

// SeatSoldEvent is published whenever a seat purchase commits.  It carries
// enough information for downstream consumers to log or trigger analytics
// without querying the primary database.
type SeatSoldEvent struct {
	FlightID           uint64  `json:"flight_id"`
	SeatID             uint64  `json:"seat_id"`
	RowNumber          int     `json:"row_number"`
	SeatLetter         string  `json:"seat_letter"`
	ClassType          string  `json:"class_type"`
	BasePrice          float64 `json:"base_price"`
	SalePrice          float64 `json:"sale_price"`
	DaysUntilDeparture int     `json:"days_until_departure"`
	SoldAt             string  `json:"sold_at"`
}

// FlightDepartedEvent is published when a flight's countdown completes and
// its successor has been created.
type FlightDepartedEvent struct {
	DepartedFlight string `json:"departed_flight"` // flight number, e.g. "001"
	NewFlightID    uint64 `json:"new_flight_id"`
	DepartedAt     string `json:"departed_at"`
}
