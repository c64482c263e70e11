package model

// Cabin class values stored in seats.class_type.
const (
	ClassFirst    = "first"
	ClassBusiness = "business"
	ClassEconomy  = "economy"
)

// Classes lists the cabin classes in a stable order, used when iterating
// per-class aggregates (availability counts, purchase history records).
var Classes = []string{ClassFirst, ClassBusiness, ClassEconomy}

// Seat is one physical seat on a flight.  A seat belongs to exactly one
// flight and is unique per (flight, row, letter).  The position flags
// (window/aisle/middle) and the extra-legroom flag are derived from the
// row and letter at creation time and never recomputed.
//
// Occupancy is a one-way transition: a seat goes from unoccupied to
// occupied at most once in a flight's lifetime.  SalePrice is zero until
// the seat is sold, and DaysUntilDeparture is the countdown value frozen
// at the moment of purchase, not a live reading.
type Seat struct {
	ID                 uint64  `json:"id"`
	FlightID           uint64  `json:"flight_id"`
	RowNumber          int     `json:"row_number"`
	SeatLetter         string  `json:"seat_letter"` // A..F
	ClassType          string  `json:"class_type"`  // first | business | economy
	IsOccupied         bool    `json:"is_occupied"`
	IsWindow           bool    `json:"is_window"`
	IsAisle            bool    `json:"is_aisle"`
	IsMiddle           bool    `json:"is_middle"`
	IsExtraLegroom     bool    `json:"is_extra_legroom"`
	BasePrice          float64 `json:"base_price"`
	SalePrice          float64 `json:"sale_price"`
	DaysUntilDeparture int     `json:"days_until_departure"`
}

// AdjacentLetters returns the letter-neighbors of a seat on its own side
// of the aisle.  Rows are split into the triples A-B-C and D-E-F; a seat
// is never adjacent to one across the aisle, so "C" yields only {B} and
// "D" only {E}.
func AdjacentLetters(letter string) []string {
	switch letter {
	case "A":
		return []string{"B"}
	case "B":
		return []string{"A", "C"}
	case "C":
		return []string{"B"}
	case "D":
		return []string{"E"}
	case "E":
		return []string{"D", "F"}
	case "F":
		return []string{"E"}
	}
	return nil
}
