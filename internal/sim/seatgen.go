package sim

import "github.com/iliyamo/vegas-air-market/internal/model"

// SeatLetters is the fixed cabin layout: six seats per row, A-C on one
// side of the aisle and D-F on the other.
var SeatLetters = []string{"A", "B", "C", "D", "E", "F"}

// SeatLayout describes how a new flight's cabin is generated.  Row
// thresholds partition the cabin into classes from the front; the
// extra-legroom rows extend the legroom flag into economy.
type SeatLayout struct {
	Rows             int     // total rows
	FirstClassRows   int     // rows 1..FirstClassRows are first class
	BusinessRows     int     // rows FirstClassRows+1..BusinessRows are business
	ExtraLegroomRows []int   // economy rows with extra legroom
	FirstPrice       float64 // base price per class
	BusinessPrice    float64
	EconomyPrice     float64
	WindowSurcharge  float64 // added to window and aisle seats
	LegroomSurcharge float64 // added to extra-legroom seats
}

// DefaultLayout matches the original cabin: 20 rows, four first, four
// business, extra legroom in rows 9 and 10, no surcharges.
func DefaultLayout() SeatLayout {
	return SeatLayout{
		Rows:             20,
		FirstClassRows:   4,
		BusinessRows:     8,
		ExtraLegroomRows: []int{9, 10},
		FirstPrice:       500,
		BusinessPrice:    300,
		EconomyPrice:     150,
	}
}

// GenerateSeats produces the full, unoccupied seat map for a flight.
// Every derived attribute (class, position flags, legroom, base price) is
// fixed here and never recomputed.
func GenerateSeats(flightID uint64, layout SeatLayout) []model.Seat {
	legroomRows := make(map[int]bool, len(layout.ExtraLegroomRows))
	for _, r := range layout.ExtraLegroomRows {
		legroomRows[r] = true
	}

	seats := make([]model.Seat, 0, layout.Rows*len(SeatLetters))
	for row := 1; row <= layout.Rows; row++ {
		var class string
		var price float64
		var legroom bool
		switch {
		case row <= layout.FirstClassRows:
			class, price, legroom = model.ClassFirst, layout.FirstPrice, true
		case row <= layout.BusinessRows:
			class, price, legroom = model.ClassBusiness, layout.BusinessPrice, true
		default:
			class, price, legroom = model.ClassEconomy, layout.EconomyPrice, legroomRows[row]
		}

		for _, letter := range SeatLetters {
			window := letter == "A" || letter == "F"
			aisle := letter == "C" || letter == "D"
			base := price
			if window || aisle {
				base += layout.WindowSurcharge
			}
			if legroom {
				base += layout.LegroomSurcharge
			}
			seats = append(seats, model.Seat{
				FlightID:       flightID,
				RowNumber:      row,
				SeatLetter:     letter,
				ClassType:      class,
				IsWindow:       window,
				IsAisle:        aisle,
				IsMiddle:       letter == "B" || letter == "E",
				IsExtraLegroom: legroom,
				BasePrice:      base,
			})
		}
	}
	return seats
}
