package sim

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/vegas-air-market/internal/model"
)

func TestGenerateSeatsDefaultLayout(t *testing.T) {
	layout := DefaultLayout()
	seats := GenerateSeats(3, layout)
	require.Len(t, seats, layout.Rows*len(SeatLetters))

	seen := make(map[string]bool, len(seats))
	for _, s := range seats {
		assert.Equal(t, uint64(3), s.FlightID)
		assert.False(t, s.IsOccupied)
		assert.Zero(t, s.SalePrice)

		key := fmt.Sprintf("%d%s", s.RowNumber, s.SeatLetter)
		assert.False(t, seen[key], "duplicate seat row=%d letter=%s", s.RowNumber, s.SeatLetter)
		seen[key] = true

		switch {
		case s.RowNumber <= 4:
			assert.Equal(t, model.ClassFirst, s.ClassType)
			assert.Equal(t, 500.0, s.BasePrice)
			assert.True(t, s.IsExtraLegroom)
		case s.RowNumber <= 8:
			assert.Equal(t, model.ClassBusiness, s.ClassType)
			assert.Equal(t, 300.0, s.BasePrice)
			assert.True(t, s.IsExtraLegroom)
		default:
			assert.Equal(t, model.ClassEconomy, s.ClassType)
			assert.Equal(t, 150.0, s.BasePrice)
			assert.Equal(t, s.RowNumber == 9 || s.RowNumber == 10, s.IsExtraLegroom)
		}

		assert.Equal(t, s.SeatLetter == "A" || s.SeatLetter == "F", s.IsWindow)
		assert.Equal(t, s.SeatLetter == "C" || s.SeatLetter == "D", s.IsAisle)
		assert.Equal(t, s.SeatLetter == "B" || s.SeatLetter == "E", s.IsMiddle)
	}
}

func TestGenerateSeatsSurcharges(t *testing.T) {
	layout := SeatLayout{
		Rows:             2,
		FirstClassRows:   0,
		BusinessRows:     0,
		ExtraLegroomRows: []int{2},
		EconomyPrice:     150,
		WindowSurcharge:  25,
		LegroomSurcharge: 10,
	}
	seats := GenerateSeats(1, layout)
	require.Len(t, seats, 12)

	price := func(row int, letter string) float64 {
		for _, s := range seats {
			if s.RowNumber == row && s.SeatLetter == letter {
				return s.BasePrice
			}
		}
		t.Fatalf("seat %d%s not generated", row, letter)
		return 0
	}

	assert.Equal(t, 175.0, price(1, "A")) // window
	assert.Equal(t, 150.0, price(1, "B")) // middle, no extras
	assert.Equal(t, 175.0, price(1, "C")) // aisle
	assert.Equal(t, 185.0, price(2, "F")) // window plus legroom row
	assert.Equal(t, 160.0, price(2, "E")) // legroom row only
}
