package sim

import (
	"github.com/shopspring/decimal"

	"github.com/iliyamo/vegas-air-market/internal/model"
)

// Sale prices combine the seat's base price with a time multiplier (how
// close to departure the sale lands) and a fixed class ratio relative to
// economy.  The result is rounded to the nearest whole currency unit.
var (
	tierLastMinute = decimal.NewFromFloat(1.5) // 10 days or less
	tierLastMonth  = decimal.NewFromFloat(1.2) // 30 days or less
	tierStandard   = decimal.NewFromFloat(1.0) // 60 days or less
	tierEarlyBird  = decimal.NewFromFloat(0.9) // more than 60 days out

	classRatios = map[string]decimal.Decimal{
		model.ClassFirst:    decimal.NewFromFloat(1.3),
		model.ClassBusiness: decimal.NewFromFloat(1.2),
		model.ClassEconomy:  decimal.NewFromFloat(1.0),
	}
)

// timeTier returns the multiplier for the days-remaining bracket.
func timeTier(daysRemaining int) decimal.Decimal {
	switch {
	case daysRemaining <= 10:
		return tierLastMinute
	case daysRemaining <= 30:
		return tierLastMonth
	case daysRemaining <= 60:
		return tierStandard
	default:
		return tierEarlyBird
	}
}

// SalePrice computes the final price of a seat sold at the given distance
// from departure, rounded to whole currency units.
func SalePrice(seat model.Seat, daysRemaining int) float64 {
	ratio, ok := classRatios[seat.ClassType]
	if !ok {
		ratio = decimal.NewFromFloat(1.0)
	}
	price := decimal.NewFromFloat(seat.BasePrice).
		Mul(timeTier(daysRemaining)).
		Mul(ratio).
		Round(0)
	f, _ := price.Float64()
	return f
}
