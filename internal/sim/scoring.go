package sim

import (
	"math/rand"
	"sort"

	"github.com/iliyamo/vegas-air-market/internal/model"
)

// BotPreferences describe the purchasing taste of the bot population.
// The gate probabilities model that only a fraction of buyers care about
// a given feature; the class preference is a distribution over cabin
// classes and also weights the scarcity part of the demand model.
type BotPreferences struct {
	WindowPreference       float64            // chance the buyer wants a window seat
	AislePreference        float64            // chance the buyer wants an aisle seat
	ExtraLegroomPreference float64            // chance the buyer wants extra legroom
	ClassPreference        map[string]float64 // distribution over cabin classes
	PriceSensitivity       float64            // 0..1, higher favors cheap seats
}

// DefaultPreferences returns the stock bot population used when no
// overrides are configured.
func DefaultPreferences() BotPreferences {
	return BotPreferences{
		WindowPreference:       0.4,
		AislePreference:        0.4,
		ExtraLegroomPreference: 0.3,
		ClassPreference: map[string]float64{
			model.ClassFirst:    0.4,
			model.ClassBusiness: 0.3,
			model.ClassEconomy:  0.3,
		},
		PriceSensitivity: 0.5,
	}
}

// Score weights.  The class preference dominates (a buyer shopping for
// first class rarely settles for a middle economy seat), features add
// smaller nudges, and the jitter keeps the population from piling onto a
// single seat.
const (
	windowBonus   = 3.0
	aisleBonus    = 2.0
	legroomBonus  = 2.0
	classWeight   = 5.0
	priceWeight   = 3.0
	jitterWeight  = 2.0
	topCandidates = 3
)

type scoredSeat struct {
	seat  model.Seat
	score float64
}

// SelectSeat picks one seat from the available pool the way a single
// simulated buyer would: score every seat, keep the top three, then draw
// among them with probability proportional to score.  Returns nil when
// the pool is empty.  A zero combined score falls back to a uniform pick
// so a pool of identical seats still sells.
func SelectSeat(rng *rand.Rand, available []model.Seat, prefs BotPreferences) *model.Seat {
	if len(available) == 0 {
		return nil
	}

	minPrice, maxPrice := priceRange(available)
	scored := make([]scoredSeat, 0, len(available))
	for _, seat := range available {
		score := 0.0
		if seat.IsWindow && rng.Float64() < prefs.WindowPreference {
			score += windowBonus
		}
		if seat.IsAisle && rng.Float64() < prefs.AislePreference {
			score += aisleBonus
		}
		if seat.IsExtraLegroom && rng.Float64() < prefs.ExtraLegroomPreference {
			score += legroomBonus
		}
		score += prefs.ClassPreference[seat.ClassType] * classWeight
		if maxPrice > minPrice {
			norm := (seat.BasePrice - minPrice) / (maxPrice - minPrice)
			score += (1 - norm) * prefs.PriceSensitivity * priceWeight
		}
		score += rng.Float64() * jitterWeight
		scored = append(scored, scoredSeat{seat: seat, score: score})
	}

	sort.SliceStable(scored, func(i, j int) bool { return scored[i].score > scored[j].score })
	top := scored
	if len(top) > topCandidates {
		top = top[:topCandidates]
	}

	total := 0.0
	for _, s := range top {
		total += s.score
	}
	if total == 0 {
		pick := available[rng.Intn(len(available))]
		return &pick
	}

	// Roulette-wheel over the prefix sums of the top candidates.
	r := rng.Float64() * total
	cumulative := 0.0
	for _, s := range top {
		cumulative += s.score
		if r <= cumulative {
			seat := s.seat
			return &seat
		}
	}
	seat := top[0].seat
	return &seat
}

// priceRange returns the min and max base price across the pool.
func priceRange(seats []model.Seat) (float64, float64) {
	minP, maxP := seats[0].BasePrice, seats[0].BasePrice
	for _, s := range seats[1:] {
		if s.BasePrice < minP {
			minP = s.BasePrice
		}
		if s.BasePrice > maxP {
			maxP = s.BasePrice
		}
	}
	return minP, maxP
}
