package sim

import "github.com/iliyamo/vegas-air-market/internal/model"

// The demand curve has two peaks on the remaining-days axis: a broad one
// around two months out and a sharp last-minute rush.  Each peak is a
// bell-like falloff amp/(1+dist/spread); between the peaks the two curves
// are blended linearly by position, outside them the curve saturates at
// the nearer boundary so arbitrarily early or late (even negative) day
// values stay finite and non-negative.
const (
	earlyPeakDay    = 60.0
	earlyPeakAmp    = 2.5
	earlyPeakSpread = 10.0

	rushPeakDay    = 10.0
	rushPeakAmp    = 3.0
	rushPeakSpread = 5.0

	// Blend weights between the time curve and the scarcity multiplier.
	timeWeight     = 0.7
	scarcityWeight = 0.3
)

// peak evaluates one bell curve at the given distance from its center.
func peak(days, center, amp, spread float64) float64 {
	dist := days - center
	if dist < 0 {
		dist = -dist
	}
	return amp / (1 + dist/spread)
}

// timeMultiplier is the time-based component of demand for a given number
// of days until departure.
func timeMultiplier(daysRemaining int) float64 {
	d := float64(daysRemaining)
	switch {
	case d <= rushPeakDay:
		// At or inside the rush window: hold the boundary value.
		return maxf(
			peak(rushPeakDay, earlyPeakDay, earlyPeakAmp, earlyPeakSpread),
			peak(rushPeakDay, rushPeakDay, rushPeakAmp, rushPeakSpread),
		)
	case d >= earlyPeakDay:
		return maxf(
			peak(earlyPeakDay, earlyPeakDay, earlyPeakAmp, earlyPeakSpread),
			peak(earlyPeakDay, rushPeakDay, rushPeakAmp, rushPeakSpread),
		)
	default:
		// Between the peaks: interpolate the two curves by position.
		w := (d - rushPeakDay) / (earlyPeakDay - rushPeakDay)
		rush := peak(d, rushPeakDay, rushPeakAmp, rushPeakSpread)
		early := peak(d, earlyPeakDay, earlyPeakAmp, earlyPeakSpread)
		return (1-w)*rush + w*early
	}
}

// scarcityMultiplier boosts demand as classes run out of seats.  Each
// class contributes 2.0 when sold out, otherwise 1 + 1/(1+avail/10),
// weighted by how likely bots are to want that class.
func scarcityMultiplier(availableByClass map[string]int, classPrefs map[string]float64) float64 {
	total := 0.0
	weightSum := 0.0
	for _, class := range model.Classes {
		w := classPrefs[class]
		if w <= 0 {
			continue
		}
		avail := availableByClass[class]
		var s float64
		if avail == 0 {
			s = 2.0
		} else {
			s = 1 + 1/(1+float64(avail)/10)
		}
		total += w * s
		weightSum += w
	}
	if weightSum == 0 {
		return 1.0
	}
	return total / weightSum
}

// DemandMultiplier maps the countdown position and the current per-class
// availability to a purchase-likelihood multiplier for the tick.  It is a
// pure function, always >= 0, and defined for any daysRemaining input.
func DemandMultiplier(daysRemaining int, availableByClass map[string]int, classPrefs map[string]float64) float64 {
	t := timeMultiplier(daysRemaining)
	s := scarcityMultiplier(availableByClass, classPrefs)
	return timeWeight*t + scarcityWeight*s
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
