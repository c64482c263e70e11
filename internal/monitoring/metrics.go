// Package monitoring exposes Prometheus metrics for the simulation.
package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ActiveFlights tracks how many flight simulations are currently
	// running (countdown not yet at zero).
	ActiveFlights = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "active_flights_total",
			Help: "Current number of flights with a running countdown",
		},
	)

	// SeatsSold counts committed bot and observer purchases per cabin class.
	SeatsSold = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "seats_sold_total",
			Help: "Total seats sold, by cabin class",
		},
		[]string{"class"},
	)

	// PurchaseConflicts counts commits that lost the occupancy race and
	// were treated as no-ops.
	PurchaseConflicts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "purchase_conflicts_total",
			Help: "Seat purchase commits that found the seat already occupied",
		},
	)

	// EventsPublished counts hub publishes by event type.
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "broadcast_events_total",
			Help: "Events published through the broadcast hub, by type",
		},
		[]string{"type"},
	)

	// ObserversGauge tracks live observer subscriptions across all flights.
	ObserversGauge = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "observers_total",
			Help: "Current number of live observer subscriptions",
		},
	)

	// ObserversDropped counts subscriptions removed because delivery failed.
	ObserversDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "observers_dropped_total",
			Help: "Observer subscriptions dropped after a failed delivery",
		},
	)

	// FlightsRolledOver counts completed rollovers from one flight to the next.
	FlightsRolledOver = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "flight_rollovers_total",
			Help: "Completed flight rollovers",
		},
	)
)
