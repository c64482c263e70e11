// Package model defines the persistent entities of the seat marketplace
// and the event messages broadcast to its observers.
package model

import "time"

// Flight is one simulated flight.  FlightNumber is a zero-padded string
// ("001") unique across the flights table; the lifecycle coordinator
// increments it when a flight departs and its successor is created.
type Flight struct {
	ID            uint64    `json:"id"`
	FlightNumber  string    `json:"flight_number"`
	DepartureDate time.Time `json:"departure_date"`
	CreatedAt     time.Time `json:"created_at"`
}
