package model

// Event type discriminators carried in the "type" field of every message
// delivered to observers.
const (
	EventTimeUpdate      = "TIME_UPDATE"
	EventSeatUpdate      = "SEAT_UPDATE"
	EventFlightDeparture = "FLIGHT_DEPARTURE"
)

// Event is one tagged state-change message broadcast to the observers of a
// flight.  Exactly one of the payload pointers is set, matching Type.
type Event struct {
	Type            string           `json:"type"`
	Time            *TimePayload     `json:"time,omitempty"`
	Seat            *Seat            `json:"seat,omitempty"`
	FlightDeparture *DeparturePayload `json:"flight,omitempty"`
}

// TimePayload carries the countdown position after a clock tick.
type TimePayload struct {
	DaysUntilDeparture int `json:"days_until_departure"`
	Hours              int `json:"hours"`
}

// DeparturePayload announces a completed flight and its replacement.
type DeparturePayload struct {
	DepartedFlight string `json:"departed_flight"` // flight number, e.g. "001"
	NewFlight      uint64 `json:"new_flight"`      // id of the freshly created flight
}

// TimeUpdate builds a TIME_UPDATE event from a raw hours-remaining value.
func TimeUpdate(hoursRemaining int) Event {
	if hoursRemaining < 0 {
		hoursRemaining = 0
	}
	return Event{
		Type: EventTimeUpdate,
		Time: &TimePayload{
			DaysUntilDeparture: hoursRemaining / 24,
			Hours:              hoursRemaining % 24,
		},
	}
}

// SeatUpdateEvent builds a SEAT_UPDATE event for one changed seat.
func SeatUpdateEvent(seat Seat) Event {
	return Event{Type: EventSeatUpdate, Seat: &seat}
}

// FlightDepartureEvent builds the final event published on a departed
// flight's channel, naming the departed flight number and the id of the
// newly created flight.
func FlightDepartureEvent(departedNumber string, newFlightID uint64) Event {
	return Event{
		Type:            EventFlightDeparture,
		FlightDeparture: &DeparturePayload{DepartedFlight: departedNumber, NewFlight: newFlightID},
	}
}
