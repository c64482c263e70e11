// Package hub fans simulation events out to the observers of each flight.
// Delivery is fire-and-forget: a subscriber that cannot keep up is dropped,
// the publisher never blocks and never sees a delivery error.
package hub

import (
	"sync"

	"github.com/iliyamo/vegas-air-market/internal/model"
	"github.com/iliyamo/vegas-air-market/internal/monitoring"
)

// subscriberBuffer is the per-subscriber queue depth.  Events beyond it
// mean the observer stopped reading; it is treated as disconnected.
const subscriberBuffer = 64

// Subscription is one observer's handle on a flight's event stream.
// Events arrive on C in publish order.  C is closed when the subscription
// is removed, either explicitly via Unsubscribe or because delivery
// failed.
type Subscription struct {
	FlightID uint64
	C        chan model.Event

	hub    *Hub
	closed bool // guarded by hub.mu
}

// Hub maintains the per-flight observer sets.  All methods are safe for
// concurrent use; one flight's subscribers never interfere with
// another's.
type Hub struct {
	mu    sync.Mutex
	flows map[uint64]map[*Subscription]struct{}
}

// New returns an empty Hub.
func New() *Hub {
	return &Hub{flows: make(map[uint64]map[*Subscription]struct{})}
}

// Subscribe registers a new observer for the given flight and returns its
// subscription handle.
func (h *Hub) Subscribe(flightID uint64) *Subscription {
	sub := &Subscription{
		FlightID: flightID,
		C:        make(chan model.Event, subscriberBuffer),
		hub:      h,
	}
	h.mu.Lock()
	set, ok := h.flows[flightID]
	if !ok {
		set = make(map[*Subscription]struct{})
		h.flows[flightID] = set
	}
	set[sub] = struct{}{}
	h.mu.Unlock()
	monitoring.ObserversGauge.Inc()
	return sub
}

// Unsubscribe removes the subscription and closes its channel.  Calling it
// on an already removed subscription is a no-op.
func (h *Hub) Unsubscribe(sub *Subscription) {
	if sub == nil {
		return
	}
	h.mu.Lock()
	removed := h.removeLocked(sub)
	h.mu.Unlock()
	if removed {
		monitoring.ObserversGauge.Dec()
	}
}

// Publish delivers the event to every current subscriber of the flight.
// A subscriber whose buffer is full is removed, without aborting delivery
// to the rest.  Publishing to a flight with no subscribers does nothing.
func (h *Hub) Publish(flightID uint64, ev model.Event) {
	h.mu.Lock()
	set := h.flows[flightID]
	var dropped []*Subscription
	for sub := range set {
		select {
		case sub.C <- ev:
		default:
			dropped = append(dropped, sub)
		}
	}
	for _, sub := range dropped {
		h.removeLocked(sub)
	}
	h.mu.Unlock()

	monitoring.EventsPublished.WithLabelValues(ev.Type).Inc()
	for range dropped {
		monitoring.ObserversDropped.Inc()
		monitoring.ObserversGauge.Dec()
	}
}

// Subscribers reports the current observer count for a flight.
func (h *Hub) Subscribers(flightID uint64) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.flows[flightID])
}

// removeLocked detaches a subscription and closes its channel.  The hub
// mutex must be held.  Returns false when the subscription was already
// gone.
func (h *Hub) removeLocked(sub *Subscription) bool {
	if sub.closed {
		return false
	}
	sub.closed = true
	if set, ok := h.flows[sub.FlightID]; ok {
		delete(set, sub)
		if len(set) == 0 {
			delete(h.flows, sub.FlightID)
		}
	}
	close(sub.C)
	return true
}
