package handler // handler contains the observer websocket endpoint

import (
	"context"
	"errors"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/websocket"

	"github.com/iliyamo/vegas-air-market/internal/hub"
	"github.com/iliyamo/vegas-air-market/internal/model"
	"github.com/iliyamo/vegas-air-market/internal/repository"
)

// FlightGetter is the slice of the flight store the websocket endpoint
// needs to validate a flight before subscribing an observer to it.
type FlightGetter interface {
	GetByID(ctx context.Context, id uint64) (*model.Flight, error)
}

// WSHandler streams a flight's event feed to observers.  Each connection
// gets its own hub subscription; events arrive in publish order and a
// connection that stops reading is dropped by the hub without affecting
// anyone else.
type WSHandler struct {
	Hub     *hub.Hub
	Flights FlightGetter
	Seats   *SeatHandler
}

// inboundMessage is the only message shape observers may send.  Anything
// else, including unknown fields inside the update, is ignored.
type inboundMessage struct {
	Type   string           `json:"type"`
	SeatID uint64           `json:"seat_id"`
	Update model.SeatUpdate `json:"update"`
}

// Serve handles GET /ws/flights/:id.
func (h *WSHandler) Serve(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return echo.NewHTTPError(400, "invalid flight id")
	}
	if _, err := h.Flights.GetByID(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrFlightNotFound) {
			return echo.NewHTTPError(404, "flight not found")
		}
		return echo.NewHTTPError(500, "could not load flight")
	}

	websocket.Handler(func(conn *websocket.Conn) {
		defer conn.Close()
		sub := h.Hub.Subscribe(id)
		defer h.Hub.Unsubscribe(sub)

		log := logrus.WithFields(logrus.Fields{"flight_id": id, "remote": conn.Request().RemoteAddr})
		log.Info("observer connected")
		defer log.Info("observer disconnected")

		go h.readLoop(conn, sub)

		// Writer: forward hub events until the subscription closes (hub
		// dropped us, or the reader saw the disconnect) or the peer goes
		// away.
		for ev := range sub.C {
			if err := websocket.JSON.Send(conn, ev); err != nil {
				return
			}
		}
	}).ServeHTTP(c.Response(), c.Request())
	return nil
}

// readLoop consumes inbound observer messages.  The only recognized
// request forwards a seat update into the shared mutation entry point;
// malformed or unknown messages are discarded.
func (h *WSHandler) readLoop(conn *websocket.Conn, sub *hub.Subscription) {
	// A read error is the disconnect signal.  Releasing the subscription
	// here closes its channel, which ends the writer even if the flight
	// never publishes again; Unsubscribe is idempotent with Serve's own.
	defer h.Hub.Unsubscribe(sub)

	for {
		var msg inboundMessage
		if err := websocket.JSON.Receive(conn, &msg); err != nil {
			return
		}
		if msg.Type != "seat_update" || msg.SeatID == 0 || msg.Update.Empty() {
			continue
		}
		ctx := conn.Request().Context()
		if _, _, err := h.Seats.ApplyUpdate(ctx, msg.SeatID, msg.Update); err != nil {
			logrus.WithFields(logrus.Fields{"flight_id": sub.FlightID, "seat_id": msg.SeatID, "err": err}).
				Warn("observer seat update failed")
		}
	}
}
