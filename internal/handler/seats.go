package handler // handler contains the seat mutation entry point

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/vegas-air-market/internal/hub"
	"github.com/iliyamo/vegas-air-market/internal/model"
	"github.com/iliyamo/vegas-air-market/internal/repository"
)

// SeatMutator is the slice of the seat store the update entry point
// needs: the conditional partial update and the read-back of the
// resulting row.
type SeatMutator interface {
	Update(ctx context.Context, seatID uint64, u model.SeatUpdate) (bool, error)
	GetByID(ctx context.Context, id uint64) (*model.Seat, error)
}

// SeatHandler applies inbound seat updates.  Both the PATCH endpoint and
// the websocket seat_update message funnel into ApplyUpdate, so every
// write path shares the conditional-update discipline and the broadcast.
type SeatHandler struct {
	Seats SeatMutator
	Hub   *hub.Hub
}

// UpdateSeat handles PATCH /v1/seats/:id.  The body binds into the
// explicit model.SeatUpdate structure; fields outside it are ignored.  A
// request that would re-occupy a sold seat is reported as not applied,
// never as an error.
func (h *SeatHandler) UpdateSeat(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid seat id"})
	}
	var update model.SeatUpdate
	if err := c.Bind(&update); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if update.Empty() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "no recognized fields to update"})
	}

	seat, applied, err := h.ApplyUpdate(c.Request().Context(), id, update)
	if err != nil {
		if errors.Is(err, repository.ErrSeatNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "seat not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not update seat"})
	}
	return c.JSON(http.StatusOK, echo.Map{"applied": applied, "seat": seat})
}

// ApplyUpdate commits a partial seat update and, when something actually
// changed, broadcasts the seat's new state to the flight's observers.  A
// conditional occupancy update that loses the race commits nothing and
// broadcasts nothing.
func (h *SeatHandler) ApplyUpdate(ctx context.Context, seatID uint64, update model.SeatUpdate) (*model.Seat, bool, error) {
	applied, err := h.Seats.Update(ctx, seatID, update)
	if err != nil {
		return nil, false, err
	}
	seat, err := h.Seats.GetByID(ctx, seatID)
	if err != nil {
		return nil, false, err
	}
	if applied {
		h.Hub.Publish(seat.FlightID, model.SeatUpdateEvent(*seat))
	}
	return seat, applied, nil
}
