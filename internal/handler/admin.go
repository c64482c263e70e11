package handler // handler contains operator simulation-control endpoints

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/vegas-air-market/internal/repository"
	"github.com/iliyamo/vegas-air-market/internal/sim"
)

// AdminHandler exposes the operator controls over a flight's simulation.
// Normal operation never needs these; rollover chains flights on its own.
type AdminHandler struct {
	Flights *repository.FlightRepo
	Coord   *sim.Coordinator
}

// StartFlight handles POST /v1/admin/flights/:id/start.  Launching an
// already running flight is harmless.
func (h *AdminHandler) StartFlight(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid flight id"})
	}
	if _, err := h.Flights.GetByID(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrFlightNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "flight not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load flight"})
	}
	h.Coord.Launch(id)
	return c.JSON(http.StatusOK, echo.Map{"status": "started", "flight_id": id})
}

// StopFlight handles POST /v1/admin/flights/:id/stop.  Stops the clock
// and bots together; the flight can be started again later.
func (h *AdminHandler) StopFlight(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid flight id"})
	}
	h.Coord.Shutdown(id)
	return c.JSON(http.StatusOK, echo.Map{"status": "stopped", "flight_id": id})
}
