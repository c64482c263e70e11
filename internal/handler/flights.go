package handler // handler contains the public flight read endpoints

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/vegas-air-market/internal/repository"
	"github.com/iliyamo/vegas-air-market/internal/sim"
)

// FlightHandler serves the read-only flight endpoints consumed by the
// observer UI: the flight list, a flight's seat map, its countdown
// position and its archived purchase history.
type FlightHandler struct {
	Flights *repository.FlightRepo
	Seats   *repository.SeatRepo
	History *repository.PurchaseHistoryRepo
	Clock   *sim.Clock
}

// ListFlights handles GET /v1/flights.
func (h *FlightHandler) ListFlights(c echo.Context) error {
	flights, err := h.Flights.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load flights"})
	}
	out := make([]echo.Map, 0, len(flights))
	for _, f := range flights {
		out = append(out, echo.Map{
			"id":             f.ID,
			"flight_number":  f.FlightNumber,
			"departure_date": f.DepartureDate,
		})
	}
	return c.JSON(http.StatusOK, out)
}

// GetSeats handles GET /v1/flights/:id/seats.
func (h *FlightHandler) GetSeats(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid flight id"})
	}
	ctx := c.Request().Context()
	if _, err := h.Flights.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrFlightNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "flight not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load flight"})
	}
	seats, err := h.Seats.GetByFlight(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load seats"})
	}
	return c.JSON(http.StatusOK, seats)
}

// GetClock handles GET /v1/flights/:id/clock, reporting the countdown
// position the same way TIME_UPDATE events do.
func (h *FlightHandler) GetClock(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid flight id"})
	}
	hours := h.Clock.HoursRemaining(id)
	return c.JSON(http.StatusOK, echo.Map{
		"days_until_departure": hours / 24,
		"hours":                hours % 24,
		"active":               h.Clock.Active(id),
	})
}

// GetHistory handles GET /v1/flights/:id/history, returning the archived
// per-class purchase summaries for a departed flight.
func (h *FlightHandler) GetHistory(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid flight id"})
	}
	ctx := c.Request().Context()
	flight, err := h.Flights.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrFlightNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "flight not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load flight"})
	}
	records, err := h.History.ListByFlightNumber(ctx, flight.FlightNumber)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load history"})
	}
	out := make([]echo.Map, 0, len(records))
	for _, r := range records {
		out = append(out, echo.Map{
			"class_type":      r.ClassType,
			"daily_purchases": r.DailyPurchases,
			"departure_date":  r.DepartureDate,
		})
	}
	return c.JSON(http.StatusOK, out)
}

// parseID reads the :id path parameter.
func parseID(c echo.Context) (uint64, error) {
	return strconv.ParseUint(c.Param("id"), 10, 64)
}
