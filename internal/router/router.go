package router // router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/vegas-air-market/internal/config"
	"github.com/iliyamo/vegas-air-market/internal/handler"
	"github.com/iliyamo/vegas-air-market/internal/middleware"
)

// Handlers groups everything the router wires up.
type Handlers struct {
	Flights *handler.FlightHandler
	Seats   *handler.SeatHandler
	Auth    *handler.AuthHandler
	Admin   *handler.AdminHandler
	WS      *handler.WSHandler
}

// Register wires all routes on the provided Echo instance.  The public
// read API sits behind the Redis rate limiter; the websocket and the
// metrics endpoint are exempt; the admin group requires an operator
// token.
func Register(e *echo.Echo, h Handlers, rl config.RateLimitConfig, rdb *redis.Client, jwtSecret string) {
	e.GET("/healthz", handler.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/ws/flights/:id", h.WS.Serve)

	limited := e.Group("/v1", middleware.NewTokenBucket(rl, rdb))
	limited.GET("/flights", h.Flights.ListFlights)
	limited.GET("/flights/:id/seats", h.Flights.GetSeats)
	limited.GET("/flights/:id/clock", h.Flights.GetClock)
	limited.GET("/flights/:id/history", h.Flights.GetHistory)
	limited.PATCH("/seats/:id", h.Seats.UpdateSeat)
	limited.POST("/auth/token", h.Auth.Token)

	admin := limited.Group("/admin", middleware.OperatorAuth(jwtSecret))
	admin.POST("/flights/:id/start", h.Admin.StartFlight)
	admin.POST("/flights/:id/stop", h.Admin.StopFlight)
}
