package main // Entry point package

import (
	"context"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/vegas-air-market/internal/config"
	"github.com/iliyamo/vegas-air-market/internal/database"
	"github.com/iliyamo/vegas-air-market/internal/handler"
	"github.com/iliyamo/vegas-air-market/internal/hub"
	"github.com/iliyamo/vegas-air-market/internal/queue"
	"github.com/iliyamo/vegas-air-market/internal/repository"
	"github.com/iliyamo/vegas-air-market/internal/router"
	"github.com/iliyamo/vegas-air-market/internal/service"
	"github.com/iliyamo/vegas-air-market/internal/sim"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		logrus.WithError(err).Fatal("database connection failed")
	}

	flights := repository.NewFlightRepo(db)
	seats := repository.NewSeatRepo(db)
	history := repository.NewPurchaseHistoryRepo(db)

	broadcast := hub.New()
	notifier := service.NewAmqpNotifier()

	clock := sim.NewClock(cfg.SimTick, cfg.SimStepHours, broadcast)
	bots := sim.NewBots(sim.BotConfig{
		TickInterval:        cfg.BotTick,
		BaseHourlyRate:      cfg.BotBaseRate,
		AdjacentProbability: cfg.BotAdjacentProb,
		Preferences:         sim.DefaultPreferences(),
		Seed:                cfg.BotSeed,
	}, clock, seats, broadcast, notifier)
	archiver := sim.NewArchiver(flights, seats, history)

	layout := sim.SeatLayout{
		Rows:             cfg.SeatRows,
		FirstClassRows:   cfg.FirstClassRows,
		BusinessRows:     cfg.BusinessRows,
		ExtraLegroomRows: cfg.ExtraLegroomRows,
		FirstPrice:       cfg.FirstPrice,
		BusinessPrice:    cfg.BusinessPrice,
		EconomyPrice:     cfg.EconomyPrice,
		WindowSurcharge:  cfg.WindowSurcharge,
		LegroomSurcharge: cfg.LegroomSurcharge,
	}
	coord := sim.NewCoordinator(clock, bots, broadcast, flights, seats, archiver,
		notifier, layout, cfg.SimInitialHours)

	// The purchase ledger consumer runs for the life of the process and
	// reconnects on its own; the simulation does not depend on it.
	go func() {
		if err := queue.StartPurchaseConsumer(); err != nil {
			logrus.WithError(err).Warn("purchase consumer stopped")
		}
	}()

	// Resume (or bootstrap) the flight chain before serving traffic.
	if err := coord.Bootstrap(context.Background()); err != nil {
		logrus.WithError(err).Fatal("simulation bootstrap failed")
	}

	seatHandler := &handler.SeatHandler{Seats: seats, Hub: broadcast}
	h := router.Handlers{
		Flights: &handler.FlightHandler{Flights: flights, Seats: seats, History: history, Clock: clock},
		Seats:   seatHandler,
		Auth: &handler.AuthHandler{
			JWTSecret:        cfg.JWTSecret,
			AccessTTLMin:     cfg.AccessTTLMin,
			OperatorPassHash: cfg.OperatorPassHash,
		},
		Admin: &handler.AdminHandler{Flights: flights, Coord: coord},
		WS:    &handler.WSHandler{Hub: broadcast, Flights: flights, Seats: seatHandler},
	}

	e := echo.New()
	e.HideBanner = true
	router.Register(e, h, config.LoadRateLimitConfig(), config.NewRedisClient(), cfg.JWTSecret)

	addr := ":" + cfg.Port
	logrus.WithFields(logrus.Fields{"addr": addr, "env": cfg.Env}).Info("listening")
	if err := e.Start(addr); err != nil {
		logrus.WithError(err).Fatal("server stopped")
	}
}
