package config // package config loads application configuration from environment variables

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all runtime configuration values.  Each field corresponds
// to an environment variable.  Connection and secret values are required;
// every simulation tunable has a default so a bare environment runs the
// stock simulation.
//
// The countdown tick/step ratio and the initial duration are deliberately
// configuration, not derived values: one wall-clock tick burns
// SimStepHours simulated hours, and every new flight starts with
// SimInitialHours on the clock regardless of how its predecessor ended.
type Config struct {
	Env  string // application environment (e.g. "dev", "prod")
	Port string // HTTP port to listen on

	DBUser string // database username
	DBPass string // database password (optional)
	DBHost string // database host address
	DBPort string // database port number
	DBName string // database name

	JWTSecret        string // secret used to sign operator tokens
	AccessTTLMin     int    // operator token time-to-live in minutes
	OperatorPassHash string // bcrypt hash of the operator password

	SimTick         time.Duration // wall-clock interval between countdown ticks
	SimStepHours    int           // simulated hours consumed per tick
	SimInitialHours int           // countdown every new flight starts with

	BotTick         time.Duration // wall-clock interval between purchase opportunities
	BotBaseRate     float64       // base purchases per simulated day
	BotAdjacentProb float64       // chance a sale chains into an adjacent seat
	BotSeed         int64         // RNG seed, 0 for wall clock

	SeatRows         int     // cabin rows
	FirstClassRows   int     // rows from the front that are first class
	BusinessRows     int     // rows from the front that are first or business
	ExtraLegroomRows []int   // economy rows with extra legroom
	FirstPrice       float64 // per-class base prices
	BusinessPrice    float64
	EconomyPrice     float64
	WindowSurcharge  float64 // added to window/aisle seats
	LegroomSurcharge float64 // added to extra-legroom seats
}

// Load reads configuration values from environment variables and returns
// a Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.
func Load() Config {
	return Config{
		Env:  must("APP_ENV"),
		Port: must("APP_PORT"),

		DBUser: must("DB_USER"),
		DBPass: os.Getenv("DB_PASS"),
		DBHost: must("DB_HOST"),
		DBPort: must("DB_PORT"),
		DBName: must("DB_NAME"),

		JWTSecret:        must("JWT_SECRET"),
		AccessTTLMin:     envInt("ACCESS_TOKEN_TTL_MIN", 30),
		OperatorPassHash: must("OPERATOR_PASSWORD_HASH"),

		SimTick:         envDur("SIM_TICK", time.Second),
		SimStepHours:    envInt("SIM_STEP_HOURS", 4),
		SimInitialHours: envInt("SIM_INITIAL_HOURS", 120*24),

		BotTick:         envDur("BOT_TICK", 250*time.Millisecond),
		BotBaseRate:     envFloat("BOT_BASE_RATE", 1.0),
		BotAdjacentProb: envFloat("BOT_ADJACENT_PROB", 0.3),
		BotSeed:         int64(envInt("BOT_SEED", 0)),

		SeatRows:         envInt("SEAT_ROWS", 20),
		FirstClassRows:   envInt("FIRST_CLASS_ROWS", 4),
		BusinessRows:     envInt("BUSINESS_ROWS", 8),
		ExtraLegroomRows: envIntList("EXTRA_LEGROOM_ROWS", []int{9, 10}),
		FirstPrice:       envFloat("FIRST_CLASS_PRICE", 500),
		BusinessPrice:    envFloat("BUSINESS_CLASS_PRICE", 300),
		EconomyPrice:     envFloat("ECONOMY_CLASS_PRICE", 150),
		WindowSurcharge:  envFloat("WINDOW_AISLE_SURCHARGE", 0),
		LegroomSurcharge: envFloat("LEGROOM_SURCHARGE", 0),
	}
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

func envFloat(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Fatalf("invalid float for %s: %q", key, v)
	}
	return f
}

// envIntList parses a comma-separated list of integers, e.g. "9,10".
func envIntList(key string, def []int) []int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []int
	for _, p := range strings.Split(v, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			log.Fatalf("invalid int list for %s: %q", key, v)
		}
		out = append(out, n)
	}
	return out
}
