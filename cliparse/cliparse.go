package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port         int
	DatabaseURL  string
	DatabaseType string
	RateLimit    int
	RateWindow   time.Duration
}

// ParseFlags validates flags, falling back to environment variables.
// A .env file in the working directory is loaded first, if present.
func ParseFlags(args []string) (Config, error) {
	// Missing .env is the normal case in production.
	_ = godotenv.Load()

	var cfg Config
	var windowMinutes int

	fs := flag.NewFlagSet("livepoll", flag.ContinueOnError)

	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")
	fs.IntVar(&cfg.RateLimit, "rate-limit", 0, "Accepted vote attempts per source per window")
	fs.IntVar(&windowMinutes, "rate-window", 0, "Rate limit window in minutes")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 4000 // default
		}
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}

	if cfg.RateLimit == 0 {
		if limitStr := os.Getenv("RATE_LIMIT"); limitStr != "" {
			limit, err := strconv.Atoi(limitStr)
			if err != nil || limit < 1 {
				return Config{}, errors.New("invalid RATE_LIMIT env variable")
			}
			cfg.RateLimit = limit
		} else {
			cfg.RateLimit = 10
		}
	}

	if windowMinutes == 0 {
		if winStr := os.Getenv("RATE_WINDOW_MINUTES"); winStr != "" {
			win, err := strconv.Atoi(winStr)
			if err != nil || win < 1 {
				return Config{}, errors.New("invalid RATE_WINDOW_MINUTES env variable")
			}
			windowMinutes = win
		} else {
			windowMinutes = 15
		}
	}
	cfg.RateWindow = time.Duration(windowMinutes) * time.Minute

	return cfg, nil
}
