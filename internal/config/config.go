package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration
type Config struct {
	// Season
	Season      int    `envconfig:"SEASON" required:"true"`
	DoubleWeeks string `envconfig:"DOUBLE_WEEKS" default:"13,17"`

	// Odds provider (The Odds API)
	OddsAPIKey     string        `envconfig:"ODDS_API_KEY" default:""`
	OddsAPIBaseURL string        `envconfig:"ODDS_API_BASE_URL" default:"https://api.the-odds-api.com/v4"`
	OddsAPITimeout time.Duration `envconfig:"ODDS_API_TIMEOUT" default:"30s"`

	// Schedule/score provider (SportsDataIO)
	ScheduleAPIKey     string        `envconfig:"SCHEDULE_API_KEY" default:""`
	ScheduleBaseURL    string        `envconfig:"SCHEDULE_BASE_URL" default:"https://api.sportsdata.io/v3/nfl"`
	ScheduleAPITimeout time.Duration `envconfig:"SCHEDULE_API_TIMEOUT" default:"30s"`

	// Database
	DatabaseHost     string `envconfig:"DATABASE_HOST" default:"localhost"`
	DatabasePort     int    `envconfig:"DATABASE_PORT" default:"5432"`
	DatabaseName     string `envconfig:"DATABASE_NAME" default:"nfl_frenzy"`
	DatabaseUser     string `envconfig:"DATABASE_USER" default:"frenzy_user"`
	DatabasePassword string `envconfig:"DATABASE_PASSWORD" required:"true"`
	DatabaseSSLMode  string `envconfig:"DATABASE_SSL_MODE" default:"disable"`

	// Redis (optional leaderboard cache)
	RedisHost     string `envconfig:"REDIS_HOST" default:"localhost"`
	RedisPort     int    `envconfig:"REDIS_PORT" default:"6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD" default:""`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`

	// Application
	AppEnv   string `envconfig:"APP_ENV" default:"development"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// API service
	APIPort        int           `envconfig:"API_PORT" default:"8080"`
	JWTSecret      string        `envconfig:"JWT_SECRET" default:"change_me"`
	TokenLifetime  time.Duration `envconfig:"TOKEN_LIFETIME" default:"168h"`
	CORSOrigins    string        `envconfig:"CORS_ORIGINS" default:"*"`
	RateLimit      int           `envconfig:"RATE_LIMIT" default:"120"`
	CacheTTL       time.Duration `envconfig:"LEADERBOARD_CACHE_TTL" default:"60s"`
	RequestTimeout time.Duration `envconfig:"REQUEST_TIMEOUT" default:"30s"`

	// Reconciliation
	DriftThreshold time.Duration `envconfig:"DRIFT_THRESHOLD" default:"5m"`
	MinWeek        int           `envconfig:"MIN_WEEK" default:"1"`
	ReconcileApply bool          `envconfig:"RECONCILE_APPLY" default:"false"`
	ProviderPacing time.Duration `envconfig:"PROVIDER_PACING" default:"500ms"`

	// Scheduler
	EnableScheduler   bool   `envconfig:"ENABLE_SCHEDULER" default:"true"`
	NightlySyncCron   string `envconfig:"NIGHTLY_SYNC_CRON" default:"0 9 * * *"`
	ScorePollInterval int    `envconfig:"SCORE_POLL_INTERVAL" default:"120"`

	// Monitoring
	EnableMetrics bool `envconfig:"ENABLE_METRICS" default:"true"`
	MetricsPort   int  `envconfig:"METRICS_PORT" default:"9090"`
}

// Load loads configuration from environment variables
// It first attempts to load from a .env file if one is present
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.DatabasePassword == "" {
		return fmt.Errorf("DATABASE_PASSWORD is required")
	}

	if c.Season < 2000 {
		return fmt.Errorf("SEASON must be a four-digit year, got %d", c.Season)
	}

	// A zero threshold would rewrite kickoffs on every clock-precision wobble
	if c.DriftThreshold <= 0 {
		return fmt.Errorf("DRIFT_THRESHOLD must be positive")
	}

	if c.JWTSecret == "change_me" && c.AppEnv == "production" {
		return fmt.Errorf("JWT_SECRET must be changed in production")
	}

	if _, err := c.DoubleWeekSet(); err != nil {
		return err
	}

	return nil
}

// DoubleWeekSet parses DOUBLE_WEEKS into a lookup set
func (c *Config) DoubleWeekSet() (map[int]bool, error) {
	weeks := make(map[int]bool)
	for _, part := range strings.Split(c.DoubleWeeks, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		w, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("DOUBLE_WEEKS contains invalid week %q", part)
		}
		if w < 1 || w > 18 {
			return nil, fmt.Errorf("DOUBLE_WEEKS week %d out of range 1..18", w)
		}
		weeks[w] = true
	}
	return weeks, nil
}

// DatabaseDSN returns the PostgreSQL connection string
func (c *Config) DatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.DatabaseHost,
		c.DatabasePort,
		c.DatabaseUser,
		c.DatabasePassword,
		c.DatabaseName,
		c.DatabaseSSLMode,
	)
}

// RedisAddr returns the Redis address
func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.RedisHost, c.RedisPort)
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// MustLoad loads configuration or exits on error
// Use this in main() where we want to fail fast
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	return cfg
}
