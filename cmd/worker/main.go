package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/jgvaught118/nfl-frenzy-backend/internal/cache"
	"github.com/jgvaught118/nfl-frenzy-backend/internal/config"
	"github.com/jgvaught118/nfl-frenzy-backend/internal/provider"
	"github.com/jgvaught118/nfl-frenzy-backend/internal/repository"
	"github.com/jgvaught118/nfl-frenzy-backend/internal/scheduler"
	syncjobs "github.com/jgvaught118/nfl-frenzy-backend/internal/sync"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	setupLogger()

	log.Info().Msg("Starting NFL Frenzy sync worker")

	cfg := config.MustLoad()
	log.Info().
		Str("env", cfg.AppEnv).
		Int("season", cfg.Season).
		Msg("Configuration loaded")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Info().Msg("Received shutdown signal, gracefully shutting down...")
		cancel()
	}()

	db, err := repository.NewDatabase(ctx, repository.Config{
		Host:     cfg.DatabaseHost,
		Port:     strconv.Itoa(cfg.DatabasePort),
		User:     cfg.DatabaseUser,
		Password: cfg.DatabasePassword,
		Database: cfg.DatabaseName,
		SSLMode:  cfg.DatabaseSSLMode,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()
	log.Info().Msg("Database connection established")

	redisCache, err := cache.New(ctx, cache.Config{
		Addr:     cfg.RedisAddr(),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		log.Warn().Err(err).Msg("Failed to connect to Redis - continuing without cache")
	} else {
		defer redisCache.Close()
	}

	var odds *provider.OddsClient
	if cfg.OddsAPIKey != "" {
		odds = provider.NewOddsClient(cfg.OddsAPIBaseURL, cfg.OddsAPIKey, cfg.OddsAPITimeout)
		log.Info().Msg("Odds provider initialized")
	} else {
		log.Warn().Msg("ODDS_API_KEY not set, odds feed disabled")
	}

	var schedule *provider.ScheduleClient
	if cfg.ScheduleAPIKey != "" {
		schedule = provider.NewScheduleClient(cfg.ScheduleBaseURL, cfg.ScheduleAPIKey, cfg.ScheduleAPITimeout)
		log.Info().Msg("Schedule provider initialized")
	} else {
		log.Warn().Msg("SCHEDULE_API_KEY not set, schedule feed disabled")
	}

	syncer := syncjobs.New(db, redisCache, odds, schedule, syncjobs.Options{
		Season:         cfg.Season,
		MinWeek:        cfg.MinWeek,
		Apply:          cfg.ReconcileApply,
		DriftThreshold: cfg.DriftThreshold,
		Pacing:         cfg.ProviderPacing,
	})

	if cfg.EnableMetrics {
		go startMetricsServer(cfg.MetricsPort)
	}

	sched := scheduler.NewScheduler(cfg, syncer, db)
	if cfg.EnableScheduler {
		if err := sched.Start(ctx); err != nil {
			log.Fatal().Err(err).Msg("Failed to start scheduler")
		}
	}

	<-ctx.Done()

	log.Info().Msg("Shutting down scheduler...")
	sched.Stop()

	log.Info().Msg("Worker shutdown complete")
}

// setupLogger configures the zerolog logger
func setupLogger() {
	if os.Getenv("APP_ENV") == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		})
	}

	level := zerolog.InfoLevel
	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		if parsedLevel, err := zerolog.ParseLevel(lvl); err == nil {
			level = parsedLevel
		}
	}
	zerolog.SetGlobalLevel(level)
}

// startMetricsServer starts the Prometheus metrics HTTP server
func startMetricsServer(port int) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	addr := fmt.Sprintf(":%d", port)
	log.Info().Int("port", port).Msg("Starting metrics server")

	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Error().Err(err).Msg("Metrics server failed")
	}
}
