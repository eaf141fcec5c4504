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
	"github.com/jgvaught118/nfl-frenzy-backend/internal/server"
	syncjobs "github.com/jgvaught118/nfl-frenzy-backend/internal/sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	setupLogger()

	log.Info().Msg("Starting NFL Frenzy API")

	cfg := config.MustLoad()
	log.Info().
		Str("env", cfg.AppEnv).
		Int("season", cfg.Season).
		Int("port", cfg.APIPort).
		Msg("Configuration loaded")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

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
		log.Warn().Err(err).Msg("Failed to connect to Redis - leaderboards will recompute per request")
	} else {
		defer redisCache.Close()
	}

	var odds *provider.OddsClient
	if cfg.OddsAPIKey != "" {
		odds = provider.NewOddsClient(cfg.OddsAPIBaseURL, cfg.OddsAPIKey, cfg.OddsAPITimeout)
	}
	var schedule *provider.ScheduleClient
	if cfg.ScheduleAPIKey != "" {
		schedule = provider.NewScheduleClient(cfg.ScheduleBaseURL, cfg.ScheduleAPIKey, cfg.ScheduleAPITimeout)
	}

	syncer := syncjobs.New(db, redisCache, odds, schedule, syncjobs.Options{
		Season:         cfg.Season,
		MinWeek:        cfg.MinWeek,
		Apply:          cfg.ReconcileApply,
		DriftThreshold: cfg.DriftThreshold,
		Pacing:         cfg.ProviderPacing,
	})

	srv := server.NewServer(cfg, db, redisCache, syncer)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.APIPort),
		Handler:      srv.Handler(),
		ReadTimeout:  cfg.RequestTimeout,
		WriteTimeout: cfg.RequestTimeout,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()
	log.Info().Str("addr", httpServer.Addr).Msg("API listening")

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Info().Msg("Shutting down API...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Shutdown failed")
	}
	log.Info().Msg("API stopped")
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
