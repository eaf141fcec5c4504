// Command reconcile runs a one-shot kickoff reconciliation and prints the
// full audit report. Dry-run by default; pass -apply to write corrections.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/jgvaught118/nfl-frenzy-backend/internal/config"
	"github.com/jgvaught118/nfl-frenzy-backend/internal/provider"
	"github.com/jgvaught118/nfl-frenzy-backend/internal/repository"
	syncjobs "github.com/jgvaught118/nfl-frenzy-backend/internal/sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	apply := flag.Bool("apply", false, "write corrections instead of reporting them")
	minWeek := flag.Int("min-week", 0, "override the configured week floor")
	jsonOut := flag.Bool("json", false, "print the report as JSON")
	flag.Parse()

	setupLogger()

	cfg := config.MustLoad()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
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

	var odds *provider.OddsClient
	if cfg.OddsAPIKey != "" {
		odds = provider.NewOddsClient(cfg.OddsAPIBaseURL, cfg.OddsAPIKey, cfg.OddsAPITimeout)
	}
	var schedule *provider.ScheduleClient
	if cfg.ScheduleAPIKey != "" {
		schedule = provider.NewScheduleClient(cfg.ScheduleBaseURL, cfg.ScheduleAPIKey, cfg.ScheduleAPITimeout)
	}
	if odds == nil && schedule == nil {
		log.Fatal().Msg("No provider configured; set ODDS_API_KEY or SCHEDULE_API_KEY")
	}

	floor := cfg.MinWeek
	if *minWeek > 0 {
		floor = *minWeek
	}

	syncer := syncjobs.New(db, nil, odds, schedule, syncjobs.Options{
		Season:         cfg.Season,
		MinWeek:        floor,
		Apply:          *apply,
		DriftThreshold: cfg.DriftThreshold,
		Pacing:         cfg.ProviderPacing,
	})

	report, err := syncer.ReconcileKickoffs(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Reconciliation failed")
	}

	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			log.Fatal().Err(err).Msg("Failed to encode report")
		}
		return
	}

	printReport(report)
}

func printReport(report *syncjobs.KickoffReport) {
	mode := "DRY RUN"
	if report.Applied {
		mode = "APPLIED"
	}
	fmt.Printf("Kickoff reconciliation (%s)\n", mode)
	fmt.Printf("  corrections: %d\n", len(report.Corrections))
	fmt.Printf("  skipped:     %d\n", len(report.Skipped))

	for _, corr := range report.Corrections {
		old := "missing"
		if corr.Old != nil {
			old = corr.Old.UTC().Format(time.RFC3339)
		}
		fmt.Printf("  week %2d  %s at %s\n    %s -> %s (source %s)\n",
			corr.Week, corr.AwayTeam, corr.HomeTeam,
			old, corr.New.UTC().Format(time.RFC3339), corr.Source)
	}

	if len(report.ProviderErrors) > 0 {
		fmt.Println("  provider errors:")
		for _, msg := range report.ProviderErrors {
			fmt.Printf("    %s\n", msg)
		}
	}
}

// setupLogger configures the zerolog logger
func setupLogger() {
	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	})

	level := zerolog.InfoLevel
	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		if parsedLevel, err := zerolog.ParseLevel(lvl); err == nil {
			level = parsedLevel
		}
	}
	zerolog.SetGlobalLevel(level)
}
