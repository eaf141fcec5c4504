// Package scheduler runs the background jobs: a nightly kickoff and line
// sync, and a score poll that only fires while games are plausibly live.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/jgvaught118/nfl-frenzy-backend/internal/config"
	"github.com/jgvaught118/nfl-frenzy-backend/internal/repository"
	syncjobs "github.com/jgvaught118/nfl-frenzy-backend/internal/sync"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// Scheduler manages background sync tasks
type Scheduler struct {
	cfg      *config.Config
	syncer   *syncjobs.Syncer
	db       *repository.Database
	cron     *cron.Cron
	ticker   *time.Ticker
	stopChan chan struct{}
}

// NewScheduler creates a new scheduler instance
func NewScheduler(cfg *config.Config, syncer *syncjobs.Syncer, db *repository.Database) *Scheduler {
	return &Scheduler{
		cfg:      cfg,
		syncer:   syncer,
		db:       db,
		cron:     cron.New(),
		stopChan: make(chan struct{}),
	}
}

// Start starts the scheduler
func (s *Scheduler) Start(ctx context.Context) error {
	log.Info().Msg("Scheduler starting...")

	if _, err := s.cron.AddFunc(s.cfg.NightlySyncCron, func() {
		log.Info().Msg("Running nightly sync...")
		s.runNightlySync(ctx)
	}); err != nil {
		return fmt.Errorf("failed to schedule nightly sync: %w", err)
	}

	s.cron.Start()
	log.Info().
		Str("schedule", s.cfg.NightlySyncCron).
		Msg("Nightly sync scheduled")

	interval := time.Duration(s.cfg.ScorePollInterval) * time.Second
	s.ticker = time.NewTicker(interval)
	log.Info().
		Dur("interval", interval).
		Msg("Score polling started")

	go s.pollScores(ctx)

	return nil
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	log.Info().Msg("Stopping scheduler...")

	if s.cron != nil {
		s.cron.Stop()
	}

	if s.ticker != nil {
		s.ticker.Stop()
	}

	close(s.stopChan)
	log.Info().Msg("Scheduler stopped")
}

// runNightlySync reconciles kickoffs and refreshes betting lines. The two
// jobs are independent; one failing never blocks the other.
func (s *Scheduler) runNightlySync(ctx context.Context) {
	start := time.Now()

	report, err := s.syncer.ReconcileKickoffs(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Nightly kickoff reconciliation failed")
	} else {
		log.Info().
			Int("corrections", len(report.Corrections)).
			Bool("applied", report.Applied).
			Msg("Nightly kickoff reconciliation complete")
	}

	if _, err := s.syncer.SyncLines(ctx); err != nil {
		log.Error().Err(err).Msg("Nightly line sync failed")
	}

	log.Info().
		Dur("duration", time.Since(start)).
		Msg("Nightly sync complete")
}

// pollScores periodically checks for finished games
func (s *Scheduler) pollScores(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("Context cancelled, stopping score polling")
			return
		case <-s.stopChan:
			log.Info().Msg("Stop signal received, stopping score polling")
			return
		case <-s.ticker.C:
			if err := s.pollOnce(ctx); err != nil {
				log.Error().Err(err).Msg("Score poll failed")
			}
		}
	}
}

// pollOnce fetches scores only when a game kicked off recently and is still
// unscored, keeping provider usage down between game windows
func (s *Scheduler) pollOnce(ctx context.Context) error {
	live, err := s.db.Games.HasLiveGames(ctx, s.cfg.Season, time.Now())
	if err != nil {
		return fmt.Errorf("failed to check live games: %w", err)
	}
	if !live {
		log.Debug().Msg("No live games, skipping score poll")
		return nil
	}

	report, err := s.syncer.SyncScores(ctx)
	if err != nil {
		return err
	}

	if report.Updated > 0 {
		log.Info().
			Int("week", report.Week).
			Int("updated", report.Updated).
			Msg("Score poll recorded finals")
	}
	return nil
}
