package sync

import (
	"context"
	"fmt"
	"time"

	"github.com/jgvaught118/nfl-frenzy-backend/internal/kickoff"
	"github.com/jgvaught118/nfl-frenzy-backend/internal/metrics"
	"github.com/jgvaught118/nfl-frenzy-backend/internal/models"
	"github.com/jgvaught118/nfl-frenzy-backend/internal/nflteams"

	"github.com/rs/zerolog/log"
)

// SkippedGame records one game the reconciler left alone
type SkippedGame struct {
	GameID   int                `json:"game_id"`
	Week     int                `json:"week"`
	HomeTeam string             `json:"home_team"`
	AwayTeam string             `json:"away_team"`
	Reason   kickoff.SkipReason `json:"reason"`
}

// KickoffReport is the outcome of one reconciliation run
type KickoffReport struct {
	Applied        bool                 `json:"applied"`
	Corrections    []kickoff.Correction `json:"corrections"`
	Skipped        []SkippedGame        `json:"skipped"`
	ProviderErrors []string             `json:"provider_errors,omitempty"`
}

// ReconcileKickoffs compares every stored kickoff at or above the week
// floor against the external feeds and corrects drifted values. In dry-run
// mode the report lists what would change without writing anything.
func (s *Syncer) ReconcileKickoffs(ctx context.Context) (*KickoffReport, error) {
	start := time.Now()
	defer func() {
		metrics.SyncDuration.WithLabelValues("kickoffs").Observe(time.Since(start).Seconds())
	}()

	games, err := s.db.Games.GetFromWeek(ctx, s.season, s.minWeek)
	if err != nil {
		metrics.SyncOperationsTotal.WithLabelValues("kickoffs", "error").Inc()
		return nil, fmt.Errorf("failed to load games for reconciliation: %w", err)
	}

	idx, providerErrors := s.buildIndex(ctx, distinctWeeks(games))

	report := &KickoffReport{Applied: s.apply, ProviderErrors: providerErrors}
	for i := range games {
		game := &games[i]
		sources, _ := idx.lookup(game)

		corr, skip := s.reconciler.Evaluate(game, sources)
		if corr == nil {
			metrics.GamesSkippedTotal.WithLabelValues(string(skip)).Inc()
			report.Skipped = append(report.Skipped, SkippedGame{
				GameID:   game.ID,
				Week:     game.Week,
				HomeTeam: game.HomeTeam,
				AwayTeam: game.AwayTeam,
				Reason:   skip,
			})
			continue
		}

		evt := log.Info().
			Int("game_id", corr.GameID).
			Int("week", corr.Week).
			Str("matchup", corr.AwayTeam+" at "+corr.HomeTeam).
			Time("new", corr.New).
			Str("source", corr.Source)
		if corr.Old != nil {
			evt = evt.Time("old", *corr.Old).Dur("delta", corr.Delta)
		}
		evt.Bool("apply", s.apply).Msg("Kickoff correction")

		report.Corrections = append(report.Corrections, *corr)
	}

	if s.apply && len(report.Corrections) > 0 {
		if err := s.db.Games.ApplyKickoffCorrections(ctx, report.Corrections); err != nil {
			metrics.SyncOperationsTotal.WithLabelValues("kickoffs", "error").Inc()
			return report, err
		}
		for _, corr := range report.Corrections {
			metrics.KickoffCorrectionsTotal.WithLabelValues(corr.Source).Inc()
		}
	}

	metrics.SyncOperationsTotal.WithLabelValues("kickoffs", "success").Inc()
	log.Info().
		Int("corrections", len(report.Corrections)).
		Int("skipped", len(report.Skipped)).
		Bool("applied", s.apply).
		Msg("Kickoff reconciliation finished")

	return report, nil
}

// LineReport is the outcome of one betting-line sync
type LineReport struct {
	Updated   int `json:"updated"`
	Unmatched int `json:"unmatched"`
}

// SyncLines refreshes favorite, spread and over/under for upcoming games
// from the odds feed. Games without a matching odds event keep their stored
// line; kickoffs already in the past are never touched.
func (s *Syncer) SyncLines(ctx context.Context) (*LineReport, error) {
	if s.odds == nil {
		return nil, fmt.Errorf("odds provider not configured")
	}

	start := time.Now()
	defer func() {
		metrics.SyncDuration.WithLabelValues("lines").Observe(time.Since(start).Seconds())
	}()

	games, err := s.db.Games.GetFromWeek(ctx, s.season, s.minWeek)
	if err != nil {
		metrics.SyncOperationsTotal.WithLabelValues("lines", "error").Inc()
		return nil, fmt.Errorf("failed to load games for line sync: %w", err)
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	fixtures, err := s.odds.FetchFixtures(ctx, s.season, 0)
	if err != nil {
		metrics.SyncOperationsTotal.WithLabelValues("lines", "error").Inc()
		return nil, fmt.Errorf("failed to fetch odds: %w", err)
	}

	idx := newSourceIndex()
	idx.add(fixtures)

	now := time.Now()
	report := &LineReport{}
	for i := range games {
		game := &games[i]
		if game.KickoffPassed(now) {
			continue
		}

		_, fixture := idx.lookup(game)
		if fixture == nil || (fixture.Favorite == "" && fixture.OverUnder == nil) {
			report.Unmatched++
			continue
		}

		// An odds name that resolves to no known team stores an empty
		// favorite rather than an unjoinable spelling
		favorite := ""
		if fixture.Favorite != "" {
			if name, ok := nflteams.FullName(fixture.Favorite); ok {
				favorite = name
			}
		}

		err := s.db.Games.UpdateLine(ctx, game.ID, favorite, fixture.Spread, fixture.OverUnder, s.odds.Name(), now)
		if err != nil {
			log.Warn().Err(err).Int("game_id", game.ID).Msg("Line update failed")
			continue
		}
		report.Updated++
	}

	metrics.SyncOperationsTotal.WithLabelValues("lines", "success").Inc()
	log.Info().
		Int("updated", report.Updated).
		Int("unmatched", report.Unmatched).
		Msg("Line sync finished")

	return report, nil
}

// ScoreReport is the outcome of one score sync
type ScoreReport struct {
	Week    int `json:"week"`
	Updated int `json:"updated"`
}

// SyncScores pulls final scores for the current week from the schedule feed
// and records them. Leaderboard cache entries are invalidated whenever a
// score lands so standings recompute from fresh data.
func (s *Syncer) SyncScores(ctx context.Context) (*ScoreReport, error) {
	if s.schedule == nil {
		return nil, fmt.Errorf("schedule provider not configured")
	}

	start := time.Now()
	defer func() {
		metrics.SyncDuration.WithLabelValues("scores").Observe(time.Since(start).Seconds())
	}()

	week, err := s.db.Games.CurrentWeek(ctx, s.season)
	if err != nil {
		metrics.SyncOperationsTotal.WithLabelValues("scores", "error").Inc()
		return nil, err
	}

	games, err := s.db.Games.GetByWeek(ctx, s.season, week)
	if err != nil {
		metrics.SyncOperationsTotal.WithLabelValues("scores", "error").Inc()
		return nil, fmt.Errorf("failed to load games for score sync: %w", err)
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	fixtures, err := s.schedule.FetchFixtures(ctx, s.season, week)
	if err != nil {
		metrics.SyncOperationsTotal.WithLabelValues("scores", "error").Inc()
		return nil, fmt.Errorf("failed to fetch scores: %w", err)
	}

	idx := newSourceIndex()
	idx.add(fixtures)

	report := &ScoreReport{Week: week}
	for i := range games {
		game := &games[i]
		if game.HasFinalScore() {
			continue
		}

		_, fixture := idx.lookup(game)
		if fixture == nil || !fixture.Final || fixture.HomeScore == nil || fixture.AwayScore == nil {
			continue
		}

		home, away := orientScores(game, fixture.Home, *fixture.HomeScore, *fixture.AwayScore)
		if err := s.db.Games.UpdateScore(ctx, game.ID, home, away); err != nil {
			log.Warn().Err(err).Int("game_id", game.ID).Msg("Score update failed")
			continue
		}

		log.Info().
			Int("game_id", game.ID).
			Int("week", week).
			Str("matchup", game.AwayTeam+" at "+game.HomeTeam).
			Int("home_score", home).
			Int("away_score", away).
			Msg("Final score recorded")
		report.Updated++
	}

	if report.Updated > 0 {
		s.cache.InvalidatePrefix(ctx, "leaderboard:")
	}

	metrics.SyncOperationsTotal.WithLabelValues("scores", "success").Inc()
	return report, nil
}

// orientScores maps a fixture's home/away scores onto the stored game's
// orientation. The dual-keyed index can match a fixture whose home team is
// the stored away team.
func orientScores(game *models.Game, fixtureHome string, homeScore, awayScore int) (int, int) {
	if nflteams.Canonicalize(fixtureHome) == nflteams.Canonicalize(game.HomeTeam) {
		return homeScore, awayScore
	}
	return awayScore, homeScore
}
