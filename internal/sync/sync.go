// Package sync runs the reconciliation jobs that keep the games table
// aligned with the external schedule, odds and score feeds. Provider
// failures are per-source and non-fatal; database writes are batched into
// single transactions; every run produces a human-readable report of what
// changed and what was skipped.
package sync

import (
	"context"
	"time"

	"github.com/jgvaught118/nfl-frenzy-backend/internal/cache"
	"github.com/jgvaught118/nfl-frenzy-backend/internal/kickoff"
	"github.com/jgvaught118/nfl-frenzy-backend/internal/models"
	"github.com/jgvaught118/nfl-frenzy-backend/internal/nflteams"
	"github.com/jgvaught118/nfl-frenzy-backend/internal/provider"
	"github.com/jgvaught118/nfl-frenzy-backend/internal/repository"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

// Syncer owns the sync jobs. Providers may be nil when unconfigured; jobs
// proceed with whichever sources respond.
type Syncer struct {
	db         *repository.Database
	cache      *cache.Cache
	odds       *provider.OddsClient
	schedule   *provider.ScheduleClient
	reconciler *kickoff.Reconciler
	limiter    *rate.Limiter

	season  int
	minWeek int
	apply   bool
}

// Options configures a Syncer
type Options struct {
	Season         int
	MinWeek        int
	Apply          bool
	DriftThreshold time.Duration
	Pacing         time.Duration
}

// New creates a Syncer
func New(db *repository.Database, c *cache.Cache, odds *provider.OddsClient, schedule *provider.ScheduleClient, opts Options) *Syncer {
	pacing := opts.Pacing
	if pacing <= 0 {
		pacing = 500 * time.Millisecond
	}
	return &Syncer{
		db:         db,
		cache:      c,
		odds:       odds,
		schedule:   schedule,
		reconciler: kickoff.NewReconciler(opts.DriftThreshold, opts.MinWeek),
		limiter:    rate.NewLimiter(rate.Every(pacing), 1),
		season:     opts.Season,
		minWeek:    opts.MinWeek,
		apply:      opts.Apply,
	}
}

// sourceIndex joins provider fixtures to stored games by canonical match
// key. Each fixture registers under both orientations; providers are
// inconsistent about which side they label home.
type sourceIndex struct {
	kickoffs map[string][]kickoff.Source
	fixtures map[string]*provider.Fixture
}

func newSourceIndex() *sourceIndex {
	return &sourceIndex{
		kickoffs: make(map[string][]kickoff.Source),
		fixtures: make(map[string]*provider.Fixture),
	}
}

func (idx *sourceIndex) add(fixtures []provider.Fixture) {
	for i := range fixtures {
		f := &fixtures[i]
		forward := nflteams.MatchKey(f.Home, f.Away)
		reversed := nflteams.MatchKey(f.Away, f.Home)

		for _, key := range []string{forward, reversed} {
			idx.kickoffs[key] = append(idx.kickoffs[key], f.Kickoffs...)
			if _, ok := idx.fixtures[key]; !ok {
				idx.fixtures[key] = f
			}
		}
	}
}

func (idx *sourceIndex) lookup(game *models.Game) ([]kickoff.Source, *provider.Fixture) {
	key := nflteams.MatchKey(game.HomeTeam, game.AwayTeam)
	return idx.kickoffs[key], idx.fixtures[key]
}

// buildIndex fetches all configured providers for the given weeks and
// assembles the source index. Kickoff precedence is fixed by insertion
// order: odds commence time first, then the schedule feed's UTC field,
// then its local Eastern field. A failing provider contributes nothing
// and is reported, never fatal.
func (s *Syncer) buildIndex(ctx context.Context, weeks []int) (*sourceIndex, []string) {
	idx := newSourceIndex()
	var providerErrors []string

	if s.odds != nil {
		if err := s.limiter.Wait(ctx); err == nil {
			fixtures, err := s.odds.FetchFixtures(ctx, s.season, 0)
			if err != nil {
				log.Warn().Err(err).Msg("Odds provider failed, continuing without it")
				providerErrors = append(providerErrors, err.Error())
			} else {
				idx.add(fixtures)
			}
		}
	}

	if s.schedule != nil {
		for _, week := range weeks {
			if err := s.limiter.Wait(ctx); err != nil {
				break
			}
			fixtures, err := s.schedule.FetchFixtures(ctx, s.season, week)
			if err != nil {
				log.Warn().Err(err).Int("week", week).Msg("Schedule provider failed for week, continuing")
				providerErrors = append(providerErrors, err.Error())
				continue
			}
			idx.add(fixtures)
		}
	}

	return idx, providerErrors
}

func distinctWeeks(games []models.Game) []int {
	seen := make(map[int]bool)
	var weeks []int
	for i := range games {
		if !seen[games[i].Week] {
			seen[games[i].Week] = true
			weeks = append(weeks, games[i].Week)
		}
	}
	return weeks
}
