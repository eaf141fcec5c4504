// Package kickoff resolves one trustworthy UTC kickoff instant per game
// from the stored value and one or more external schedule sources, and
// decides whether the stored value should be overwritten.
package kickoff

import (
	"time"

	"github.com/jgvaught118/nfl-frenzy-backend/internal/models"
	"github.com/rs/zerolog/log"
)

// Source is one external opinion about a game's kickoff. Sources are tried
// strictly in slice order; callers assemble the slice in their documented
// precedence (odds commence time, then schedule UTC field, then schedule
// local field), never from map iteration.
type Source struct {
	Name       string
	Raw        string
	Convention Convention
}

// Correction is one proposed kickoff overwrite, reported before any write
// so a run is auditable and dry-runnable.
type Correction struct {
	GameID   int           `json:"game_id"`
	Week     int           `json:"week"`
	HomeTeam string        `json:"home_team"`
	AwayTeam string        `json:"away_team"`
	Old      *time.Time    `json:"old,omitempty"`
	New      time.Time     `json:"new"`
	Delta    time.Duration `json:"delta_ns,omitempty"`
	Source   string        `json:"source"`
}

// SkipReason explains why a game produced no correction. None of these are
// errors; they surface in the run report.
type SkipReason string

const (
	SkipNone            SkipReason = ""
	SkipBelowWeekFloor  SkipReason = "below week floor"
	SkipNoSources       SkipReason = "no resolvable source"
	SkipKickoffPassed   SkipReason = "stored kickoff already passed"
	SkipWithinThreshold SkipReason = "within drift threshold"
)

// Reconciler decides kickoff corrections. Threshold must be positive;
// a zero threshold would churn on clock-precision noise.
type Reconciler struct {
	Threshold time.Duration
	WeekFloor int
	Now       func() time.Time
}

// NewReconciler builds a Reconciler with the wall clock
func NewReconciler(threshold time.Duration, weekFloor int) *Reconciler {
	return &Reconciler{Threshold: threshold, WeekFloor: weekFloor, Now: time.Now}
}

// Resolve walks sources in order and returns the first parsable instant.
// A malformed timestamp disqualifies only that source.
func Resolve(sources []Source) (time.Time, string, bool) {
	for _, src := range sources {
		if src.Raw == "" {
			continue
		}
		t, err := ParseTimestamp(src.Raw, src.Convention)
		if err != nil {
			log.Debug().
				Str("source", src.Name).
				Str("raw", src.Raw).
				Err(err).
				Msg("Skipping unparsable kickoff source")
			continue
		}
		return t, src.Name, true
	}
	return time.Time{}, "", false
}

// Evaluate decides whether game's stored kickoff should be corrected from
// sources. Exactly one of the return values is meaningful: a non-nil
// Correction, or a SkipReason.
func (r *Reconciler) Evaluate(game *models.Game, sources []Source) (*Correction, SkipReason) {
	if game.Week < r.WeekFloor {
		return nil, SkipBelowWeekFloor
	}

	resolved, sourceName, ok := Resolve(sources)
	if !ok {
		return nil, SkipNoSources
	}

	corr := &Correction{
		GameID:   game.ID,
		Week:     game.Week,
		HomeTeam: game.HomeTeam,
		AwayTeam: game.AwayTeam,
		New:      resolved,
		Source:   sourceName,
	}

	if !game.KickoffAt.Valid {
		// Missing stored value: infinite delta, always set
		return corr, SkipNone
	}

	stored := game.KickoffAt.Time
	if stored.Before(r.Now()) {
		// Never rewrite history for in-progress or completed games
		return nil, SkipKickoffPassed
	}

	delta := resolved.Sub(stored)
	if delta < 0 {
		delta = -delta
	}
	if delta < r.Threshold {
		return nil, SkipWithinThreshold
	}

	old := stored
	corr.Old = &old
	corr.Delta = delta
	return corr, SkipNone
}
