// Package provider fetches fixtures from the external schedule, odds and
// score feeds. Team names come back in provider-specific spelling; callers
// join them to stored games through nflteams match keys.
package provider

import (
	"context"

	"github.com/jgvaught118/nfl-frenzy-backend/internal/kickoff"
)

// Fixture is one provider's view of a matchup. Kickoffs lists the
// provider's timestamp opinions in its own preference order; the sync layer
// concatenates them across providers into the fixed global precedence.
type Fixture struct {
	Home string
	Away string

	Kickoffs []kickoff.Source

	// Final scores, nil until the provider reports them
	HomeScore *int
	AwayScore *int
	Final     bool

	// Betting line, zero-valued when the provider carries no line
	Favorite  string
	Spread    *float64
	OverUnder *float64
}

// FixtureSource is a schedule/odds/score feed
type FixtureSource interface {
	Name() string
	FetchFixtures(ctx context.Context, season, week int) ([]Fixture, error)
}
