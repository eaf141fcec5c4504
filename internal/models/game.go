package models

import (
	"database/sql"
	"time"
)

// Game represents one NFL matchup in one week. Team names are stored as
// canonical full names ("Kansas City Chiefs"); provider spellings are
// normalized at the provider boundary, never in this table.
type Game struct {
	ID       int    `db:"id"`
	Season   int    `db:"season"`
	Week     int    `db:"week"`
	HomeTeam string `db:"home_team"`
	AwayTeam string `db:"away_team"`

	// Null until the schedule source pins it down
	KickoffAt sql.NullTime `db:"kickoff_at"`

	// Null until played
	HomeScore sql.NullInt32 `db:"home_score"`
	AwayScore sql.NullInt32 `db:"away_score"`

	// Betting line, null until a line source reports one
	Favorite      sql.NullString  `db:"favorite"`
	Spread        sql.NullFloat64 `db:"spread"`
	OverUnder     sql.NullFloat64 `db:"over_under"`
	LineSource    sql.NullString  `db:"line_source"`
	LineUpdatedAt sql.NullTime    `db:"line_updated_at"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// HasFinalScore reports whether both final scores are recorded
func (g *Game) HasFinalScore() bool {
	return g.HomeScore.Valid && g.AwayScore.Valid
}

// Winner returns the winning team name. A tie or an unplayed game has no
// winner and returns ok=false.
func (g *Game) Winner() (string, bool) {
	if !g.HasFinalScore() || g.HomeScore.Int32 == g.AwayScore.Int32 {
		return "", false
	}
	if g.HomeScore.Int32 > g.AwayScore.Int32 {
		return g.HomeTeam, true
	}
	return g.AwayTeam, true
}

// TotalPoints returns home+away final score
func (g *Game) TotalPoints() (int, bool) {
	if !g.HasFinalScore() {
		return 0, false
	}
	return int(g.HomeScore.Int32 + g.AwayScore.Int32), true
}

// Involves reports whether team plays in this game
func (g *Game) Involves(team string) bool {
	return g.HomeTeam == team || g.AwayTeam == team
}

// KickoffPassed reports whether the stored kickoff is in the past.
// Games with no stored kickoff have not passed.
func (g *Game) KickoffPassed(now time.Time) bool {
	return g.KickoffAt.Valid && g.KickoffAt.Time.Before(now)
}
