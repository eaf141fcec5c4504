package models

import (
	"database/sql"
	"time"
)

// Pick is one user's weekly selection. Unique per (user, season, week);
// later submissions overwrite earlier ones.
type Pick struct {
	ID     int   `db:"id"`
	UserID int64 `db:"user_id"`
	Season int   `db:"season"`
	Week   int   `db:"week"`

	// Team must match the home or away team of one game in that week
	Team string `db:"team"`

	// Game-of-the-week total-points guess and player-of-the-week yardage
	// guess, both optional
	GOTWPrediction sql.NullInt32 `db:"gotw_prediction"`
	POTWPrediction sql.NullInt32 `db:"potw_prediction"`

	SubmittedAt time.Time `db:"submitted_at"`
}

// GameOfTheWeek is the admin-designated featured matchup for a week.
// At most one per week; the referenced game must exist for that week.
type GameOfTheWeek struct {
	ID       int    `db:"id"`
	Season   int    `db:"season"`
	Week     int    `db:"week"`
	HomeTeam string `db:"home_team"`
	AwayTeam string `db:"away_team"`

	// Admin override for the contest answer; when null the answer is the
	// sum of the featured game's final score
	TotalOverride sql.NullInt32 `db:"total_override"`
}

// PlayerOfTheWeek is the admin-entered statistical answer for a week.
// At most one per week; Yardage stays null until the admin enters it.
type PlayerOfTheWeek struct {
	ID         int            `db:"id"`
	Season     int            `db:"season"`
	Week       int            `db:"week"`
	PlayerName sql.NullString `db:"player_name"`
	Team       sql.NullString `db:"team"`
	Yardage    sql.NullInt32  `db:"yardage"`
}
