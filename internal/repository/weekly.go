package repository

import (
	"context"
	"fmt"

	"github.com/jgvaught118/nfl-frenzy-backend/internal/models"

	"github.com/jackc/pgx/v5"
)

// WeeklyRepository handles the game-of-the-week and player-of-the-week
// tables
type WeeklyRepository struct {
	db *Database
}

// SetGOTW designates the featured game for a week. The referenced game
// must exist for that week; at most one GOTW per week (enforced by the
// unique (season, week) constraint and refreshed by upsert).
func (r *WeeklyRepository) SetGOTW(ctx context.Context, gotw *models.GameOfTheWeek) error {
	var exists bool
	err := r.db.Pool.QueryRow(ctx,
		`SELECT EXISTS (
			SELECT 1 FROM games
			WHERE season = $1 AND week = $2 AND home_team = $3 AND away_team = $4
		)`,
		gotw.Season, gotw.Week, gotw.HomeTeam, gotw.AwayTeam,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to verify featured game: %w", err)
	}
	if !exists {
		return fmt.Errorf("no week %d game %s vs %s; game of the week must reference an existing matchup",
			gotw.Week, gotw.HomeTeam, gotw.AwayTeam)
	}

	query := `
		INSERT INTO game_of_the_week (season, week, home_team, away_team, total_override)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (season, week) DO UPDATE SET
			home_team = EXCLUDED.home_team,
			away_team = EXCLUDED.away_team,
			total_override = EXCLUDED.total_override
		RETURNING id
	`

	err = r.db.Pool.QueryRow(
		ctx, query,
		gotw.Season, gotw.Week, gotw.HomeTeam, gotw.AwayTeam, gotw.TotalOverride,
	).Scan(&gotw.ID)
	if err != nil {
		return fmt.Errorf("failed to set game of the week: %w", err)
	}

	return nil
}

// GetGOTW retrieves the featured game for a week; nil when none designated
func (r *WeeklyRepository) GetGOTW(ctx context.Context, season, week int) (*models.GameOfTheWeek, error) {
	query := `
		SELECT id, season, week, home_team, away_team, total_override
		FROM game_of_the_week
		WHERE season = $1 AND week = $2
	`

	var gotw models.GameOfTheWeek
	err := r.db.Pool.QueryRow(ctx, query, season, week).Scan(
		&gotw.ID, &gotw.Season, &gotw.Week, &gotw.HomeTeam, &gotw.AwayTeam, &gotw.TotalOverride,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get game of the week: %w", err)
	}
	return &gotw, nil
}

// SetPOTW records the weekly statistical answer; at most one per week
func (r *WeeklyRepository) SetPOTW(ctx context.Context, potw *models.PlayerOfTheWeek) error {
	query := `
		INSERT INTO player_of_the_week (season, week, player_name, team, yardage)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (season, week) DO UPDATE SET
			player_name = EXCLUDED.player_name,
			team = EXCLUDED.team,
			yardage = EXCLUDED.yardage
		RETURNING id
	`

	err := r.db.Pool.QueryRow(
		ctx, query,
		potw.Season, potw.Week, potw.PlayerName, potw.Team, potw.Yardage,
	).Scan(&potw.ID)
	if err != nil {
		return fmt.Errorf("failed to set player of the week: %w", err)
	}

	return nil
}

// GetPOTW retrieves the weekly statistical answer; nil when none entered
func (r *WeeklyRepository) GetPOTW(ctx context.Context, season, week int) (*models.PlayerOfTheWeek, error) {
	query := `
		SELECT id, season, week, player_name, team, yardage
		FROM player_of_the_week
		WHERE season = $1 AND week = $2
	`

	var potw models.PlayerOfTheWeek
	err := r.db.Pool.QueryRow(ctx, query, season, week).Scan(
		&potw.ID, &potw.Season, &potw.Week, &potw.PlayerName, &potw.Team, &potw.Yardage,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get player of the week: %w", err)
	}
	return &potw, nil
}
