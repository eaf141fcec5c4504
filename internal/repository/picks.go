package repository

import (
	"context"
	"fmt"

	"github.com/jgvaught118/nfl-frenzy-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"
)

// PickRepository handles pick database operations
type PickRepository struct {
	db *Database
}

const pickColumns = `
	id, user_id, season, week, team, gotw_prediction, potw_prediction, submitted_at`

// Upsert records a user's weekly pick. One row per (user, season, week);
// a later submission overwrites the earlier one.
func (r *PickRepository) Upsert(ctx context.Context, pick *models.Pick) error {
	query := `
		INSERT INTO picks (user_id, season, week, team, gotw_prediction, potw_prediction, submitted_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		ON CONFLICT (user_id, season, week) DO UPDATE SET
			team = EXCLUDED.team,
			gotw_prediction = EXCLUDED.gotw_prediction,
			potw_prediction = EXCLUDED.potw_prediction,
			submitted_at = NOW()
		RETURNING id, submitted_at
	`

	err := r.db.Pool.QueryRow(
		ctx, query,
		pick.UserID, pick.Season, pick.Week, pick.Team,
		pick.GOTWPrediction, pick.POTWPrediction,
	).Scan(&pick.ID, &pick.SubmittedAt)

	if err != nil {
		return fmt.Errorf("failed to upsert pick: %w", err)
	}

	log.Debug().
		Int64("user_id", pick.UserID).
		Int("week", pick.Week).
		Str("team", pick.Team).
		Msg("Pick recorded")

	return nil
}

// GetByUserWeek retrieves one user's pick for a week; nil when none
// submitted
func (r *PickRepository) GetByUserWeek(ctx context.Context, userID int64, season, week int) (*models.Pick, error) {
	query := `SELECT ` + pickColumns + `
		FROM picks
		WHERE user_id = $1 AND season = $2 AND week = $3`

	var p models.Pick
	err := r.db.Pool.QueryRow(ctx, query, userID, season, week).Scan(
		&p.ID, &p.UserID, &p.Season, &p.Week, &p.Team,
		&p.GOTWPrediction, &p.POTWPrediction, &p.SubmittedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get pick: %w", err)
	}
	return &p, nil
}

// GetByWeek retrieves all picks for a season and week
func (r *PickRepository) GetByWeek(ctx context.Context, season, week int) ([]models.Pick, error) {
	query := `SELECT ` + pickColumns + `
		FROM picks
		WHERE season = $1 AND week = $2
		ORDER BY user_id`

	return r.queryPicks(ctx, query, season, week)
}

// GetBySeason retrieves all picks for a season
func (r *PickRepository) GetBySeason(ctx context.Context, season int) ([]models.Pick, error) {
	query := `SELECT ` + pickColumns + `
		FROM picks
		WHERE season = $1
		ORDER BY week, user_id`

	return r.queryPicks(ctx, query, season)
}

func (r *PickRepository) queryPicks(ctx context.Context, query string, args ...any) ([]models.Pick, error) {
	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query picks: %w", err)
	}
	defer rows.Close()

	var picks []models.Pick
	for rows.Next() {
		var p models.Pick
		err := rows.Scan(
			&p.ID, &p.UserID, &p.Season, &p.Week, &p.Team,
			&p.GOTWPrediction, &p.POTWPrediction, &p.SubmittedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan pick: %w", err)
		}
		picks = append(picks, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating picks: %w", err)
	}

	return picks, nil
}
