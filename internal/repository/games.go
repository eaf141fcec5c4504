package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jgvaught118/nfl-frenzy-backend/internal/kickoff"
	"github.com/jgvaught118/nfl-frenzy-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"
)

// GameRepository handles game database operations
type GameRepository struct {
	db *Database
}

const gameColumns = `
	id, season, week, home_team, away_team, kickoff_at,
	home_score, away_score,
	favorite, spread, over_under, line_source, line_updated_at,
	created_at, updated_at`

func scanGame(row pgx.Row) (*models.Game, error) {
	var g models.Game
	err := row.Scan(
		&g.ID, &g.Season, &g.Week, &g.HomeTeam, &g.AwayTeam, &g.KickoffAt,
		&g.HomeScore, &g.AwayScore,
		&g.Favorite, &g.Spread, &g.OverUnder, &g.LineSource, &g.LineUpdatedAt,
		&g.CreatedAt, &g.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *GameRepository) queryGames(ctx context.Context, query string, args ...any) ([]models.Game, error) {
	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query games: %w", err)
	}
	defer rows.Close()

	var games []models.Game
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan game: %w", err)
		}
		games = append(games, *g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating games: %w", err)
	}

	return games, nil
}

// UpsertSchedule inserts a scheduled game or refreshes its kickoff when the
// schedule is re-seeded. At most one row per (season, week, home, away).
func (r *GameRepository) UpsertSchedule(ctx context.Context, game *models.Game) error {
	query := `
		INSERT INTO games (season, week, home_team, away_team, kickoff_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (season, week, home_team, away_team) DO UPDATE SET
			kickoff_at = EXCLUDED.kickoff_at,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err := r.db.Pool.QueryRow(
		ctx, query,
		game.Season, game.Week, game.HomeTeam, game.AwayTeam, game.KickoffAt,
	).Scan(&game.ID, &game.CreatedAt, &game.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to upsert game: %w", err)
	}

	return nil
}

// GetByWeek retrieves games for a specific season and week
func (r *GameRepository) GetByWeek(ctx context.Context, season, week int) ([]models.Game, error) {
	query := `SELECT ` + gameColumns + `
		FROM games
		WHERE season = $1 AND week = $2
		ORDER BY kickoff_at NULLS LAST, home_team`

	return r.queryGames(ctx, query, season, week)
}

// GetFromWeek retrieves all games at or above a week floor
func (r *GameRepository) GetFromWeek(ctx context.Context, season, minWeek int) ([]models.Game, error) {
	query := `SELECT ` + gameColumns + `
		FROM games
		WHERE season = $1 AND week >= $2
		ORDER BY week, kickoff_at NULLS LAST, home_team`

	return r.queryGames(ctx, query, season, minWeek)
}

// GetBySeason retrieves every game of a season
func (r *GameRepository) GetBySeason(ctx context.Context, season int) ([]models.Game, error) {
	query := `SELECT ` + gameColumns + `
		FROM games
		WHERE season = $1
		ORDER BY week, kickoff_at NULLS LAST, home_team`

	return r.queryGames(ctx, query, season)
}

// ApplyKickoffCorrections writes a batch of kickoff corrections in a single
// transaction: a mid-batch failure leaves no partial corrections.
func (r *GameRepository) ApplyKickoffCorrections(ctx context.Context, corrections []kickoff.Correction) error {
	if len(corrections) == 0 {
		return nil
	}

	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin correction transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, corr := range corrections {
		tag, err := tx.Exec(ctx,
			`UPDATE games SET kickoff_at = $1, updated_at = NOW() WHERE id = $2`,
			corr.New, corr.GameID,
		)
		if err != nil {
			return fmt.Errorf("failed to apply correction for game %d: %w", corr.GameID, err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("correction target game %d not found", corr.GameID)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit corrections: %w", err)
	}

	log.Info().Int("count", len(corrections)).Msg("Kickoff corrections applied")
	return nil
}

// UpdateLine updates a game's betting line fields
func (r *GameRepository) UpdateLine(ctx context.Context, gameID int, favorite string, spread, overUnder *float64, source string, updatedAt time.Time) error {
	query := `
		UPDATE games
		SET favorite = NULLIF($1, ''), spread = $2, over_under = $3,
		    line_source = $4, line_updated_at = $5, updated_at = NOW()
		WHERE id = $6
	`

	tag, err := r.db.Pool.Exec(ctx, query, favorite, spread, overUnder, source, updatedAt, gameID)
	if err != nil {
		return fmt.Errorf("failed to update line: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("game not found: id=%d", gameID)
	}

	return nil
}

// UpdateScore records final scores for a game
func (r *GameRepository) UpdateScore(ctx context.Context, gameID, homeScore, awayScore int) error {
	query := `
		UPDATE games
		SET home_score = $1, away_score = $2, updated_at = NOW()
		WHERE id = $3
	`

	tag, err := r.db.Pool.Exec(ctx, query, homeScore, awayScore, gameID)
	if err != nil {
		return fmt.Errorf("failed to update score: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("game not found: id=%d", gameID)
	}

	return nil
}

// HasLiveGames reports whether any game kicked off within the last five
// hours and still lacks a final score. The scheduler uses this to decide
// whether score polling is worthwhile.
func (r *GameRepository) HasLiveGames(ctx context.Context, season int, now time.Time) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM games
			WHERE season = $1
			  AND kickoff_at IS NOT NULL
			  AND kickoff_at <= $2
			  AND kickoff_at > $2 - INTERVAL '5 hours'
			  AND (home_score IS NULL OR away_score IS NULL)
		)
	`

	var live bool
	if err := r.db.Pool.QueryRow(ctx, query, season, now).Scan(&live); err != nil {
		return false, fmt.Errorf("failed to check live games: %w", err)
	}
	return live, nil
}

// CurrentWeek returns the week of the next unfinished game, falling back to
// the season's last week once everything is scored
func (r *GameRepository) CurrentWeek(ctx context.Context, season int) (int, error) {
	query := `
		SELECT week FROM games
		WHERE season = $1 AND (home_score IS NULL OR away_score IS NULL)
		ORDER BY week
		LIMIT 1
	`

	var week int
	err := r.db.Pool.QueryRow(ctx, query, season).Scan(&week)
	if err == pgx.ErrNoRows {
		fallback := `SELECT COALESCE(MAX(week), 1) FROM games WHERE season = $1`
		if err := r.db.Pool.QueryRow(ctx, fallback, season).Scan(&week); err != nil {
			return 0, fmt.Errorf("failed to get current week: %w", err)
		}
		return week, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get current week: %w", err)
	}
	return week, nil
}
