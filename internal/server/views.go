package server

import (
	"database/sql"
	"time"

	"github.com/jgvaught118/nfl-frenzy-backend/internal/models"
)

// Response shapes for database rows: nullable columns become pointers so
// absent values serialize as JSON null instead of sql.Null* wrappers.

type gameResponse struct {
	ID        int        `json:"id"`
	Season    int        `json:"season"`
	Week      int        `json:"week"`
	HomeTeam  string     `json:"home_team"`
	AwayTeam  string     `json:"away_team"`
	KickoffAt *time.Time `json:"kickoff_at"`
	HomeScore *int32     `json:"home_score"`
	AwayScore *int32     `json:"away_score"`
	Favorite  *string    `json:"favorite"`
	Spread    *float64   `json:"spread"`
	OverUnder *float64   `json:"over_under"`
}

func toGameResponse(g *models.Game) gameResponse {
	return gameResponse{
		ID:        g.ID,
		Season:    g.Season,
		Week:      g.Week,
		HomeTeam:  g.HomeTeam,
		AwayTeam:  g.AwayTeam,
		KickoffAt: nullTime(g.KickoffAt),
		HomeScore: nullInt32(g.HomeScore),
		AwayScore: nullInt32(g.AwayScore),
		Favorite:  nullString(g.Favorite),
		Spread:    nullFloat64(g.Spread),
		OverUnder: nullFloat64(g.OverUnder),
	}
}

func toGameResponses(games []models.Game) []gameResponse {
	out := make([]gameResponse, 0, len(games))
	for i := range games {
		out = append(out, toGameResponse(&games[i]))
	}
	return out
}

type pickResponse struct {
	UserID         int64     `json:"user_id"`
	Season         int       `json:"season"`
	Week           int       `json:"week"`
	Team           string    `json:"team"`
	GOTWPrediction *int32    `json:"gotw_prediction"`
	POTWPrediction *int32    `json:"potw_prediction"`
	SubmittedAt    time.Time `json:"submitted_at"`
}

func toPickResponse(p *models.Pick) pickResponse {
	return pickResponse{
		UserID:         p.UserID,
		Season:         p.Season,
		Week:           p.Week,
		Team:           p.Team,
		GOTWPrediction: nullInt32(p.GOTWPrediction),
		POTWPrediction: nullInt32(p.POTWPrediction),
		SubmittedAt:    p.SubmittedAt,
	}
}

type gotwResponse struct {
	Season        int    `json:"season"`
	Week          int    `json:"week"`
	HomeTeam      string `json:"home_team"`
	AwayTeam      string `json:"away_team"`
	TotalOverride *int32 `json:"total_override"`
}

func toGOTWResponse(g *models.GameOfTheWeek) gotwResponse {
	return gotwResponse{
		Season:        g.Season,
		Week:          g.Week,
		HomeTeam:      g.HomeTeam,
		AwayTeam:      g.AwayTeam,
		TotalOverride: nullInt32(g.TotalOverride),
	}
}

type potwResponse struct {
	Season     int     `json:"season"`
	Week       int     `json:"week"`
	PlayerName *string `json:"player_name"`
	Team       *string `json:"team"`
	Yardage    *int32  `json:"yardage"`
}

func toPOTWResponse(p *models.PlayerOfTheWeek) potwResponse {
	return potwResponse{
		Season:     p.Season,
		Week:       p.Week,
		PlayerName: nullString(p.PlayerName),
		Team:       nullString(p.Team),
		Yardage:    nullInt32(p.Yardage),
	}
}

func nullTime(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	t := v.Time
	return &t
}

func nullInt32(v sql.NullInt32) *int32 {
	if !v.Valid {
		return nil
	}
	n := v.Int32
	return &n
}

func nullString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

func nullFloat64(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
