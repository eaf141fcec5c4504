package server

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/jgvaught118/nfl-frenzy-backend/internal/models"
	"github.com/jgvaught118/nfl-frenzy-backend/internal/nflteams"
	"github.com/jgvaught118/nfl-frenzy-backend/internal/scoring"

	"github.com/rs/zerolog/log"
)

// handleGamesByWeek lists the week's games with the week's inferred state
func (s *Server) handleGamesByWeek(w http.ResponseWriter, r *http.Request) {
	week, ok := weekParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "week must be between 1 and 18")
		return
	}

	games, err := s.db.Games.GetByWeek(r.Context(), s.cfg.Season, week)
	if err != nil {
		log.Error().Err(err).Int("week", week).Msg("Game load failed")
		writeError(w, http.StatusInternalServerError, "failed to load games")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"week":  week,
		"state": scoring.StateOf(games, time.Now()),
		"games": toGameResponses(games),
	})
}

type submitPickRequest struct {
	Week           int    `json:"week"`
	Team           string `json:"team"`
	GOTWPrediction *int32 `json:"gotw_prediction"`
	POTWPrediction *int32 `json:"potw_prediction"`
}

// handleSubmitPick records or replaces the caller's pick for a week. The
// team is canonicalized before validation, so any recognizable spelling is
// accepted; it must play that week and the week must still be open.
func (s *Server) handleSubmitPick(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid token")
		return
	}

	var req submitPickRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Week < 1 || req.Week > 18 {
		writeError(w, http.StatusBadRequest, "week must be between 1 and 18")
		return
	}

	team, ok := nflteams.FullName(req.Team)
	if !ok {
		writeError(w, http.StatusUnprocessableEntity,
			fmt.Sprintf("unrecognized team %q", req.Team))
		return
	}

	user, err := s.db.Users.GetByID(r.Context(), userID)
	if err != nil {
		log.Error().Err(err).Int64("user_id", userID).Msg("User load failed")
		writeError(w, http.StatusInternalServerError, "failed to submit pick")
		return
	}
	if !user.CanPlay() {
		writeError(w, http.StatusForbidden, "account is not approved for play")
		return
	}

	games, err := s.db.Games.GetByWeek(r.Context(), s.cfg.Season, req.Week)
	if err != nil {
		log.Error().Err(err).Int("week", req.Week).Msg("Game load failed")
		writeError(w, http.StatusInternalServerError, "failed to submit pick")
		return
	}

	plays := false
	for i := range games {
		if games[i].Involves(team) {
			plays = true
			break
		}
	}
	if !plays {
		writeError(w, http.StatusUnprocessableEntity,
			fmt.Sprintf("%s does not play in week %d", team, req.Week))
		return
	}

	if state := scoring.StateOf(games, time.Now()); state != scoring.WeekOpen {
		writeError(w, http.StatusConflict,
			fmt.Sprintf("week %d is %s; picks can no longer be changed", req.Week, state))
		return
	}

	pick := &models.Pick{
		UserID: userID,
		Season: s.cfg.Season,
		Week:   req.Week,
		Team:   team,
	}
	if req.GOTWPrediction != nil {
		pick.GOTWPrediction = sql.NullInt32{Int32: *req.GOTWPrediction, Valid: true}
	}
	if req.POTWPrediction != nil {
		pick.POTWPrediction = sql.NullInt32{Int32: *req.POTWPrediction, Valid: true}
	}

	if err := s.db.Picks.Upsert(r.Context(), pick); err != nil {
		log.Error().Err(err).Int64("user_id", userID).Msg("Pick upsert failed")
		writeError(w, http.StatusInternalServerError, "failed to submit pick")
		return
	}

	s.cache.InvalidatePrefix(r.Context(), "leaderboard:")

	log.Info().
		Int64("user_id", userID).
		Int("week", req.Week).
		Str("team", team).
		Msg("Pick submitted")
	writeJSON(w, http.StatusOK, toPickResponse(pick))
}

// handleMyPick returns the caller's pick for a week, 404 when none
func (s *Server) handleMyPick(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid token")
		return
	}
	week, ok := weekParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "week must be between 1 and 18")
		return
	}

	p, err := s.db.Picks.GetByUserWeek(r.Context(), userID, s.cfg.Season, week)
	if err != nil {
		log.Error().Err(err).Int("week", week).Msg("Pick load failed")
		writeError(w, http.StatusInternalServerError, "failed to load pick")
		return
	}
	if p == nil {
		writeError(w, http.StatusNotFound, "no pick submitted for that week")
		return
	}
	writeJSON(w, http.StatusOK, toPickResponse(p))
}

// handleWeekLeaderboard computes the week's scores, served from cache when
// fresh
func (s *Server) handleWeekLeaderboard(w http.ResponseWriter, r *http.Request) {
	week, ok := weekParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "week must be between 1 and 18")
		return
	}

	cacheKey := fmt.Sprintf("leaderboard:week:%d", week)
	var cached scoring.WeekResult
	if s.cache.GetJSON(r.Context(), cacheKey, &cached) {
		writeJSON(w, http.StatusOK, cached)
		return
	}

	result, err := s.scoreWeek(r, week)
	if err != nil {
		log.Error().Err(err).Int("week", week).Msg("Week scoring failed")
		writeError(w, http.StatusInternalServerError, "failed to compute leaderboard")
		return
	}

	s.cache.SetJSON(r.Context(), cacheKey, result, s.cfg.CacheTTL)
	writeJSON(w, http.StatusOK, result)
}

// handleOverallLeaderboard aggregates every scored week into season
// standings
func (s *Server) handleOverallLeaderboard(w http.ResponseWriter, r *http.Request) {
	cacheKey := "leaderboard:overall"
	var cached []scoring.SeasonStanding
	if s.cache.GetJSON(r.Context(), cacheKey, &cached) {
		writeJSON(w, http.StatusOK, cached)
		return
	}

	picks, err := s.db.Picks.GetBySeason(r.Context(), s.cfg.Season)
	if err != nil {
		log.Error().Err(err).Msg("Season pick load failed")
		writeError(w, http.StatusInternalServerError, "failed to compute standings")
		return
	}

	weekSet := make(map[int]bool)
	for i := range picks {
		weekSet[picks[i].Week] = true
	}

	var weeks []scoring.WeekResult
	for week := 1; week <= 18; week++ {
		if !weekSet[week] {
			continue
		}
		result, err := s.scoreWeek(r, week)
		if err != nil {
			log.Error().Err(err).Int("week", week).Msg("Week scoring failed")
			writeError(w, http.StatusInternalServerError, "failed to compute standings")
			return
		}
		weeks = append(weeks, result)
	}

	standings := scoring.AggregateSeason(weeks)
	s.cache.SetJSON(r.Context(), cacheKey, standings, s.cfg.CacheTTL)
	writeJSON(w, http.StatusOK, standings)
}

// scoreWeek loads a week's inputs and runs the scoring engine
func (s *Server) scoreWeek(r *http.Request, week int) (scoring.WeekResult, error) {
	ctx := r.Context()

	games, err := s.db.Games.GetByWeek(ctx, s.cfg.Season, week)
	if err != nil {
		return scoring.WeekResult{}, err
	}
	picks, err := s.db.Picks.GetByWeek(ctx, s.cfg.Season, week)
	if err != nil {
		return scoring.WeekResult{}, err
	}
	gotw, err := s.db.Weekly.GetGOTW(ctx, s.cfg.Season, week)
	if err != nil {
		return scoring.WeekResult{}, err
	}
	potw, err := s.db.Weekly.GetPOTW(ctx, s.cfg.Season, week)
	if err != nil {
		return scoring.WeekResult{}, err
	}
	users, err := s.db.Users.List(ctx)
	if err != nil {
		return scoring.WeekResult{}, err
	}

	return scoring.ScoreWeek(scoring.WeekInput{
		Week:        week,
		Games:       games,
		Picks:       picks,
		GOTW:        gotw,
		POTW:        potw,
		Users:       users,
		DoubleWeeks: s.doubleWeeks,
		Now:         time.Now(),
	}), nil
}
