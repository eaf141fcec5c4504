package server

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/jgvaught118/nfl-frenzy-backend/internal/models"
	"github.com/jgvaught118/nfl-frenzy-backend/internal/nflteams"

	"github.com/rs/zerolog/log"
)

type setGOTWRequest struct {
	HomeTeam      string `json:"home_team"`
	AwayTeam      string `json:"away_team"`
	TotalOverride *int32 `json:"total_override"`
}

// handleSetGOTW designates the featured game for a week. Team names are
// canonicalized first; the repository rejects matchups that do not exist.
func (s *Server) handleSetGOTW(w http.ResponseWriter, r *http.Request) {
	week, ok := weekParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "week must be between 1 and 18")
		return
	}

	var req setGOTWRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	home, ok := nflteams.FullName(req.HomeTeam)
	if !ok {
		writeError(w, http.StatusUnprocessableEntity,
			fmt.Sprintf("unrecognized team %q", req.HomeTeam))
		return
	}
	away, ok := nflteams.FullName(req.AwayTeam)
	if !ok {
		writeError(w, http.StatusUnprocessableEntity,
			fmt.Sprintf("unrecognized team %q", req.AwayTeam))
		return
	}

	gotw := &models.GameOfTheWeek{
		Season:   s.cfg.Season,
		Week:     week,
		HomeTeam: home,
		AwayTeam: away,
	}
	if req.TotalOverride != nil {
		gotw.TotalOverride = sql.NullInt32{Int32: *req.TotalOverride, Valid: true}
	}

	if err := s.db.Weekly.SetGOTW(r.Context(), gotw); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	s.cache.InvalidatePrefix(r.Context(), "leaderboard:")
	log.Info().
		Int("week", week).
		Str("matchup", gotw.AwayTeam+" at "+gotw.HomeTeam).
		Msg("Game of the week set")
	writeJSON(w, http.StatusOK, toGOTWResponse(gotw))
}

type setPOTWRequest struct {
	PlayerName string `json:"player_name"`
	Team       string `json:"team"`
	Yardage    *int32 `json:"yardage"`
}

// handleSetPOTW records the weekly player contest. Yardage may be omitted
// when announcing the player and entered later once the official value is
// known; the exact-hit bonus only pays after that.
func (s *Server) handleSetPOTW(w http.ResponseWriter, r *http.Request) {
	week, ok := weekParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "week must be between 1 and 18")
		return
	}

	var req setPOTWRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	potw := &models.PlayerOfTheWeek{Season: s.cfg.Season, Week: week}
	if name := strings.TrimSpace(req.PlayerName); name != "" {
		potw.PlayerName = sql.NullString{String: name, Valid: true}
	}
	if req.Team != "" {
		team, ok := nflteams.FullName(req.Team)
		if !ok {
			writeError(w, http.StatusUnprocessableEntity,
				fmt.Sprintf("unrecognized team %q", req.Team))
			return
		}
		potw.Team = sql.NullString{String: team, Valid: true}
	}
	if req.Yardage != nil {
		potw.Yardage = sql.NullInt32{Int32: *req.Yardage, Valid: true}
	}

	if err := s.db.Weekly.SetPOTW(r.Context(), potw); err != nil {
		log.Error().Err(err).Int("week", week).Msg("POTW save failed")
		writeError(w, http.StatusInternalServerError, "failed to save player of the week")
		return
	}

	s.cache.InvalidatePrefix(r.Context(), "leaderboard:")
	writeJSON(w, http.StatusOK, toPOTWResponse(potw))
}

// handleListUsers lists every account with its derived status
func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.db.Users.List(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("User list failed")
		writeError(w, http.StatusInternalServerError, "failed to list users")
		return
	}

	out := make([]userResponse, 0, len(users))
	for i := range users {
		out = append(out, toUserResponse(&users[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

// handleSyncScores triggers an on-demand score sync
func (s *Server) handleSyncScores(w http.ResponseWriter, r *http.Request) {
	report, err := s.syncer.SyncScores(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Manual score sync failed")
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// handleSyncKickoffs triggers an on-demand kickoff reconciliation and
// returns the full audit report
func (s *Server) handleSyncKickoffs(w http.ResponseWriter, r *http.Request) {
	report, err := s.syncer.ReconcileKickoffs(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Manual kickoff reconciliation failed")
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, report)
}
