// Package scoring computes weekly point totals and season standings from
// picks, game outcomes and the two weekly award contests. It is a pure
// computation over current data: safely re-runnable, no persisted state,
// missing inputs withhold points instead of erroring.
package scoring

import (
	"sort"
	"time"

	"github.com/jgvaught118/nfl-frenzy-backend/internal/kickoff"
	"github.com/jgvaught118/nfl-frenzy-backend/internal/models"
)

// Point values
const (
	favoriteWinPoints = 1
	underdogWinPoints = 2
	potwExactPoints   = 3
)

// WeekState is inferred live from data presence, never persisted
type WeekState string

const (
	WeekOpen   WeekState = "open"
	WeekLocked WeekState = "locked"
	WeekScored WeekState = "scored"
)

// WeekInput is everything the engine reads for one week
type WeekInput struct {
	Week        int
	Games       []models.Game
	Picks       []models.Pick
	GOTW        *models.GameOfTheWeek
	POTW        *models.PlayerOfTheWeek
	Users       []models.User
	DoubleWeeks map[int]bool
	Now         time.Time
}

// UserWeekScore is one participant's breakdown for the week
type UserWeekScore struct {
	UserID     int64  `json:"user_id"`
	Name       string `json:"name"`
	Week       int    `json:"week"`
	PickedTeam string `json:"picked_team"`
	BasePoints int    `json:"base_points"`
	GOTWPoints int    `json:"gotw_points"`
	GOTWRank   int    `json:"gotw_rank,omitempty"`
	POTWPoints int    `json:"potw_points"`
	POTWExact  bool   `json:"potw_exact"`
	Doubled    bool   `json:"doubled"`
	Total      int    `json:"total"`
}

// WeekResult is the scored week, sorted by total descending with a
// deterministic name tiebreak
type WeekResult struct {
	Week            int             `json:"week"`
	State           WeekState       `json:"state"`
	GOTWActualTotal *int            `json:"gotw_actual_total,omitempty"`
	Scores          []UserWeekScore `json:"scores"`
}

// ScoreWeek computes every participant's point total for one week
func ScoreWeek(in WeekInput) WeekResult {
	result := WeekResult{
		Week:  in.Week,
		State: StateOf(in.Games, in.Now),
	}

	gamesByTeam := make(map[string]*models.Game, 2*len(in.Games))
	for i := range in.Games {
		g := &in.Games[i]
		gamesByTeam[g.HomeTeam] = g
		gamesByTeam[g.AwayTeam] = g
	}

	usersByID := make(map[int64]*models.User, len(in.Users))
	for i := range in.Users {
		usersByID[in.Users[i].ID] = &in.Users[i]
	}

	for _, pick := range in.Picks {
		user, ok := usersByID[pick.UserID]
		if !ok || !user.CanPlay() {
			continue
		}

		score := UserWeekScore{
			UserID:     pick.UserID,
			Name:       user.Name,
			Week:       in.Week,
			PickedTeam: pick.Team,
		}
		if game, ok := gamesByTeam[pick.Team]; ok {
			score.BasePoints = basePoints(pick.Team, game)
		}
		result.Scores = append(result.Scores, score)
	}

	if actual, ok := gotwActualTotal(in.GOTW, in.Games); ok {
		result.GOTWActualTotal = &actual
		applyGOTWBonus(result.Scores, in.Picks, in.POTW, actual)
	}

	applyPOTWBonus(result.Scores, in.Picks, in.POTW)

	doubled := in.DoubleWeeks[in.Week]
	for i := range result.Scores {
		s := &result.Scores[i]
		s.Total = s.BasePoints + s.GOTWPoints + s.POTWPoints
		if doubled {
			s.Total *= 2
			s.Doubled = true
		}
	}

	sort.SliceStable(result.Scores, func(i, j int) bool {
		a, b := result.Scores[i], result.Scores[j]
		if a.Total != b.Total {
			return a.Total > b.Total
		}
		return a.Name < b.Name
	})

	return result
}

// basePoints scores a pick against its game's outcome: 1 point for a
// winning favorite, 2 for a winning underdog. When no favorite is recorded
// the line never materialized, so a winner is credited at the underdog
// value rather than flagged undetermined.
func basePoints(team string, game *models.Game) int {
	winner, ok := game.Winner()
	if !ok || winner != team {
		return 0
	}
	if game.Favorite.Valid && game.Favorite.String == team {
		return favoriteWinPoints
	}
	return underdogWinPoints
}

// gotwActualTotal resolves the contest answer: an admin override wins,
// otherwise the featured game's final total once both scores exist
func gotwActualTotal(gotw *models.GameOfTheWeek, games []models.Game) (int, bool) {
	if gotw == nil {
		return 0, false
	}
	if gotw.TotalOverride.Valid {
		return int(gotw.TotalOverride.Int32), true
	}
	for i := range games {
		g := &games[i]
		if g.HomeTeam == gotw.HomeTeam && g.AwayTeam == gotw.AwayTeam {
			return g.TotalPoints()
		}
	}
	return 0, false
}

// applyPOTWBonus awards a flat 3 points for an exact yardage hit, only
// possible once the admin has entered the official value
func applyPOTWBonus(scores []UserWeekScore, picks []models.Pick, potw *models.PlayerOfTheWeek) {
	if potw == nil || !potw.Yardage.Valid {
		return
	}
	predictions := make(map[int64]int32, len(picks))
	for _, p := range picks {
		if p.POTWPrediction.Valid {
			predictions[p.UserID] = p.POTWPrediction.Int32
		}
	}
	for i := range scores {
		if pred, ok := predictions[scores[i].UserID]; ok && pred == potw.Yardage.Int32 {
			scores[i].POTWPoints = potwExactPoints
			scores[i].POTWExact = true
		}
	}
}

// StateOf infers the week's lifecycle position from data presence: scored
// once every game has a final score, locked once the first Sunday kickoff
// has been reached, open before that.
func StateOf(games []models.Game, now time.Time) WeekState {
	if len(games) == 0 {
		return WeekOpen
	}

	scored := true
	for i := range games {
		if !games[i].HasFinalScore() {
			scored = false
			break
		}
	}
	if scored {
		return WeekScored
	}

	if lock, ok := LockTime(games); ok && !now.Before(lock) {
		return WeekLocked
	}
	return WeekOpen
}

// LockTime returns the earliest kickoff falling on a Sunday in Eastern
// civil time. Thursday and Saturday games do not lock the week.
func LockTime(games []models.Game) (time.Time, bool) {
	var lock time.Time
	found := false
	for i := range games {
		g := &games[i]
		if !g.KickoffAt.Valid {
			continue
		}
		k := g.KickoffAt.Time
		if kickoff.EasternWall(k).Weekday() != time.Sunday {
			continue
		}
		if !found || k.Before(lock) {
			lock = k
			found = true
		}
	}
	return lock, found
}
