package scoring

import (
	"database/sql"
	"testing"
	"time"

	"github.com/jgvaught118/nfl-frenzy-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func activeUser(id int64, name string) models.User {
	return models.User{
		ID:        id,
		Name:      name,
		RawActive: sql.NullBool{Bool: true, Valid: true},
	}
}

func playedGame(home, away string, homeScore, awayScore int32, favorite string) models.Game {
	g := models.Game{
		HomeTeam:  home,
		AwayTeam:  away,
		HomeScore: sql.NullInt32{Int32: homeScore, Valid: true},
		AwayScore: sql.NullInt32{Int32: awayScore, Valid: true},
	}
	if favorite != "" {
		g.Favorite = sql.NullString{String: favorite, Valid: true}
	}
	return g
}

func pick(userID int64, team string) models.Pick {
	return models.Pick{UserID: userID, Week: 1, Team: team}
}

func pickWithGOTW(userID int64, team string, gotw int32) models.Pick {
	p := pick(userID, team)
	p.GOTWPrediction = sql.NullInt32{Int32: gotw, Valid: true}
	return p
}

func scoreByUser(res WeekResult, userID int64) *UserWeekScore {
	for i := range res.Scores {
		if res.Scores[i].UserID == userID {
			return &res.Scores[i]
		}
	}
	return nil
}

func TestScoreWeekBasePoints(t *testing.T) {
	// Bills favored, win 27-20: the favorite backer gets 1, the loser 0
	in := WeekInput{
		Week:  1,
		Games: []models.Game{playedGame("Buffalo Bills", "Miami Dolphins", 27, 20, "Buffalo Bills")},
		Picks: []models.Pick{pick(1, "Buffalo Bills"), pick(2, "Miami Dolphins")},
		Users: []models.User{activeUser(1, "Alice"), activeUser(2, "Bob")},
	}

	res := ScoreWeek(in)
	require.Len(t, res.Scores, 2)
	assert.Equal(t, 1, scoreByUser(res, 1).Total)
	assert.Equal(t, 0, scoreByUser(res, 2).Total)
}

func TestScoreWeekUnderdogWin(t *testing.T) {
	in := WeekInput{
		Week:  1,
		Games: []models.Game{playedGame("Buffalo Bills", "Miami Dolphins", 17, 24, "Buffalo Bills")},
		Picks: []models.Pick{pick(1, "Miami Dolphins")},
		Users: []models.User{activeUser(1, "Alice")},
	}

	assert.Equal(t, 2, ScoreWeek(in).Scores[0].Total)
}

func TestScoreWeekNoFavoriteRecorded(t *testing.T) {
	// No line ever materialized: a winner is credited at the underdog value
	in := WeekInput{
		Week:  1,
		Games: []models.Game{playedGame("Detroit Lions", "Chicago Bears", 31, 10, "")},
		Picks: []models.Pick{pick(1, "Detroit Lions")},
		Users: []models.User{activeUser(1, "Alice")},
	}

	assert.Equal(t, 2, ScoreWeek(in).Scores[0].Total)
}

func TestScoreWeekTieNoCredit(t *testing.T) {
	in := WeekInput{
		Week:  1,
		Games: []models.Game{playedGame("Detroit Lions", "Chicago Bears", 20, 20, "Detroit Lions")},
		Picks: []models.Pick{pick(1, "Detroit Lions")},
		Users: []models.User{activeUser(1, "Alice")},
	}

	assert.Equal(t, 0, ScoreWeek(in).Scores[0].Total)
}

func TestScoreWeekGOTWRanking(t *testing.T) {
	// Actual total 45. Alice diff 0 -> rank 1 -> 3 pts. Bob and Carol diff 5
	// -> shared rank 2 -> 2 pts each. Dave diff 15 -> rank 4 -> nothing,
	// because the next distinct rank after a two-way tie at 2 is 4.
	gotw := &models.GameOfTheWeek{HomeTeam: "Kansas City Chiefs", AwayTeam: "Las Vegas Raiders"}
	in := WeekInput{
		Week: 1,
		Games: []models.Game{
			playedGame("Kansas City Chiefs", "Las Vegas Raiders", 24, 21, "Kansas City Chiefs"),
		},
		GOTW: gotw,
		Picks: []models.Pick{
			pickWithGOTW(1, "Kansas City Chiefs", 45),
			pickWithGOTW(2, "Kansas City Chiefs", 50),
			pickWithGOTW(3, "Kansas City Chiefs", 40),
			pickWithGOTW(4, "Kansas City Chiefs", 30),
		},
		Users: []models.User{
			activeUser(1, "Alice"), activeUser(2, "Bob"),
			activeUser(3, "Carol"), activeUser(4, "Dave"),
		},
	}

	res := ScoreWeek(in)
	require.NotNil(t, res.GOTWActualTotal)
	assert.Equal(t, 45, *res.GOTWActualTotal)

	assert.Equal(t, 1, scoreByUser(res, 1).GOTWRank)
	assert.Equal(t, 3, scoreByUser(res, 1).GOTWPoints)
	assert.Equal(t, 2, scoreByUser(res, 2).GOTWRank)
	assert.Equal(t, 2, scoreByUser(res, 2).GOTWPoints)
	assert.Equal(t, 2, scoreByUser(res, 3).GOTWRank)
	assert.Equal(t, 2, scoreByUser(res, 3).GOTWPoints)
	assert.Equal(t, 4, scoreByUser(res, 4).GOTWRank)
	assert.Equal(t, 0, scoreByUser(res, 4).GOTWPoints)
}

func TestScoreWeekGOTWOverrideBeatsFinalScore(t *testing.T) {
	gotw := &models.GameOfTheWeek{
		HomeTeam:      "Kansas City Chiefs",
		AwayTeam:      "Las Vegas Raiders",
		TotalOverride: sql.NullInt32{Int32: 51, Valid: true},
	}
	in := WeekInput{
		Week: 1,
		Games: []models.Game{
			playedGame("Kansas City Chiefs", "Las Vegas Raiders", 24, 21, ""),
		},
		GOTW:  gotw,
		Picks: []models.Pick{pickWithGOTW(1, "Kansas City Chiefs", 51)},
		Users: []models.User{activeUser(1, "Alice")},
	}

	res := ScoreWeek(in)
	require.NotNil(t, res.GOTWActualTotal)
	assert.Equal(t, 51, *res.GOTWActualTotal)
	assert.Equal(t, 3, scoreByUser(res, 1).GOTWPoints)
}

func TestScoreWeekGOTWTiebreakByPOTW(t *testing.T) {
	// Both guessed 50 (diff 5); Bob's POTW guess is closer to the official
	// value, so he alone takes rank 1
	potw := &models.PlayerOfTheWeek{Yardage: sql.NullInt32{Int32: 112, Valid: true}}
	alice := pickWithGOTW(1, "Kansas City Chiefs", 50)
	bob := pickWithGOTW(2, "Kansas City Chiefs", 50)
	bob.POTWPrediction = sql.NullInt32{Int32: 110, Valid: true}

	in := WeekInput{
		Week: 1,
		Games: []models.Game{
			playedGame("Kansas City Chiefs", "Las Vegas Raiders", 24, 21, ""),
		},
		GOTW:  &models.GameOfTheWeek{HomeTeam: "Kansas City Chiefs", AwayTeam: "Las Vegas Raiders"},
		POTW:  potw,
		Picks: []models.Pick{alice, bob},
		Users: []models.User{activeUser(1, "Alice"), activeUser(2, "Bob")},
	}

	res := ScoreWeek(in)
	// Alice has no POTW prediction, so she sorts behind Bob in the tiebreak
	assert.Equal(t, 1, scoreByUser(res, 2).GOTWRank)
	assert.Equal(t, 2, scoreByUser(res, 1).GOTWRank)
}

func TestScoreWeekGOTWIgnoresIneligibleGuesses(t *testing.T) {
	// Pending Pete's guess is a perfect diff 0, but he cannot play; Alice
	// (diff 1) must still take rank 1 and the full 3 points
	pending := models.User{ID: 2, Name: "Pending Pete"}
	in := WeekInput{
		Week: 1,
		Games: []models.Game{
			playedGame("Kansas City Chiefs", "Las Vegas Raiders", 24, 21, ""),
		},
		GOTW: &models.GameOfTheWeek{HomeTeam: "Kansas City Chiefs", AwayTeam: "Las Vegas Raiders"},
		Picks: []models.Pick{
			pickWithGOTW(1, "Kansas City Chiefs", 46),
			pickWithGOTW(2, "Kansas City Chiefs", 45),
		},
		Users: []models.User{activeUser(1, "Alice"), pending},
	}

	res := ScoreWeek(in)
	require.Len(t, res.Scores, 1)
	assert.Equal(t, 1, scoreByUser(res, 1).GOTWRank)
	assert.Equal(t, 3, scoreByUser(res, 1).GOTWPoints)
}

func TestScoreWeekGOTWWithheldUntilScored(t *testing.T) {
	in := WeekInput{
		Week: 1,
		Games: []models.Game{
			{HomeTeam: "Kansas City Chiefs", AwayTeam: "Las Vegas Raiders"},
		},
		GOTW:  &models.GameOfTheWeek{HomeTeam: "Kansas City Chiefs", AwayTeam: "Las Vegas Raiders"},
		Picks: []models.Pick{pickWithGOTW(1, "Kansas City Chiefs", 45)},
		Users: []models.User{activeUser(1, "Alice")},
	}

	res := ScoreWeek(in)
	assert.Nil(t, res.GOTWActualTotal)
	assert.Equal(t, 0, scoreByUser(res, 1).GOTWPoints)
}

func TestScoreWeekPOTWExactMatch(t *testing.T) {
	potw := &models.PlayerOfTheWeek{Yardage: sql.NullInt32{Int32: 112, Valid: true}}
	exact := pick(1, "Buffalo Bills")
	exact.POTWPrediction = sql.NullInt32{Int32: 112, Valid: true}
	near := pick(2, "Buffalo Bills")
	near.POTWPrediction = sql.NullInt32{Int32: 111, Valid: true}

	in := WeekInput{
		Week:  1,
		Games: []models.Game{playedGame("Buffalo Bills", "Miami Dolphins", 27, 20, "Buffalo Bills")},
		POTW:  potw,
		Picks: []models.Pick{exact, near},
		Users: []models.User{activeUser(1, "Alice"), activeUser(2, "Bob")},
	}

	res := ScoreWeek(in)
	assert.Equal(t, 3, scoreByUser(res, 1).POTWPoints)
	assert.True(t, scoreByUser(res, 1).POTWExact)
	assert.Equal(t, 0, scoreByUser(res, 2).POTWPoints)
}

func TestScoreWeekDoubleWeek(t *testing.T) {
	base := WeekInput{
		Week:  13,
		Games: []models.Game{playedGame("Buffalo Bills", "Miami Dolphins", 27, 20, "Buffalo Bills")},
		GOTW:  &models.GameOfTheWeek{HomeTeam: "Buffalo Bills", AwayTeam: "Miami Dolphins"},
		POTW:  &models.PlayerOfTheWeek{Yardage: sql.NullInt32{Int32: 100, Valid: true}},
		Users: []models.User{activeUser(1, "Alice")},
	}
	p := pickWithGOTW(1, "Buffalo Bills", 47)
	p.POTWPrediction = sql.NullInt32{Int32: 100, Valid: true}
	base.Picks = []models.Pick{p}

	plain := ScoreWeek(base)

	doubled := base
	doubled.DoubleWeeks = map[int]bool{13: true}
	twice := ScoreWeek(doubled)

	// The multiplier applies to the entire weekly total: base + GOTW + POTW
	assert.Equal(t, 1+3+3, plain.Scores[0].Total)
	assert.Equal(t, 2*plain.Scores[0].Total, twice.Scores[0].Total)
	assert.True(t, twice.Scores[0].Doubled)
}

func TestScoreWeekSkipsInactiveUsers(t *testing.T) {
	pending := models.User{ID: 2, Name: "Pending Pete"}
	in := WeekInput{
		Week:  1,
		Games: []models.Game{playedGame("Buffalo Bills", "Miami Dolphins", 27, 20, "Buffalo Bills")},
		Picks: []models.Pick{pick(1, "Buffalo Bills"), pick(2, "Buffalo Bills")},
		Users: []models.User{activeUser(1, "Alice"), pending},
	}

	res := ScoreWeek(in)
	require.Len(t, res.Scores, 1)
	assert.Equal(t, int64(1), res.Scores[0].UserID)
}

func TestStateOf(t *testing.T) {
	now := time.Date(2025, 9, 7, 18, 0, 0, 0, time.UTC)

	// Sunday 13:00 ET kickoff is 17:00 UTC; reached an hour ago
	sunday := models.Game{
		HomeTeam:  "Buffalo Bills",
		AwayTeam:  "Miami Dolphins",
		KickoffAt: sql.NullTime{Time: time.Date(2025, 9, 7, 17, 0, 0, 0, time.UTC), Valid: true},
	}
	assert.Equal(t, WeekLocked, StateOf([]models.Game{sunday}, now))

	// Before any Sunday kickoff the week is open, even with a Thursday game
	// already played
	thursday := models.Game{
		HomeTeam:  "Kansas City Chiefs",
		AwayTeam:  "Baltimore Ravens",
		KickoffAt: sql.NullTime{Time: time.Date(2025, 9, 5, 0, 20, 0, 0, time.UTC), Valid: true},
	}
	early := time.Date(2025, 9, 6, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, WeekOpen, StateOf([]models.Game{thursday, sunday}, early))

	// All finals in: scored
	done := playedGame("Buffalo Bills", "Miami Dolphins", 27, 20, "")
	assert.Equal(t, WeekScored, StateOf([]models.Game{done}, now))
}

func TestAggregateSeason(t *testing.T) {
	week1 := WeekResult{Week: 1, Scores: []UserWeekScore{
		{UserID: 1, Name: "Alice", Total: 4, GOTWRank: 1},
		{UserID: 2, Name: "Bob", Total: 2, POTWExact: true},
	}}
	week2 := WeekResult{Week: 2, Scores: []UserWeekScore{
		{UserID: 1, Name: "Alice", Total: 1},
		{UserID: 2, Name: "Bob", Total: 3},
		{UserID: 3, Name: "Carol", Total: 5, GOTWRank: 1},
	}}

	standings := AggregateSeason([]WeekResult{week1, week2})
	require.Len(t, standings, 3)

	// All three finish on 5 points. Alice and Carol each won a GOTW contest
	// and rank ahead of Bob; between them the name tiebreak decides.
	assert.Equal(t, "Alice", standings[0].Name)
	assert.Equal(t, "Carol", standings[1].Name)
	assert.Equal(t, "Bob", standings[2].Name)
	assert.Equal(t, 5, standings[0].TotalPoints)
	assert.Equal(t, 2, standings[0].WeeksPlayed)
}
