package scoring

import (
	"math"
	"sort"

	"github.com/jgvaught118/nfl-frenzy-backend/internal/models"
)

// GOTW awards for the top three distinct ranks
var gotwAwards = map[int]int{1: 3, 2: 2, 3: 1}

// gotwEntry is one participant in the closest-guess contest
type gotwEntry struct {
	userID   int64
	gotwDiff int
	// distance of the POTW prediction from the official value, used only to
	// break GOTW ties; participants with no POTW prediction (or before the
	// official value exists) sort last
	potwDiff int
}

// applyGOTWBonus ranks every participant who submitted a GOTW prediction by
// closeness to the actual total and awards 3/2/1 points to the top three
// distinct ranks. Classic competition ranking: equal keys share a rank and
// the next distinct rank continues at position+1, not dense. Only users with
// a score row enter the ranking; a pending or disabled account's guess never
// occupies a rank.
func applyGOTWBonus(scores []UserWeekScore, picks []models.Pick, potw *models.PlayerOfTheWeek, actualTotal int) {
	var official *int32
	if potw != nil && potw.Yardage.Valid {
		official = &potw.Yardage.Int32
	}

	byUser := make(map[int64]*UserWeekScore, len(scores))
	for i := range scores {
		byUser[scores[i].UserID] = &scores[i]
	}

	entries := make([]gotwEntry, 0, len(picks))
	for _, p := range picks {
		if !p.GOTWPrediction.Valid {
			continue
		}
		if _, ok := byUser[p.UserID]; !ok {
			continue
		}
		e := gotwEntry{
			userID:   p.UserID,
			gotwDiff: absInt(int(p.GOTWPrediction.Int32) - actualTotal),
			potwDiff: math.MaxInt,
		}
		if official != nil && p.POTWPrediction.Valid {
			e.potwDiff = absInt(int(p.POTWPrediction.Int32 - *official))
		}
		entries = append(entries, e)
	}
	if len(entries) == 0 {
		return
	}

	// Ties resolved by the tiebreak key, never by input order
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].gotwDiff != entries[j].gotwDiff {
			return entries[i].gotwDiff < entries[j].gotwDiff
		}
		return entries[i].potwDiff < entries[j].potwDiff
	})

	rank := 0
	for i, e := range entries {
		if i == 0 || entries[i].gotwDiff != entries[i-1].gotwDiff || entries[i].potwDiff != entries[i-1].potwDiff {
			rank = i + 1
		}
		score := byUser[e.userID]
		score.GOTWRank = rank
		score.GOTWPoints = gotwAwards[rank]
	}
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
