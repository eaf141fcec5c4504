package scoring

import "sort"

// SeasonStanding is one participant's season aggregate
type SeasonStanding struct {
	UserID      int64  `json:"user_id"`
	Name        string `json:"name"`
	TotalPoints int    `json:"total_points"`
	WeeksPlayed int    `json:"weeks_played"`
	GOTWWins    int    `json:"gotw_wins"`
	POTWHits    int    `json:"potw_hits"`
}

// AggregateSeason sums each user's weekly totals across all weeks with any
// scored picks. Ordering is fully deterministic: total points descending,
// then GOTW contests won, then exact POTW hits, then display name.
func AggregateSeason(weeks []WeekResult) []SeasonStanding {
	byUser := make(map[int64]*SeasonStanding)

	for _, week := range weeks {
		for _, s := range week.Scores {
			standing, ok := byUser[s.UserID]
			if !ok {
				standing = &SeasonStanding{UserID: s.UserID, Name: s.Name}
				byUser[s.UserID] = standing
			}
			standing.TotalPoints += s.Total
			standing.WeeksPlayed++
			if s.GOTWRank == 1 {
				standing.GOTWWins++
			}
			if s.POTWExact {
				standing.POTWHits++
			}
		}
	}

	standings := make([]SeasonStanding, 0, len(byUser))
	for _, s := range byUser {
		standings = append(standings, *s)
	}

	sort.Slice(standings, func(i, j int) bool {
		a, b := standings[i], standings[j]
		if a.TotalPoints != b.TotalPoints {
			return a.TotalPoints > b.TotalPoints
		}
		if a.GOTWWins != b.GOTWWins {
			return a.GOTWWins > b.GOTWWins
		}
		if a.POTWHits != b.POTWHits {
			return a.POTWHits > b.POTWHits
		}
		return a.Name < b.Name
	})

	return standings
}
