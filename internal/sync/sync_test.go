package sync

import (
	"testing"

	"github.com/jgvaught118/nfl-frenzy-backend/internal/kickoff"
	"github.com/jgvaught118/nfl-frenzy-backend/internal/models"
	"github.com/jgvaught118/nfl-frenzy-backend/internal/provider"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSourceIndexMatchesEitherOrientation(t *testing.T) {
	idx := newSourceIndex()
	idx.add([]provider.Fixture{
		{
			Home: "KC",
			Away: "Buffalo Bills",
			Kickoffs: []kickoff.Source{
				{Name: "odds_commence", Raw: "2025-09-07T17:00:00Z", Convention: kickoff.ConventionUTC},
			},
		},
	})

	// Stored game has the opposite home/away labeling and different spelling
	game := &models.Game{HomeTeam: "Bills", AwayTeam: "Chiefs"}
	sources, fixture := idx.lookup(game)

	require.NotNil(t, fixture)
	require.Len(t, sources, 1)
	assert.Equal(t, "odds_commence", sources[0].Name)
}

func TestSourceIndexConcatenatesProviders(t *testing.T) {
	idx := newSourceIndex()
	idx.add([]provider.Fixture{
		{
			Home:     "Kansas City Chiefs",
			Away:     "Buffalo Bills",
			Kickoffs: []kickoff.Source{{Name: "odds_commence", Raw: "2025-09-07T17:00:00Z", Convention: kickoff.ConventionUTC}},
		},
	})
	idx.add([]provider.Fixture{
		{
			Home: "Kansas City Chiefs",
			Away: "Buffalo Bills",
			Kickoffs: []kickoff.Source{
				{Name: "schedule_utc", Raw: "2025-09-07T17:00:00", Convention: kickoff.ConventionUTC},
				{Name: "schedule_local", Raw: "2025-09-07T13:00:00", Convention: kickoff.ConventionEastern},
			},
		},
	})

	game := &models.Game{HomeTeam: "Kansas City Chiefs", AwayTeam: "Buffalo Bills"}
	sources, _ := idx.lookup(game)

	// Insertion order fixes precedence: odds first, then schedule fields
	require.Len(t, sources, 3)
	assert.Equal(t, "odds_commence", sources[0].Name)
	assert.Equal(t, "schedule_utc", sources[1].Name)
	assert.Equal(t, "schedule_local", sources[2].Name)
}

func TestOrientScores(t *testing.T) {
	game := &models.Game{HomeTeam: "Buffalo Bills", AwayTeam: "Miami Dolphins"}

	home, away := orientScores(game, "Buffalo Bills", 27, 20)
	assert.Equal(t, 27, home)
	assert.Equal(t, 20, away)

	// Fixture labeled the stored away team as home
	home, away = orientScores(game, "Miami", 20, 27)
	assert.Equal(t, 27, home)
	assert.Equal(t, 20, away)
}
