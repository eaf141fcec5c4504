package kickoff

import (
	"database/sql"
	"testing"
	"time"

	"github.com/jgvaught118/nfl-frenzy-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)

func testReconciler(threshold time.Duration, floor int) *Reconciler {
	return &Reconciler{
		Threshold: threshold,
		WeekFloor: floor,
		Now:       func() time.Time { return testNow },
	}
}

func futureGame(week int, kickoff time.Time) *models.Game {
	return &models.Game{
		ID:        1,
		Week:      week,
		HomeTeam:  "Buffalo Bills",
		AwayTeam:  "Miami Dolphins",
		KickoffAt: sql.NullTime{Time: kickoff, Valid: true},
	}
}

func TestResolvePrecedence(t *testing.T) {
	sources := []Source{
		{Name: "odds_commence", Raw: "2025-09-07T17:00:00Z", Convention: ConventionUTC},
		{Name: "schedule_utc", Raw: "2025-09-07T17:05:00", Convention: ConventionUTC},
	}

	resolved, name, ok := Resolve(sources)
	require.True(t, ok)
	assert.Equal(t, "odds_commence", name)
	assert.Equal(t, time.Date(2025, 9, 7, 17, 0, 0, 0, time.UTC), resolved)
}

func TestResolveSkipsMalformedSource(t *testing.T) {
	sources := []Source{
		{Name: "odds_commence", Raw: "not a timestamp", Convention: ConventionUTC},
		{Name: "schedule_local", Raw: "2025-09-07T13:00:00", Convention: ConventionEastern},
	}

	resolved, name, ok := Resolve(sources)
	require.True(t, ok)
	assert.Equal(t, "schedule_local", name)
	assert.Equal(t, time.Date(2025, 9, 7, 17, 0, 0, 0, time.UTC), resolved)
}

func TestResolveNoSources(t *testing.T) {
	_, _, ok := Resolve([]Source{{Name: "odds_commence", Raw: "garbage"}})
	assert.False(t, ok)

	_, _, ok = Resolve(nil)
	assert.False(t, ok)
}

func TestEvaluateThresholdGating(t *testing.T) {
	stored := time.Date(2025, 9, 7, 17, 0, 0, 0, time.UTC)
	r := testReconciler(60*time.Second, 1)

	// 59 seconds of drift stays under a 60 second threshold
	corr, reason := r.Evaluate(futureGame(1, stored), []Source{
		{Name: "odds_commence", Raw: stored.Add(59 * time.Second).Format(time.RFC3339)},
	})
	assert.Nil(t, corr)
	assert.Equal(t, SkipWithinThreshold, reason)

	// 61 seconds is applied
	corr, reason = r.Evaluate(futureGame(1, stored), []Source{
		{Name: "odds_commence", Raw: stored.Add(61 * time.Second).Format(time.RFC3339)},
	})
	require.NotNil(t, corr)
	assert.Equal(t, SkipNone, reason)
	assert.Equal(t, 61*time.Second, corr.Delta)
	assert.Equal(t, stored.Add(61*time.Second), corr.New)
	require.NotNil(t, corr.Old)
	assert.Equal(t, stored, *corr.Old)
}

func TestEvaluateMissingStoredAlwaysSets(t *testing.T) {
	r := testReconciler(5*time.Minute, 1)
	game := &models.Game{ID: 2, Week: 3, HomeTeam: "Detroit Lions", AwayTeam: "Chicago Bears"}

	corr, reason := r.Evaluate(game, []Source{
		{Name: "schedule_utc", Raw: "2025-09-21T17:00:00", Convention: ConventionUTC},
	})
	require.NotNil(t, corr)
	assert.Equal(t, SkipNone, reason)
	assert.Nil(t, corr.Old)
	assert.Equal(t, "schedule_utc", corr.Source)
}

func TestEvaluatePassedKickoffUntouched(t *testing.T) {
	r := testReconciler(time.Minute, 1)
	played := futureGame(1, testNow.Add(-2*time.Hour))

	corr, reason := r.Evaluate(played, []Source{
		{Name: "odds_commence", Raw: testNow.Add(24 * time.Hour).Format(time.RFC3339)},
	})
	assert.Nil(t, corr)
	assert.Equal(t, SkipKickoffPassed, reason)
}

func TestEvaluateWeekFloor(t *testing.T) {
	r := testReconciler(time.Minute, 5)

	corr, reason := r.Evaluate(futureGame(4, testNow.Add(time.Hour)), []Source{
		{Name: "odds_commence", Raw: testNow.Add(48 * time.Hour).Format(time.RFC3339)},
	})
	assert.Nil(t, corr)
	assert.Equal(t, SkipBelowWeekFloor, reason)
}

func TestEvaluateNoResolvableSource(t *testing.T) {
	r := testReconciler(time.Minute, 1)

	corr, reason := r.Evaluate(futureGame(2, testNow.Add(time.Hour)), nil)
	assert.Nil(t, corr)
	assert.Equal(t, SkipNoSources, reason)
}

func TestEvaluateIdempotent(t *testing.T) {
	// After applying a correction, re-running with the same source produces
	// no further corrections
	stored := testNow.Add(72 * time.Hour)
	r := testReconciler(time.Minute, 1)
	game := futureGame(2, stored)
	src := []Source{{Name: "odds_commence", Raw: stored.Add(2 * time.Hour).Format(time.RFC3339)}}

	corr, _ := r.Evaluate(game, src)
	require.NotNil(t, corr)

	game.KickoffAt = sql.NullTime{Time: corr.New, Valid: true}
	corr, reason := r.Evaluate(game, src)
	assert.Nil(t, corr)
	assert.Equal(t, SkipWithinThreshold, reason)
}
