package kickoff

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimestampExplicitOffset(t *testing.T) {
	// An explicit offset wins even under the Eastern convention
	got, err := ParseTimestamp("2025-09-07T17:00:00Z", ConventionEastern)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 9, 7, 17, 0, 0, 0, time.UTC), got)

	got, err = ParseTimestamp("2025-09-07T13:00:00-04:00", ConventionEastern)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 9, 7, 17, 0, 0, 0, time.UTC), got)
}

func TestParseTimestampNaiveEastern(t *testing.T) {
	// DST active in September: Eastern is UTC-4
	got, err := ParseTimestamp("2025-09-07T13:00:00", ConventionEastern)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 9, 7, 17, 0, 0, 0, time.UTC), got)

	// DST ended November 2, 2025: Eastern is UTC-5
	got, err = ParseTimestamp("2025-11-09T13:00:00", ConventionEastern)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 11, 9, 18, 0, 0, 0, time.UTC), got)
}

func TestParseTimestampNaiveUTC(t *testing.T) {
	got, err := ParseTimestamp("2025-10-05 17:25:00", ConventionUTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 10, 5, 17, 25, 0, 0, time.UTC), got)
}

func TestParseTimestampMalformed(t *testing.T) {
	_, err := ParseTimestamp("next sunday at one", ConventionEastern)
	assert.Error(t, err)

	_, err = ParseTimestamp("", ConventionUTC)
	assert.Error(t, err)
}

func TestEasternDSTBoundaries(t *testing.T) {
	// 2025: DST starts March 9, ends November 2
	assert.Equal(t, 9, nthSunday(2025, time.March, 2))
	assert.Equal(t, 2, nthSunday(2025, time.November, 1))

	// 2026: DST starts March 8, ends November 1
	assert.Equal(t, 8, nthSunday(2026, time.March, 2))
	assert.Equal(t, 1, nthSunday(2026, time.November, 1))

	// One second before the spring-forward boundary is still standard time
	assert.False(t, easternDST(time.Date(2025, 3, 9, 1, 59, 59, 0, time.UTC)))
	assert.True(t, easternDST(time.Date(2025, 3, 9, 2, 0, 0, 0, time.UTC)))

	// The fall-back boundary ends the window
	assert.True(t, easternDST(time.Date(2025, 11, 2, 1, 59, 59, 0, time.UTC)))
	assert.False(t, easternDST(time.Date(2025, 11, 2, 2, 0, 0, 0, time.UTC)))
}
