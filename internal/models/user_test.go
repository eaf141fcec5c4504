package models

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
)

func nb(v bool) sql.NullBool { return sql.NullBool{Bool: v, Valid: true} }
func nbNull() sql.NullBool   { return sql.NullBool{} }

func TestDeriveStatus(t *testing.T) {
	tests := []struct {
		name     string
		active   sql.NullBool
		approved sql.NullBool
		pending  sql.NullBool
		want     UserStatus
	}{
		{"explicit deactivation wins", nb(false), nb(true), nb(false), StatusDisabled},
		{"pending flag set", nb(true), nbNull(), nb(true), StatusPending},
		{"not yet approved", nbNull(), nb(false), nbNull(), StatusPending},
		{"active column only", nb(true), nbNull(), nbNull(), StatusActive},
		{"approved column only", nbNull(), nb(true), nbNull(), StatusActive},
		{"pending cleared only", nbNull(), nbNull(), nb(false), StatusActive},
		{"all columns null", nbNull(), nbNull(), nbNull(), StatusPending},
		{"disabled beats pending", nb(false), nbNull(), nb(true), StatusDisabled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveStatus(tt.active, tt.approved, tt.pending))
		})
	}
}

func TestGameWinner(t *testing.T) {
	g := Game{HomeTeam: "Buffalo Bills", AwayTeam: "Miami Dolphins"}

	_, ok := g.Winner()
	assert.False(t, ok, "unplayed game has no winner")

	g.HomeScore = sql.NullInt32{Int32: 27, Valid: true}
	g.AwayScore = sql.NullInt32{Int32: 20, Valid: true}
	winner, ok := g.Winner()
	assert.True(t, ok)
	assert.Equal(t, "Buffalo Bills", winner)

	total, ok := g.TotalPoints()
	assert.True(t, ok)
	assert.Equal(t, 47, total)

	g.AwayScore.Int32 = 27
	_, ok = g.Winner()
	assert.False(t, ok, "tie has no winner")
}
