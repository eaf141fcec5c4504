package nflteams

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalize(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"Kansas City Chiefs", "kansascitychiefs"},
		{"KC", "kansascitychiefs"},
		{"Chiefs", "kansascitychiefs"},
		{"San Francisco 49ers", "sanfrancisco49ers"},
		{"SF", "sanfrancisco49ers"},
		{"49ers", "sanfrancisco49ers"},
		{"Niners", "sanfrancisco49ers"},
		{"LA Rams", "losangelesrams"},
		{"L.A. Rams", "losangelesrams"},
		{"St. Louis Rams", "losangelesrams"},
		{"WAS", "washingtoncommanders"},
		{"Football Team", "washingtoncommanders"},
		{"Washington Redskins", "washingtoncommanders"},
		{"Bucs", "tampabaybuccaneers"},
		{"Tampa Bay", "tampabaybuccaneers"},
		{"N.Y. Jets", "newyorkjets"},
		{"oakland raiders", "lasvegasraiders"},
		{"Green Bay", "greenbaypackers"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, Canonicalize(tt.raw))
		})
	}
}

func TestCanonicalizeIdempotent(t *testing.T) {
	inputs := []string{
		"Kansas City Chiefs", "SF", "Niners", "LA Rams", "Football Team",
		"completely unknown team", "XFL Dragons",
	}
	for slug := range teams {
		inputs = append(inputs, slug)
	}
	for alias := range aliases {
		inputs = append(inputs, alias)
	}

	for _, in := range inputs {
		once := Canonicalize(in)
		assert.Equal(t, once, Canonicalize(once), "canonicalize(%q) not idempotent", in)
	}
}

func TestCanonicalizeSoftFail(t *testing.T) {
	// No rule matches: cleaned string comes back unchanged
	assert.Equal(t, "xyz", Canonicalize("X-Y-Z!"))
	assert.Equal(t, "", Canonicalize("  --  "))
}

func TestFullName(t *testing.T) {
	name, ok := FullName("kc")
	assert.True(t, ok)
	assert.Equal(t, "Kansas City Chiefs", name)

	_, ok = FullName("not a team")
	assert.False(t, ok)
}

func TestMatchKey(t *testing.T) {
	assert.Equal(t,
		"buffalobills__miamidolphins",
		MatchKey("Buffalo Bills", "MIA"))

	// Same fixture spelled differently produces the same key
	assert.Equal(t,
		MatchKey("Bills", "Dolphins"),
		MatchKey("BUF", "Miami Dolphins"))
}
