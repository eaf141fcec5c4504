// Package nflteams normalizes the many spellings, abbreviations and
// nicknames that providers and the database use for NFL teams into one
// canonical slug, so rows from different sources can be joined.
package nflteams

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// teams maps each canonical slug to the display name stored in the games
// table. The slug is the cleaned form of the full name.
var teams = map[string]string{
	"arizonacardinals":     "Arizona Cardinals",
	"atlantafalcons":       "Atlanta Falcons",
	"baltimoreravens":      "Baltimore Ravens",
	"buffalobills":         "Buffalo Bills",
	"carolinapanthers":     "Carolina Panthers",
	"chicagobears":         "Chicago Bears",
	"cincinnatibengals":    "Cincinnati Bengals",
	"clevelandbrowns":      "Cleveland Browns",
	"dallascowboys":        "Dallas Cowboys",
	"denverbroncos":        "Denver Broncos",
	"detroitlions":         "Detroit Lions",
	"greenbaypackers":      "Green Bay Packers",
	"houstontexans":        "Houston Texans",
	"indianapoliscolts":    "Indianapolis Colts",
	"jacksonvillejaguars":  "Jacksonville Jaguars",
	"kansascitychiefs":     "Kansas City Chiefs",
	"lasvegasraiders":      "Las Vegas Raiders",
	"losangeleschargers":   "Los Angeles Chargers",
	"losangelesrams":       "Los Angeles Rams",
	"miamidolphins":        "Miami Dolphins",
	"minnesotavikings":     "Minnesota Vikings",
	"newenglandpatriots":   "New England Patriots",
	"neworleanssaints":     "New Orleans Saints",
	"newyorkgiants":        "New York Giants",
	"newyorkjets":          "New York Jets",
	"philadelphiaeagles":   "Philadelphia Eagles",
	"pittsburghsteelers":   "Pittsburgh Steelers",
	"sanfrancisco49ers":    "San Francisco 49ers",
	"seattleseahawks":      "Seattle Seahawks",
	"tampabaybuccaneers":   "Tampa Bay Buccaneers",
	"tennesseetitans":      "Tennessee Titans",
	"washingtoncommanders": "Washington Commanders",
}

// aliases maps cleaned provider spellings onto canonical slugs: bare
// nicknames, city names, wire abbreviations, city+nickname combinations and
// pre-relocation franchise names. Bare "la" and "ny" are deliberately
// absent; they do not identify a team.
var aliases = map[string]string{
	// nicknames
	"cardinals":  "arizonacardinals",
	"falcons":    "atlantafalcons",
	"ravens":     "baltimoreravens",
	"bills":      "buffalobills",
	"panthers":   "carolinapanthers",
	"bears":      "chicagobears",
	"bengals":    "cincinnatibengals",
	"browns":     "clevelandbrowns",
	"cowboys":    "dallascowboys",
	"broncos":    "denverbroncos",
	"lions":      "detroitlions",
	"packers":    "greenbaypackers",
	"texans":     "houstontexans",
	"colts":      "indianapoliscolts",
	"jaguars":    "jacksonvillejaguars",
	"jags":       "jacksonvillejaguars",
	"chiefs":     "kansascitychiefs",
	"raiders":    "lasvegasraiders",
	"chargers":   "losangeleschargers",
	"rams":       "losangelesrams",
	"dolphins":   "miamidolphins",
	"vikings":    "minnesotavikings",
	"vikes":      "minnesotavikings",
	"patriots":   "newenglandpatriots",
	"pats":       "newenglandpatriots",
	"saints":     "neworleanssaints",
	"giants":     "newyorkgiants",
	"jets":       "newyorkjets",
	"eagles":     "philadelphiaeagles",
	"steelers":   "pittsburghsteelers",
	"49ers":      "sanfrancisco49ers",
	"niners":     "sanfrancisco49ers",
	"seahawks":   "seattleseahawks",
	"buccaneers": "tampabaybuccaneers",
	"bucs":       "tampabaybuccaneers",
	"titans":     "tennesseetitans",
	"commanders": "washingtoncommanders",

	// unambiguous cities
	"arizona":      "arizonacardinals",
	"atlanta":      "atlantafalcons",
	"baltimore":    "baltimoreravens",
	"buffalo":      "buffalobills",
	"carolina":     "carolinapanthers",
	"chicago":      "chicagobears",
	"cincinnati":   "cincinnatibengals",
	"cleveland":    "clevelandbrowns",
	"dallas":       "dallascowboys",
	"denver":       "denverbroncos",
	"detroit":      "detroitlions",
	"greenbay":     "greenbaypackers",
	"houston":      "houstontexans",
	"indianapolis": "indianapoliscolts",
	"jacksonville": "jacksonvillejaguars",
	"kansascity":   "kansascitychiefs",
	"lasvegas":     "lasvegasraiders",
	"miami":        "miamidolphins",
	"minnesota":    "minnesotavikings",
	"newengland":   "newenglandpatriots",
	"neworleans":   "neworleanssaints",
	"philadelphia": "philadelphiaeagles",
	"pittsburgh":   "pittsburghsteelers",
	"sanfrancisco": "sanfrancisco49ers",
	"seattle":      "seattleseahawks",
	"tampa":        "tampabaybuccaneers",
	"tampabay":     "tampabaybuccaneers",
	"tennessee":    "tennesseetitans",
	"washington":   "washingtoncommanders",

	// wire abbreviations
	"ari": "arizonacardinals",
	"atl": "atlantafalcons",
	"bal": "baltimoreravens",
	"buf": "buffalobills",
	"car": "carolinapanthers",
	"chi": "chicagobears",
	"cin": "cincinnatibengals",
	"cle": "clevelandbrowns",
	"dal": "dallascowboys",
	"den": "denverbroncos",
	"det": "detroitlions",
	"gb":  "greenbaypackers",
	"hou": "houstontexans",
	"ind": "indianapoliscolts",
	"jac": "jacksonvillejaguars",
	"jax": "jacksonvillejaguars",
	"kc":  "kansascitychiefs",
	"lac": "losangeleschargers",
	"lar": "losangelesrams",
	"lv":  "lasvegasraiders",
	"mia": "miamidolphins",
	"min": "minnesotavikings",
	"ne":  "newenglandpatriots",
	"no":  "neworleanssaints",
	"nyg": "newyorkgiants",
	"nyj": "newyorkjets",
	"phi": "philadelphiaeagles",
	"pit": "pittsburghsteelers",
	"sea": "seattleseahawks",
	"sf":  "sanfrancisco49ers",
	"tb":  "tampabaybuccaneers",
	"ten": "tennesseetitans",
	"was": "washingtoncommanders",
	"wsh": "washingtoncommanders",

	// city abbreviation + nickname combinations
	"kcchiefs":   "kansascitychiefs",
	"lachargers": "losangeleschargers",
	"larams":     "losangelesrams",
	"lvraiders":  "lasvegasraiders",
	"nygiants":   "newyorkgiants",
	"nyjets":     "newyorkjets",
	"sf49ers":    "sanfrancisco49ers",
	"tbbucs":     "tampabaybuccaneers",

	// pre-relocation and renamed franchises
	"footballteam":           "washingtoncommanders",
	"oaklandraiders":         "lasvegasraiders",
	"redskins":               "washingtoncommanders",
	"sandiegochargers":       "losangeleschargers",
	"stlouisrams":            "losangelesrams",
	"washingtonfootballteam": "washingtoncommanders",
	"washingtonredskins":     "washingtoncommanders",
}

// slugList is the canonical slugs in sorted order, for the fuzzy fallback
var slugList = func() []string {
	out := make([]string, 0, len(teams))
	for slug := range teams {
		out = append(out, slug)
	}
	// sorted so the fallback never depends on map iteration order
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j] < out[j-1]; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}()

// clean lowercases and strips everything except letters and digits, so
// "49ers" keeps its digits and "St. Louis" loses its punctuation.
func clean(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Canonicalize maps any team spelling to its canonical slug. Unknown input
// comes back cleaned but otherwise unchanged, which lets callers attempt
// partial matching instead of failing hard. Idempotent: canonical slugs map
// to themselves.
func Canonicalize(raw string) string {
	c := clean(raw)
	if c == "" {
		return c
	}
	if _, ok := teams[c]; ok {
		return c
	}
	if slug, ok := aliases[c]; ok {
		return slug
	}
	// Last resort: a cleaned spelling that fuzzy-matches exactly one slug
	// (e.g. a truncated full name) resolves to it; anything ambiguous is
	// passed through untouched.
	if len(c) >= 5 {
		if matches := fuzzy.Find(c, slugList); len(matches) == 1 {
			return matches[0]
		}
	}
	return c
}

// FullName resolves raw to the display name stored in the games table
func FullName(raw string) (string, bool) {
	name, ok := teams[Canonicalize(raw)]
	return name, ok
}

// MatchKey builds the join key for a fixture. Providers are inconsistent
// about which side they label home, so reconciliation indexes fixtures
// under both orientations; which team actually hosted always comes from
// the authoritative store.
func MatchKey(home, away string) string {
	return Canonicalize(home) + "__" + Canonicalize(away)
}
