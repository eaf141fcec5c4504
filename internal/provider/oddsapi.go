package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jgvaught118/nfl-frenzy-backend/internal/kickoff"
)

const oddsSourceName = "odds_commence"

// OddsClient reads betting lines and commence times from a The Odds API
// style endpoint. Commence times are RFC3339 UTC and rank first in kickoff
// precedence.
type OddsClient struct {
	baseURL string
	apiKey  string
	http    *httpClient
}

// NewOddsClient creates an odds provider client
func NewOddsClient(baseURL, apiKey string, timeout time.Duration) *OddsClient {
	return &OddsClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    newHTTPClient("odds_api", timeout, nil),
	}
}

func (c *OddsClient) Name() string { return "odds_api" }

// oddsEvent mirrors the provider's event payload
type oddsEvent struct {
	CommenceTime string `json:"commence_time"`
	HomeTeam     string `json:"home_team"`
	AwayTeam     string `json:"away_team"`
	Bookmakers   []struct {
		Key     string `json:"key"`
		Markets []struct {
			Key      string `json:"key"`
			Outcomes []struct {
				Name  string   `json:"name"`
				Point *float64 `json:"point"`
			} `json:"outcomes"`
		} `json:"markets"`
	} `json:"bookmakers"`
}

// FetchFixtures fetches upcoming NFL events with spreads and totals.
// The odds feed is not segmented by week; season and week select nothing
// here and matching happens on team names downstream.
func (c *OddsClient) FetchFixtures(ctx context.Context, season, week int) ([]Fixture, error) {
	url := fmt.Sprintf("%s/sports/americanfootball_nfl/odds", c.baseURL)
	body, err := c.http.get(ctx, url, map[string]string{
		"apiKey":     c.apiKey,
		"regions":    "us",
		"markets":    "spreads,totals",
		"oddsFormat": "american",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch odds: %w", err)
	}

	var events []oddsEvent
	if err := json.Unmarshal(body, &events); err != nil {
		return nil, fmt.Errorf("failed to unmarshal odds: %w", err)
	}

	fixtures := make([]Fixture, 0, len(events))
	for _, ev := range events {
		f := Fixture{
			Home: ev.HomeTeam,
			Away: ev.AwayTeam,
			Kickoffs: []kickoff.Source{
				{Name: oddsSourceName, Raw: ev.CommenceTime, Convention: kickoff.ConventionUTC},
			},
		}
		f.Favorite, f.Spread, f.OverUnder = extractLine(ev)
		fixtures = append(fixtures, f)
	}
	return fixtures, nil
}

// extractLine pulls the spread favorite and the over/under total from the
// first bookmaker carrying each market. The favorite is the team with the
// negative spread point; the stored spread is always non-negative.
func extractLine(ev oddsEvent) (favorite string, spread, overUnder *float64) {
	for _, book := range ev.Bookmakers {
		for _, market := range book.Markets {
			switch market.Key {
			case "spreads":
				if favorite != "" {
					continue
				}
				for _, out := range market.Outcomes {
					if out.Point != nil && *out.Point < 0 {
						favorite = out.Name
						s := -*out.Point
						spread = &s
					}
				}
			case "totals":
				if overUnder != nil {
					continue
				}
				for _, out := range market.Outcomes {
					if out.Name == "Over" && out.Point != nil {
						v := *out.Point
						overUnder = &v
					}
				}
			}
		}
	}
	return favorite, spread, overUnder
}
