package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jgvaught118/nfl-frenzy-backend/internal/kickoff"
)

// ScheduleClient reads the weekly schedule and final scores from a
// SportsDataIO style endpoint. The feed carries two timestamps per game: a
// UTC field and a timezone-naive field in US Eastern civil time; both are
// surfaced as kickoff sources, UTC first.
type ScheduleClient struct {
	baseURL string
	http    *httpClient
}

// NewScheduleClient creates a schedule provider client
func NewScheduleClient(baseURL, apiKey string, timeout time.Duration) *ScheduleClient {
	return &ScheduleClient{
		baseURL: baseURL,
		http: newHTTPClient("schedule_api", timeout, map[string]string{
			"Ocp-Apim-Subscription-Key": apiKey,
		}),
	}
}

func (c *ScheduleClient) Name() string { return "schedule_api" }

// scheduleGame mirrors the provider's score payload
type scheduleGame struct {
	HomeTeam    string `json:"HomeTeam"`
	AwayTeam    string `json:"AwayTeam"`
	Date        string `json:"Date"`        // naive, US Eastern
	DateTimeUTC string `json:"DateTimeUTC"` // naive, UTC
	Status      string `json:"Status"`
	HomeScore   *int   `json:"HomeScore"`
	AwayScore   *int   `json:"AwayScore"`
}

// FetchFixtures fetches one week of games with kickoff times and any final
// scores
func (c *ScheduleClient) FetchFixtures(ctx context.Context, season, week int) ([]Fixture, error) {
	url := fmt.Sprintf("%s/scores/json/ScoresByWeek/%d/%d", c.baseURL, season, week)
	body, err := c.http.get(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch week %d schedule: %w", week, err)
	}

	var games []scheduleGame
	if err := json.Unmarshal(body, &games); err != nil {
		return nil, fmt.Errorf("failed to unmarshal week %d schedule: %w", week, err)
	}

	fixtures := make([]Fixture, 0, len(games))
	for _, g := range games {
		f := Fixture{
			Home:      g.HomeTeam,
			Away:      g.AwayTeam,
			HomeScore: g.HomeScore,
			AwayScore: g.AwayScore,
			Final:     g.Status == "Final" || g.Status == "F/OT",
		}
		if g.DateTimeUTC != "" {
			f.Kickoffs = append(f.Kickoffs, kickoff.Source{
				Name:       "schedule_utc",
				Raw:        g.DateTimeUTC,
				Convention: kickoff.ConventionUTC,
			})
		}
		if g.Date != "" {
			f.Kickoffs = append(f.Kickoffs, kickoff.Source{
				Name:       "schedule_local",
				Raw:        g.Date,
				Convention: kickoff.ConventionEastern,
			})
		}
		fixtures = append(fixtures, f)
	}
	return fixtures, nil
}
