package goalserve

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
)

// APIClient fetches the Goalserve cricket feeds over plain HTTP. The feeds
// are XML documents keyed by an account token in the path.
type APIClient struct {
	httpClient   *http.Client
	BaseURL      string
	apiKey       string
	schedulePath string
	livePath     string
}

// NewClient creates a new Goalserve feed client.
func NewClient(baseURL, apiKey string) FeedClient {
	return &APIClient{
		httpClient:   &http.Client{Timeout: 10 * time.Second},
		BaseURL:      baseURL,
		apiKey:       apiKey,
		schedulePath: "cricketfixtures/intl/fixtures",
		livePath:     "cricket/livescore",
	}
}

var _ FeedClient = (*APIClient)(nil)

// GetSchedule fetches the fixtures feed and flattens it into schedule entries.
func (c *APIClient) GetSchedule(ctx context.Context) ([]ScheduleEntry, error) {
	feed, err := c.fetch(ctx, c.schedulePath)
	if err != nil {
		return nil, err
	}

	var entries []ScheduleEntry
	for _, cat := range feed.Categories {
		for _, m := range cat.Matches {
			entries = append(entries, ScheduleEntry{
				ExternalID:  m.ID,
				TeamA:       m.LocalTeam.Name,
				TeamB:       m.VisitorTeam.Name,
				Venue:       m.VenueName,
				Group:       cat.Name,
				Stage:       m.Stage,
				MatchNumber: m.MatchNumber,
				RoundNumber: m.Round,
				MatchDate:   parseFeedTime(m.Date, m.Time),
			})
		}
	}
	log.Debug("Fetched schedule feed", "entries", len(entries))
	return entries, nil
}

// GetTossCandidates fetches the live feed and returns matches that carry a
// toss annotation.
func (c *APIClient) GetTossCandidates(ctx context.Context) ([]TossCandidate, error) {
	feed, err := c.fetch(ctx, c.livePath)
	if err != nil {
		return nil, err
	}

	var candidates []TossCandidate
	for _, cat := range feed.Categories {
		for _, m := range cat.Matches {
			if m.Toss == "" {
				continue
			}
			candidates = append(candidates, TossCandidate{
				ID:          m.ID,
				LocalTeam:   m.LocalTeam.Name,
				VisitorTeam: m.VisitorTeam.Name,
				Date:        m.Date,
				Time:        m.Time,
				TossText:    m.Toss,
				MatchDate:   parseFeedTime(m.Date, m.Time),
			})
		}
	}
	log.Debug("Fetched toss candidates", "count", len(candidates))
	return candidates, nil
}

func (c *APIClient) fetch(ctx context.Context, path string) (*scoresFeed, error) {
	url := fmt.Sprintf("%s/getfeed/%s/%s", c.BaseURL, c.apiKey, path)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/xml")

	log.Debug("Requesting Goalserve feed", "path", path)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		log.Error("Received non-OK HTTP status from Goalserve", "status", resp.StatusCode, "body", string(body))
		return nil, fmt.Errorf("received non-OK HTTP status: %d", resp.StatusCode)
	}

	var feed scoresFeed
	if err := xml.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, fmt.Errorf("failed to decode feed: %w", err)
	}
	return &feed, nil
}

// parseFeedTime combines the feed's date ("02.01.2006") and optional time
// ("15:04") attributes. Returns nil when the date is missing or malformed.
func parseFeedTime(date, clock string) *time.Time {
	if date == "" {
		return nil
	}
	layout := "02.01.2006"
	value := date
	if clock != "" {
		layout = "02.01.2006 15:04"
		value = date + " " + clock
	}
	t, err := time.Parse(layout, value)
	if err != nil {
		// Retry date-only; some feed rows carry placeholder times.
		t, err = time.Parse("02.01.2006", date)
		if err != nil {
			return nil
		}
	}
	t = t.UTC()
	return &t
}
