package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/mlbv/internal/models"
	"github.com/desertthunder/mlbv/internal/shared"
)

const (
	// StatsBaseURL is the production stats API.
	StatsBaseURL = "https://statsapi.mlb.com"

	scheduleHydrate = ",broadcasts(all),game(content(media(epg)),editorial(preview,recap)),linescore,team,probablePitcher(note)"
)

// ScheduleClient reads schedules from the stats API.
type ScheduleClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *log.Logger
}

// NewScheduleClient creates a schedule client. Empty or nil arguments use production defaults.
func NewScheduleClient(baseURL string, client *http.Client, logger *log.Logger) *ScheduleClient {
	if baseURL == "" {
		baseURL = StatsBaseURL
	}
	if client == nil {
		client = shared.NewHTTPClient(0)
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &ScheduleClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: client,
		logger:     logger,
	}
}

func (c *ScheduleClient) fetch(ctx context.Context, start, end time.Time) (*models.ScheduleResponse, error) {
	params := url.Values{}
	params.Set("sportId", "1")
	params.Set("startDate", start.Format(shared.DateLayout))
	params.Set("endDate", end.Format(shared.DateLayout))
	params.Set("hydrate", scheduleHydrate)

	endpoint := c.baseURL + "/api/v1/schedule?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create schedule request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("fetching schedule", "start", params.Get("startDate"), "end", params.Get("endDate"))
	body, err := shared.Do(c.httpClient, req)
	if err != nil {
		return nil, fmt.Errorf("schedule: %w", err)
	}

	var resp models.ScheduleResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: schedule: %v", shared.ErrResponseParse, err)
	}
	return &resp, nil
}

// FetchScheduleByDate returns the games on date. A day without games, or without games that pass filter, is nil.
func (c *ScheduleClient) FetchScheduleByDate(ctx context.Context, date time.Time, filter *models.ScheduleFilter) (*models.DaySchedule, error) {
	resp, err := c.fetch(ctx, date, date)
	if err != nil {
		return nil, err
	}

	switch n := len(resp.Dates); n {
	case 0:
		return nil, nil
	case 1:
	default:
		return nil, fmt.Errorf("%w: expected 1 date for %s but got %d", shared.ErrUnexpectedAPIShape, date.Format(shared.DateLayout), n)
	}

	days := filter.Apply(resp.Dates)
	if len(days) == 0 {
		return nil, nil
	}
	return &days[0], nil
}

// FetchScheduleByRange returns every day between start and end, inclusive, that has games. The result is nil when there are none.
func (c *ScheduleClient) FetchScheduleByRange(ctx context.Context, start, end time.Time, filter *models.ScheduleFilter) ([]models.DaySchedule, error) {
	if end.Before(start) {
		start, end = end, start
	}

	resp, err := c.fetch(ctx, start, end)
	if err != nil {
		return nil, err
	}

	days := filter.Apply(resp.Dates)
	if len(days) == 0 {
		return nil, nil
	}
	return days, nil
}

// FindTeamGames returns the games in which team is home or away, or nil when it is not playing.
func FindTeamGames(day *models.DaySchedule, team models.Team) []models.GameRecord {
	if day == nil {
		return nil
	}

	var games []models.GameRecord
	for _, g := range day.Games {
		if g.Involves(team.Name) {
			games = append(games, g)
		}
	}
	return games
}
