package tasks

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/mlbv/internal/models"
	"github.com/desertthunder/mlbv/internal/services"
	"github.com/desertthunder/mlbv/internal/shared"
	tu "github.com/desertthunder/mlbv/internal/testing"
)

type historyRecorder struct {
	records []*models.WatchRecord
	err     error
}

func (h *historyRecorder) Create(rec *models.WatchRecord) error {
	if h.err != nil {
		return h.err
	}
	h.records = append(h.records, rec)
	return nil
}

func matchup(pk int64, number int, state, away, home string) models.GameRecord {
	g := gameRecord(pk, number, state)
	g.OfficialDate = "2024-10-01"
	g.Teams.Away.Team.Name = away
	g.Teams.Home.Team.Name = home
	return g
}

func withHighlight(g models.GameRecord, kind models.HighlightKind, url string) models.GameRecord {
	g.Content = &models.GameContent{Media: models.ContentMedia{EpgAlternate: []models.HighlightGroup{{
		Title: string(kind),
		Items: []models.HighlightItem{{Playbacks: []models.HighlightPlayback{{Name: "mp4Avc", URL: url}}}},
	}}}}
	return g
}

func doubleheaderSchedule() *tu.MockScheduleService {
	return &tu.MockScheduleService{Days: map[string]*models.DaySchedule{
		"2024-10-01": {
			Date: "2024-10-01",
			Games: []models.GameRecord{
				withHighlight(matchup(775001, 1, "Final", "Boston Red Sox", "Toronto Blue Jays"), models.CondensedGame, "https://cdn.example.com/g1-condensed.mp4"),
				matchup(775002, 2, "Live", "Boston Red Sox", "Toronto Blue Jays"),
				withHighlight(matchup(775003, 1, "Final", "Texas Rangers", "Seattle Mariners"), models.Recap, "https://cdn.example.com/sea-recap.mp4"),
			},
		},
	}}
}

func newTestResolver(schedule services.ScheduleService, gateway *tu.MockMediaGateway, history HistoryRecorder, progress chan<- ProgressUpdate) *Resolver {
	return NewResolver(ResolverOpts{
		Schedule: schedule,
		Gateway:  func(*http.Client) services.MediaGateway { return gateway },
		History:  history,
		Language: "en",
		Progress: progress,
	})
}

func TestResolvePlaybackURL(t *testing.T) {
	ctx := context.Background()
	date := time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC)
	tor, _ := models.ParseTeamCode("TOR")

	t.Run("Doubleheader Selects Live Game", func(t *testing.T) {
		gateway := &tu.MockMediaGateway{Candidates: []models.StreamCandidate{
			stream("away-video", models.FeedAway, models.MediaVideo, "ON", "en"),
			stream("home-video", models.FeedHome, models.MediaVideo, "ON", "en"),
		}}
		history := &historyRecorder{}
		progress := make(chan ProgressUpdate, 16)
		r := newTestResolver(doubleheaderSchedule(), gateway, history, progress)

		url, err := r.ResolvePlaybackURL(ctx, http.DefaultClient, tor, date, models.MediaVideo, nil, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if url != "https://example.com/home-video.m3u8" {
			t.Errorf("unexpected url %q", url)
		}
		if len(gateway.Searched) != 1 || gateway.Searched[0] != 775002 {
			t.Errorf("expected content search for game 775002, got %v", gateway.Searched)
		}
		if gateway.SessionCalls != 1 {
			t.Errorf("expected one session init, got %d", gateway.SessionCalls)
		}

		if len(history.records) != 1 {
			t.Fatalf("expected one history record, got %d", len(history.records))
		}
		rec := history.records[0]
		if rec.TeamCode != "TOR" || rec.GamePk != 775002 || rec.Kind != models.WatchGame || rec.MediaID != "home-video" {
			t.Errorf("unexpected history record %+v", rec)
		}

		close(progress)
		var phases []Phase
		for u := range progress {
			phases = append(phases, u.Phase)
		}
		want := []Phase{FetchSchedule, ChooseGame, SearchStreams, ChooseFeed, InitPlayback, Resolved}
		if len(phases) != len(want) {
			t.Fatalf("expected phases %v, got %v", want, phases)
		}
		for i := range want {
			if phases[i] != want[i] {
				t.Errorf("phase %d: expected %s, got %s", i, want[i], phases[i])
			}
		}
	})

	t.Run("Explicit Game Number", func(t *testing.T) {
		gateway := &tu.MockMediaGateway{Candidates: []models.StreamCandidate{
			stream("home-video", models.FeedHome, models.MediaVideo, "ON", "en"),
		}}
		r := newTestResolver(doubleheaderSchedule(), gateway, nil, nil)

		if _, err := r.ResolvePlaybackURL(ctx, http.DefaultClient, tor, date, models.MediaVideo, nil, intPtr(1)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if gateway.Searched[0] != 775001 {
			t.Errorf("expected game 775001, got %d", gateway.Searched[0])
		}
	})

	t.Run("Feed Preference", func(t *testing.T) {
		gateway := &tu.MockMediaGateway{Candidates: []models.StreamCandidate{
			stream("home-video", models.FeedHome, models.MediaVideo, "ON", "en"),
			stream("away-video", models.FeedAway, models.MediaVideo, "ON", "en"),
		}}
		r := newTestResolver(doubleheaderSchedule(), gateway, nil, nil)
		away := models.FeedAway

		url, err := r.ResolvePlaybackURL(ctx, http.DefaultClient, tor, date, models.MediaVideo, &away, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(url, "away-video") {
			t.Errorf("expected away feed, got %q", url)
		}
	})

	t.Run("Team Not Playing", func(t *testing.T) {
		gateway := &tu.MockMediaGateway{}
		nyy, _ := models.ParseTeamCode("NYY")
		r := newTestResolver(doubleheaderSchedule(), gateway, nil, nil)

		url, err := r.ResolvePlaybackURL(ctx, http.DefaultClient, nyy, date, models.MediaVideo, nil, nil)
		if err != nil || url != "" {
			t.Errorf("expected empty result, got %q, %v", url, err)
		}
		if len(gateway.Searched) != 0 {
			t.Error("content search should not run")
		}
	})

	t.Run("No Streams", func(t *testing.T) {
		gateway := &tu.MockMediaGateway{Candidates: []models.StreamCandidate{
			stream("off", models.FeedHome, models.MediaVideo, "OFF", "en"),
		}}
		history := &historyRecorder{}
		r := newTestResolver(doubleheaderSchedule(), gateway, history, nil)

		url, err := r.ResolvePlaybackURL(ctx, http.DefaultClient, tor, date, models.MediaVideo, nil, nil)
		if err != nil || url != "" {
			t.Errorf("expected empty result, got %q, %v", url, err)
		}
		if len(gateway.PlaybackIDs) != 0 {
			t.Error("playback session should not start")
		}
		if len(history.records) != 0 {
			t.Error("nothing should be recorded")
		}
	})

	t.Run("Errors", func(t *testing.T) {
		tc := []struct {
			name     string
			schedule *tu.MockScheduleService
			gateway  *tu.MockMediaGateway
			number   *int
			want     error
		}{
			{
				name:     "schedule",
				schedule: &tu.MockScheduleService{Err: shared.ErrUnexpectedAPIShape},
				gateway:  &tu.MockMediaGateway{},
				want:     shared.ErrUnexpectedAPIShape,
			},
			{
				name:     "game number",
				schedule: doubleheaderSchedule(),
				gateway:  &tu.MockMediaGateway{},
				number:   intPtr(3),
				want:     shared.ErrInvalidGameNumber,
			},
			{
				name:     "content search",
				schedule: doubleheaderSchedule(),
				gateway:  &tu.MockMediaGateway{SearchErr: shared.ErrGraphQLRequest},
				want:     shared.ErrGraphQLRequest,
			},
			{
				name:     "playback",
				schedule: doubleheaderSchedule(),
				gateway: &tu.MockMediaGateway{
					Candidates:  []models.StreamCandidate{stream("home-video", models.FeedHome, models.MediaVideo, "ON", "en")},
					PlaybackErr: shared.ErrGraphQLParse,
				},
				want: shared.ErrGraphQLParse,
			},
		}

		for _, tt := range tc {
			t.Run(tt.name, func(t *testing.T) {
				r := newTestResolver(tt.schedule, tt.gateway, nil, nil)
				_, err := r.ResolvePlaybackURL(ctx, http.DefaultClient, tor, date, models.MediaVideo, nil, tt.number)
				if !errors.Is(err, tt.want) {
					t.Errorf("expected %v, got %v", tt.want, err)
				}
			})
		}
	})

	t.Run("History Failure Is Ignored", func(t *testing.T) {
		gateway := &tu.MockMediaGateway{Candidates: []models.StreamCandidate{
			stream("home-video", models.FeedHome, models.MediaVideo, "ON", "en"),
		}}
		r := newTestResolver(doubleheaderSchedule(), gateway, &historyRecorder{err: errors.New("disk full")}, nil)

		url, err := r.ResolvePlaybackURL(ctx, http.DefaultClient, tor, date, models.MediaVideo, nil, nil)
		if err != nil || url == "" {
			t.Errorf("expected url, got %q, %v", url, err)
		}
	})

	t.Run("Full Progress Channel", func(t *testing.T) {
		gateway := &tu.MockMediaGateway{Candidates: []models.StreamCandidate{
			stream("home-video", models.FeedHome, models.MediaVideo, "ON", "en"),
		}}
		progress := make(chan ProgressUpdate)
		r := newTestResolver(doubleheaderSchedule(), gateway, nil, progress)

		if _, err := r.ResolvePlaybackURL(ctx, http.DefaultClient, tor, date, models.MediaVideo, nil, nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestResolveHighlights(t *testing.T) {
	ctx := context.Background()
	date := time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC)
	tor, _ := models.ParseTeamCode("TOR")

	t.Run("Condensed Game", func(t *testing.T) {
		history := &historyRecorder{}
		r := newTestResolver(doubleheaderSchedule(), &tu.MockMediaGateway{}, history, nil)

		url, err := r.ResolveHighlightURL(ctx, tor, date, models.CondensedGame, intPtr(1))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if url != "https://cdn.example.com/g1-condensed.mp4" {
			t.Errorf("unexpected url %q", url)
		}
		if len(history.records) != 1 || history.records[0].Kind != models.WatchCondensed {
			t.Errorf("expected condensed history record, got %+v", history.records)
		}
	})

	t.Run("Missing Highlight", func(t *testing.T) {
		r := newTestResolver(doubleheaderSchedule(), &tu.MockMediaGateway{}, nil, nil)

		url, err := r.ResolveHighlightURL(ctx, tor, date, models.Recap, nil)
		if err != nil || url != "" {
			t.Errorf("expected empty result, got %q, %v", url, err)
		}
	})

	t.Run("All Games", func(t *testing.T) {
		r := newTestResolver(doubleheaderSchedule(), &tu.MockMediaGateway{}, nil, nil)

		links, err := r.ResolveHighlights(ctx, date, models.Recap, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(links) != 1 || links[0].Game.GamePk != 775003 {
			t.Errorf("expected the Seattle recap, got %+v", links)
		}
	})

	t.Run("Filtered", func(t *testing.T) {
		r := newTestResolver(doubleheaderSchedule(), &tu.MockMediaGateway{}, nil, nil)
		filter, err := models.ParseScheduleFilter("ale", nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		links, err := r.ResolveHighlights(ctx, date, models.CondensedGame, filter)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(links) != 1 || links[0].Game.GamePk != 775001 {
			t.Errorf("expected the Toronto condensed game, got %+v", links)
		}
	})

	t.Run("Empty Date", func(t *testing.T) {
		r := newTestResolver(doubleheaderSchedule(), &tu.MockMediaGateway{}, nil, nil)

		links, err := r.ResolveHighlights(ctx, date.AddDate(0, 0, 1), models.Recap, nil)
		if err != nil || links != nil {
			t.Errorf("expected no links, got %+v, %v", links, err)
		}
	})
}
