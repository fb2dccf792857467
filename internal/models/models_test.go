package models

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/desertthunder/mlbv/internal/shared"
)

func TestTeams(t *testing.T) {
	t.Run("ParseTeamCode", func(t *testing.T) {
		tc := []struct {
			name    string
			code    string
			want    string
			wantErr bool
		}{
			{name: "upper", code: "TOR", want: "Toronto Blue Jays"},
			{name: "lower", code: "nym", want: "New York Mets"},
			{name: "padded", code: " wsh ", want: "Washington Nationals"},
			{name: "athletics", code: "ath", want: "Athletics"},
			{name: "retired oakland", code: "OAK", wantErr: true},
			{name: "unknown", code: "XYZ", wantErr: true},
		}

		for _, tt := range tc {
			t.Run(tt.name, func(t *testing.T) {
				got, err := ParseTeamCode(tt.code)
				if tt.wantErr {
					if !errors.Is(err, shared.ErrInvalidTeam) {
						t.Errorf("expected ErrInvalidTeam, got %v", err)
					}
					return
				}
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if got.Name != tt.want {
					t.Errorf("expected %s, got %s", tt.want, got.Name)
				}
			})
		}
	})

	t.Run("Table Has Thirty Unique Clubs", func(t *testing.T) {
		all := Teams()
		if len(all) != 30 {
			t.Fatalf("expected 30 teams, got %d", len(all))
		}

		codes := map[string]bool{}
		perDivision := map[Division]int{}
		for _, team := range all {
			if codes[team.Code] {
				t.Errorf("duplicate code %s", team.Code)
			}
			codes[team.Code] = true
			perDivision[team.Division]++
		}
		for div, n := range perDivision {
			if n != 5 {
				t.Errorf("expected 5 teams in %s, got %d", div, n)
			}
		}
	})

	t.Run("Lookups", func(t *testing.T) {
		team, ok := TeamByName("St. Louis Cardinals")
		if !ok || team.Code != "STL" {
			t.Errorf("expected STL, got %+v", team)
		}
		if team.League() != NationalLeague {
			t.Errorf("expected NL, got %s", team.League())
		}

		team, ok = TeamByID(141)
		if !ok || team.Code != "TOR" {
			t.Errorf("expected TOR for id 141, got %+v", team)
		}

		if _, ok := TeamByName("Montreal Expos"); ok {
			t.Error("expected no match for defunct team")
		}
	})

	t.Run("Division Labels", func(t *testing.T) {
		if ALCentral.String() != "AL Central" {
			t.Errorf("unexpected label %s", ALCentral.String())
		}
		if NLWest.League() != NationalLeague {
			t.Errorf("expected NL for NLW")
		}
	})
}

const scheduleFixture = `{
  "totalGames": 1,
  "dates": [{
    "date": "2024-10-01",
    "games": [{
      "gamePk": 775345,
      "gameDate": "2024-10-01T20:32:00Z",
      "officialDate": "2024-10-01",
      "status": {"abstractGameState": "Final", "codedGameState": "F", "detailedState": "Final", "statusCode": "F"},
      "teams": {
        "away": {"score": 1, "team": {"id": 116, "name": "Detroit Tigers"}},
        "home": {"score": 3, "team": {"id": 117, "name": "Houston Astros"}}
      },
      "linescore": {"currentInning": 9, "inningHalf": "Top", "teams": {"home": {"runs": 3}, "away": {"runs": 1}}},
      "broadcasts": [
        {"id": 1, "name": "ESPN", "type": "TV", "language": "en", "isNational": true, "callSign": "ESPN", "homeAway": "home", "availableForStreaming": true, "mediaState": {"mediaStateCode": "MEDIA_ARCHIVE"}}
      ],
      "content": {"link": "/api/v1/game/775345/content", "media": {
        "epgAlternate": [
          {"title": "Extended Highlights", "items": [{"id": "a", "playbacks": [
            {"name": "hlsCloud", "url": "https://example.com/cg.m3u8"},
            {"name": "mp4Avc", "url": "https://example.com/cg.mp4"}
          ]}]},
          {"title": "Daily Recap", "items": [{"id": "b", "playbacks": [{"name": "HTTP_CLOUD_WIRED", "url": "https://example.com/recap.mp4"}]}]}
        ],
        "freeGame": false, "enhancedGame": false
      }},
      "gameNumber": 1,
      "doubleHeader": "N",
      "gamesInSeries": 3,
      "seriesGameNumber": 1
    }]
  }]
}`

func TestScheduleDecoding(t *testing.T) {
	var resp ScheduleResponse
	if err := json.Unmarshal([]byte(scheduleFixture), &resp); err != nil {
		t.Fatalf("failed to decode fixture: %v", err)
	}

	if len(resp.Dates) != 1 || len(resp.Dates[0].Games) != 1 {
		t.Fatalf("expected one date with one game, got %+v", resp)
	}

	day := resp.Dates[0]
	if got := day.Day().Format(shared.DateLayout); got != "2024-10-01" {
		t.Errorf("expected day 2024-10-01, got %s", got)
	}

	game := day.Games[0]

	t.Run("Matchup Helpers", func(t *testing.T) {
		if !game.Involves("Detroit Tigers") || !game.Involves("Houston Astros") {
			t.Error("expected both teams to be involved")
		}
		if game.Involves("Toronto Blue Jays") {
			t.Error("expected Toronto not to be involved")
		}
		if !game.IsHome("Houston Astros") || game.IsHome("Detroit Tigers") {
			t.Error("home side mismatch")
		}
		if game.MatchupLabel() != "Detroit Tigers at Houston Astros" {
			t.Errorf("unexpected matchup %s", game.MatchupLabel())
		}
		if game.IsLive() {
			t.Error("final game should not be live")
		}
	})

	t.Run("Runs", func(t *testing.T) {
		away, home := game.Runs()
		if away != 1 || home != 3 {
			t.Errorf("expected 1-3, got %d-%d", away, home)
		}

		var empty GameRecord
		if a, h := empty.Runs(); a != 0 || h != 0 {
			t.Errorf("expected 0-0 for missing scores, got %d-%d", a, h)
		}
	})

	t.Run("StartTime", func(t *testing.T) {
		start, err := game.StartTime()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if start.Hour() != 20 || start.Minute() != 32 {
			t.Errorf("unexpected start %v", start)
		}
	})

	t.Run("Highlights", func(t *testing.T) {
		cg := game.Highlight(CondensedGame)
		if cg == nil {
			t.Fatal("expected condensed game group")
		}
		pb, ok := cg.Items[0].PreferredPlayback()
		if !ok || pb.Name != "mp4Avc" {
			t.Errorf("expected mp4Avc playback, got %+v", pb)
		}

		recap := game.Highlight(Recap)
		if recap == nil {
			t.Fatal("expected recap group")
		}
		pb, ok = recap.Items[0].PreferredPlayback()
		if !ok || pb.URL != "https://example.com/recap.mp4" {
			t.Errorf("expected fallback to first playback, got %+v", pb)
		}

		if titles := game.HighlightTitles(); len(titles) != 2 {
			t.Errorf("expected 2 titles, got %v", titles)
		}

		var bare GameRecord
		if bare.Highlight(Recap) != nil {
			t.Error("expected nil highlight without content")
		}
	})

	t.Run("Broadcast Feed Label", func(t *testing.T) {
		if game.Broadcasts[0].FeedLabel() != "national" {
			t.Errorf("expected national, got %s", game.Broadcasts[0].FeedLabel())
		}
		local := Broadcast{HomeAway: "away"}
		if local.FeedLabel() != "away" {
			t.Errorf("expected away, got %s", local.FeedLabel())
		}
	})
}

func TestFeedAndMediaTypes(t *testing.T) {
	tc := []struct {
		input   string
		want    FeedType
		wantErr bool
	}{
		{input: "home", want: FeedHome},
		{input: "AWAY", want: FeedAway},
		{input: "National", want: FeedNetwork},
		{input: "network", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tc {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFeedType(tt.input)
			if tt.wantErr {
				if !errors.Is(err, shared.ErrInvalidFeed) {
					t.Errorf("expected ErrInvalidFeed, got %v", err)
				}
				return
			}
			if got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}

	if FeedNetwork.Label() != "national" || FeedHome.Label() != "home" {
		t.Error("unexpected feed labels")
	}
	if MediaTypeFor(true) != MediaAudio || MediaTypeFor(false) != MediaVideo {
		t.Error("unexpected media type mapping")
	}

	var candidate StreamCandidate
	raw := `{"mediaId":"m1","feedType":"HOME","language":"en","mediaState":{"state":"OFF","mediaType":"VIDEO"}}`
	if err := json.Unmarshal([]byte(raw), &candidate); err != nil {
		t.Fatalf("failed to decode candidate: %v", err)
	}
	if candidate.FeedType != FeedHome || candidate.MediaState.MediaType != MediaVideo {
		t.Errorf("unexpected candidate %+v", candidate)
	}
	if candidate.Active() {
		t.Error("OFF candidate should not be active")
	}
}

func TestSessionToken(t *testing.T) {
	expiresAt := time.Date(2025, time.April, 1, 12, 0, 0, 0, time.UTC)
	token := &SessionToken{AccessToken: "abc", ExpiresIn: 3600, ExpiresAt: expiresAt}

	tc := []struct {
		name string
		now  time.Time
		want bool
	}{
		{name: "well before expiry", now: expiresAt.Add(-time.Hour), want: true},
		{name: "just inside margin", now: expiresAt.Add(-61 * time.Second), want: true},
		{name: "exactly at margin", now: expiresAt.Add(-60 * time.Second), want: false},
		{name: "inside margin", now: expiresAt.Add(-30 * time.Second), want: false},
		{name: "after expiry", now: expiresAt.Add(time.Minute), want: false},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			if got := token.IsValid(tt.now); got != tt.want {
				t.Errorf("IsValid(%v) = %v, want %v", tt.now, got, tt.want)
			}
		})
	}

	t.Run("Zero And Nil Tokens Are Invalid", func(t *testing.T) {
		var nilToken *SessionToken
		if nilToken.IsValid(time.Now()) {
			t.Error("nil token should be invalid")
		}
		if (&SessionToken{AccessToken: "abc"}).IsValid(time.Now()) {
			t.Error("token without expiry should be invalid")
		}
	})

	t.Run("Remaining", func(t *testing.T) {
		if got := token.Remaining(expiresAt.Add(-2 * time.Minute)); got != time.Minute {
			t.Errorf("expected 1m remaining, got %v", got)
		}
		if got := token.Remaining(expiresAt); got != 0 {
			t.Errorf("expected 0 remaining, got %v", got)
		}
	})
}

func TestWatchRecord(t *testing.T) {
	team, _ := ParseTeamCode("TOR")
	game := GameRecord{
		GamePk:       1,
		OfficialDate: "2024-10-01",
		Teams: Matchup{
			Home: TeamSide{Team: GameTeam{Name: "Toronto Blue Jays"}},
			Away: TeamSide{Team: GameTeam{Name: "Boston Red Sox"}},
		},
	}

	rec := NewWatchRecord(team, game, WatchGame, MediaVideo, FeedHome, "media-1")
	if err := rec.Validate(); err != nil {
		t.Fatalf("expected valid record, got %v", err)
	}
	if rec.Matchup != "Boston Red Sox at Toronto Blue Jays" {
		t.Errorf("unexpected matchup %s", rec.Matchup)
	}

	rec.GamePk = 0
	if err := rec.Validate(); err == nil {
		t.Error("expected validation error without game pk")
	}
}
