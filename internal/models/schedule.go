package models

import (
	"time"
)

// ScheduleResponse is the body returned by the stats API schedule endpoint.
type ScheduleResponse struct {
	TotalGames int           `json:"totalGames"`
	Dates      []DaySchedule `json:"dates"`
}

// DaySchedule holds every game scheduled on one calendar date.
type DaySchedule struct {
	Date  string       `json:"date"` // YYYY-MM-DD
	Games []GameRecord `json:"games"`
}

// Day parses Date. The zero time is returned when the upstream value is malformed.
func (d DaySchedule) Day() time.Time {
	t, _ := time.Parse("2006-01-02", d.Date)
	return t
}

// GameRecord is one scheduled game with the hydrations requested by the schedule client.
type GameRecord struct {
	GamePk           int64        `json:"gamePk"`
	GameDate         string       `json:"gameDate"` // RFC 3339 start time
	OfficialDate     string       `json:"officialDate"`
	Status           GameStatus   `json:"status"`
	Teams            Matchup      `json:"teams"`
	Linescore        *Linescore   `json:"linescore,omitempty"`
	Broadcasts       []Broadcast  `json:"broadcasts,omitempty"`
	Content          *GameContent `json:"content,omitempty"`
	GameNumber       int          `json:"gameNumber"`
	DoubleHeader     string       `json:"doubleHeader"`
	GamesInSeries    int          `json:"gamesInSeries"`
	SeriesGameNumber int          `json:"seriesGameNumber"`
}

// GameStatus carries the status strings reported by the stats API.
type GameStatus struct {
	AbstractGameState string `json:"abstractGameState"` // Preview, Live, Final
	CodedGameState    string `json:"codedGameState"`
	DetailedState     string `json:"detailedState"`
	StatusCode        string `json:"statusCode"`
}

// Matchup pairs the home and away sides of a game.
type Matchup struct {
	Home TeamSide `json:"home"`
	Away TeamSide `json:"away"`
}

// TeamSide is one side of a matchup.
type TeamSide struct {
	Score    *int     `json:"score,omitempty"`
	IsWinner *bool    `json:"isWinner,omitempty"`
	Team     GameTeam `json:"team"`
}

// GameTeam identifies a team inside a schedule response.
type GameTeam struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation,omitempty"`
}

// Linescore is the current inning state and run totals.
type Linescore struct {
	CurrentInning        int            `json:"currentInning,omitempty"`
	CurrentInningOrdinal string         `json:"currentInningOrdinal,omitempty"`
	InningHalf           string         `json:"inningHalf,omitempty"`
	InningState          string         `json:"inningState,omitempty"`
	Teams                LinescoreTeams `json:"teams"`
}

type LinescoreTeams struct {
	Home RunLine `json:"home"`
	Away RunLine `json:"away"`
}

type RunLine struct {
	Runs   *int `json:"runs,omitempty"`
	Hits   *int `json:"hits,omitempty"`
	Errors *int `json:"errors,omitempty"`
}

// Broadcast is one TV or radio broadcast listed on the schedule.
type Broadcast struct {
	ID                    int                 `json:"id"`
	Name                  string              `json:"name"`
	Type                  string              `json:"type"` // TV, AM, FM
	Language              string              `json:"language"`
	IsNational            bool                `json:"isNational"`
	CallSign              string              `json:"callSign"`
	HomeAway              string              `json:"homeAway"`
	AvailableForStreaming bool                `json:"availableForStreaming"`
	MediaState            BroadcastMediaState `json:"mediaState"`
}

type BroadcastMediaState struct {
	MediaStateCode string `json:"mediaStateCode"`
	MediaStateText string `json:"mediaStateText"`
}

// FeedLabel is "national" for national broadcasts and the home/away side otherwise.
func (b Broadcast) FeedLabel() string {
	if b.IsNational {
		return "national"
	}
	return b.HomeAway
}

// GameContent holds the editorial and media hydrations.
type GameContent struct {
	Link  string       `json:"link"`
	Media ContentMedia `json:"media"`
}

type ContentMedia struct {
	EpgAlternate []HighlightGroup `json:"epgAlternate,omitempty"`
	FreeGame     bool             `json:"freeGame"`
	EnhancedGame bool             `json:"enhancedGame"`
}

// HighlightGroup is one titled set of highlight videos, e.g. "Extended Highlights".
type HighlightGroup struct {
	Title string          `json:"title"`
	Items []HighlightItem `json:"items"`
}

type HighlightItem struct {
	Type        string              `json:"type"`
	ID          string              `json:"id"`
	Headline    string              `json:"headline"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Duration    string              `json:"duration"`
	Playbacks   []HighlightPlayback `json:"playbacks"`
}

type HighlightPlayback struct {
	Name   string `json:"name"`
	URL    string `json:"url"`
	Width  string `json:"width"`
	Height string `json:"height"`
}

// HighlightKind names a highlight group by its upstream title.
type HighlightKind string

const (
	CondensedGame HighlightKind = "Extended Highlights"
	Recap         HighlightKind = "Daily Recap"
)

var playbackPreference = []string{"mp4Avc", "hlsCloud"}

// PreferredPlayback picks mp4Avc, then hlsCloud, then the first playback with a URL.
func (i HighlightItem) PreferredPlayback() (HighlightPlayback, bool) {
	for _, name := range playbackPreference {
		for _, p := range i.Playbacks {
			if p.Name == name && p.URL != "" {
				return p, true
			}
		}
	}
	for _, p := range i.Playbacks {
		if p.URL != "" {
			return p, true
		}
	}
	return HighlightPlayback{}, false
}

// IsLive reports whether the game is in progress.
func (g GameRecord) IsLive() bool {
	return g.Status.AbstractGameState == "Live"
}

// Involves reports whether the named team plays in this game.
func (g GameRecord) Involves(teamName string) bool {
	return g.Teams.Home.Team.Name == teamName || g.Teams.Away.Team.Name == teamName
}

// IsHome reports whether the named team is the home side.
func (g GameRecord) IsHome(teamName string) bool {
	return g.Teams.Home.Team.Name == teamName
}

// MatchupLabel renders "Away at Home".
func (g GameRecord) MatchupLabel() string {
	return g.Teams.Away.Team.Name + " at " + g.Teams.Home.Team.Name
}

// StartTime parses GameDate.
func (g GameRecord) StartTime() (time.Time, error) {
	return time.Parse(time.RFC3339, g.GameDate)
}

// Runs returns the away and home run totals, preferring the linescore. Missing values count as zero.
func (g GameRecord) Runs() (away, home int) {
	if g.Linescore != nil {
		away, home = deref(g.Linescore.Teams.Away.Runs), deref(g.Linescore.Teams.Home.Runs)
		if g.Linescore.Teams.Away.Runs != nil || g.Linescore.Teams.Home.Runs != nil {
			return away, home
		}
	}
	return deref(g.Teams.Away.Score), deref(g.Teams.Home.Score)
}

// Highlight returns the group matching kind, or nil if the game has none.
func (g GameRecord) Highlight(kind HighlightKind) *HighlightGroup {
	if g.Content == nil {
		return nil
	}
	for i := range g.Content.Media.EpgAlternate {
		if g.Content.Media.EpgAlternate[i].Title == string(kind) {
			return &g.Content.Media.EpgAlternate[i]
		}
	}
	return nil
}

// HighlightTitles lists the titles of every highlight group.
func (g GameRecord) HighlightTitles() []string {
	if g.Content == nil {
		return nil
	}
	titles := make([]string, 0, len(g.Content.Media.EpgAlternate))
	for _, h := range g.Content.Media.EpgAlternate {
		titles = append(titles, h.Title)
	}
	return titles
}

func deref(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
