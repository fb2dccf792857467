// package formatter renders schedules and watch history as terminal tables or JSON
package formatter

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/desertthunder/mlbv/internal/models"
)

// DefaultFavoriteColor is used for favorite rows when no color is configured.
const DefaultFavoriteColor = "#FFA500"

var (
	dayHeader   = lipgloss.NewStyle().Bold(true).MarginTop(1)
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// ScheduleOptions controls which columns are shown and how favorites are highlighted.
type ScheduleOptions struct {
	Scores        bool
	Favorites     []string // team codes
	FavoriteColor string
	Location      *time.Location // start times are shown in this zone, defaulting to local time
}

// ScheduleRow is one game as displayed in the schedule table.
type ScheduleRow struct {
	Date       string `json:"date"`
	GamePk     int64  `json:"game_pk"`
	Matchup    string `json:"matchup"`
	Series     string `json:"series"`
	Score      string `json:"score,omitempty"`
	State      string `json:"state"`
	Feeds      string `json:"feeds"`
	Highlights string `json:"highlights"`
	Favorite   bool   `json:"favorite"`
}

// BuildRows converts a day's games into table rows, in schedule order.
func BuildRows(day models.DaySchedule, opts ScheduleOptions) []ScheduleRow {
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	favorites := favoriteNames(opts.Favorites)

	rows := make([]ScheduleRow, 0, len(day.Games))
	for _, g := range day.Games {
		row := ScheduleRow{
			Date:       day.Date,
			GamePk:     g.GamePk,
			Matchup:    matchupCell(g, loc),
			Series:     fmt.Sprintf("%d/%d", g.SeriesGameNumber, g.GamesInSeries),
			State:      stateCell(g),
			Feeds:      feedsCell(g),
			Highlights: highlightsCell(g),
			Favorite:   slices.Contains(favorites, g.Teams.Home.Team.Name) || slices.Contains(favorites, g.Teams.Away.Team.Name),
		}
		if opts.Scores {
			row.Score = scoreCell(g)
		}
		rows = append(rows, row)
	}
	return rows
}

// RenderSchedule writes one table per day. Days without games are skipped.
func RenderSchedule(w io.Writer, days []models.DaySchedule, opts ScheduleOptions) error {
	color := opts.FavoriteColor
	if color == "" {
		color = DefaultFavoriteColor
	}
	favorite := cellStyle.Foreground(lipgloss.Color(color))

	headers := []string{"Matchup", "Series", "Score", "State", "Feeds", "Highlights"}
	if !opts.Scores {
		headers = slices.Delete(headers, 2, 3)
	}

	for _, day := range days {
		if len(day.Games) == 0 {
			continue
		}
		rows := BuildRows(day, opts)

		t := table.New().
			Border(lipgloss.NormalBorder()).
			Headers(headers...).
			StyleFunc(func(row, col int) lipgloss.Style {
				switch {
				case row == table.HeaderRow:
					return headerStyle
				case row >= 0 && row < len(rows) && rows[row].Favorite:
					return favorite
				default:
					return cellStyle
				}
			})

		for _, r := range rows {
			cells := []string{r.Matchup, r.Series, r.Score, r.State, r.Feeds, r.Highlights}
			if !opts.Scores {
				cells = slices.Delete(cells, 2, 3)
			}
			t.Row(cells...)
		}

		if _, err := fmt.Fprintln(w, dayHeader.Render(dayTitle(day))); err != nil {
			return fmt.Errorf("failed to write schedule: %w", err)
		}
		if _, err := fmt.Fprintln(w, t.Render()); err != nil {
			return fmt.Errorf("failed to write schedule: %w", err)
		}
	}
	return nil
}

// WriteScheduleJSON writes the rows of every day as one indented JSON array.
func WriteScheduleJSON(w io.Writer, days []models.DaySchedule, opts ScheduleOptions) error {
	rows := []ScheduleRow{}
	for _, day := range days {
		rows = append(rows, BuildRows(day, opts)...)
	}
	return writeJSON(w, rows)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

func dayTitle(day models.DaySchedule) string {
	d := day.Day()
	if d.IsZero() {
		return day.Date
	}
	return d.Format("2006-01-02 Monday")
}

func matchupCell(g models.GameRecord, loc *time.Location) string {
	start := "TBD"
	if t, err := g.StartTime(); err == nil {
		start = t.In(loc).Format("3:04 pm")
	}
	return start + " - " + g.MatchupLabel()
}

func scoreCell(g models.GameRecord) string {
	if g.Status.AbstractGameState == "Preview" {
		return ""
	}
	away, home := g.Runs()
	return fmt.Sprintf("%d-%d", away, home)
}

func stateCell(g models.GameRecord) string {
	if g.IsLive() && g.Linescore != nil && g.Linescore.CurrentInningOrdinal != "" {
		return strings.TrimSpace(g.Linescore.InningHalf + " " + g.Linescore.CurrentInningOrdinal)
	}
	return g.Status.DetailedState
}

func feedsCell(g models.GameRecord) string {
	var feeds []string
	for _, b := range g.Broadcasts {
		if b.Type != "TV" || !b.AvailableForStreaming {
			continue
		}
		if label := b.FeedLabel(); label != "" {
			feeds = append(feeds, label)
		}
	}
	slices.Sort(feeds)
	return strings.Join(slices.Compact(feeds), ", ")
}

func highlightsCell(g models.GameRecord) string {
	titles := g.HighlightTitles()
	if len(titles) == 0 {
		return "None"
	}
	slices.Sort(titles)
	return strings.Join(titles, ", ")
}

func favoriteNames(codes []string) []string {
	var names []string
	for _, code := range codes {
		if team, err := models.ParseTeamCode(code); err == nil {
			names = append(names, team.Name)
		}
	}
	return names
}
