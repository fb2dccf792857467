package formatter

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/desertthunder/mlbv/internal/models"
)

// HistoryRow is one watch history entry as displayed.
type HistoryRow struct {
	ResolvedAt string `json:"resolved_at"`
	Team       string `json:"team"`
	GameDate   string `json:"game_date"`
	GamePk     int64  `json:"game_pk"`
	Matchup    string `json:"matchup"`
	Kind       string `json:"kind"`
	Feed       string `json:"feed"`
	Media      string `json:"media"`
}

// BuildHistoryRows keeps the order of records.
func BuildHistoryRows(records []*models.WatchRecord, loc *time.Location) []HistoryRow {
	if loc == nil {
		loc = time.Local
	}
	rows := make([]HistoryRow, 0, len(records))
	for _, r := range records {
		rows = append(rows, HistoryRow{
			ResolvedAt: r.CreatedAt().In(loc).Format("2006-01-02 15:04"),
			Team:       r.TeamCode,
			GameDate:   r.GameDate,
			GamePk:     r.GamePk,
			Matchup:    r.Matchup,
			Kind:       string(r.Kind),
			Feed:       r.FeedType.Label(),
			Media:      string(r.MediaType),
		})
	}
	return rows
}

// RenderHistory writes records as a table, or a short notice when there are none.
func RenderHistory(w io.Writer, records []*models.WatchRecord, loc *time.Location) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(w, "No watch history")
		return err
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Watched", "Team", "Date", "Matchup", "Kind", "Feed", "Media").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	for _, r := range BuildHistoryRows(records, loc) {
		t.Row(r.ResolvedAt, r.Team, r.GameDate, r.Matchup, r.Kind, r.Feed, r.Media)
	}

	if _, err := fmt.Fprintln(w, t.Render()); err != nil {
		return fmt.Errorf("failed to write history: %w", err)
	}
	return nil
}

// WriteHistoryJSON writes records as an indented JSON array.
func WriteHistoryJSON(w io.Writer, records []*models.WatchRecord, loc *time.Location) error {
	return writeJSON(w, BuildHistoryRows(records, loc))
}
