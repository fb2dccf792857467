package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/mlbv/internal/models"
)

var _ list.Item = gameItem{}

// gameItem wraps [models.GameRecord] to implement [list.Item].
type gameItem struct {
	game     models.GameRecord
	favorite bool
	loc      *time.Location
}

func (i gameItem) FilterValue() string { return i.game.MatchupLabel() }

func (i gameItem) Title() string {
	start := "TBD"
	if t, err := i.game.StartTime(); err == nil {
		start = t.In(i.loc).Format("3:04 pm")
	}
	title := fmt.Sprintf("%s  %s", start, i.game.MatchupLabel())
	if i.favorite {
		return styles.favorite.Render("★ " + title)
	}
	return title
}

func (i gameItem) Description() string {
	parts := []string{i.game.Status.DetailedState}
	if i.game.DoubleHeader != "" && i.game.DoubleHeader != "N" {
		parts = append(parts, fmt.Sprintf("game %d", i.game.GameNumber))
	}
	if titles := i.game.HighlightTitles(); len(titles) > 0 {
		parts = append(parts, strings.Join(titles, ", "))
	}
	return strings.Join(parts, " • ")
}
