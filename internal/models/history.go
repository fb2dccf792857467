package models

import (
	"fmt"
	"time"
)

// WatchKind distinguishes full games from highlight playback in the watch history.
type WatchKind string

const (
	WatchGame      WatchKind = "game"
	WatchCondensed WatchKind = "condensed"
	WatchRecap     WatchKind = "recap"
)

var _ Model = (*WatchRecord)(nil)

// WatchRecord is one resolved playback. It never holds the playback token.
type WatchRecord struct {
	id         string
	TeamCode   string
	GameDate   string
	GamePk     int64
	Matchup    string
	Kind       WatchKind
	MediaType  MediaType
	FeedType   FeedType
	MediaID    string
	resolvedAt time.Time
}

// NewWatchRecord builds an unsaved record for a resolution that just completed.
func NewWatchRecord(team Team, game GameRecord, kind WatchKind, media MediaType, feed FeedType, mediaID string) *WatchRecord {
	return &WatchRecord{
		TeamCode:   team.Code,
		GameDate:   game.OfficialDate,
		GamePk:     game.GamePk,
		Matchup:    game.MatchupLabel(),
		Kind:       kind,
		MediaType:  media,
		FeedType:   feed,
		MediaID:    mediaID,
		resolvedAt: time.Now().UTC(),
	}
}

func (w *WatchRecord) ID() string                { return w.id }
func (w *WatchRecord) SetID(id string)           { w.id = id }
func (w *WatchRecord) CreatedAt() time.Time      { return w.resolvedAt }
func (w *WatchRecord) SetResolvedAt(t time.Time) { w.resolvedAt = t }

// Validate checks required fields.
func (w *WatchRecord) Validate() error {
	switch {
	case w.TeamCode == "":
		return fmt.Errorf("team code is required")
	case w.GamePk == 0:
		return fmt.Errorf("game pk is required")
	case w.Kind == "":
		return fmt.Errorf("kind is required")
	case w.resolvedAt.IsZero():
		return fmt.Errorf("resolved_at is required")
	}
	return nil
}
