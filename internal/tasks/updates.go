package tasks

import (
	"fmt"

	"github.com/desertthunder/mlbv/internal/models"
)

// ProgressUpdate represents a progress event during a resolution.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Resolution phase
	Step    int    // Current step number within the resolution
	Total   int    // Total steps in the resolution
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Resolution phase enumeration
type Phase int

const (
	FetchSchedule Phase = iota
	ChooseGame
	SearchStreams
	ChooseFeed
	InitPlayback
	FindHighlight
	Resolved
)

func (p Phase) String() string {
	switch p {
	case FetchSchedule:
		return "fetch_schedule"
	case ChooseGame:
		return "choose_game"
	case SearchStreams:
		return "search_streams"
	case ChooseFeed:
		return "choose_feed"
	case InitPlayback:
		return "init_playback"
	case FindHighlight:
		return "find_highlight"
	case Resolved:
		return "resolved"
	default:
		return ""
	}
}

const playbackSteps = 5

func fetchScheduleUpdate(step, total int, team models.Team, date string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchSchedule,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Fetching %s schedule for %s...", team.Code, date),
	}
}

func chooseGameUpdate(step, total int, game models.GameRecord) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ChooseGame,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Selected %s (game %d)", game.MatchupLabel(), game.GameNumber),
		Data:    game,
	}
}

func searchStreamsUpdate(step, total int, gamePk int64) ProgressUpdate {
	return ProgressUpdate{
		Phase:   SearchStreams,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Searching streams for game %d...", gamePk),
	}
}

func chooseFeedUpdate(step, total int, stream *models.StreamCandidate) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ChooseFeed,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Using %s %s feed", stream.FeedType.Label(), stream.MediaState.MediaType),
		Data:    stream,
	}
}

func initPlaybackUpdate(step, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   InitPlayback,
		Step:    step,
		Total:   total,
		Message: "Starting playback session...",
	}
}

func findHighlightUpdate(step, total int, kind models.HighlightKind, game models.GameRecord) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FindHighlight,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] %s: %s", step, total, kind, game.MatchupLabel()),
	}
}

func resolvedUpdate(step, total int, url string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Resolved,
		Step:    step,
		Total:   total,
		Message: "✓ Stream ready",
		Data:    url,
	}
}
