package services

import (
	"context"
	"time"

	"github.com/desertthunder/mlbv/internal/models"
)

// ScheduleService fetches a single day of games.
type ScheduleService interface {
	// FetchScheduleByDate returns the games on date, or nil when none are scheduled.
	FetchScheduleByDate(ctx context.Context, date time.Time, filter *models.ScheduleFilter) (*models.DaySchedule, error)
}

// MediaGateway performs the GraphQL operations that turn a game into a playable stream.
type MediaGateway interface {
	// ContentSearch lists every stream recorded for gamePk.
	ContentSearch(ctx context.Context, gamePk int64) ([]models.StreamCandidate, error)

	// InitSession registers a new device and session pair.
	InitSession(ctx context.Context) (sessionID, deviceID string, err error)

	// InitPlaybackSession starts a fresh session, then requests a playback grant for mediaID.
	InitPlaybackSession(ctx context.Context, mediaID string) (*models.PlaybackGrant, error)
}

var (
	_ ScheduleService = (*ScheduleClient)(nil)
	_ MediaGateway    = (*MediaGatewayClient)(nil)
)
