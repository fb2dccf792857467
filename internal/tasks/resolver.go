package tasks

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/mlbv/internal/models"
	"github.com/desertthunder/mlbv/internal/services"
	"github.com/desertthunder/mlbv/internal/shared"
)

// GatewayFactory builds a media gateway on top of an authorized HTTP client.
type GatewayFactory func(client *http.Client) services.MediaGateway

// HistoryRecorder stores completed resolutions. Implemented by repositories.WatchHistoryRepository.
type HistoryRecorder interface {
	Create(record *models.WatchRecord) error
}

// ResolverOpts configures a [Resolver]. Schedule and Gateway are required.
type ResolverOpts struct {
	Schedule services.ScheduleService
	Gateway  GatewayFactory
	History  HistoryRecorder
	Logger   *log.Logger
	Language string
	Progress chan<- ProgressUpdate
}

// Resolver turns a team and date into a playable URL.
//
// Each call runs the stages strictly in order: schedule, game, streams, feed, playback.
type Resolver struct {
	schedule services.ScheduleService
	gateway  GatewayFactory
	history  HistoryRecorder
	logger   *log.Logger
	language string
	progress chan<- ProgressUpdate
}

// NewResolver creates a resolver.
func NewResolver(opts ResolverOpts) *Resolver {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Resolver{
		schedule: opts.Schedule,
		gateway:  opts.Gateway,
		history:  opts.History,
		logger:   logger,
		language: opts.Language,
		progress: opts.Progress,
	}
}

// sendProgress sends a progress update through the channel without blocking.
func (r *Resolver) sendProgress(update ProgressUpdate) {
	if r.progress == nil {
		return
	}
	select {
	case r.progress <- update:
	default:
	}
}

// teamGame fetches the schedule and selects team's game. The zero game and false mean the team is not playing.
func (r *Resolver) teamGame(ctx context.Context, team models.Team, date time.Time, gameNumber *int) (models.GameRecord, bool, error) {
	day, err := r.schedule.FetchScheduleByDate(ctx, date, nil)
	if err != nil {
		return models.GameRecord{}, false, err
	}

	games := services.FindTeamGames(day, team)
	if games == nil {
		r.logger.Info("no games found", "team", team.Name, "date", date.Format(shared.DateLayout))
		return models.GameRecord{}, false, nil
	}

	game, err := SelectGame(games, gameNumber)
	if err != nil {
		return models.GameRecord{}, false, err
	}
	return game, true, nil
}

// ResolvePlaybackURL returns the stream URL for team's game on date. An empty URL means there is nothing to play:
// the team is not playing, or no stream survives the feed fallback.
//
// feedPref defaults to the team's side of the game. client must carry the bearer token.
func (r *Resolver) ResolvePlaybackURL(ctx context.Context, client *http.Client, team models.Team, date time.Time, media models.MediaType, feedPref *models.FeedType, gameNumber *int) (string, error) {
	logger := shared.WithLogger(r.logger, "team", team.Code, "date", date.Format(shared.DateLayout))

	r.sendProgress(fetchScheduleUpdate(1, playbackSteps, team, date.Format(shared.DateLayout)))
	game, ok, err := r.teamGame(ctx, team, date, gameNumber)
	if err != nil || !ok {
		return "", err
	}
	r.sendProgress(chooseGameUpdate(2, playbackSteps, game))

	feed := DefaultFeed(game, team)
	if feedPref != nil {
		feed = *feedPref
	}

	gateway := r.gateway(client)

	r.sendProgress(searchStreamsUpdate(3, playbackSteps, game.GamePk))
	candidates, err := gateway.ContentSearch(ctx, game.GamePk)
	if err != nil {
		return "", err
	}

	stream := FindBestFeed(candidates, media, feed, FeedOptions{Language: r.language, Observer: LogObserver(logger)})
	if stream == nil {
		logger.Warn("no streams available; this account may not have access to this content", "game_pk", game.GamePk)
		return "", nil
	}
	if stream.FeedType != feed || stream.MediaState.MediaType != media {
		logger.Info("requested feed unavailable, falling back", "feed", stream.FeedType.Label(), "media", stream.MediaState.MediaType)
	}
	r.sendProgress(chooseFeedUpdate(4, playbackSteps, stream))

	r.sendProgress(initPlaybackUpdate(5, playbackSteps))
	grant, err := gateway.InitPlaybackSession(ctx, stream.MediaID)
	if err != nil {
		return "", err
	}

	r.record(models.NewWatchRecord(team, game, models.WatchGame, stream.MediaState.MediaType, stream.FeedType, stream.MediaID))
	r.sendProgress(resolvedUpdate(playbackSteps, playbackSteps, grant.URL))
	return grant.URL, nil
}

// ResolveHighlightURL returns the URL of a highlight video for team's game on date. Highlights need no authorization.
// An empty URL means the team did not play or the game has no such highlight yet.
func (r *Resolver) ResolveHighlightURL(ctx context.Context, team models.Team, date time.Time, kind models.HighlightKind, gameNumber *int) (string, error) {
	game, ok, err := r.teamGame(ctx, team, date, gameNumber)
	if err != nil || !ok {
		return "", err
	}

	r.sendProgress(findHighlightUpdate(1, 1, kind, game))
	url, ok := highlightURL(game, kind)
	if !ok {
		r.logger.Info("highlight not available", "kind", kind, "game", game.MatchupLabel())
		return "", nil
	}

	watchKind := models.WatchRecap
	if kind == models.CondensedGame {
		watchKind = models.WatchCondensed
	}
	r.record(models.NewWatchRecord(team, game, watchKind, models.MediaVideo, DefaultFeed(game, team), ""))
	return url, nil
}

// HighlightLink pairs a game with one of its highlight URLs.
type HighlightLink struct {
	Game models.GameRecord
	URL  string
}

// ResolveHighlights returns kind for every game on date that passes filter, in schedule order. Games without the
// highlight are skipped.
func (r *Resolver) ResolveHighlights(ctx context.Context, date time.Time, kind models.HighlightKind, filter *models.ScheduleFilter) ([]HighlightLink, error) {
	day, err := r.schedule.FetchScheduleByDate(ctx, date, filter)
	if err != nil {
		return nil, err
	}
	if day == nil {
		r.logger.Info("no games found", "date", date.Format(shared.DateLayout))
		return nil, nil
	}

	var links []HighlightLink
	for i, game := range day.Games {
		r.sendProgress(findHighlightUpdate(i+1, len(day.Games), kind, game))
		url, ok := highlightURL(game, kind)
		if !ok {
			r.logger.Info("highlight not available", "kind", kind, "game", game.MatchupLabel())
			continue
		}
		links = append(links, HighlightLink{Game: game, URL: url})
	}
	return links, nil
}

func highlightURL(game models.GameRecord, kind models.HighlightKind) (string, bool) {
	group := game.Highlight(kind)
	if group == nil {
		return "", false
	}
	for _, item := range group.Items {
		if pb, ok := item.PreferredPlayback(); ok {
			return pb.URL, true
		}
	}
	return "", false
}

func (r *Resolver) record(rec *models.WatchRecord) {
	if r.history == nil {
		return
	}
	if err := r.history.Create(rec); err != nil {
		r.logger.Warn("failed to record watch history", "error", fmt.Errorf("game %d: %w", rec.GamePk, err))
	}
}
