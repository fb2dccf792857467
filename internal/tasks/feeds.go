package tasks

import (
	"github.com/charmbracelet/log"
	"github.com/desertthunder/mlbv/internal/models"
)

// Tier is one level of the feed fallback cascade, tried in ascending order.
type Tier int

const (
	TierExact     Tier = iota + 1 // requested media and feed
	TierNational                  // requested media, national feed
	TierAudio                     // audio, requested feed
	TierAnyActive                 // anything not switched off
)

func (t Tier) String() string {
	switch t {
	case TierExact:
		return "exact"
	case TierNational:
		return "national"
	case TierAudio:
		return "audio"
	case TierAnyActive:
		return "any_active"
	default:
		return ""
	}
}

// TierObserver is told about every tier that matched nothing, before the next tier is tried.
type TierObserver interface {
	TierEmpty(tier Tier, media models.MediaType, feed models.FeedType)
}

// TierObserverFunc adapts a function to [TierObserver].
type TierObserverFunc func(tier Tier, media models.MediaType, feed models.FeedType)

func (f TierObserverFunc) TierEmpty(tier Tier, media models.MediaType, feed models.FeedType) {
	f(tier, media, feed)
}

// LogObserver reports empty tiers at debug level.
func LogObserver(logger *log.Logger) TierObserver {
	return TierObserverFunc(func(tier Tier, media models.MediaType, feed models.FeedType) {
		logger.Debug("no stream in tier", "tier", tier, "media", media, "feed", feed)
	})
}

// FeedOptions tunes [FindBestFeed]. An empty Language accepts any language.
type FeedOptions struct {
	Language string
	Observer TierObserver
}

// FindBestFeed picks a stream, stopping at the first tier with a match:
//
//  1. media and feed as requested
//  2. media as requested on the national feed
//  3. audio on the requested feed
//  4. any active stream
//
// Tiers 1 to 3 also require an active stream in the preferred language.
// The result is nil when nothing is playable.
func FindBestFeed(candidates []models.StreamCandidate, media models.MediaType, feed models.FeedType, opts FeedOptions) *models.StreamCandidate {
	tiers := []struct {
		tier  Tier
		media models.MediaType
		feed  models.FeedType
	}{
		{TierExact, media, feed},
		{TierNational, media, models.FeedNetwork},
		{TierAudio, models.MediaAudio, feed},
	}

	for _, t := range tiers {
		for i := range candidates {
			c := &candidates[i]
			if c.FeedType == t.feed && c.MediaState.MediaType == t.media && c.Active() && languageMatches(c, opts.Language) {
				return c
			}
		}
		opts.notify(t.tier, t.media, t.feed)
	}

	for i := range candidates {
		if candidates[i].Active() {
			return &candidates[i]
		}
	}
	opts.notify(TierAnyActive, media, feed)
	return nil
}

func languageMatches(c *models.StreamCandidate, language string) bool {
	return language == "" || c.Language == language
}

func (o FeedOptions) notify(tier Tier, media models.MediaType, feed models.FeedType) {
	if o.Observer != nil {
		o.Observer.TierEmpty(tier, media, feed)
	}
}

// DefaultFeed is the home feed when team is the home side of game, otherwise the away feed.
func DefaultFeed(game models.GameRecord, team models.Team) models.FeedType {
	if game.IsHome(team.Name) {
		return models.FeedHome
	}
	return models.FeedAway
}
