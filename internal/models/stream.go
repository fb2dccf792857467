package models

import (
	"fmt"
	"strings"

	"github.com/desertthunder/mlbv/internal/shared"
)

// FeedType is the orientation of a broadcast relative to the teams.
type FeedType string

const (
	FeedHome    FeedType = "HOME"
	FeedAway    FeedType = "AWAY"
	FeedNetwork FeedType = "NETWORK"
)

// ParseFeedType accepts "home", "away" or "national" in any case.
func ParseFeedType(s string) (FeedType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "home":
		return FeedHome, nil
	case "away":
		return FeedAway, nil
	case "national":
		return FeedNetwork, nil
	default:
		return "", fmt.Errorf("%w: %q; expected 'home', 'away' or 'national'", shared.ErrInvalidFeed, s)
	}
}

// Label is the user-facing name accepted by [ParseFeedType].
func (f FeedType) Label() string {
	if f == FeedNetwork {
		return "national"
	}
	return strings.ToLower(string(f))
}

// MediaType is the kind of stream.
type MediaType string

const (
	MediaAudio MediaType = "AUDIO"
	MediaVideo MediaType = "VIDEO"
)

// MediaTypeFor returns audio when audio is set, video otherwise.
func MediaTypeFor(audio bool) MediaType {
	if audio {
		return MediaAudio
	}
	return MediaVideo
}

// StreamStateOff marks a stream that cannot be played.
const StreamStateOff = "OFF"

// StreamCandidate is one element of a content search response.
type StreamCandidate struct {
	MediaID    string     `json:"mediaId"`
	FeedType   FeedType   `json:"feedType"`
	Language   string     `json:"language"`
	CallSign   string     `json:"callSign"`
	MediaState MediaState `json:"mediaState"`
}

// MediaState describes the availability and kind of a stream.
type MediaState struct {
	State     string    `json:"state"` // ON, OFF
	MediaType MediaType `json:"mediaType"`
}

// Active reports whether the stream is not switched off.
func (s StreamCandidate) Active() bool {
	return s.MediaState.State != StreamStateOff
}

// PlaybackGrant is the terminal artifact of a resolution. It is consumed by the player and never stored.
type PlaybackGrant struct {
	URL        string `json:"url"`
	Token      string `json:"token"`
	Expiration string `json:"expiration"`
	CDN        string `json:"cdn"`
}
