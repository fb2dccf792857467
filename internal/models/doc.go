// Package models defines the domain types passed between the schedule, auth, and media gateway layers.
//
// The package contains three categories of types:
//
// 1. Reference data
//   - [Team] : the static table of clubs with league and division
//   - [FeedType], [MediaType] : broadcast orientation and kind
//
// 2. Wire types decoded from upstream services
//   - [DaySchedule], [GameRecord], [Broadcast], [HighlightGroup] : stats API schedule
//   - [StreamCandidate], [PlaybackGrant] : media gateway content search and playback
//   - [SessionToken] : identity provider token with a computed absolute expiry
//
// 3. Persistent entities
//   - [WatchRecord] : one resolved playback in the watch history
//
// Persistent entities implement [Model]. The [Repository] interface defines the CRUD operations used by the repositories package.
package models
