// Package tasks resolves a team and date into something playable.
//
// # Selection
//
// Two pure functions carry the selection rules:
//
//  1. [SelectGame] : one game out of a team's games on a date
//     - a single game is always chosen
//     - doubleheaders honor an explicit game number (1 or 2)
//     - otherwise the live game, then game 1, then the first entry
//
//  2. [FindBestFeed] : one stream out of the content search results
//     - exact media and feed, then the national feed, then audio, then anything active
//     - every tier that comes up empty is reported to a [TierObserver]
//     - exhaustion yields nil, not an error
//
// # Pipeline
//
// [Resolver.ResolvePlaybackURL] runs schedule fetch, game selection, content search, feed selection and
// playback initialization in order. [Resolver.ResolveHighlightURL] and [Resolver.ResolveHighlights] read the
// condensed game or recap straight from the schedule's highlight hydration.
//
// Completed resolutions are written to an optional [HistoryRecorder]; failures there are logged and ignored.
//
// # Progress Reporting
//
// Stages emit [ProgressUpdate] values on an optional channel. Sends use select with default so a slow
// consumer never blocks a resolution.
package tasks
