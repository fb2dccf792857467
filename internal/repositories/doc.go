// Package repositories implements SQLite persistence for the watch history.
//
// Key Implementations:
//   - [WatchHistoryRepository] : one row per resolved playback, newest first
//
// [Open] creates the database file and applies the embedded migrations from the shared package.
// Records carry no playback tokens; only ids and labels needed to list what was watched.
package repositories
