// Package ui implements an interactive game picker using bubbletea's Elm architecture.
//
// The TUI moves through three views:
//  1. [GameListView] : Browse the day's games, favorites marked with a star
//  2. [ResolvingView] : Spinner with real-time resolution steps
//  3. [ResultView] : The played URL or the error that stopped it
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving messages via the Msg union type.
// Playback runs in a goroutine behind a [PlayFunc]; its progress updates flow through a channel and are read one
// message at a time.
//
// Keys: enter plays, a toggles audio, f cycles the feed (default, home, away, national), q quits.
package ui
