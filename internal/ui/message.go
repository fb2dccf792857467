package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/mlbv/internal/models"
	"github.com/desertthunder/mlbv/internal/tasks"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgScheduleFetched MsgKind = iota
	MsgProgressUpdate
	MsgPlayed
)

type scheduleResult struct {
	day *models.DaySchedule
	err error
}

type playResult struct {
	url string
	err error
}

// scheduleFetchedMsg is the constructor for [MsgScheduleFetched]
func scheduleFetchedMsg(day *models.DaySchedule, err error) Msg {
	return Msg{kind: MsgScheduleFetched, data: scheduleResult{day, err}}
}

// progressUpdateMsg is the constructor for [MsgProgressUpdate]
func progressUpdateMsg(update tasks.ProgressUpdate) Msg {
	return Msg{kind: MsgProgressUpdate, data: update}
}

// playedMsg is the constructor for [MsgPlayed]
func playedMsg(url string, err error) Msg {
	return Msg{kind: MsgPlayed, data: playResult{url, err}}
}
