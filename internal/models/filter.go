package models

import (
	"fmt"
	"slices"
	"strings"

	"github.com/desertthunder/mlbv/internal/shared"
)

// ScheduleFilter keeps games involving a set of teams.
type ScheduleFilter struct {
	Label string
	teams []string // full names
}

// ParseScheduleFilter accepts a league (al, nl), a division (ale, nlw, ...) or "favs".
//
// favorites are team codes and are only consulted for "favs". An empty string yields a nil filter.
func ParseScheduleFilter(s string, favorites []string) (*ScheduleFilter, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return nil, nil
	}

	f := &ScheduleFilter{Label: strings.ToLower(s)}
	switch {
	case s == "FAVS":
		if len(favorites) == 0 {
			return nil, fmt.Errorf("%w: no favorite teams configured", shared.ErrInvalidFilter)
		}
		for _, code := range favorites {
			team, err := ParseTeamCode(code)
			if err != nil {
				return nil, fmt.Errorf("%w: favorites: %v", shared.ErrInvalidFilter, err)
			}
			f.teams = append(f.teams, team.Name)
		}
	case s == string(AmericanLeague) || s == string(NationalLeague):
		for _, team := range teams {
			if team.League() == League(s) {
				f.teams = append(f.teams, team.Name)
			}
		}
	case isDivision(s):
		for _, team := range teams {
			if team.Division == Division(s) {
				f.teams = append(f.teams, team.Name)
			}
		}
	default:
		return nil, fmt.Errorf("%w: %q; expected al, nl, a division such as ale or nlw, or favs", shared.ErrInvalidFilter, s)
	}
	return f, nil
}

func isDivision(s string) bool {
	switch Division(s) {
	case ALEast, ALCentral, ALWest, NLEast, NLCentral, NLWest:
		return true
	}
	return false
}

// Match reports whether either side of the game is in the filter.
func (f *ScheduleFilter) Match(g GameRecord) bool {
	if f == nil {
		return true
	}
	return slices.Contains(f.teams, g.Teams.Home.Team.Name) || slices.Contains(f.teams, g.Teams.Away.Team.Name)
}

// Apply returns days with only matching games. Days left empty are dropped.
func (f *ScheduleFilter) Apply(days []DaySchedule) []DaySchedule {
	if f == nil {
		return days
	}
	var kept []DaySchedule
	for _, day := range days {
		var games []GameRecord
		for _, g := range day.Games {
			if f.Match(g) {
				games = append(games, g)
			}
		}
		if len(games) > 0 {
			kept = append(kept, DaySchedule{Date: day.Date, Games: games})
		}
	}
	return kept
}
