package models

import (
	"fmt"
	"strings"

	"github.com/desertthunder/mlbv/internal/shared"
)

// League is one of the two major leagues.
type League string

const (
	AmericanLeague League = "AL"
	NationalLeague League = "NL"
)

// Division identifies a league division by its short code, e.g. "ALE".
type Division string

const (
	ALEast    Division = "ALE"
	ALCentral Division = "ALC"
	ALWest    Division = "ALW"
	NLEast    Division = "NLE"
	NLCentral Division = "NLC"
	NLWest    Division = "NLW"
)

// League returns the league a division belongs to.
func (d Division) League() League {
	return League(string(d)[:2])
}

func (d Division) String() string {
	switch d {
	case ALEast:
		return "AL East"
	case ALCentral:
		return "AL Central"
	case ALWest:
		return "AL West"
	case NLEast:
		return "NL East"
	case NLCentral:
		return "NL Central"
	case NLWest:
		return "NL West"
	default:
		return string(d)
	}
}

// Team is a club as identified by the stats API.
type Team struct {
	ID       int
	Code     string
	Name     string
	Division Division
}

// League returns the team's league.
func (t Team) League() League { return t.Division.League() }

var teams = []Team{
	{108, "LAA", "Los Angeles Angels", ALWest},
	{109, "ARI", "Arizona Diamondbacks", NLWest},
	{110, "BAL", "Baltimore Orioles", ALEast},
	{111, "BOS", "Boston Red Sox", ALEast},
	{112, "CHC", "Chicago Cubs", NLCentral},
	{113, "CIN", "Cincinnati Reds", NLCentral},
	{114, "CLE", "Cleveland Guardians", ALCentral},
	{115, "COL", "Colorado Rockies", NLWest},
	{116, "DET", "Detroit Tigers", ALCentral},
	{117, "HOU", "Houston Astros", ALWest},
	{118, "KCR", "Kansas City Royals", ALCentral},
	{119, "LAD", "Los Angeles Dodgers", NLWest},
	{120, "WSH", "Washington Nationals", NLEast},
	{121, "NYM", "New York Mets", NLEast},
	{133, "ATH", "Athletics", ALWest},
	{134, "PIT", "Pittsburgh Pirates", NLCentral},
	{135, "SDP", "San Diego Padres", NLWest},
	{136, "SEA", "Seattle Mariners", ALWest},
	{137, "SFG", "San Francisco Giants", NLWest},
	{138, "STL", "St. Louis Cardinals", NLCentral},
	{139, "TBR", "Tampa Bay Rays", ALEast},
	{140, "TEX", "Texas Rangers", ALWest},
	{141, "TOR", "Toronto Blue Jays", ALEast},
	{142, "MIN", "Minnesota Twins", ALCentral},
	{143, "PHI", "Philadelphia Phillies", NLEast},
	{144, "ATL", "Atlanta Braves", NLEast},
	{145, "CWS", "Chicago White Sox", ALCentral},
	{146, "MIA", "Miami Marlins", NLEast},
	{147, "NYY", "New York Yankees", ALEast},
	{158, "MIL", "Milwaukee Brewers", NLCentral},
}

// Teams returns a copy of the team table ordered by stats API id.
func Teams() []Team {
	return append([]Team(nil), teams...)
}

// ParseTeamCode resolves a case-insensitive three-letter code.
func ParseTeamCode(code string) (Team, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "OAK" {
		return Team{}, fmt.Errorf("%w: OAK is retired; use ATH for the Athletics", shared.ErrInvalidTeam)
	}
	for _, t := range teams {
		if t.Code == code {
			return t, nil
		}
	}
	return Team{}, fmt.Errorf("%w: unknown team code %q", shared.ErrInvalidTeam, code)
}

// TeamByName finds a team by its full name as reported in schedule responses.
func TeamByName(name string) (Team, bool) {
	for _, t := range teams {
		if t.Name == name {
			return t, true
		}
	}
	return Team{}, false
}

// TeamByID finds a team by stats API id.
func TeamByID(id int) (Team, bool) {
	for _, t := range teams {
		if t.ID == id {
			return t, true
		}
	}
	return Team{}, false
}
