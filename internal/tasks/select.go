package tasks

import (
	"fmt"

	"github.com/desertthunder/mlbv/internal/models"
	"github.com/desertthunder/mlbv/internal/shared"
)

// SelectGame picks one game from a team's games on a date.
//
// A single game is returned regardless of gameNumber. For a doubleheader, gameNumber must be 1 or 2 and match
// a game exactly; without it the live game wins, then game 1, then the first entry.
func SelectGame(games []models.GameRecord, gameNumber *int) (models.GameRecord, error) {
	switch len(games) {
	case 0:
		return models.GameRecord{}, shared.ErrNoGameAvailable
	case 1:
		return games[0], nil
	}

	if gameNumber != nil {
		n := *gameNumber
		if n != 1 && n != 2 {
			return models.GameRecord{}, fmt.Errorf("%w: %d; expected 1 or 2", shared.ErrInvalidGameNumber, n)
		}
		for _, g := range games {
			if g.GameNumber == n {
				return g, nil
			}
		}
		return models.GameRecord{}, fmt.Errorf("%w: no game %d among %d games", shared.ErrGameNumberNotFound, n, len(games))
	}

	for _, g := range games {
		if g.IsLive() {
			return g, nil
		}
	}
	for _, g := range games {
		if g.GameNumber == 1 {
			return g, nil
		}
	}
	return games[0], nil
}
