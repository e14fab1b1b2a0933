package testutil

import "github.com/XavierBriggs/fortuna/services/season-stats/pkg/models"

// PlayerLineFixture creates a one-game player line with sensible defaults
func PlayerLineFixture(playerID string, overrides ...func(*models.PlayerLine)) models.PlayerLine {
	line := models.PlayerLine{
		PlayerID: playerID,
		Batting:  models.BattingLine{G: 1, AB: 4, H: 1},
	}

	// Apply overrides
	for _, override := range overrides {
		override(&line)
	}

	return line
}

// AtPosition adds a complete nine-inning fielding line at pos
func AtPosition(pos models.Position) func(*models.PlayerLine) {
	return func(l *models.PlayerLine) {
		l.Fielding.Set(pos, models.FieldingLine{G: 1, Outs: 27})
	}
}

// PitcherLineFixture creates a complete-game pitcher line
func PitcherLineFixture(playerID string, overrides ...func(*models.PitcherLine)) models.PitcherLine {
	line := models.PitcherLine{
		PlayerID: playerID,
		Pitching: models.PitchingLine{G: 1, GS: 1, CG: 1, Outs: 27, H: 7, R: 3, ER: 3, BB: 2, SO: 6, BF: 36},
	}

	for _, override := range overrides {
		override(&line)
	}

	return line
}

// GameFixture creates a box score with the given home lines and an empty
// visiting side
func GameFixture(gameID string, players []models.PlayerLine, pitchers []models.PitcherLine) *models.BoxScore {
	return &models.BoxScore{
		GameID: gameID,
		Date:   "2024-04-01",
		Visitors: models.TeamBoxScore{
			Team: "VIS",
		},
		Home: models.TeamBoxScore{
			Team:     "HOM",
			Players:  players,
			Pitchers: pitchers,
		},
	}
}
