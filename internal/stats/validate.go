package stats

import (
	"fmt"

	"github.com/XavierBriggs/fortuna/services/season-stats/pkg/models"
)

// InvalidInputError describes a line rejected by strict validation. The store
// itself never produces it.
type InvalidInputError struct {
	PlayerID string
	Category string          // "batting", "fielding", "pitching"
	Position models.Position // set for fielding only
	Reason   string
}

func (e *InvalidInputError) Error() string {
	id := e.PlayerID
	if id == "" {
		id = "<empty>"
	}
	if e.Category == "fielding" {
		return fmt.Sprintf("invalid %s line for %s at %s: %s", e.Category, id, e.Position.Label(), e.Reason)
	}
	return fmt.Sprintf("invalid %s line for %s: %s", e.Category, id, e.Reason)
}

// ValidateBatting checks a player line before MergeBatting
func ValidateBatting(line models.PlayerLine) error {
	if line.PlayerID == "" {
		return &InvalidInputError{Category: "batting", Reason: "empty player id"}
	}
	if err := line.Batting.Validate(); err != nil {
		return &InvalidInputError{PlayerID: line.PlayerID, Category: "batting", Reason: err.Error()}
	}
	for _, pos := range models.Positions() {
		f := line.Fielding.At(pos)
		if f == nil {
			continue
		}
		if err := f.Validate(); err != nil {
			return &InvalidInputError{PlayerID: line.PlayerID, Category: "fielding", Position: pos, Reason: err.Error()}
		}
	}
	return nil
}

// ValidatePitching checks a pitcher line before MergePitching
func ValidatePitching(line models.PitcherLine) error {
	if line.PlayerID == "" {
		return &InvalidInputError{Category: "pitching", Reason: "empty player id"}
	}
	if err := line.Pitching.Validate(); err != nil {
		return &InvalidInputError{PlayerID: line.PlayerID, Category: "pitching", Reason: err.Error()}
	}
	return nil
}
