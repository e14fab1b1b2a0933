package models

// PlayerTotals is a player's season-to-date accumulation. Categories the
// player never appeared in stay at their zero value, so a pitcher who never
// batted has Batting.G == 0.
type PlayerTotals struct {
	PlayerID string                     `json:"player_id"`
	Batting  BattingLine                `json:"batting"`
	Fielding [NumPositions]FieldingLine `json:"fielding"`
	Pitching PitchingLine               `json:"pitching"`
}

// FieldingAt returns the totals at pos; pos must be valid
func (p *PlayerTotals) FieldingAt(pos Position) *FieldingLine {
	return &p.Fielding[pos-1]
}
