package models

// BoxScore contains the already-computed lines for one game. Lines are listed
// in the order they were produced; every appearance occurs exactly once.
type BoxScore struct {
	GameID   string       `json:"game_id"`
	Date     string       `json:"date,omitempty"` // "2024-04-01"
	Visitors TeamBoxScore `json:"visitors"`
	Home     TeamBoxScore `json:"home"`
}

// TeamBoxScore holds one side's player and pitcher lines
type TeamBoxScore struct {
	Team     string        `json:"team,omitempty"` // "NYA"
	Players  []PlayerLine  `json:"players"`
	Pitchers []PitcherLine `json:"pitchers"`
}

// Sides returns visitors then home
func (b *BoxScore) Sides() []*TeamBoxScore {
	return []*TeamBoxScore{&b.Visitors, &b.Home}
}

// PlayerLine is one player's batting line and per-position fielding for a game
type PlayerLine struct {
	PlayerID string        `json:"player_id"`
	Batting  BattingLine   `json:"batting"`
	Fielding FieldingSlots `json:"fielding"`
}

// PitcherLine is one pitcher's line for a game
type PitcherLine struct {
	PlayerID string       `json:"player_id"`
	Pitching PitchingLine `json:"pitching"`
}

// Appearances counts the player and pitcher lines in the game
func (b *BoxScore) Appearances() int {
	n := 0
	for _, side := range b.Sides() {
		n += len(side.Players) + len(side.Pitchers)
	}
	return n
}
