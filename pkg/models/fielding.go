package models

import (
	"fmt"
	"strconv"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Position is a defensive position number, 1 (pitcher) through 9 (right field)
type Position int

const (
	Pitcher Position = iota + 1
	Catcher
	FirstBase
	SecondBase
	ThirdBase
	Shortstop
	LeftField
	CenterField
	RightField
)

// NumPositions is the number of defensive positions tracked per player
const NumPositions = 9

var positionLabels = [NumPositions]string{"P", "C", "1B", "2B", "3B", "SS", "LF", "CF", "RF"}

// Positions returns every defensive position in scoring order
func Positions() []Position {
	all := make([]Position, NumPositions)
	for i := range all {
		all[i] = Position(i + 1)
	}
	return all
}

// Valid reports whether p is one of the nine defensive positions
func (p Position) Valid() bool {
	return p >= Pitcher && p <= RightField
}

// Label returns the scorebook abbreviation ("SS", "CF", ...)
func (p Position) Label() string {
	if !p.Valid() {
		return fmt.Sprintf("POS%d", int(p))
	}
	return positionLabels[p-1]
}

// ParsePosition accepts either a position number ("6") or label ("SS")
func ParsePosition(s string) (Position, error) {
	if n, err := strconv.Atoi(s); err == nil {
		pos := Position(n)
		if !pos.Valid() {
			return 0, fmt.Errorf("position out of range: %d", n)
		}
		return pos, nil
	}
	for i, label := range positionLabels {
		if label == s {
			return Position(i + 1), nil
		}
	}
	return 0, fmt.Errorf("unknown position: %q", s)
}

// FieldingLine holds countable fielding totals at a single position. Outs is
// innings in the field expressed in outs.
type FieldingLine struct {
	G    int `json:"g"`
	Outs int `json:"outs"`
	BIP  int `json:"bip"`
	BF   int `json:"bf"`
	PO   int `json:"po"`
	A    int `json:"a"`
	E    int `json:"e"`
	DP   int `json:"dp"`
	TP   int `json:"tp"`
}

// Add accumulates other into f field by field
func (f *FieldingLine) Add(other FieldingLine) {
	f.G += other.G
	f.Outs += other.Outs
	f.BIP += other.BIP
	f.BF += other.BF
	f.PO += other.PO
	f.A += other.A
	f.E += other.E
	f.DP += other.DP
	f.TP += other.TP
}

// Validate reports the first negative count in the line
func (f FieldingLine) Validate() error {
	return firstNegative([]namedCount{
		{"g", f.G}, {"outs", f.Outs}, {"bip", f.BIP}, {"bf", f.BF},
		{"po", f.PO}, {"a", f.A}, {"e", f.E}, {"dp", f.DP}, {"tp", f.TP},
	})
}

// FieldingSlots holds one game's fielding lines indexed by position. A nil
// slot means the player did not appear at that position.
type FieldingSlots [NumPositions]*FieldingLine

// At returns the line for pos, or nil when absent or pos is invalid
func (s *FieldingSlots) At(pos Position) *FieldingLine {
	if !pos.Valid() {
		return nil
	}
	return s[pos-1]
}

// Set stores line at pos
func (s *FieldingSlots) Set(pos Position, line FieldingLine) {
	if !pos.Valid() {
		return
	}
	s[pos-1] = &line
}

// MarshalJSON encodes the present slots as an object keyed by position number
func (s FieldingSlots) MarshalJSON() ([]byte, error) {
	byPos := make(map[string]*FieldingLine, NumPositions)
	for i, line := range s {
		if line != nil {
			byPos[strconv.Itoa(i+1)] = line
		}
	}
	return json.Marshal(byPos)
}

// UnmarshalJSON decodes an object keyed by position number or label. Naming
// the same position twice is an error.
func (s *FieldingSlots) UnmarshalJSON(data []byte) error {
	var byPos map[string]*FieldingLine
	if err := json.Unmarshal(data, &byPos); err != nil {
		return err
	}

	*s = FieldingSlots{}
	var seen [NumPositions]bool
	for key, line := range byPos {
		pos, err := ParsePosition(key)
		if err != nil {
			return fmt.Errorf("fielding: %w", err)
		}
		// "6" and "SS" name the same slot
		if seen[pos-1] {
			*s = FieldingSlots{}
			return fmt.Errorf("fielding: duplicate position %s", pos.Label())
		}
		seen[pos-1] = true
		if line != nil {
			copied := *line
			s[pos-1] = &copied
		}
	}
	return nil
}
