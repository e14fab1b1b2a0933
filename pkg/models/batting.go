package models

import "fmt"

// BattingLine holds countable batting totals, either for one game or accumulated
// over a season
type BattingLine struct {
	G   int `json:"g"`
	AB  int `json:"ab"`
	R   int `json:"r"`
	H   int `json:"h"`
	B2  int `json:"2b"`
	B3  int `json:"3b"`
	HR  int `json:"hr"`
	BI  int `json:"bi"`
	BB  int `json:"bb"`
	IBB int `json:"ibb"`
	SO  int `json:"so"`
	GDP int `json:"gdp"`
	HP  int `json:"hp"`
	SH  int `json:"sh"`
	SF  int `json:"sf"`
	SB  int `json:"sb"`
	CS  int `json:"cs"`
}

// Add accumulates other into b field by field
func (b *BattingLine) Add(other BattingLine) {
	b.G += other.G
	b.AB += other.AB
	b.R += other.R
	b.H += other.H
	b.B2 += other.B2
	b.B3 += other.B3
	b.HR += other.HR
	b.BI += other.BI
	b.BB += other.BB
	b.IBB += other.IBB
	b.SO += other.SO
	b.GDP += other.GDP
	b.HP += other.HP
	b.SH += other.SH
	b.SF += other.SF
	b.SB += other.SB
	b.CS += other.CS
}

// Validate reports the first negative count in the line
func (b BattingLine) Validate() error {
	return firstNegative([]namedCount{
		{"g", b.G}, {"ab", b.AB}, {"r", b.R}, {"h", b.H},
		{"2b", b.B2}, {"3b", b.B3}, {"hr", b.HR}, {"bi", b.BI},
		{"bb", b.BB}, {"ibb", b.IBB}, {"so", b.SO}, {"gdp", b.GDP},
		{"hp", b.HP}, {"sh", b.SH}, {"sf", b.SF}, {"sb", b.SB}, {"cs", b.CS},
	})
}

type namedCount struct {
	name  string
	value int
}

func firstNegative(counts []namedCount) error {
	for _, c := range counts {
		if c.value < 0 {
			return fmt.Errorf("negative %s: %d", c.name, c.value)
		}
	}
	return nil
}
