package models

// PitchingLine holds countable pitching totals. Outs is innings pitched
// expressed in outs.
type PitchingLine struct {
	G    int `json:"g"`
	GS   int `json:"gs"`
	CG   int `json:"cg"`
	SHO  int `json:"sho"`
	GF   int `json:"gf"`
	Outs int `json:"outs"`
	R    int `json:"r"`
	ER   int `json:"er"`
	H    int `json:"h"`
	HR   int `json:"hr"`
	BB   int `json:"bb"`
	SO   int `json:"so"`
	WP   int `json:"wp"`
	BK   int `json:"bk"`
	BF   int `json:"bf"`
}

// Add accumulates other into p field by field
func (p *PitchingLine) Add(other PitchingLine) {
	p.G += other.G
	p.GS += other.GS
	p.CG += other.CG
	p.SHO += other.SHO
	p.GF += other.GF
	p.Outs += other.Outs
	p.R += other.R
	p.ER += other.ER
	p.H += other.H
	p.HR += other.HR
	p.BB += other.BB
	p.SO += other.SO
	p.WP += other.WP
	p.BK += other.BK
	p.BF += other.BF
}

// Validate reports the first negative count in the line
func (p PitchingLine) Validate() error {
	return firstNegative([]namedCount{
		{"g", p.G}, {"gs", p.GS}, {"cg", p.CG}, {"sho", p.SHO},
		{"gf", p.GF}, {"outs", p.Outs}, {"r", p.R}, {"er", p.ER},
		{"h", p.H}, {"hr", p.HR}, {"bb", p.BB}, {"so", p.SO},
		{"wp", p.WP}, {"bk", p.BK}, {"bf", p.BF},
	})
}
