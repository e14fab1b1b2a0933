// Package report renders season totals as fixed-width text tables.
package report

import (
	"fmt"
	"io"
	"iter"

	"github.com/XavierBriggs/fortuna/services/season-stats/pkg/models"
)

// Table headers. Row formats below line up with these column boundaries.
const (
	BattingHeader  = "ID         G  AB   R   H 2B 3B HR  BI  BB IW  SO DP HP SH SF SB CS"
	PitchingHeader = "ID         G GS CG SH GF    IP   R  ER   H HR  BB  SO WP BK"
	FieldingHeader = "ID         G    IF BIP  BF  PO   A  E  DP TP"
)

const (
	battingRowFormat  = "%8s %3d %3d %3d %3d %2d %2d %2d %3d %3d %2d %3d %2d %2d %2d %2d %2d %2d\n"
	pitchingRowFormat = "%8s %3d %2d %2d %2d %2d %3d.%d %3d %3d %3d %2d %3d %3d %2d %2d\n"
	fieldingRowFormat = "%8s %3d %3d.%d %3d %3d %3d %3d %2d %3d %2d\n"

	tableSeparator = "\n\n"
)

// Renderer writes report tables to an output sink. The first write error is
// kept and returned; later writes are skipped.
type Renderer struct {
	w   io.Writer
	err error
}

// New creates a renderer writing to w
func New(w io.Writer) *Renderer {
	return &Renderer{w: w}
}

// Render writes the batting table, the pitching table and one fielding table
// per position, in that order
func (r *Renderer) Render(players iter.Seq[*models.PlayerTotals]) error {
	r.RenderBatting(players)
	r.printf(tableSeparator)
	r.RenderPitching(players)

	for _, pos := range models.Positions() {
		r.printf(tableSeparator)
		r.RenderFielding(players, pos)
	}

	return r.Err()
}

// RenderBatting writes the batting header and one row per player who batted
func (r *Renderer) RenderBatting(players iter.Seq[*models.PlayerTotals]) error {
	r.printf("%s\n", BattingHeader)

	for p := range players {
		if !ShowBatting(p) {
			continue
		}
		b := p.Batting
		r.printf(battingRowFormat,
			p.PlayerID, b.G,
			b.AB, b.R, b.H,
			b.B2, b.B3, b.HR,
			b.BI,
			b.BB, b.IBB, b.SO,
			b.GDP, b.HP,
			b.SH, b.SF,
			b.SB, b.CS)
	}

	return r.Err()
}

// RenderPitching writes the pitching header and one row per player who faced
// at least one batter
func (r *Renderer) RenderPitching(players iter.Seq[*models.PlayerTotals]) error {
	r.printf("%s\n", PitchingHeader)

	for p := range players {
		if !ShowPitching(p) {
			continue
		}
		pt := p.Pitching
		whole, thirds := innings(pt.Outs)
		r.printf(pitchingRowFormat,
			p.PlayerID, pt.G,
			pt.GS, pt.CG,
			pt.SHO, pt.GF,
			whole, thirds,
			pt.R, pt.ER,
			pt.H, pt.HR,
			pt.BB, pt.SO,
			pt.WP, pt.BK)
	}

	return r.Err()
}

// RenderFielding writes the fielding header and one row per player who
// appeared at pos
func (r *Renderer) RenderFielding(players iter.Seq[*models.PlayerTotals], pos models.Position) error {
	if !pos.Valid() {
		return fmt.Errorf("rendering fielding: invalid position %d", int(pos))
	}

	r.printf("%s\n", FieldingHeader)

	for p := range players {
		if !ShowFielding(p, pos) {
			continue
		}
		f := p.FieldingAt(pos)
		whole, thirds := innings(f.Outs)
		r.printf(fieldingRowFormat,
			p.PlayerID, f.G,
			whole, thirds,
			f.BIP, f.BF,
			f.PO, f.A, f.E,
			f.DP, f.TP)
	}

	return r.Err()
}

// Err returns the first write error, if any
func (r *Renderer) Err() error {
	return r.err
}

func (r *Renderer) printf(format string, args ...any) {
	if r.err != nil {
		return
	}
	if _, err := fmt.Fprintf(r.w, format, args...); err != nil {
		r.err = fmt.Errorf("writing report: %w", err)
	}
}
