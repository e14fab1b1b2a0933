package report

import (
	"iter"

	"github.com/XavierBriggs/fortuna/services/season-stats/pkg/models"
)

// ShowBatting reports whether p gets a batting row. Only games played is
// tested.
func ShowBatting(p *models.PlayerTotals) bool {
	return p.Batting.G > 0
}

// ShowPitching reports whether p gets a pitching row. Only batters faced is
// tested.
func ShowPitching(p *models.PlayerTotals) bool {
	return p.Pitching.BF > 0
}

// ShowFielding reports whether p gets a row in the fielding table for pos
func ShowFielding(p *models.PlayerTotals, pos models.Position) bool {
	return pos.Valid() && p.FieldingAt(pos).G > 0
}

// BattingRow is one visible batting table row
type BattingRow struct {
	PlayerID string `json:"player_id"`
	models.BattingLine
}

// PitchingRow is one visible pitching table row
type PitchingRow struct {
	PlayerID string `json:"player_id"`
	IP       string `json:"ip"`
	models.PitchingLine
}

// FieldingRow is one visible fielding table row
type FieldingRow struct {
	PlayerID string          `json:"player_id"`
	Position models.Position `json:"pos"`
	Label    string          `json:"pos_label"`
	Innings  string          `json:"inn"`
	models.FieldingLine
}

// BattingRows returns the rows of the batting table in store order
func BattingRows(players iter.Seq[*models.PlayerTotals]) []BattingRow {
	rows := []BattingRow{}
	for p := range players {
		if ShowBatting(p) {
			rows = append(rows, BattingRow{PlayerID: p.PlayerID, BattingLine: p.Batting})
		}
	}
	return rows
}

// PitchingRows returns the rows of the pitching table in store order
func PitchingRows(players iter.Seq[*models.PlayerTotals]) []PitchingRow {
	rows := []PitchingRow{}
	for p := range players {
		if ShowPitching(p) {
			rows = append(rows, PitchingRow{
				PlayerID:     p.PlayerID,
				IP:           FormatInnings(p.Pitching.Outs),
				PitchingLine: p.Pitching,
			})
		}
	}
	return rows
}

// FieldingRows returns the rows of the fielding table for pos in store order
func FieldingRows(players iter.Seq[*models.PlayerTotals], pos models.Position) []FieldingRow {
	rows := []FieldingRow{}
	for p := range players {
		if ShowFielding(p, pos) {
			f := p.FieldingAt(pos)
			rows = append(rows, FieldingRow{
				PlayerID:     p.PlayerID,
				Position:     pos,
				Label:        pos.Label(),
				Innings:      FormatInnings(f.Outs),
				FieldingLine: *f,
			})
		}
	}
	return rows
}

// SnapshotPlayers adapts a snapshot's player slice to the sequence the
// renderer walks
func SnapshotPlayers(players []models.PlayerTotals) iter.Seq[*models.PlayerTotals] {
	return func(yield func(*models.PlayerTotals) bool) {
		for i := range players {
			if !yield(&players[i]) {
				return
			}
		}
	}
}
