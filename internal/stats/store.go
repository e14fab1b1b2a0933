// Package stats accumulates per-game box-score lines into season totals.
package stats

import (
	"iter"

	"github.com/XavierBriggs/fortuna/services/season-stats/pkg/models"
)

// Store is a keyed accumulator of player totals that remembers the order in
// which players were first seen. It does not validate its input and is not
// safe for concurrent writers.
type Store struct {
	index   map[string]int
	players []*models.PlayerTotals
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		index: make(map[string]int),
	}
}

// MergeBatting adds one game's batting line and fielding slots for playerID.
// Positions absent from fielding leave the running totals at that position
// untouched.
func (s *Store) MergeBatting(playerID string, batting models.BattingLine, fielding models.FieldingSlots) {
	player, found := s.lookupOrCreate(playerID)
	if !found {
		// First appearance: the record starts as a copy of the input
		player.Batting = batting
		for i, line := range fielding {
			if line != nil {
				player.Fielding[i] = *line
			}
		}
		return
	}

	player.Batting.Add(batting)
	for i, line := range fielding {
		if line != nil {
			player.Fielding[i].Add(*line)
		}
	}
}

// MergePitching adds one game's pitching line for playerID
func (s *Store) MergePitching(playerID string, pitching models.PitchingLine) {
	player, _ := s.lookupOrCreate(playerID)
	player.Pitching.Add(pitching)
}

// Players walks the records in first-seen order. The sequence may be ranged
// over any number of times; callers must not mutate the yielded records.
func (s *Store) Players() iter.Seq[*models.PlayerTotals] {
	return func(yield func(*models.PlayerTotals) bool) {
		for _, p := range s.players {
			if !yield(p) {
				return
			}
		}
	}
}

// Lookup returns the record for playerID
func (s *Store) Lookup(playerID string) (*models.PlayerTotals, bool) {
	i, ok := s.index[playerID]
	if !ok {
		return nil, false
	}
	return s.players[i], true
}

// Len returns the number of distinct players
func (s *Store) Len() int {
	return len(s.players)
}

// Snapshot returns a copy of every record in first-seen order
func (s *Store) Snapshot() []models.PlayerTotals {
	out := make([]models.PlayerTotals, len(s.players))
	for i, p := range s.players {
		out[i] = *p
	}
	return out
}

// lookupOrCreate returns the record for playerID, appending a zero record
// when none exists. found reports whether the record already existed.
func (s *Store) lookupOrCreate(playerID string) (player *models.PlayerTotals, found bool) {
	if i, ok := s.index[playerID]; ok {
		return s.players[i], true
	}

	player = &models.PlayerTotals{PlayerID: playerID}
	s.index[playerID] = len(s.players)
	s.players = append(s.players, player)
	return player, false
}
