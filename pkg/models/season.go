package models

import "time"

// SeasonSnapshot is the finished aggregate of one run, handed to export sinks
// and the HTTP API. Players are in first-seen order.
type SeasonSnapshot struct {
	RunID          string         `json:"run_id"`
	Season         string         `json:"season"`
	GamesProcessed int            `json:"games_processed"`
	GeneratedAt    time.Time      `json:"generated_at"`
	Players        []PlayerTotals `json:"players"`
}

// SeasonMeta is the snapshot header without player data
type SeasonMeta struct {
	RunID          string    `json:"run_id"`
	Season         string    `json:"season"`
	GamesProcessed int       `json:"games_processed"`
	Players        int       `json:"players"`
	GeneratedAt    time.Time `json:"generated_at"`
}

// Meta returns the snapshot header
func (s *SeasonSnapshot) Meta() SeasonMeta {
	return SeasonMeta{
		RunID:          s.RunID,
		Season:         s.Season,
		GamesProcessed: s.GamesProcessed,
		Players:        len(s.Players),
		GeneratedAt:    s.GeneratedAt,
	}
}

// SeasonKey returns the season label used in cache keys and stream names
func (s *SeasonSnapshot) SeasonKey() string {
	return SeasonKey(s.Season)
}

// SeasonKey maps an empty season label to "current"
func SeasonKey(season string) string {
	if season == "" {
		return "current"
	}
	return season
}

// Player returns the totals for playerID, if present
func (s *SeasonSnapshot) Player(playerID string) (*PlayerTotals, bool) {
	for i := range s.Players {
		if s.Players[i].PlayerID == playerID {
			return &s.Players[i], true
		}
	}
	return nil, false
}
