// Package ingest replays per-game box scores into the aggregation store.
package ingest

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/XavierBriggs/fortuna/services/season-stats/internal/stats"
	"github.com/XavierBriggs/fortuna/services/season-stats/pkg/contracts"
	"github.com/XavierBriggs/fortuna/services/season-stats/pkg/models"
)

// Processor merges one game at a time into a store it does not own
type Processor struct {
	store     *stats.Store
	publisher contracts.GamePublisher
	strict    bool
	runID     string
	games     int
	lines     int
}

// Option configures a Processor
type Option func(*Processor)

// WithPublisher notifies publisher after every merged game
func WithPublisher(publisher contracts.GamePublisher) Option {
	return func(p *Processor) {
		p.publisher = publisher
	}
}

// WithStrict rejects games containing negative counts or empty player IDs
func WithStrict(strict bool) Option {
	return func(p *Processor) {
		p.strict = strict
	}
}

// WithRunID overrides the generated run identifier
func WithRunID(runID string) Option {
	return func(p *Processor) {
		p.runID = runID
	}
}

// NewProcessor creates a processor merging into store
func NewProcessor(store *stats.Store, opts ...Option) *Processor {
	p := &Processor{
		store: store,
		runID: uuid.NewString(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// RunID identifies this aggregation run in exports and published events
func (p *Processor) RunID() string {
	return p.runID
}

// GamesProcessed returns the number of games merged so far
func (p *Processor) GamesProcessed() int {
	return p.games
}

// LinesMerged returns the number of player and pitcher lines merged so far
func (p *Processor) LinesMerged() int {
	return p.lines
}

// ProcessGame merges every appearance in boxscore: for each side, player
// lines first, then pitcher lines. In strict mode the whole game is checked
// before anything is merged, so a rejected game leaves the store unchanged.
func (p *Processor) ProcessGame(ctx context.Context, boxscore *models.BoxScore) error {
	if p.strict {
		if err := validateGame(boxscore); err != nil {
			return fmt.Errorf("game %s: %w", boxscore.GameID, err)
		}
	}

	for _, side := range boxscore.Sides() {
		for _, player := range side.Players {
			p.store.MergeBatting(player.PlayerID, player.Batting, player.Fielding)
		}
		for _, pitcher := range side.Pitchers {
			p.store.MergePitching(pitcher.PlayerID, pitcher.Pitching)
		}
	}
	p.games++
	p.lines += boxscore.Appearances()

	if p.publisher != nil {
		if err := p.publisher.PublishGameProcessed(ctx, p.runID, boxscore); err != nil {
			log.Printf("[ingest] Error publishing game %s: %v", boxscore.GameID, err)
		}
	}

	return nil
}

// Snapshot copies the store into an export-ready snapshot
func (p *Processor) Snapshot(season string) *models.SeasonSnapshot {
	return &models.SeasonSnapshot{
		RunID:          p.runID,
		Season:         season,
		GamesProcessed: p.games,
		GeneratedAt:    time.Now().UTC(),
		Players:        p.store.Snapshot(),
	}
}

func validateGame(boxscore *models.BoxScore) error {
	for _, side := range boxscore.Sides() {
		for _, player := range side.Players {
			if err := stats.ValidateBatting(player); err != nil {
				return err
			}
		}
		for _, pitcher := range side.Pitchers {
			if err := stats.ValidatePitching(pitcher); err != nil {
				return err
			}
		}
	}
	return nil
}
