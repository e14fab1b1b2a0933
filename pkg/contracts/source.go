package contracts

import (
	"context"

	"github.com/XavierBriggs/fortuna/services/season-stats/pkg/models"
)

// BoxScoreSource supplies per-game box scores in chronological order.
// Next returns io.EOF once every game has been delivered.
type BoxScoreSource interface {
	Next(ctx context.Context) (*models.BoxScore, error)
}

// GamePublisher is notified after each game has been merged into the store
type GamePublisher interface {
	PublishGameProcessed(ctx context.Context, runID string, boxscore *models.BoxScore) error
}

// Sink is the pluggable interface for exporting a finished season
type Sink interface {
	// Identification
	Name() string // "redis", "sql", "stream"

	// Configuration
	IsEnabled() bool

	// Export writes the whole snapshot; a failed export may be retried
	Export(ctx context.Context, snapshot *models.SeasonSnapshot) error
}
