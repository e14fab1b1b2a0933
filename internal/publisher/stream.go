package publisher

import (
	"context"
	"fmt"

	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"

	"github.com/XavierBriggs/fortuna/services/season-stats/pkg/models"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// StreamPublisher publishes aggregation progress to Redis streams
type StreamPublisher struct {
	client  redis.Cmdable
	season  string
	enabled bool
}

// NewStreamPublisher creates a new stream publisher for season
func NewStreamPublisher(client redis.Cmdable, season string, enabled bool) *StreamPublisher {
	return &StreamPublisher{
		client:  client,
		season:  season,
		enabled: enabled && client != nil,
	}
}

// GamesStream receives one entry per merged game
func GamesStream(season string) string {
	return fmt.Sprintf("stats.games.%s", models.SeasonKey(season))
}

// SeasonStream receives one entry per finished run
func SeasonStream(season string) string {
	return fmt.Sprintf("stats.season.%s", models.SeasonKey(season))
}

// PublishGameProcessed publishes a merged game to the season's games stream
func (p *StreamPublisher) PublishGameProcessed(ctx context.Context, runID string, boxscore *models.BoxScore) error {
	data, err := json.Marshal(boxscore)
	if err != nil {
		return fmt.Errorf("marshaling game %s: %w", boxscore.GameID, err)
	}

	streamKey := GamesStream(p.season)
	err = p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: streamKey,
		Values: map[string]interface{}{
			"data":    string(data),
			"run_id":  runID,
			"game_id": boxscore.GameID,
		},
	}).Err()
	if err != nil {
		return fmt.Errorf("publishing to stream %s: %w", streamKey, err)
	}
	return nil
}

func (p *StreamPublisher) Name() string {
	return "stream"
}

func (p *StreamPublisher) IsEnabled() bool {
	return p.enabled
}

// Export publishes the finished season to the season stream
func (p *StreamPublisher) Export(ctx context.Context, snapshot *models.SeasonSnapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("marshaling season update: %w", err)
	}

	streamKey := SeasonStream(snapshot.Season)
	err = p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: streamKey,
		Values: map[string]interface{}{
			"data":    string(data),
			"run_id":  snapshot.RunID,
			"type":    "season",
			"players": len(snapshot.Players),
		},
	}).Err()
	if err != nil {
		return fmt.Errorf("publishing to stream %s: %w", streamKey, err)
	}
	return nil
}
