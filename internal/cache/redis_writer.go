package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"

	"github.com/XavierBriggs/fortuna/services/season-stats/pkg/models"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// DefaultSeasonTTL keeps cached totals around for a day
const DefaultSeasonTTL = 24 * time.Hour

// RedisWriter caches a finished season in Redis
type RedisWriter struct {
	client  redis.Cmdable
	ttl     time.Duration
	enabled bool
}

// NewRedisWriter creates a new Redis writer. A nil client disables the sink.
func NewRedisWriter(client redis.Cmdable, ttl time.Duration) *RedisWriter {
	if ttl <= 0 {
		ttl = DefaultSeasonTTL
	}
	return &RedisWriter{
		client:  client,
		ttl:     ttl,
		enabled: client != nil,
	}
}

// PlayersKey lists player IDs in first-seen order
func PlayersKey(season string) string {
	return fmt.Sprintf("season:%s:players", models.SeasonKey(season))
}

// PlayerKey holds one player's totals as JSON
func PlayerKey(season, playerID string) string {
	return fmt.Sprintf("season:%s:player:%s", models.SeasonKey(season), playerID)
}

// MetaKey holds the run metadata as JSON
func MetaKey(season string) string {
	return fmt.Sprintf("season:%s:meta", models.SeasonKey(season))
}

func (w *RedisWriter) Name() string {
	return "redis"
}

func (w *RedisWriter) IsEnabled() bool {
	return w.enabled
}

// Export writes the whole season in a single pipeline, replacing any
// previous run for the same season including its per-player keys
func (w *RedisWriter) Export(ctx context.Context, snapshot *models.SeasonSnapshot) error {
	season := snapshot.Season
	listKey := PlayersKey(season)

	meta, err := json.Marshal(snapshot.Meta())
	if err != nil {
		return fmt.Errorf("marshaling season meta: %w", err)
	}

	// Players from the previous run may not appear in this one
	previous, err := w.client.LRange(ctx, listKey, 0, -1).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("reading previous players for season %s: %w", models.SeasonKey(season), err)
	}

	ids := make([]interface{}, len(snapshot.Players))
	pipe := w.client.Pipeline()
	pipe.Del(ctx, listKey) // Clear old list
	for _, id := range previous {
		pipe.Del(ctx, PlayerKey(season, id))
	}

	for i := range snapshot.Players {
		player := &snapshot.Players[i]
		ids[i] = player.PlayerID

		data, err := json.Marshal(player)
		if err != nil {
			return fmt.Errorf("marshaling player %s: %w", player.PlayerID, err)
		}
		pipe.Set(ctx, PlayerKey(season, player.PlayerID), data, w.ttl)
	}

	if len(ids) > 0 {
		pipe.RPush(ctx, listKey, ids...)
	}
	pipe.Expire(ctx, listKey, w.ttl)
	pipe.Set(ctx, MetaKey(season), meta, w.ttl)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("writing season %s: %w", models.SeasonKey(season), err)
	}
	return nil
}

// ReadPlayer retrieves one player's cached totals
func (w *RedisWriter) ReadPlayer(ctx context.Context, season, playerID string) (*models.PlayerTotals, error) {
	data, err := w.client.Get(ctx, PlayerKey(season, playerID)).Result()
	if err != nil {
		return nil, err
	}

	var player models.PlayerTotals
	if err := json.Unmarshal([]byte(data), &player); err != nil {
		return nil, fmt.Errorf("unmarshaling player: %w", err)
	}

	return &player, nil
}

// ReadPlayerIDs retrieves the cached player IDs in first-seen order
func (w *RedisWriter) ReadPlayerIDs(ctx context.Context, season string) ([]string, error) {
	return w.client.LRange(ctx, PlayersKey(season), 0, -1).Result()
}
