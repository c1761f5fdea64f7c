package logic

import (
	"context"

	"github.com/redis/go-redis/v9"

	"github.com/matchcast/predict-api/internal/models"
)

// PredictionService scores a match from both teams' recent form.
type PredictionService interface {
	Predict(ctx context.Context, sport, teamA, teamB string, teamAForm, teamBForm []string) (*models.Prediction, error)
}

// HistoryStore keeps the most recent served predictions, newest first.
type HistoryStore interface {
	// Append stores records given in chronological order.
	Append(ctx context.Context, records ...*models.PredictionRecord) error
	Recent(ctx context.Context, limit int) ([]models.PredictionRecord, error)
	Ping(ctx context.Context) error
}

// RedisClient defines the subset of the Redis client used by the history store
type RedisClient interface {
	LPush(ctx context.Context, key string, values ...interface{}) *redis.IntCmd
	LTrim(ctx context.Context, key string, start, stop int64) *redis.StatusCmd
	LRange(ctx context.Context, key string, start, stop int64) *redis.StringSliceCmd
	Ping(ctx context.Context) *redis.StatusCmd
}
