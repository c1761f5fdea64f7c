package logic

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/matchcast/predict-api/internal/models"
)

// HistoryKey is the Redis list holding recent predictions, newest at the head.
const HistoryKey = "predictions:recent"

type redisHistoryStore struct {
	redis RedisClient
	size  int64
}

// NewRedisHistoryStore keeps at most size predictions in a capped Redis list.
func NewRedisHistoryStore(client RedisClient, size int) HistoryStore {
	return &redisHistoryStore{redis: client, size: int64(size)}
}

func (s *redisHistoryStore) Append(ctx context.Context, records ...*models.PredictionRecord) error {
	if len(records) == 0 {
		return nil
	}

	values := make([]interface{}, 0, len(records))
	for _, rec := range records {
		data, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("encode prediction %s: %w", rec.ID, err)
		}
		values = append(values, string(data))
	}

	// LPUSH inserts each value at the head in turn, so the last record ends up first.
	if err := s.redis.LPush(ctx, HistoryKey, values...).Err(); err != nil {
		return fmt.Errorf("push predictions: %w", err)
	}
	if err := s.redis.LTrim(ctx, HistoryKey, 0, s.size-1).Err(); err != nil {
		return fmt.Errorf("trim predictions: %w", err)
	}
	return nil
}

func (s *redisHistoryStore) Recent(ctx context.Context, limit int) ([]models.PredictionRecord, error) {
	stop := s.size - 1
	if limit > 0 && int64(limit) < s.size {
		stop = int64(limit) - 1
	}

	raw, err := s.redis.LRange(ctx, HistoryKey, 0, stop).Result()
	if err != nil {
		return nil, fmt.Errorf("read predictions: %w", err)
	}

	records := make([]models.PredictionRecord, 0, len(raw))
	for _, entry := range raw {
		var rec models.PredictionRecord
		if err := json.Unmarshal([]byte(entry), &rec); err != nil {
			return nil, fmt.Errorf("decode prediction: %w", err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func (s *redisHistoryStore) Ping(ctx context.Context) error {
	return s.redis.Ping(ctx).Err()
}

type memoryHistoryStore struct {
	mu      sync.RWMutex
	records []models.PredictionRecord
	size    int
}

// NewMemoryHistoryStore is the in-process history used when no Redis is configured.
func NewMemoryHistoryStore(size int) HistoryStore {
	return &memoryHistoryStore{
		records: make([]models.PredictionRecord, 0, size),
		size:    size,
	}
}

func (s *memoryHistoryStore) Append(ctx context.Context, records ...*models.PredictionRecord) error {
	if len(records) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	merged := make([]models.PredictionRecord, 0, len(records)+len(s.records))
	for i := len(records) - 1; i >= 0; i-- {
		merged = append(merged, *records[i])
	}
	merged = append(merged, s.records...)
	if len(merged) > s.size {
		merged = merged[:s.size]
	}
	s.records = merged
	return nil
}

func (s *memoryHistoryStore) Recent(ctx context.Context, limit int) ([]models.PredictionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := len(s.records)
	if limit > 0 && limit < n {
		n = limit
	}

	out := make([]models.PredictionRecord, n)
	copy(out, s.records[:n])
	return out, nil
}

func (s *memoryHistoryStore) Ping(ctx context.Context) error {
	return nil
}
