package worker

import (
	"context"
	"sync"

	"github.com/matchcast/predict-api/internal/models"
)

// MockHistoryStore collects appended records and can be told to fail.
type MockHistoryStore struct {
	mu         sync.Mutex
	Records    []*models.PredictionRecord
	Batches    int
	AppendFunc func(records ...*models.PredictionRecord) error
}

func (m *MockHistoryStore) Append(ctx context.Context, records ...*models.PredictionRecord) error {
	if m.AppendFunc != nil {
		if err := m.AppendFunc(records...); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Records = append(m.Records, records...)
	m.Batches++
	return nil
}

func (m *MockHistoryStore) Recent(ctx context.Context, limit int) ([]models.PredictionRecord, error) {
	return nil, nil
}

func (m *MockHistoryStore) Ping(ctx context.Context) error { return nil }

func (m *MockHistoryStore) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Records)
}
