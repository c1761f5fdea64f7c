package handlers

import (
	"context"
	"sync"

	"github.com/matchcast/predict-api/internal/models"
)

// Mocks

type MockRecorder struct {
	mu          sync.Mutex
	Records     []*models.PredictionRecord
	EnqueueFunc func(record *models.PredictionRecord) bool
}

func (m *MockRecorder) Enqueue(record *models.PredictionRecord) bool {
	if m.EnqueueFunc != nil && !m.EnqueueFunc(record) {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Records = append(m.Records, record)
	return true
}

func (m *MockRecorder) QueueDepth() int { return 0 }

type MockPredictionService struct {
	PredictFunc func(ctx context.Context, sport, teamA, teamB string, teamAForm, teamBForm []string) (*models.Prediction, error)
}

func (m *MockPredictionService) Predict(ctx context.Context, sport, teamA, teamB string, teamAForm, teamBForm []string) (*models.Prediction, error) {
	if m.PredictFunc != nil {
		return m.PredictFunc(ctx, sport, teamA, teamB, teamAForm, teamBForm)
	}
	return &models.Prediction{Outcome: models.OutcomeWin, WinningTeam: teamA, LosingTeam: teamB, Confidence: 0.5}, nil
}

type MockHistoryStore struct {
	RecentFunc func(ctx context.Context, limit int) ([]models.PredictionRecord, error)
	PingFunc   func(ctx context.Context) error
}

func (m *MockHistoryStore) Append(ctx context.Context, records ...*models.PredictionRecord) error {
	return nil
}

func (m *MockHistoryStore) Recent(ctx context.Context, limit int) ([]models.PredictionRecord, error) {
	if m.RecentFunc != nil {
		return m.RecentFunc(ctx, limit)
	}
	return []models.PredictionRecord{}, nil
}

func (m *MockHistoryStore) Ping(ctx context.Context) error {
	if m.PingFunc != nil {
		return m.PingFunc(ctx)
	}
	return nil
}

// fixedRand always returns the same value.
type fixedRand int

func (f fixedRand) IntN(n int) int { return int(f) % n }
