package worker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/matchcast/predict-api/internal/models"
)

func TestEnqueueFull(t *testing.T) {
	// Not started, so nothing drains the queue
	pool := NewPool(PoolConfig{
		QueueSize: 1,
		Store:     &MockHistoryStore{},
		Logger:    zap.NewNop(),
	})

	if !pool.Enqueue(&models.PredictionRecord{ID: "1"}) {
		t.Fatal("Failed to enqueue first record")
	}

	start := time.Now()
	enqueued := pool.Enqueue(&models.PredictionRecord{ID: "2"})
	duration := time.Since(start)

	if enqueued {
		t.Error("Enqueue should have returned false when queue is full")
	}
	if duration > 10*time.Millisecond {
		t.Errorf("Enqueue took too long (%v), expected immediate return", duration)
	}
	if pool.QueueDepth() != 1 {
		t.Errorf("expected queue depth 1, got %d", pool.QueueDepth())
	}
}

func TestPool_StopDrainsQueue(t *testing.T) {
	store := &MockHistoryStore{}
	pool := NewPool(PoolConfig{
		WorkerCount:   2,
		QueueSize:     100,
		BatchSize:     7,
		FlushInterval: time.Hour,
		Store:         store,
		Logger:        zap.NewNop(),
	})
	pool.Start(context.Background())

	for i := 0; i < 20; i++ {
		if !pool.Enqueue(&models.PredictionRecord{ID: fmt.Sprint(i)}) {
			t.Fatalf("enqueue %d rejected", i)
		}
	}
	pool.Stop()

	if got := store.Count(); got != 20 {
		t.Errorf("expected 20 stored records, got %d", got)
	}
	if pool.Enqueue(&models.PredictionRecord{ID: "late"}) {
		t.Error("Enqueue after Stop should be rejected")
	}

	// second Stop is a no-op
	pool.Stop()
}

func TestPool_FlushesOnInterval(t *testing.T) {
	store := &MockHistoryStore{}
	pool := NewPool(PoolConfig{
		WorkerCount:   1,
		BatchSize:     100,
		FlushInterval: 10 * time.Millisecond,
		Store:         store,
	})
	pool.Start(context.Background())
	defer pool.Stop()

	pool.Enqueue(&models.PredictionRecord{ID: "tick"})

	deadline := time.Now().Add(2 * time.Second)
	for store.Count() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("record was not flushed by the ticker")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestPool_StoreFailureDoesNotStopWorkers(t *testing.T) {
	var mu sync.Mutex
	fail := true
	store := &MockHistoryStore{
		AppendFunc: func(records ...*models.PredictionRecord) error {
			mu.Lock()
			defer mu.Unlock()
			if fail {
				fail = false
				return errors.New("redis unavailable")
			}
			return nil
		},
	}

	pool := NewPool(PoolConfig{
		WorkerCount:   1,
		BatchSize:     1,
		FlushInterval: time.Hour,
		Store:         store,
		Logger:        zap.NewNop(),
	})
	pool.Start(context.Background())

	pool.Enqueue(&models.PredictionRecord{ID: "lost"})
	pool.Enqueue(&models.PredictionRecord{ID: "kept"})
	pool.Stop()

	if got := store.Count(); got != 1 {
		t.Fatalf("expected 1 stored record, got %d", got)
	}
	if store.Records[0].ID != "kept" {
		t.Errorf("expected kept record, got %s", store.Records[0].ID)
	}
}

func TestPool_ConcurrentEnqueue(t *testing.T) {
	store := &MockHistoryStore{}
	pool := NewPool(PoolConfig{
		WorkerCount:   4,
		QueueSize:     10000,
		BatchSize:     10,
		FlushInterval: 5 * time.Millisecond,
		Store:         store,
		Logger:        zap.NewNop(),
	})
	pool.Start(context.Background())

	var wg sync.WaitGroup
	var accepted sync.Map
	for g := 0; g < 10; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				id := fmt.Sprintf("%d-%d", g, j)
				if pool.Enqueue(&models.PredictionRecord{ID: id}) {
					accepted.Store(id, true)
				}
			}
		}(g)
	}

	wg.Wait()
	pool.Stop()

	want := 0
	accepted.Range(func(_, _ any) bool { want++; return true })
	if got := store.Count(); got != want {
		t.Errorf("expected %d stored records, got %d", want, got)
	}
}
