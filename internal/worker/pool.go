// Package worker implements the buffered worker pool that records served predictions.
// Recording is decoupled from the request path: enqueue never blocks, workers flush
// batches to the history store on size or interval, and Stop drains what is queued.

package worker

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"github.com/matchcast/predict-api/internal/logic"
	"github.com/matchcast/predict-api/internal/models"
)

// Prometheus metrics
var (
	recordsQueued = promauto.NewCounter(prometheus.CounterOpts{
		Name: "predict_history_records_queued_total",
		Help: "Total number of predictions queued for recording",
	})

	recordsStored = promauto.NewCounter(prometheus.CounterOpts{
		Name: "predict_history_records_stored_total",
		Help: "Total number of predictions written to the history store",
	})

	recordsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "predict_history_records_failed_total",
		Help: "Total number of predictions that failed to be written",
	})

	recordsLoadShed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "predict_history_records_load_shed_total",
		Help: "Total number of predictions dropped because the queue was full or stopped",
	})

	queueDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "predict_history_queue_depth",
		Help: "Current depth of the recorder queue",
	})

	flushDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "predict_history_flush_duration_seconds",
		Help:    "Duration of batch writes to the history store",
		Buckets: prometheus.DefBuckets,
	})
)

const flushTimeout = 5 * time.Second

// Job represents a unit of work for the worker pool
type Job struct {
	Record    *models.PredictionRecord
	Timestamp time.Time
}

// PoolConfig configures the worker pool
type PoolConfig struct {
	WorkerCount   int
	QueueSize     int
	BatchSize     int
	FlushInterval time.Duration
	Store         logic.HistoryStore
	Logger        *zap.Logger
}

// Pool manages a pool of workers that write prediction records to the history store
type Pool struct {
	config   PoolConfig
	jobQueue chan Job
	wg       sync.WaitGroup
	ctx      context.Context
	cancel   context.CancelFunc
	logger   *zap.SugaredLogger

	mu      sync.RWMutex
	stopped bool
}

// NewPool creates a new worker pool
func NewPool(cfg PoolConfig) *Pool {
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 2
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 1000
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 50
	}
	if cfg.FlushInterval <= 0 {
		cfg.FlushInterval = time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	return &Pool{
		config:   cfg,
		jobQueue: make(chan Job, cfg.QueueSize),
		logger:   cfg.Logger.Sugar(),
	}
}

// Start launches the worker goroutines
func (p *Pool) Start(ctx context.Context) {
	p.ctx, p.cancel = context.WithCancel(ctx)

	for i := 0; i < p.config.WorkerCount; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}

	go p.reportQueueDepth()

	p.logger.Infow("Recorder pool started",
		"workers", p.config.WorkerCount,
		"queueSize", p.config.QueueSize,
		"batchSize", p.config.BatchSize,
	)
}

// Stop closes the queue and waits for workers to flush everything already queued.
func (p *Pool) Stop() {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	close(p.jobQueue)
	p.mu.Unlock()

	p.logger.Info("Stopping recorder pool...")
	p.wg.Wait()
	if p.cancel != nil {
		p.cancel()
	}
	p.logger.Info("Recorder pool stopped")
}

// Enqueue adds a record to the queue. It never blocks: when the queue is full or
// the pool is stopped the record is dropped and false is returned.
func (p *Pool) Enqueue(record *models.PredictionRecord) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.stopped {
		recordsLoadShed.Inc()
		return false
	}

	select {
	case p.jobQueue <- Job{Record: record, Timestamp: time.Now()}:
		recordsQueued.Inc()
		return true
	default:
		p.logger.Warnw("Recorder queue full, dropping prediction", "id", record.ID)
		recordsLoadShed.Inc()
		return false
	}
}

// QueueDepth returns current queue size
func (p *Pool) QueueDepth() int {
	return len(p.jobQueue)
}

// worker drains the queue in batches until it is closed.
func (p *Pool) worker(id int) {
	defer p.wg.Done()

	batch := make([]Job, 0, p.config.BatchSize)
	ticker := time.NewTicker(p.config.FlushInterval)
	defer ticker.Stop()

	flush := func() {
		if len(batch) == 0 {
			return
		}

		start := time.Now()
		if err := p.processBatch(batch); err != nil {
			p.logger.Errorw("Batch write failed",
				"worker", id,
				"batchSize", len(batch),
				"error", err,
			)
			recordsFailed.Add(float64(len(batch)))
		} else {
			p.logger.Debugw("Batch written", "worker", id, "batchSize", len(batch), "duration", time.Since(start))
			recordsStored.Add(float64(len(batch)))
		}
		flushDuration.Observe(time.Since(start).Seconds())

		batch = batch[:0]
	}

	for {
		select {
		case job, ok := <-p.jobQueue:
			if !ok {
				flush()
				return
			}

			batch = append(batch, job)
			if len(batch) >= p.config.BatchSize {
				flush()
			}

		case <-ticker.C:
			flush()
		}
	}
}

// processBatch writes a batch to the history store in queue order.
func (p *Pool) processBatch(batch []Job) error {
	// Detached from p.ctx so that the final flush during Stop still succeeds.
	ctx, cancel := context.WithTimeout(context.Background(), flushTimeout)
	defer cancel()

	records := make([]*models.PredictionRecord, len(batch))
	for i, job := range batch {
		records[i] = job.Record
	}
	return p.config.Store.Append(ctx, records...)
}

func (p *Pool) reportQueueDepth() {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-p.ctx.Done():
			return
		case <-ticker.C:
			queueDepth.Set(float64(len(p.jobQueue)))
		}
	}
}
