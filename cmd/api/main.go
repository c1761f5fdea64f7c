package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/matchcast/predict-api/internal/config"
	"github.com/matchcast/predict-api/internal/handlers"
	"github.com/matchcast/predict-api/internal/logic"
	"github.com/matchcast/predict-api/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		zap.NewExample().Fatal("invalid configuration", zap.Error(err))
	}

	logger, err := newLogger(cfg)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server exited with error", zap.Error(err))
	}
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	history, closeHistory, err := newHistoryStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeHistory()

	pool := worker.NewPool(worker.PoolConfig{
		WorkerCount:   cfg.RecorderWorkers,
		QueueSize:     cfg.RecorderQueueSize,
		BatchSize:     cfg.RecorderBatchSize,
		FlushInterval: cfg.RecorderFlushInterval,
		Store:         history,
		Logger:        logger,
	})
	pool.Start(context.Background())
	defer pool.Stop()

	sports := logic.DefaultSportRegistry()
	h := handlers.New(handlers.Config{
		Recorder:    pool,
		History:     history,
		Sports:      sports,
		Prediction:  logic.NewPredictionService(sports, nil),
		HistorySize: cfg.HistorySize,
		Logger:      logger,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handlers.NewRouter(h, cfg.AllowedOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("HTTP server listening",
			zap.String("addr", srv.Addr),
			zap.String("env", cfg.Env),
			zap.Strings("sports", sports.Names()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down HTTP server", zap.Duration("timeout", cfg.ShutdownTimeout))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// newHistoryStore connects to Redis when REDIS_URL is set and falls back to memory otherwise.
func newHistoryStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (logic.HistoryStore, func(), error) {
	if cfg.RedisURL == "" {
		logger.Info("Using in-memory prediction history", zap.Int("size", cfg.HistorySize))
		return logic.NewMemoryHistoryStore(cfg.HistorySize), func() {}, nil
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, nil, err
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, nil, err
	}

	logger.Info("Using Redis prediction history", zap.String("addr", opts.Addr), zap.Int("size", cfg.HistorySize))
	return logic.NewRedisHistoryStore(client, cfg.HistorySize), func() { client.Close() }, nil
}
