package handlers

import (
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/matchcast/predict-api/internal/logic"
	"github.com/matchcast/predict-api/internal/models"
)

// MaxBodySize limits the size of request bodies to 1MB
const MaxBodySize = 1048576

// Recorder defines the interface for the prediction history worker pool
type Recorder interface {
	Enqueue(record *models.PredictionRecord) bool
	QueueDepth() int
}

type Config struct {
	Recorder    Recorder
	History     logic.HistoryStore
	Sports      *logic.SportRegistry
	Prediction  logic.PredictionService
	HistorySize int
	Logger      *zap.Logger
}

type Handler struct {
	recorder    Recorder
	history     logic.HistoryStore
	sports      *logic.SportRegistry
	prediction  logic.PredictionService
	historySize int
	logger      *zap.SugaredLogger
	validator   *validator.Validate
}

func New(cfg Config) *Handler {
	return &Handler{
		recorder:    cfg.Recorder,
		history:     cfg.History,
		sports:      cfg.Sports,
		prediction:  cfg.Prediction,
		historySize: cfg.HistorySize,
		logger:      cfg.Logger.Sugar(),
		validator:   newValidator(),
	}
}
