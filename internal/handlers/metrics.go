package handlers

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics
var (
	predictionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "predict_predictions_total",
		Help: "Total number of predictions served, by sport and outcome",
	}, []string{"sport", "outcome"})

	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "predict_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"route", "method", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "predict_http_request_duration_seconds",
		Help:    "Duration of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})
)
