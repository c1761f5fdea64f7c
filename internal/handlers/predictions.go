package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/matchcast/predict-api/internal/models"
)

// Predict returns a heuristic outcome for a match from both teams' recent form
// @Summary Predict Match Outcome
// @Description Compares recent wins of two teams. Football ties may be predicted as a draw.
// @Tags Predictions
// @Accept json
// @Produce json
// @Param body body models.MatchRequest true "Match"
// @Success 200 {object} models.Prediction
// @Header 200 {string} X-Prediction-ID "Prediction ID"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 413 {object} map[string]string "Request body too large"
// @Failure 500 {object} map[string]string "Prediction failed"
// @Router /predict [post]
func (h *Handler) Predict(w http.ResponseWriter, r *http.Request) {
	req, err := h.decodeMatchRequest(w, r)
	if err != nil {
		var reqErr *requestError
		if errors.As(err, &reqErr) {
			h.errorResponse(w, reqErr.status, reqErr.message)
			return
		}
		h.logger.Errorw("Failed to decode match request", "error", err)
		h.errorResponse(w, http.StatusBadRequest, "Invalid request")
		return
	}

	pred, err := h.runPrediction(r.Context(), req)
	if err != nil {
		h.logger.Errorw("Prediction failed",
			"error", err,
			"sport", req.Sport,
			"requestID", middleware.GetReqID(r.Context()),
		)
		h.jsonResponse(w, http.StatusInternalServerError, map[string]string{
			"error":   "An error occurred during prediction.",
			"details": err.Error(),
		})
		return
	}

	predictionsTotal.WithLabelValues(req.Sport, pred.Outcome).Inc()

	record := &models.PredictionRecord{
		ID:         uuid.NewString(),
		Sport:      req.Sport,
		TeamA:      req.TeamA,
		TeamB:      req.TeamB,
		Prediction: *pred,
		CreatedAt:  time.Now().UTC(),
	}
	if !h.recorder.Enqueue(record) {
		h.logger.Warnw("Prediction not recorded", "id", record.ID)
	}

	w.Header().Set("X-Prediction-ID", record.ID)
	h.jsonResponse(w, http.StatusOK, pred)
}

// runPrediction turns a panic in the predictor into an error for the 500 response.
func (h *Handler) runPrediction(ctx context.Context, req *models.MatchRequest) (pred *models.Prediction, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			pred = nil
			err = fmt.Errorf("%v", rec)
		}
	}()
	return h.prediction.Predict(ctx, req.Sport, req.TeamA, req.TeamB, req.TeamAForm, req.TeamBForm)
}
