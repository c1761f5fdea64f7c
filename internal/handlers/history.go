package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/matchcast/predict-api/internal/models"
)

const defaultRecentLimit = 20

// GetRecentPredictions returns the latest served predictions, newest first
// @Summary Recent Predictions
// @Tags Predictions
// @Produce json
// @Param limit query int false "Number of predictions (default 20)"
// @Success 200 {object} models.RecentPredictionsResponse
// @Failure 400 {object} map[string]string "Invalid limit"
// @Failure 500 {object} map[string]string "History unavailable"
// @Router /predictions/recent [get]
func (h *Handler) GetRecentPredictions(w http.ResponseWriter, r *http.Request) {
	limit := min(defaultRecentLimit, h.historySize)
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > h.historySize {
			h.errorResponse(w, http.StatusBadRequest,
				fmt.Sprintf("Invalid limit: must be between 1 and %d", h.historySize))
			return
		}
		limit = n
	}

	records, err := h.history.Recent(r.Context(), limit)
	if err != nil {
		h.logger.Errorw("Failed to get recent predictions", "error", err, "limit", limit)
		h.errorResponse(w, http.StatusInternalServerError, "Failed to get recent predictions")
		return
	}

	h.jsonResponse(w, http.StatusOK, models.RecentPredictionsResponse{
		Predictions: records,
		Count:       len(records),
	})
}
