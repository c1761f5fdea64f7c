package handlers

import (
	"net/http"

	"github.com/matchcast/predict-api/internal/models"
)

const landingPage = "<h1>Sports Prediction API</h1><p>Send a POST request to /predict to get a match outcome.</p>"

// Index confirms the API is running
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(landingPage))
}

// ListSports returns the sports predictions can be made for
// @Summary List Supported Sports
// @Tags Predictions
// @Produce json
// @Success 200 {object} map[string][]models.SportInfo
// @Router /sports [get]
func (h *Handler) ListSports(w http.ResponseWriter, r *http.Request) {
	all := h.sports.All()
	sports := make([]models.SportInfo, 0, len(all))
	for _, s := range all {
		sports = append(sports, models.SportInfo{
			Name:        s.Name,
			DisplayName: s.DisplayName,
			AllowsDraw:  s.AllowsDraw,
		})
	}

	h.jsonResponse(w, http.StatusOK, map[string]interface{}{
		"sports": sports,
	})
}
