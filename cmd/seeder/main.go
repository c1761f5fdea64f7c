package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/matchcast/predict-api/internal/models"
)

// Config
const (
	defaultAPIURL = "http://localhost:5000/predict"
)

// sampleMatches covers a clear favourite, a capped edge and a tie for each sport.
var sampleMatches = []models.MatchRequest{
	{Sport: "basketball", TeamA: "Lions", TeamB: "Tigers", TeamAForm: []string{"W", "W", "L"}, TeamBForm: []string{"W", "L", "L"}},
	{Sport: "football", TeamA: "Rovers", TeamB: "United", TeamAForm: []string{"W", "D", "L", "W", "D"}, TeamBForm: []string{"L", "W", "W", "D", "L"}},
	{Sport: "rugby", TeamA: "Sharks", TeamB: "Bulls", TeamAForm: []string{"L", "L"}, TeamBForm: []string{"W", "W", "W", "W", "W", "W", "W", "W", "W", "W"}},
	{Sport: "Rugby", TeamA: "Chiefs", TeamB: "Blues", TeamAForm: []string{"W", "L"}, TeamBForm: []string{"L", "W"}},
	{Sport: "cricket", TeamA: "Lions", TeamB: "Tigers", TeamAForm: []string{"W"}, TeamBForm: []string{"L"}},
}

func main() {
	logger := zap.NewExample().Sugar()
	defer logger.Sync()

	apiURL := defaultAPIURL
	if v := os.Getenv("API_URL"); v != "" {
		apiURL = v
	}

	client := &http.Client{Timeout: 5 * time.Second}
	failed := 0

	for _, match := range sampleMatches {
		payload, err := json.Marshal(match)
		if err != nil {
			logger.Fatalw("Failed to marshal match", "error", err)
		}

		resp, err := client.Post(apiURL, "application/json", bytes.NewReader(payload))
		if err != nil {
			logger.Fatalw("Failed to send request", "url", apiURL, "error", err)
		}
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		logger.Infow("Prediction",
			"sport", match.Sport,
			"teamA", match.TeamA,
			"teamB", match.TeamB,
			"status", resp.StatusCode,
			"id", resp.Header.Get("X-Prediction-ID"),
			"response", string(bytes.TrimSpace(body)),
		)
		if resp.StatusCode >= http.StatusInternalServerError {
			failed++
		}
	}

	if failed > 0 {
		logger.Errorw("Seeding finished with server errors", "failed", failed)
		os.Exit(1)
	}
}
