package logic

import (
	"context"
	"math"
	"math/rand/v2"

	"github.com/matchcast/predict-api/internal/models"
)

const (
	baseConfidence = 0.5
	winEdgeStep    = 0.05
	maxConfidence  = 0.95

	// Draw confidence is drawn in whole hundredths from [0.30, 0.50).
	drawConfidenceMinCents  = 30
	drawConfidenceSpanCents = 20
)

// RandomSource returns a uniform integer in [0, n). Implementations must be
// safe for concurrent use.
type RandomSource interface {
	IntN(n int) int
}

// globalRand uses the math/rand/v2 top-level generator, which is safe for concurrent use.
type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

type predictionService struct {
	sports *SportRegistry
	rng    RandomSource
}

// NewPredictionService builds the outcome predictor. A nil rng uses the shared
// math/rand/v2 generator.
func NewPredictionService(sports *SportRegistry, rng RandomSource) PredictionService {
	if rng == nil {
		rng = globalRand{}
	}
	return &predictionService{sports: sports, rng: rng}
}

// Predict compares recent wins of both teams. The sport is not re-validated here:
// a sport missing from the registry is scored as one without draws.
func (s *predictionService) Predict(ctx context.Context, sport, teamA, teamB string, teamAForm, teamBForm []string) (*models.Prediction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	winsA := CountWins(teamAForm)
	winsB := CountWins(teamBForm)

	switch {
	case winsA > winsB:
		return winFor(teamA, teamB, edgeConfidence(winsA-winsB)), nil
	case winsB > winsA:
		return winFor(teamB, teamA, edgeConfidence(winsB-winsA)), nil
	}

	rules, _ := s.sports.Lookup(sport)
	if rules.AllowsDraw {
		switch s.rng.IntN(3) {
		case 0:
			return winFor(teamA, teamB, baseConfidence), nil
		case 1:
			return winFor(teamB, teamA, baseConfidence), nil
		default:
			return &models.Prediction{
				Outcome:    models.OutcomeDraw,
				Confidence: s.drawConfidence(),
			}, nil
		}
	}

	if s.rng.IntN(2) == 0 {
		return winFor(teamA, teamB, baseConfidence), nil
	}
	return winFor(teamB, teamA, baseConfidence), nil
}

// drawConfidence stays below 0.5 after rounding.
func (s *predictionService) drawConfidence() float64 {
	cents := drawConfidenceMinCents + s.rng.IntN(drawConfidenceSpanCents)
	return float64(cents) / 100
}

// CountWins counts "W" entries in a form sequence.
func CountWins(form []string) int {
	wins := 0
	for _, result := range form {
		if result == models.ResultWin {
			wins++
		}
	}
	return wins
}

func edgeConfidence(edge int) float64 {
	return math.Min(baseConfidence+float64(edge)*winEdgeStep, maxConfidence)
}

func winFor(winner, loser string, confidence float64) *models.Prediction {
	return &models.Prediction{
		Outcome:     models.OutcomeWin,
		WinningTeam: winner,
		LosingTeam:  loser,
		Confidence:  roundConfidence(confidence),
	}
}

func roundConfidence(v float64) float64 {
	return math.Round(v*100) / 100
}
