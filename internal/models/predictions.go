package models

import "time"

// Outcome values as they appear in the "prediction" key of a response.
const (
	OutcomeWin  = "win"
	OutcomeDraw = "Draw"
)

// Prediction is the heuristic outcome of a single match.
// Win records carry both team names; draw records carry only a confidence.
type Prediction struct {
	Outcome     string  `json:"prediction"`
	WinningTeam string  `json:"winning_team,omitempty"`
	LosingTeam  string  `json:"losing_team,omitempty"`
	Confidence  float64 `json:"confidence"`
}

func (p *Prediction) IsDraw() bool {
	return p.Outcome == OutcomeDraw
}

// PredictionRecord is a served prediction kept in the recent-predictions history.
type PredictionRecord struct {
	ID         string     `json:"id"`
	Sport      string     `json:"sport"`
	TeamA      string     `json:"team_a"`
	TeamB      string     `json:"team_b"`
	Prediction Prediction `json:"result"`
	CreatedAt  time.Time  `json:"created_at"`
}
