package models

// Result codes used in a team's form.
const (
	ResultWin  = "W"
	ResultDraw = "D"
	ResultLoss = "L"
)

// MatchRequest is the body of POST /predict.
type MatchRequest struct {
	Sport     string   `json:"sport" validate:"required"`
	TeamA     string   `json:"team_a" validate:"required"`
	TeamB     string   `json:"team_b" validate:"required"`
	TeamAForm []string `json:"team_a_form" validate:"dive,oneof=W D L"`
	TeamBForm []string `json:"team_b_form" validate:"dive,oneof=W D L"`
}

// RequiredMatchFields lists the MatchRequest keys in the order they are checked.
var RequiredMatchFields = []string{"sport", "team_a", "team_b", "team_a_form", "team_b_form"}

// SportInfo describes a supported sport for GET /sports.
type SportInfo struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	AllowsDraw  bool   `json:"allows_draw"`
}

// RecentPredictionsResponse is the body of GET /predictions/recent.
type RecentPredictionsResponse struct {
	Predictions []PredictionRecord `json:"predictions"`
	Count       int                `json:"count"`
}
