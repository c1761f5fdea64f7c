package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/matchcast/predict-api/internal/logic"
	"github.com/matchcast/predict-api/internal/models"
)

// requestError is a client error answered with status and message as-is.
type requestError struct {
	status  int
	message string
}

func (e *requestError) Error() string { return e.message }

func badRequest(message string) error {
	return &requestError{status: http.StatusBadRequest, message: message}
}

// newValidator reports fields by their JSON name.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// decodeMatchRequest reads and validates a POST /predict body. Checks run in the
// order clients see them: empty body, missing fields, field types, sport, values.
func (h *Handler) decodeMatchRequest(w http.ResponseWriter, r *http.Request) (*models.MatchRequest, error) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodySize)
	defer r.Body.Close()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, &requestError{status: http.StatusRequestEntityTooLarge, message: "Request body too large"}
		}
		return nil, badRequest("Invalid request body")
	}

	if len(bytes.TrimSpace(body)) == 0 {
		return nil, badRequest("No data provided")
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, badRequest("Invalid JSON payload")
	}
	if len(fields) == 0 {
		return nil, badRequest("No data provided")
	}

	for _, name := range models.RequiredMatchFields {
		raw, ok := fields[name]
		if !ok || string(bytes.TrimSpace(raw)) == "null" {
			return nil, badRequest("Missing field: " + name)
		}
	}

	req := &models.MatchRequest{}
	targets := []interface{}{&req.Sport, &req.TeamA, &req.TeamB, &req.TeamAForm, &req.TeamBForm}
	for i, name := range models.RequiredMatchFields {
		if err := json.Unmarshal(fields[name], targets[i]); err != nil {
			return nil, badRequest("Invalid field: " + name)
		}
	}

	rules, err := h.sports.Resolve(req.Sport)
	if err != nil {
		var unsupported *logic.UnsupportedSportError
		if errors.As(err, &unsupported) {
			return nil, badRequest(unsupported.Error())
		}
		return nil, err
	}
	req.Sport = rules.Name

	if err := h.validator.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return nil, badRequest("Invalid field: " + fieldName(verrs[0]))
		}
		return nil, badRequest("Invalid request")
	}

	return req, nil
}

// fieldName drops the element index from dive errors ("team_a_form[2]").
func fieldName(fe validator.FieldError) string {
	name := fe.Field()
	if i := strings.IndexByte(name, '['); i >= 0 {
		name = name[:i]
	}
	return name
}
