package handler

import (
	"fmt"
	"strings"

	"dirok/internal/inference/models"
	dErrors "dirok/pkg/domain-errors"
)

const (
	maxNameLength = 100
	maxAge        = 150
	maxYears      = 120
	maxCigarettes = 200
	maxSymptoms   = 100
)

// DiagnoseRequest is the HTTP request body for POST /diagnoses.
type DiagnoseRequest struct {
	Profile  ProfileRequest   `json:"profile"`
	Symptoms []SymptomRequest `json:"symptoms"`
}

type ProfileRequest struct {
	Name             string `json:"name"`
	Gender           string `json:"gender"`
	Age              int    `json:"age"`
	SmokingYears     int    `json:"smoking_years"`
	CigarettesPerDay int    `json:"cigarettes_per_day"`
}

// SymptomRequest reports one symptom. A missing confidence means certain (1.0);
// out-of-range values are clamped by the engine.
type SymptomRequest struct {
	ID         string   `json:"id"`
	Confidence *float64 `json:"confidence"`
}

// Validate implements httputil.Validatable.
func (r *DiagnoseRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}

	// Size validation (fail fast)
	if len(r.Symptoms) > maxSymptoms {
		return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("at most %d symptoms may be reported", maxSymptoms))
	}
	r.Profile.Name = strings.TrimSpace(r.Profile.Name)
	if len(r.Profile.Name) > maxNameLength {
		return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("name must be at most %d characters", maxNameLength))
	}
	r.Profile.Gender = strings.ToLower(strings.TrimSpace(r.Profile.Gender))

	if r.Profile.Age < 0 || r.Profile.Age > maxAge {
		return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("age must be between 0 and %d", maxAge))
	}
	if r.Profile.SmokingYears < 0 || r.Profile.SmokingYears > maxYears {
		return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("smoking_years must be between 0 and %d", maxYears))
	}
	if r.Profile.CigarettesPerDay < 0 || r.Profile.CigarettesPerDay > maxCigarettes {
		return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("cigarettes_per_day must be between 0 and %d", maxCigarettes))
	}

	for i := range r.Symptoms {
		r.Symptoms[i].ID = strings.TrimSpace(r.Symptoms[i].ID)
		if r.Symptoms[i].ID == "" {
			return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("symptoms[%d].id is required", i))
		}
	}
	return nil
}

func (r *DiagnoseRequest) ToProfile() models.Profile {
	return models.Profile{
		Name:             r.Profile.Name,
		Gender:           r.Profile.Gender,
		Age:              r.Profile.Age,
		SmokingYears:     r.Profile.SmokingYears,
		CigarettesPerDay: r.Profile.CigarettesPerDay,
	}
}

func (r *DiagnoseRequest) ToObservations() []models.Observation {
	out := make([]models.Observation, len(r.Symptoms))
	for i, s := range r.Symptoms {
		confidence := models.ConfidenceCertain
		if s.Confidence != nil {
			confidence = *s.Confidence
		}
		out[i] = models.NewObservation(models.SymptomID(s.ID), confidence)
	}
	return out
}
