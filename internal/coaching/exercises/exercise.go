package exercises

import (
	"slices"
	"strings"
	"time"

	"github.com/2beens/coachportal/internal/coaching"
)

type Exercise struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	BodyParts   []string  `json:"bodyParts"`
	Measurement string    `json:"measurement"`
	Timed       bool      `json:"timed"`
	Weights     bool      `json:"weights"`
	Description string    `json:"description"`
	OwnerID     string    `json:"ownerId"`
	CreatedAt   time.Time `json:"createdAt"`
}

var BodyPartOptions = []coaching.Option{
	{Value: "neck", Label: "Neck"},
	{Value: "shoulders", Label: "Shoulders"},
	{Value: "biceps", Label: "Biceps"},
	{Value: "triceps", Label: "Triceps"},
	{Value: "forearms", Label: "Forearms"},
	{Value: "back", Label: "Back"},
	{Value: "hamstrings", Label: "Hamstrings"},
	{Value: "quadriceps", Label: "Quadriceps"},
	{Value: "glutes", Label: "Glutes"},
	{Value: "calves", Label: "Calves"},
	{Value: "chest", Label: "Chest"},
	{Value: "abs", Label: "Abs"},
}

var MeasurementOptions = []coaching.Option{
	{Value: "reps", Label: "Reps"},
	{Value: "amap", Label: "AMAP"},
	{Value: "laps", Label: "Laps"},
	{Value: "seconds", Label: "Seconds"},
	{Value: "minutes", Label: "Minutes"},
}

type Options struct {
	BodyParts    []coaching.Option `json:"bodyParts"`
	Measurements []coaching.Option `json:"measurements"`
}

type CreateRequest struct {
	Name        string   `json:"name"`
	BodyParts   []string `json:"bodyParts"`
	Measurement string   `json:"measurement"`
	Timed       bool     `json:"timed"`
	Weights     bool     `json:"weights"`
	Description string   `json:"description"`
}

// Validate checks the request and returns the exercise to store.
func (req CreateRequest) Validate(ownerID string, now time.Time) (Exercise, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return Exercise{}, coaching.Invalid("Exercise name is required.")
	}

	var bodyParts []string
	for _, part := range coaching.CleanIDs(req.BodyParts) {
		part = strings.ToLower(part)
		if !slices.Contains(bodyParts, part) {
			bodyParts = append(bodyParts, part)
		}
	}
	if len(bodyParts) == 0 {
		return Exercise{}, coaching.Invalid("Please select at least one body part.")
	}

	measurement := strings.ToLower(strings.TrimSpace(req.Measurement))
	if measurement == "" {
		return Exercise{}, coaching.Invalid("Please select a measurement.")
	}

	for _, part := range bodyParts {
		if _, ok := coaching.LabelFor(BodyPartOptions, part); !ok {
			return Exercise{}, coaching.Invalid("Invalid body part: %s", part)
		}
	}
	if _, ok := coaching.LabelFor(MeasurementOptions, measurement); !ok {
		return Exercise{}, coaching.Invalid("Invalid measurement: %s", measurement)
	}

	return Exercise{
		Name:        name,
		BodyParts:   bodyParts,
		Measurement: measurement,
		Timed:       req.Timed,
		Weights:     req.Weights,
		Description: strings.TrimSpace(req.Description),
		OwnerID:     ownerID,
		CreatedAt:   now,
	}, nil
}
