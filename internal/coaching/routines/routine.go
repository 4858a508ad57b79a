package routines

import (
	"strings"
	"time"

	"github.com/2beens/coachportal/internal/coaching"
)

// Routine is what a program assigns to a day. Sets keep their order, and
// the same set may appear more than once.
type Routine struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Type        string    `json:"type"`
	Sets        []string  `json:"sets"`
	OwnerID     string    `json:"ownerId"`
	CreatedAt   time.Time `json:"createdAt"`
}

var TypeOptions = []coaching.Option{
	{Value: "upper_body", Label: "Upper Body"},
	{Value: "lower_body", Label: "Lower Body"},
	{Value: "cardio", Label: "Cardio"},
	{Value: "yoga", Label: "Yoga"},
	{Value: "stretch", Label: "Stretch"},
	{Value: "total_body", Label: "Total Body"},
	{Value: "core", Label: "Core"},
	{Value: "other", Label: "Other"},
}

type Options struct {
	Types []coaching.Option `json:"types"`
	Sets  []coaching.Ref    `json:"sets"`
}

type CreateRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Type        string   `json:"type"`
	Sets        []string `json:"sets"`
}

func (req CreateRequest) Validate(ownerID string, now time.Time) (Routine, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return Routine{}, coaching.Invalid("Routine name is required.")
	}

	routineType := strings.TrimSpace(req.Type)
	if routineType == "" {
		return Routine{}, coaching.Invalid("Please select a routine type.")
	}

	setIDs := coaching.CleanIDs(req.Sets)
	if len(setIDs) == 0 {
		return Routine{}, coaching.Invalid("Please select at least one set.")
	}

	if _, ok := coaching.LabelFor(TypeOptions, routineType); !ok {
		return Routine{}, coaching.Invalid("Invalid routine type: %s", routineType)
	}

	return Routine{
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		Type:        routineType,
		Sets:        setIDs,
		OwnerID:     ownerID,
		CreatedAt:   now,
	}, nil
}
