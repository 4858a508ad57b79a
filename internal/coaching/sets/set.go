package sets

import (
	"strings"
	"time"

	"github.com/2beens/coachportal/internal/coaching"
)

// Set groups exercises; the exercises are ids of the owner's exercises.
type Set struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Exercises   []string  `json:"exercises"`
	OwnerID     string    `json:"ownerId"`
	CreatedAt   time.Time `json:"createdAt"`
}

type CreateRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Exercises   []string `json:"exercises"`
}

func (req CreateRequest) Validate(ownerID string, now time.Time) (Set, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return Set{}, coaching.Invalid("Set name is required.")
	}

	exerciseIDs := coaching.CleanIDs(req.Exercises)
	if len(exerciseIDs) == 0 {
		return Set{}, coaching.Invalid("Please select at least one exercise.")
	}

	return Set{
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		Exercises:   exerciseIDs,
		OwnerID:     ownerID,
		CreatedAt:   now,
	}, nil
}
