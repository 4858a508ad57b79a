// Package coaching holds what the authoring flows (exercises, sets,
// routines and programs) share: select options, validation errors and
// request decoding.
package coaching

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	log "github.com/sirupsen/logrus"
)

var ErrInvalidContentType = errors.New("invalid content type")

// Option is a select option, as rendered by the portal forms.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Ref points to a document owned by the user, for pickers.
type Ref struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ValidationError carries a message meant for the user.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func Invalid(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

func ValidationMessage(err error) (string, bool) {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Message, true
	}
	return "", false
}

func LabelFor(options []Option, value string) (string, bool) {
	for _, o := range options {
		if o.Value == value {
			return o.Label, true
		}
	}
	return "", false
}

// CleanIDs trims the ids and drops blank ones, keeping order and duplicates.
func CleanIDs(ids []string) []string {
	cleaned := make([]string, 0, len(ids))
	for _, id := range ids {
		if id = strings.TrimSpace(id); id != "" {
			cleaned = append(cleaned, id)
		}
	}
	return cleaned
}

// RequireKnown fails with msgFormat (taking the id) for the first id not in known.
func RequireKnown(ids []string, known map[string]string, msgFormat string) error {
	for _, id := range ids {
		if _, ok := known[id]; !ok {
			return Invalid(msgFormat, id)
		}
	}
	return nil
}

// RefsByID indexes refs by id, the value being the name.
func RefsByID(refs []Ref) map[string]string {
	byID := make(map[string]string, len(refs))
	for _, ref := range refs {
		byID[ref.ID] = ref.Name
	}
	return byID
}

func DecodeJSON(r *http.Request, v any) error {
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		return ErrInvalidContentType
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("decode json: %w", err)
	}
	return nil
}

// WriteCreateError replies 400 with the message of a validation error and
// 500 with "<failurePrefix>: <err>" otherwise.
func WriteCreateError(w http.ResponseWriter, err error, failurePrefix string) {
	if msg, ok := ValidationMessage(err); ok {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}
	log.Errorf("%s: %s", failurePrefix, err)
	http.Error(w, fmt.Sprintf("%s: %s", failurePrefix, err), http.StatusInternalServerError)
}
