package userprograms

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/2beens/coachportal/internal/coaching"
	"github.com/2beens/coachportal/internal/coaching/programs"
)

type UserProgram struct {
	ID           string        `json:"id"`
	UserID       string        `json:"userId"`
	ProgramID    string        `json:"programId"`
	AssignedAt   time.Time     `json:"assignedAt"`
	Measurements *Measurements `json:"measurements,omitempty"`
	StartPhoto   *string       `json:"startPhoto,omitempty"`
}

// Measurements are body measurements taken when a program starts. Unset
// fields were left empty in the form.
type Measurements struct {
	Neck    *float64 `json:"neck,omitempty"`
	Chest   *float64 `json:"chest,omitempty"`
	Biceps  *float64 `json:"biceps,omitempty"`
	Thighs  *float64 `json:"thighs,omitempty"`
	Calves  *float64 `json:"calves,omitempty"`
	Waist   *float64 `json:"waist,omitempty"`
	Glutes  *float64 `json:"glutes,omitempty"`
	Weight  *float64 `json:"weight,omitempty"`
	BodyFat *float64 `json:"bodyFat,omitempty"`
}

// MeasurementFields are the form field names, in form order.
var MeasurementFields = []string{"neck", "chest", "biceps", "thighs", "calves", "waist", "glutes", "weight", "bodyFat"}

func (m *Measurements) field(name string) **float64 {
	switch name {
	case "neck":
		return &m.Neck
	case "chest":
		return &m.Chest
	case "biceps":
		return &m.Biceps
	case "thighs":
		return &m.Thighs
	case "calves":
		return &m.Calves
	case "waist":
		return &m.Waist
	case "glutes":
		return &m.Glutes
	case "weight":
		return &m.Weight
	case "bodyFat":
		return &m.BodyFat
	}
	return nil
}

// ParseMeasurements reads the measurement fields through formValue.
// Empty fields stay unset, anything else must be a non-negative decimal.
func ParseMeasurements(formValue func(string) string) (Measurements, error) {
	var m Measurements
	for _, name := range MeasurementFields {
		raw := strings.TrimSpace(formValue(name))
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return Measurements{}, coaching.Invalid("Invalid value for %s.", name)
		}
		*m.field(name) = &v
	}
	return m, nil
}

type StartRequest struct {
	ProgramID string `json:"programId"`
}

// Today is where a user is in their program on a given date.
type Today struct {
	Week      int              `json:"week"`
	Day       int              `json:"day"`
	PhaseName string           `json:"phaseName,omitempty"`
	DayName   string           `json:"dayName,omitempty"`
	Routine   *coaching.Option `json:"routine"`
}

// ComputeToday finds the phase covering the current program week and the
// routine of the current day. Weeks and days are 1-based, counted from the
// assignment date.
func ComputeToday(program programs.Program, assignedAt, now time.Time) Today {
	days := 0
	if now.After(assignedAt) {
		days = int(now.Sub(assignedAt) / (24 * time.Hour))
	}
	today := Today{
		Week: days/7 + 1,
		Day:  days%7 + 1,
	}

	for _, phase := range program.Phases {
		if !phase.CoversWeek(today.Week) {
			continue
		}
		today.PhaseName = phase.PhaseName
		if today.Day <= len(phase.Days) {
			d := phase.Days[today.Day-1]
			today.DayName = d.Day
			today.Routine = d.Routine
		}
		break
	}
	return today
}
