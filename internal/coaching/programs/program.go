package programs

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/2beens/coachportal/internal/coaching"

	"go.uber.org/multierr"
)

const (
	DefaultDaysPerPhase = 7
	NoRoutineLabel      = "No Routine Assigned"
	// MaxWeeks bounds a program to two years; phases never outnumber weeks.
	MaxWeeks = 104
)

type Program struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	NumberOfWeeks  int             `json:"numberOfWeeks"`
	NumberOfPhases int             `json:"numberOfPhases"`
	Description    string          `json:"description"`
	Phases         []PhaseTemplate `json:"phases"`
	OwnerID        string          `json:"ownerId"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// DayPlan assigns a routine (value is the routine id) to a day of a phase.
type DayPlan struct {
	Day     string           `json:"day"`
	Routine *coaching.Option `json:"routine"`
}

type PhaseTemplate struct {
	PhaseName       string    `json:"phaseName"`
	ApplicableWeeks []int     `json:"applicableWeeks"`
	Days            []DayPlan `json:"days"`
}

// FormInt reads integers the way the portal forms send them: a JSON
// number or a numeric string. Anything else reads as 0.
type FormInt int

func (n *FormInt) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if unquoted, err := strconv.Unquote(s); err == nil {
		s = strings.TrimSpace(unquoted)
	}
	if v, err := strconv.Atoi(s); err == nil {
		*n = FormInt(v)
		return nil
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) {
		*n = FormInt(int(max(min(f, math.MaxInt32), math.MinInt32)))
		return nil
	}
	*n = 0
	return nil
}

// Draft is the first step of program authoring.
type Draft struct {
	Name           string  `json:"name"`
	NumberOfWeeks  FormInt `json:"numberOfWeeks"`
	NumberOfPhases FormInt `json:"numberOfPhases"`
	Description    string  `json:"description"`
}

func (d Draft) Validate() (Program, error) {
	name := strings.TrimSpace(d.Name)
	if name == "" {
		return Program{}, coaching.Invalid("Program name is required.")
	}
	if d.NumberOfWeeks <= 0 {
		return Program{}, coaching.Invalid("Number of weeks must be a positive number.")
	}
	if d.NumberOfWeeks > MaxWeeks {
		return Program{}, coaching.Invalid("Number of weeks cannot exceed %d.", MaxWeeks)
	}
	if d.NumberOfPhases <= 0 {
		return Program{}, coaching.Invalid("Number of phases must be a positive number.")
	}
	if d.NumberOfPhases > d.NumberOfWeeks {
		return Program{}, coaching.Invalid("Number of phases cannot exceed the number of weeks.")
	}
	return Program{
		Name:           name,
		NumberOfWeeks:  int(d.NumberOfWeeks),
		NumberOfPhases: int(d.NumberOfPhases),
		Description:    strings.TrimSpace(d.Description),
	}, nil
}

func NewPhaseTemplate() PhaseTemplate {
	days := make([]DayPlan, 0, DefaultDaysPerPhase)
	for i := 1; i <= DefaultDaysPerPhase; i++ {
		days = append(days, DayPlan{Day: fmt.Sprintf("Day %d", i)})
	}
	return PhaseTemplate{
		ApplicableWeeks: []int{},
		Days:            days,
	}
}

func NewPhaseTemplates(n int) []PhaseTemplate {
	phases := make([]PhaseTemplate, 0, n)
	for i := 0; i < n; i++ {
		phases = append(phases, NewPhaseTemplate())
	}
	return phases
}

// AddWeek returns a copy of the phase with the week after its last one appended.
func (p PhaseTemplate) AddWeek() PhaseTemplate {
	next := 1
	if len(p.ApplicableWeeks) > 0 {
		next = max(slices.Max(p.ApplicableWeeks), 0) + 1
	}
	p.ApplicableWeeks = append(slices.Clone(p.ApplicableWeeks), next)
	return p
}

// AddDay returns a copy of the phase with an unassigned day appended.
func (p PhaseTemplate) AddDay() PhaseTemplate {
	p.Days = append(slices.Clone(p.Days), DayPlan{Day: fmt.Sprintf("Day %d", len(p.Days)+1)})
	return p
}

// problems lists everything wrong with the phase at 1-based position n.
func (p PhaseTemplate) problems(n int) []error {
	var errs []error
	if strings.TrimSpace(p.PhaseName) == "" {
		errs = append(errs, coaching.Invalid("Phase %d name is required.", n))
	}
	if len(p.ApplicableWeeks) == 0 {
		errs = append(errs, coaching.Invalid("Phase %d must have at least one applicable week.", n))
	}
	for _, week := range p.ApplicableWeeks {
		if week <= 0 {
			errs = append(errs, coaching.Invalid("Phase %d has an invalid week: %d", n, week))
			break
		}
	}
	if len(p.Days) == 0 || slices.ContainsFunc(p.Days, func(d DayPlan) bool {
		return d.Routine == nil || strings.TrimSpace(d.Routine.Value) == ""
	}) {
		errs = append(errs, coaching.Invalid("Phase %d must have a routine selected for each day.", n))
	}
	return errs
}

// Validate checks the phase at 1-based position n and reports the first problem.
func (p PhaseTemplate) Validate(n int) error {
	if errs := p.problems(n); len(errs) > 0 {
		return errs[0]
	}
	return nil
}

// ValidatePhases reports the problems of all phases at once.
func ValidatePhases(phases []PhaseTemplate) error {
	var err error
	for i, p := range phases {
		err = multierr.Append(err, multierr.Combine(p.problems(i+1)...))
	}
	return err
}

// Messages flattens an error from ValidatePhases into user-visible lines.
func Messages(err error) []string {
	var messages []string
	for _, e := range multierr.Errors(err) {
		if msg, ok := coaching.ValidationMessage(e); ok {
			messages = append(messages, msg)
		} else {
			messages = append(messages, e.Error())
		}
	}
	return messages
}

// normalized returns a copy with a trimmed name and sorted unique weeks.
func (p PhaseTemplate) normalized() PhaseTemplate {
	p.PhaseName = strings.TrimSpace(p.PhaseName)
	weeks := slices.Clone(p.ApplicableWeeks)
	slices.Sort(weeks)
	p.ApplicableWeeks = slices.Compact(weeks)
	p.Days = slices.Clone(p.Days)
	return p
}

// CoversWeek tells if the phase applies to the 1-based program week.
func (p PhaseTemplate) CoversWeek(week int) bool {
	return slices.Contains(p.ApplicableWeeks, week)
}

type DaySummary struct {
	Day     string `json:"day"`
	Routine string `json:"routine"`
}

type PhaseSummary struct {
	PhaseName       string       `json:"phaseName"`
	ApplicableWeeks []int        `json:"applicableWeeks"`
	Days            []DaySummary `json:"days"`
}

func (p PhaseTemplate) Summary() PhaseSummary {
	days := make([]DaySummary, 0, len(p.Days))
	for _, d := range p.Days {
		label := NoRoutineLabel
		if d.Routine != nil && d.Routine.Label != "" {
			label = d.Routine.Label
		}
		days = append(days, DaySummary{Day: d.Day, Routine: label})
	}
	return PhaseSummary{
		PhaseName:       p.PhaseName,
		ApplicableWeeks: p.ApplicableWeeks,
		Days:            days,
	}
}
