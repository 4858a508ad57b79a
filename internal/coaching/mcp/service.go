package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/2beens/coachportal/internal/coaching/exercises"
	"github.com/2beens/coachportal/internal/coaching/programs"
)

// ProgramsRepo reads published programs (for dependency injection and testing).
type ProgramsRepo interface {
	List(ctx context.Context) ([]programs.Program, error)
	Get(ctx context.Context, id string) (programs.Program, error)
	Phases(ctx context.Context, programID string) ([]programs.PhaseTemplate, error)
}

// contextService provides the coaching data the MCP tools expose.
type contextService interface {
	ListPrograms(ctx context.Context) (string, error)
	GetProgram(ctx context.Context, id string) (programs.ProgramView, error)
	ExerciseOptions() exercises.Options
}

type ContextService struct {
	programs ProgramsRepo
}

func NewContextService(programsRepo ProgramsRepo) *ContextService {
	return &ContextService{
		programs: programsRepo,
	}
}

// ListPrograms renders all programs as a markdown table.
func (s *ContextService) ListPrograms(ctx context.Context) (string, error) {
	list, err := s.programs.List(ctx)
	if err != nil {
		return "", err
	}
	return formatPrograms(list), nil
}

func formatPrograms(list []programs.Program) string {
	if len(list) == 0 {
		return "# Programs\n\nNo programs found.\n"
	}

	var b strings.Builder
	b.WriteString("# Programs\n\n")
	b.WriteString("| ID | Name | Weeks | Phases | Description |\n|----|------|-------|--------|-------------|\n")
	for _, p := range list {
		desc := p.Description
		if desc == "" {
			desc = "-"
		}
		b.WriteString(fmt.Sprintf("| %s | %s | %d | %d | %s |\n",
			p.ID, escapeCell(p.Name), p.NumberOfWeeks, p.NumberOfPhases, escapeCell(desc)))
	}
	return b.String()
}

func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	return strings.ReplaceAll(s, "\n", " ")
}

// GetProgram returns the program with its phases, read from the phases
// subcollection when it has any.
func (s *ContextService) GetProgram(ctx context.Context, id string) (programs.ProgramView, error) {
	program, err := s.programs.Get(ctx, id)
	if err != nil {
		return programs.ProgramView{}, err
	}
	phases, err := s.programs.Phases(ctx, id)
	if err != nil {
		return programs.ProgramView{}, err
	}
	if len(phases) > 0 {
		program.Phases = phases
	}
	return programs.NewProgramView(program), nil
}

func (s *ContextService) ExerciseOptions() exercises.Options {
	return exercises.Options{
		BodyParts:    exercises.BodyPartOptions,
		Measurements: exercises.MeasurementOptions,
	}
}
