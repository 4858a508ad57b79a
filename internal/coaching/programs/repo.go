package programs

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/2beens/coachportal/internal/coaching"
	"github.com/2beens/coachportal/internal/docstore"
	"github.com/2beens/coachportal/internal/telemetry/metrics"
	"github.com/2beens/coachportal/internal/telemetry/tracing"

	"go.opentelemetry.io/otel/attribute"
)

const (
	Collection       = "programs"
	PhasesCollection = "phases"
)

var ErrProgramNotFound = errors.New("program not found")

type Repo struct {
	store          docstore.Store
	metricsManager *metrics.Manager
}

func NewRepo(store docstore.Store, metricsManager *metrics.Manager) *Repo {
	return &Repo{
		store:          store,
		metricsManager: metricsManager,
	}
}

// phaseDoc is a phase as kept under programs/<id>/phases.
type phaseDoc struct {
	Position int `json:"position"`
	PhaseTemplate
}

// Create writes the program document, phases included, and then each phase
// into the program's phases subcollection.
func (r *Repo) Create(ctx context.Context, program Program) (_ string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.programs.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	id, err := r.store.Add(ctx, Collection, program)
	if err != nil {
		return "", err
	}
	span.SetAttributes(attribute.String("program.id", id))
	if r.metricsManager != nil {
		r.metricsManager.CounterDocumentsCreated.WithLabelValues(Collection).Inc()
	}

	phasesPath := docstore.Subcollection(Collection, id, PhasesCollection)
	for i, phase := range program.Phases {
		if _, err := r.store.Add(ctx, phasesPath, phaseDoc{Position: i + 1, PhaseTemplate: phase}); err != nil {
			return id, fmt.Errorf("add phase %d: %w", i+1, err)
		}
	}
	if r.metricsManager != nil && len(program.Phases) > 0 {
		r.metricsManager.CounterDocumentsCreated.WithLabelValues(PhasesCollection).Add(float64(len(program.Phases)))
	}

	return id, nil
}

func (r *Repo) Get(ctx context.Context, id string) (_ Program, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.programs.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("program.id", id))

	doc, err := r.store.Get(ctx, Collection, id)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) || errors.Is(err, docstore.ErrInvalidID) {
			return Program{}, ErrProgramNotFound
		}
		return Program{}, fmt.Errorf("get program: %w", err)
	}

	var program Program
	if err := doc.DataTo(&program); err != nil {
		return Program{}, err
	}
	return program, nil
}

func (r *Repo) List(ctx context.Context) (_ []Program, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.programs.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	docs, err := r.store.List(ctx, Collection)
	if err != nil {
		return nil, fmt.Errorf("list programs: %w", err)
	}
	return coaching.DecodeAll[Program](docs)
}

// Phases reads the phases subcollection of a program, in program order.
func (r *Repo) Phases(ctx context.Context, programID string) (_ []PhaseTemplate, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.programs.phases")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	docs, err := r.store.List(ctx, docstore.Subcollection(Collection, programID, PhasesCollection))
	if err != nil {
		return nil, fmt.Errorf("list phases: %w", err)
	}
	stored, err := coaching.DecodeAll[phaseDoc](docs)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(stored, func(i, j int) bool {
		return stored[i].Position < stored[j].Position
	})

	phases := make([]PhaseTemplate, 0, len(stored))
	for _, p := range stored {
		phases = append(phases, p.PhaseTemplate)
	}
	return phases, nil
}
