package programs

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/2beens/coachportal/internal/auth"
	"github.com/2beens/coachportal/internal/coaching"
	"github.com/2beens/coachportal/internal/telemetry/tracing"
	"github.com/2beens/coachportal/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=programs_mocks_test.go -package=programs_test

type programsRepo interface {
	Create(ctx context.Context, program Program) (string, error)
	Get(ctx context.Context, id string) (Program, error)
	List(ctx context.Context) ([]Program, error)
	Phases(ctx context.Context, programID string) ([]PhaseTemplate, error)
}

type routineRefs interface {
	ListRefs(ctx context.Context, ownerID string) ([]coaching.Ref, error)
}

type DraftResponse struct {
	Program Program         `json:"program"`
	Phases  []PhaseTemplate `json:"phases"`
}

type ValidatePhaseRequest struct {
	PhaseNumber int           `json:"phaseNumber"`
	Phase       PhaseTemplate `json:"phase"`
}

type SaveRequest struct {
	Program Draft           `json:"program"`
	Phases  []PhaseTemplate `json:"phases"`
}

type Options struct {
	Routines []coaching.Ref `json:"routines"`
}

type ProgramView struct {
	Program
	PhaseSummaries []PhaseSummary `json:"phaseSummaries"`
}

type Handler struct {
	repo     programsRepo
	routines routineRefs
	now      func() time.Time
}

func NewHandler(repo programsRepo, routines routineRefs) *Handler {
	return &Handler{
		repo:     repo,
		routines: routines,
		now:      time.Now,
	}
}

func (handler *Handler) HandleDraft(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.programs.draft")
	defer span.End()

	var draft Draft
	if err := coaching.DecodeJSON(r, &draft); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	program, err := draft.Validate()
	if err != nil {
		coaching.WriteCreateError(w, err, "Failed to save program")
		return
	}

	pkg.WriteJSON(w, DraftResponse{
		Program: program,
		Phases:  NewPhaseTemplates(program.NumberOfPhases),
	}, http.StatusOK)
}

func (handler *Handler) HandleValidatePhase(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.programs.validate_phase")
	defer span.End()

	var req ValidatePhaseRequest
	if err := coaching.DecodeJSON(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.PhaseNumber <= 0 {
		http.Error(w, "invalid phase number", http.StatusBadRequest)
		return
	}

	if err := req.Phase.Validate(req.PhaseNumber); err != nil {
		coaching.WriteCreateError(w, err, "Failed to save program")
		return
	}

	pkg.WriteJSON(w, pkg.MessageResponse{
		Message: fmt.Sprintf("Phase %d saved successfully!", req.PhaseNumber),
	}, http.StatusOK)
}

func (handler *Handler) HandleAddWeek(w http.ResponseWriter, r *http.Request) {
	handler.editPhase(w, r, "handler.programs.add_week", PhaseTemplate.AddWeek)
}

func (handler *Handler) HandleAddDay(w http.ResponseWriter, r *http.Request) {
	handler.editPhase(w, r, "handler.programs.add_day", PhaseTemplate.AddDay)
}

func (handler *Handler) editPhase(w http.ResponseWriter, r *http.Request, spanName string, edit func(PhaseTemplate) PhaseTemplate) {
	_, span := tracing.GlobalTracer.Start(r.Context(), spanName)
	defer span.End()

	var phase PhaseTemplate
	if err := coaching.DecodeJSON(r, &phase); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	pkg.WriteJSON(w, edit(phase), http.StatusOK)
}

func (handler *Handler) HandleOptions(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.programs.options")
	defer span.End()

	uid, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	refs, err := handler.routines.ListRefs(ctx, uid)
	if err != nil {
		log.Errorf("program options, list routines: %s", err)
		http.Error(w, "Failed to fetch routines. Please try again.", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, Options{Routines: refs}, http.StatusOK)
}

func (handler *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.programs.create")
	defer span.End()

	uid, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "You must be logged in to create a program.", http.StatusUnauthorized)
		return
	}

	var req SaveRequest
	if err := coaching.DecodeJSON(r, &req); err != nil {
		log.Debugf("create program, decode: %s", err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	program, err := req.Program.Validate()
	if err != nil {
		coaching.WriteCreateError(w, err, "Failed to save program")
		return
	}
	if len(req.Phases) != program.NumberOfPhases {
		http.Error(w, fmt.Sprintf("Expected %d phases, got %d.", program.NumberOfPhases, len(req.Phases)), http.StatusBadRequest)
		return
	}
	if err := ValidatePhases(req.Phases); err != nil {
		http.Error(w, strings.Join(Messages(err), "\n"), http.StatusBadRequest)
		return
	}

	owned, err := handler.routines.ListRefs(ctx, uid)
	if err != nil {
		coaching.WriteCreateError(w, err, "Failed to save program")
		return
	}
	phases, err := ResolveRoutines(req.Phases, coaching.RefsByID(owned))
	if err != nil {
		coaching.WriteCreateError(w, err, "Failed to save program")
		return
	}

	program.Phases = phases
	program.OwnerID = uid
	program.CreatedAt = handler.now()

	id, err := handler.repo.Create(ctx, program)
	if err != nil {
		coaching.WriteCreateError(w, err, "Failed to save program")
		return
	}

	log.Debugf("program %s with %d phases created by %s", id, len(phases), uid)
	pkg.WriteJSON(w, pkg.MessageResponse{
		Message: "Program and phases created successfully!",
		ID:      id,
	}, http.StatusCreated)
}

// ResolveRoutines normalizes the phases and sets each day's routine label
// to the name of the owner's routine it points to.
func ResolveRoutines(phases []PhaseTemplate, routineNames map[string]string) ([]PhaseTemplate, error) {
	resolved := make([]PhaseTemplate, 0, len(phases))
	for _, phase := range phases {
		phase = phase.normalized()
		for i, day := range phase.Days {
			if day.Routine == nil {
				continue
			}
			id := strings.TrimSpace(day.Routine.Value)
			name, ok := routineNames[id]
			if !ok {
				return nil, coaching.Invalid("Unknown routine: %s", id)
			}
			phase.Days[i].Routine = &coaching.Option{Value: id, Label: name}
		}
		resolved = append(resolved, phase)
	}
	return resolved, nil
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.programs.list")
	defer span.End()

	if _, ok := auth.UserIDFromContext(ctx); !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	programs, err := handler.repo.List(ctx)
	if err != nil {
		log.Errorf("list programs: %s", err)
		http.Error(w, "Failed to fetch programs. Please try again.", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, programs, http.StatusOK)
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.programs.get")
	defer span.End()

	if _, ok := auth.UserIDFromContext(ctx); !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	id := mux.Vars(r)["id"]
	program, err := handler.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrProgramNotFound) {
			http.Error(w, "Program not found.", http.StatusNotFound)
			return
		}
		log.Errorf("get program %s: %s", id, err)
		http.Error(w, "Failed to fetch program. Please try again.", http.StatusInternalServerError)
		return
	}

	phases, err := handler.repo.Phases(ctx, id)
	if err != nil {
		log.Errorf("get program %s, phases: %s", id, err)
		http.Error(w, "Failed to fetch program. Please try again.", http.StatusInternalServerError)
		return
	}
	if len(phases) > 0 {
		program.Phases = phases
	}

	pkg.WriteJSON(w, NewProgramView(program), http.StatusOK)
}

func NewProgramView(program Program) ProgramView {
	summaries := make([]PhaseSummary, 0, len(program.Phases))
	for _, p := range program.Phases {
		summaries = append(summaries, p.Summary())
	}
	return ProgramView{
		Program:        program,
		PhaseSummaries: summaries,
	}
}
