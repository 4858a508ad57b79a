package routines

import (
	"context"
	"net/http"
	"time"

	"github.com/2beens/coachportal/internal/auth"
	"github.com/2beens/coachportal/internal/coaching"
	"github.com/2beens/coachportal/internal/telemetry/tracing"
	"github.com/2beens/coachportal/pkg"

	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=routines_mocks_test.go -package=routines_test

type routinesRepo interface {
	Add(ctx context.Context, routine Routine) (string, error)
	ListByOwner(ctx context.Context, ownerID string) ([]Routine, error)
}

type setRefs interface {
	ListRefs(ctx context.Context, ownerID string) ([]coaching.Ref, error)
}

type Handler struct {
	repo routinesRepo
	sets setRefs
	now  func() time.Time
}

func NewHandler(repo routinesRepo, sets setRefs) *Handler {
	return &Handler{
		repo: repo,
		sets: sets,
		now:  time.Now,
	}
}

func (handler *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.routines.create")
	defer span.End()

	uid, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "You must be logged in to create a routine.", http.StatusUnauthorized)
		return
	}

	var req CreateRequest
	if err := coaching.DecodeJSON(r, &req); err != nil {
		log.Debugf("create routine, decode: %s", err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	routine, err := req.Validate(uid, handler.now())
	if err != nil {
		coaching.WriteCreateError(w, err, "Failed to create routine")
		return
	}

	owned, err := handler.sets.ListRefs(ctx, uid)
	if err != nil {
		coaching.WriteCreateError(w, err, "Failed to create routine")
		return
	}
	if err := coaching.RequireKnown(routine.Sets, coaching.RefsByID(owned), "Unknown set: %s"); err != nil {
		coaching.WriteCreateError(w, err, "Failed to create routine")
		return
	}

	id, err := handler.repo.Add(ctx, routine)
	if err != nil {
		coaching.WriteCreateError(w, err, "Failed to create routine")
		return
	}

	log.Debugf("routine %s created by %s", id, uid)
	pkg.WriteJSON(w, pkg.MessageResponse{
		Message: "Routine created successfully!",
		ID:      id,
	}, http.StatusCreated)
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.routines.list")
	defer span.End()

	uid, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	routines, err := handler.repo.ListByOwner(ctx, uid)
	if err != nil {
		log.Errorf("list routines: %s", err)
		http.Error(w, "Failed to fetch routines. Please try again.", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, routines, http.StatusOK)
}

func (handler *Handler) HandleOptions(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.routines.options")
	defer span.End()

	uid, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	refs, err := handler.sets.ListRefs(ctx, uid)
	if err != nil {
		log.Errorf("routine options, list sets: %s", err)
		http.Error(w, "Failed to fetch sets. Please try again.", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, Options{
		Types: TypeOptions,
		Sets:  refs,
	}, http.StatusOK)
}
