package sets

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

//go:generate mockgen -source=$GOFILE -destination=sets_mocks_test.go -package=sets_test

type setsRepo interface {
	Add(ctx context.Context, set Set) (string, error)
	ListByOwner(ctx context.Context, ownerID string) ([]Set, error)
}

type exerciseRefs interface {
	ListRefs(ctx context.Context, ownerID string) ([]coaching.Ref, error)
}

type Handler struct {
	repo      setsRepo
	exercises exerciseRefs
	now       func() time.Time
}

func NewHandler(repo setsRepo, exercises exerciseRefs) *Handler {
	return &Handler{
		repo:      repo,
		exercises: exercises,
		now:       time.Now,
	}
}

func (handler *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sets.create")
	defer span.End()

	uid, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "You must be logged in to create a set.", http.StatusUnauthorized)
		return
	}

	var req CreateRequest
	if err := coaching.DecodeJSON(r, &req); err != nil {
		log.Debugf("create set, decode: %s", err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	set, err := req.Validate(uid, handler.now())
	if err != nil {
		coaching.WriteCreateError(w, err, "Failed to create set")
		return
	}

	owned, err := handler.exercises.ListRefs(ctx, uid)
	if err != nil {
		coaching.WriteCreateError(w, err, "Failed to create set")
		return
	}
	if err := coaching.RequireKnown(set.Exercises, coaching.RefsByID(owned), "Unknown exercise: %s"); err != nil {
		coaching.WriteCreateError(w, err, "Failed to create set")
		return
	}

	id, err := handler.repo.Add(ctx, set)
	if err != nil {
		coaching.WriteCreateError(w, err, "Failed to create set")
		return
	}

	log.Debugf("set %s created by %s", id, uid)
	pkg.WriteJSON(w, pkg.MessageResponse{
		Message: "Set created successfully!",
		ID:      id,
	}, http.StatusCreated)
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sets.list")
	defer span.End()

	uid, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	sets, err := handler.repo.ListByOwner(ctx, uid)
	if err != nil {
		log.Errorf("list sets: %s", err)
		http.Error(w, "Failed to fetch sets. Please try again.", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, sets, http.StatusOK)
}

// HandleOptions lists the exercises a new set can pick from.
func (handler *Handler) HandleOptions(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sets.options")
	defer span.End()

	uid, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	refs, err := handler.exercises.ListRefs(ctx, uid)
	if err != nil {
		log.Errorf("set options, list exercises: %s", err)
		http.Error(w, "Failed to fetch exercises. Please try again.", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, map[string][]coaching.Ref{"exercises": refs}, http.StatusOK)
}
