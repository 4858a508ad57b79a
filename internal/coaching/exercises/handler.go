package exercises

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/2beens/coachportal/internal/auth"
	"github.com/2beens/coachportal/internal/coaching"
	"github.com/2beens/coachportal/internal/telemetry/tracing"
	"github.com/2beens/coachportal/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=exercises_mocks_test.go -package=exercises_test

type exercisesRepo interface {
	Add(ctx context.Context, exercise Exercise) (string, error)
	Get(ctx context.Context, id string) (Exercise, error)
	ListByOwner(ctx context.Context, ownerID string) ([]Exercise, error)
}

type Handler struct {
	repo exercisesRepo
	now  func() time.Time
}

func NewHandler(repo exercisesRepo) *Handler {
	return &Handler{
		repo: repo,
		now:  time.Now,
	}
}

func (handler *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.create")
	defer span.End()

	uid, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "You must be logged in to create an exercise.", http.StatusUnauthorized)
		return
	}

	var req CreateRequest
	if err := coaching.DecodeJSON(r, &req); err != nil {
		log.Debugf("create exercise, decode: %s", err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	exercise, err := req.Validate(uid, handler.now())
	if err != nil {
		coaching.WriteCreateError(w, err, "Failed to create exercise")
		return
	}

	id, err := handler.repo.Add(ctx, exercise)
	if err != nil {
		coaching.WriteCreateError(w, err, "Failed to create exercise")
		return
	}

	log.Debugf("exercise %s created by %s", id, uid)
	pkg.WriteJSON(w, pkg.MessageResponse{
		Message: "Exercise created successfully!",
		ID:      id,
	}, http.StatusCreated)
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.list")
	defer span.End()

	uid, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	exercises, err := handler.repo.ListByOwner(ctx, uid)
	if err != nil {
		log.Errorf("list exercises: %s", err)
		http.Error(w, "Failed to fetch exercises. Please try again.", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, exercises, http.StatusOK)
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.get")
	defer span.End()

	uid, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	exercise, err := handler.repo.Get(ctx, mux.Vars(r)["id"])
	if err != nil {
		if errors.Is(err, ErrExerciseNotFound) {
			http.Error(w, "Exercise not found.", http.StatusNotFound)
			return
		}
		log.Errorf("get exercise: %s", err)
		http.Error(w, "An unknown error occurred.", http.StatusInternalServerError)
		return
	}
	// other coaches' exercises are not visible
	if exercise.OwnerID != uid {
		http.Error(w, "Exercise not found.", http.StatusNotFound)
		return
	}

	pkg.WriteJSON(w, exercise, http.StatusOK)
}

func (handler *Handler) HandleOptions(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.options")
	defer span.End()

	pkg.WriteJSON(w, Options{
		BodyParts:    BodyPartOptions,
		Measurements: MeasurementOptions,
	}, http.StatusOK)
}
