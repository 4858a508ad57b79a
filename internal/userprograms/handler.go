package userprograms

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/2beens/coachportal/internal/auth"
	"github.com/2beens/coachportal/internal/coaching"
	"github.com/2beens/coachportal/internal/coaching/programs"
	"github.com/2beens/coachportal/internal/objectstore"
	"github.com/2beens/coachportal/internal/telemetry/metrics"
	"github.com/2beens/coachportal/internal/telemetry/tracing"
	"github.com/2beens/coachportal/pkg"

	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=userprograms_mocks_test.go -package=userprograms_test

const noActiveProgramMsg = "No active program found. Please assign a program first."

type userProgramsRepo interface {
	Add(ctx context.Context, userProgram UserProgram) (string, error)
	FirstByUser(ctx context.Context, userID string) (UserProgram, error)
	SaveMeasurements(ctx context.Context, id string, measurements Measurements, startPhoto *string) error
}

type programsReader interface {
	Get(ctx context.Context, id string) (programs.Program, error)
}

type photoUploader interface {
	Upload(ctx context.Context, params objectstore.UploadParams) (objectstore.Object, error)
}

type ActiveProgram struct {
	UserProgram UserProgram          `json:"userProgram"`
	Program     programs.ProgramView `json:"program"`
}

type Handler struct {
	repo           userProgramsRepo
	programs       programsReader
	uploader       photoUploader
	maxUploadSize  int64
	metricsManager *metrics.Manager
	now            func() time.Time
}

func NewHandler(
	repo userProgramsRepo,
	programsRepo programsReader,
	uploader photoUploader,
	maxUploadSize int64,
	metricsManager *metrics.Manager,
) *Handler {
	return &Handler{
		repo:           repo,
		programs:       programsRepo,
		uploader:       uploader,
		maxUploadSize:  maxUploadSize,
		metricsManager: metricsManager,
		now:            time.Now,
	}
}

func (handler *Handler) HandleStart(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.user_programs.start")
	defer span.End()

	uid, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	var req StartRequest
	if err := coaching.DecodeJSON(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	programID := strings.TrimSpace(req.ProgramID)
	if programID == "" {
		http.Error(w, "Please select a program.", http.StatusBadRequest)
		return
	}

	if _, err := handler.programs.Get(ctx, programID); err != nil {
		if errors.Is(err, programs.ErrProgramNotFound) {
			http.Error(w, "Program not found.", http.StatusNotFound)
			return
		}
		coaching.WriteCreateError(w, err, "Failed to start program")
		return
	}

	id, err := handler.repo.Add(ctx, UserProgram{
		UserID:     uid,
		ProgramID:  programID,
		AssignedAt: handler.now(),
	})
	if err != nil {
		coaching.WriteCreateError(w, err, "Failed to start program")
		return
	}

	log.Debugf("user %s started program %s", uid, programID)
	pkg.WriteJSON(w, pkg.MessageResponse{
		Message: "Program started successfully!",
		ID:      id,
	}, http.StatusCreated)
}

var errNoActiveProgram = errors.New("no active program")

func (handler *Handler) activeProgram(ctx context.Context, uid string) (UserProgram, programs.Program, error) {
	userProgram, err := handler.repo.FirstByUser(ctx, uid)
	if err != nil {
		if errors.Is(err, ErrUserProgramNotFound) {
			return UserProgram{}, programs.Program{}, errNoActiveProgram
		}
		return UserProgram{}, programs.Program{}, err
	}

	program, err := handler.programs.Get(ctx, userProgram.ProgramID)
	if err != nil {
		if errors.Is(err, programs.ErrProgramNotFound) {
			return UserProgram{}, programs.Program{}, errNoActiveProgram
		}
		return UserProgram{}, programs.Program{}, err
	}
	return userProgram, program, nil
}

func writeActiveProgramError(w http.ResponseWriter, err error) {
	if errors.Is(err, errNoActiveProgram) {
		http.Error(w, noActiveProgramMsg, http.StatusNotFound)
		return
	}
	log.Errorf("active program: %s", err)
	http.Error(w, "Failed to fetch active program. Please try again.", http.StatusInternalServerError)
}

func (handler *Handler) HandleActive(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.user_programs.active")
	defer span.End()

	uid, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	userProgram, program, err := handler.activeProgram(ctx, uid)
	if err != nil {
		writeActiveProgramError(w, err)
		return
	}

	pkg.WriteJSON(w, ActiveProgram{
		UserProgram: userProgram,
		Program:     programs.NewProgramView(program),
	}, http.StatusOK)
}

func (handler *Handler) HandleToday(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.user_programs.today")
	defer span.End()

	uid, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	userProgram, program, err := handler.activeProgram(ctx, uid)
	if err != nil {
		writeActiveProgramError(w, err)
		return
	}

	pkg.WriteJSON(w, ComputeToday(program, userProgram.AssignedAt, handler.now()), http.StatusOK)
}

func (handler *Handler) HandleSaveMeasurements(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.user_programs.save_measurements")
	defer span.End()

	uid, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	if err := objectstore.ParseUploadForm(w, r, handler.maxUploadSize); err != nil {
		if errors.Is(err, objectstore.ErrTooLarge) {
			http.Error(w, "Photo is too large.", http.StatusRequestEntityTooLarge)
			return
		}
		log.Debugf("save measurements, parse form: %s", err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	measurements, err := ParseMeasurements(r.FormValue)
	if err != nil {
		coaching.WriteCreateError(w, err, "Failed to save measurements")
		return
	}

	userProgram, err := handler.repo.FirstByUser(ctx, uid)
	if err != nil {
		if errors.Is(err, ErrUserProgramNotFound) {
			http.Error(w, noActiveProgramMsg, http.StatusNotFound)
			return
		}
		coaching.WriteCreateError(w, err, "Failed to save measurements")
		return
	}

	photo, err := objectstore.UploadFormFile(ctx, handler.uploader, r, "photo", objectstore.PrefixUserProgramPhotos, uid, handler.metricsManager)
	if err != nil {
		if errors.Is(err, objectstore.ErrTooLarge) {
			http.Error(w, "Photo is too large.", http.StatusRequestEntityTooLarge)
			return
		}
		if errors.Is(err, objectstore.ErrNotAnImage) {
			http.Error(w, "Photo must be an image.", http.StatusBadRequest)
			return
		}
		coaching.WriteCreateError(w, err, "Failed to save measurements")
		return
	}
	var startPhoto *string
	if photo != nil {
		startPhoto = &photo.URL
	}

	if err := handler.repo.SaveMeasurements(ctx, userProgram.ID, measurements, startPhoto); err != nil {
		coaching.WriteCreateError(w, err, "Failed to save measurements")
		return
	}

	pkg.WriteMessageResponse(w, "Measurements saved!", http.StatusOK)
}
