package profile

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/2beens/coachportal/internal/auth"
	"github.com/2beens/coachportal/internal/coaching"
	"github.com/2beens/coachportal/internal/objectstore"
	"github.com/2beens/coachportal/internal/telemetry/metrics"
	"github.com/2beens/coachportal/internal/telemetry/tracing"
	"github.com/2beens/coachportal/pkg"

	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=profile_mocks_test.go -package=profile_test

const unknownErrorMsg = "An unknown error occurred."

type profilesRepo interface {
	Get(ctx context.Context, uid string) (UserProfile, error)
	Merge(ctx context.Context, uid string, fields map[string]any) error
}

type identityService interface {
	GetUser(ctx context.Context, uid string) (auth.User, error)
	UpdateEmail(ctx context.Context, uid, email string) (string, error)
	UpdatePassword(ctx context.Context, uid, password, confirm string) error
}

type photoUploader interface {
	Upload(ctx context.Context, params objectstore.UploadParams) (objectstore.Object, error)
}

type PhotoResponse struct {
	Message  string `json:"message"`
	PhotoURL string `json:"photoURL"`
}

type Handler struct {
	profiles       profilesRepo
	identity       identityService
	uploader       photoUploader
	maxUploadSize  int64
	metricsManager *metrics.Manager
	now            func() time.Time
}

func NewHandler(
	profiles profilesRepo,
	identity identityService,
	uploader photoUploader,
	maxUploadSize int64,
	metricsManager *metrics.Manager,
) *Handler {
	return &Handler{
		profiles:       profiles,
		identity:       identity,
		uploader:       uploader,
		maxUploadSize:  maxUploadSize,
		metricsManager: metricsManager,
		now:            time.Now,
	}
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.profile.get")
	defer span.End()

	uid, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	p, err := handler.profiles.Get(ctx, uid)
	if err != nil && !errors.Is(err, ErrProfileNotFound) {
		log.Errorf("get profile %s: %s", uid, err)
		http.Error(w, unknownErrorMsg, http.StatusInternalServerError)
		return
	}

	if p.Email == "" {
		user, err := handler.identity.GetUser(ctx, uid)
		if err != nil {
			log.Errorf("get profile %s, get user: %s", uid, err)
			http.Error(w, unknownErrorMsg, http.StatusInternalServerError)
			return
		}
		p.Email = user.Email
	}
	p.deriveAge(handler.now())

	pkg.WriteJSON(w, p, http.StatusOK)
}

func (handler *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.profile.update")
	defer span.End()

	uid, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	var req UpdateRequest
	if err := coaching.DecodeJSON(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	fields, err := req.Fields()
	if err != nil {
		msg, _ := coaching.ValidationMessage(err)
		http.Error(w, msg, http.StatusBadRequest)
		return
	}

	if err := handler.profiles.Merge(ctx, uid, fields); err != nil {
		log.Errorf("update profile %s: %s", uid, err)
		http.Error(w, unknownErrorMsg, http.StatusInternalServerError)
		return
	}

	pkg.WriteMessageResponse(w, "Profile updated successfully.", http.StatusOK)
}

func (handler *Handler) HandleUpdateEmail(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.profile.update_email")
	defer span.End()

	uid, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	var req EmailRequest
	if err := coaching.DecodeJSON(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	email, err := handler.identity.UpdateEmail(ctx, uid, req.Email)
	switch {
	case errors.Is(err, auth.ErrEmailRequired):
		http.Error(w, "Email is required.", http.StatusBadRequest)
		return
	case errors.Is(err, auth.ErrInvalidEmail):
		http.Error(w, "Invalid email address.", http.StatusBadRequest)
		return
	case errors.Is(err, auth.ErrUserExists):
		http.Error(w, "Email is already in use.", http.StatusConflict)
		return
	case err != nil:
		log.Errorf("update email %s: %s", uid, err)
		http.Error(w, unknownErrorMsg, http.StatusInternalServerError)
		return
	}

	if err := handler.profiles.Merge(ctx, uid, map[string]any{"email": email}); err != nil {
		log.Errorf("update email %s, profile: %s", uid, err)
		http.Error(w, unknownErrorMsg, http.StatusInternalServerError)
		return
	}

	pkg.WriteMessageResponse(w, "Email updated successfully.", http.StatusOK)
}

func (handler *Handler) HandleUpdatePassword(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.profile.update_password")
	defer span.End()

	uid, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	var req PasswordRequest
	if err := coaching.DecodeJSON(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	err := handler.identity.UpdatePassword(ctx, uid, req.Password, req.ConfirmPassword)
	switch {
	case errors.Is(err, auth.ErrPasswordsMismatch):
		http.Error(w, "Passwords do not match.", http.StatusBadRequest)
		return
	case errors.Is(err, auth.ErrPasswordRequired):
		http.Error(w, "Password is required.", http.StatusBadRequest)
		return
	case err != nil:
		log.Errorf("update password %s: %s", uid, err)
		http.Error(w, unknownErrorMsg, http.StatusInternalServerError)
		return
	}

	pkg.WriteMessageResponse(w, "Password updated successfully.", http.StatusOK)
}

func (handler *Handler) HandleUploadPhoto(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.profile.upload_photo")
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
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	photo, err := objectstore.UploadFormFile(ctx, handler.uploader, r, "photo", objectstore.PrefixProfiles, uid, handler.metricsManager)
	switch {
	case errors.Is(err, objectstore.ErrTooLarge):
		http.Error(w, "Photo is too large.", http.StatusRequestEntityTooLarge)
		return
	case errors.Is(err, objectstore.ErrNotAnImage):
		http.Error(w, "Photo must be an image.", http.StatusBadRequest)
		return
	case err != nil:
		log.Errorf("upload profile photo %s: %s", uid, err)
		http.Error(w, unknownErrorMsg, http.StatusInternalServerError)
		return
	case photo == nil:
		http.Error(w, "Please select a photo.", http.StatusBadRequest)
		return
	}

	if err := handler.profiles.Merge(ctx, uid, map[string]any{"photoURL": photo.URL}); err != nil {
		log.Errorf("upload profile photo %s, profile: %s", uid, err)
		http.Error(w, unknownErrorMsg, http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, PhotoResponse{
		Message:  "Profile photo updated successfully.",
		PhotoURL: photo.URL,
	}, http.StatusOK)
}
