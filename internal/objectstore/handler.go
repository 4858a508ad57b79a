package objectstore

import (
	"errors"
	"net/http"
	"strings"

	"github.com/2beens/coachportal/internal/telemetry/tracing"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	store *DiskStore
}

func NewHandler(store *DiskStore) *Handler {
	return &Handler{
		store: store,
	}
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.files.get")
	defer span.End()

	objectPath := mux.Vars(r)["path"]
	if objectPath == "" {
		http.Error(w, "error, path empty", http.StatusBadRequest)
		return
	}

	f, obj, err := handler.store.Open(ctx, objectPath)
	if err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrInvalidPath) {
			http.NotFound(w, r)
			return
		}
		log.Errorf("get file [%s]: %s", objectPath, err)
		http.Error(w, "get file failed", http.StatusInternalServerError)
		return
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.Errorf("close file [%s]: %s", objectPath, err)
		}
	}()

	contentType := obj.ContentType
	if !strings.HasPrefix(contentType, "image/") {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("Cache-Control", "private, max-age=3600")
	http.ServeContent(w, r, obj.Name, obj.CreatedAt, f)
}
