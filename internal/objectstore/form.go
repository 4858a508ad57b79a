package objectstore

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/2beens/coachportal/internal/telemetry/metrics"
)

const (
	// MaxFormMemory is what multipart parsing keeps in memory before spilling to disk.
	MaxFormMemory = 10 << 20
	// DefaultMaxUploadSize applies when no upload limit is configured.
	DefaultMaxUploadSize = 10 << 20
	// room for the non-file fields and multipart boundaries
	formOverhead = 1 << 20
)

// ParseUploadForm parses a multipart form whose file parts may hold up to
// maxUploadSize bytes. Bodies over that limit fail with ErrTooLarge before
// anything is spilled to disk past the limit.
func ParseUploadForm(w http.ResponseWriter, r *http.Request, maxUploadSize int64) error {
	if maxUploadSize <= 0 {
		maxUploadSize = DefaultMaxUploadSize
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize+formOverhead)
	if err := r.ParseMultipartForm(MaxFormMemory); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return ErrTooLarge
		}
		return fmt.Errorf("parse multipart form: %w", err)
	}
	return nil
}

type Uploader interface {
	Upload(ctx context.Context, params UploadParams) (Object, error)
}

// UploadFormFile uploads the multipart file sent under field. It returns a nil
// object when the form carries no such file.
func UploadFormFile(
	ctx context.Context,
	uploader Uploader,
	r *http.Request,
	field, prefix, ownerID string,
	metricsManager *metrics.Manager,
) (*Object, error) {
	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read form file [%s]: %w", field, err)
	}
	defer file.Close()

	obj, err := uploader.Upload(ctx, UploadParams{
		Prefix:   prefix,
		OwnerID:  ownerID,
		Filename: header.Filename,
		File:     file,
	})
	if err != nil {
		return nil, err
	}

	if metricsManager != nil {
		metricsManager.CounterUploads.Inc()
		metricsManager.HistogramUploadSize.Observe(float64(obj.Size))
	}
	return &obj, nil
}
