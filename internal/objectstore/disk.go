package objectstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/2beens/coachportal/internal/telemetry/tracing"
	"github.com/2beens/coachportal/pkg"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

var (
	ErrNotFound    = errors.New("object not found")
	ErrInvalidPath = errors.New("invalid object path")
	ErrTooLarge    = errors.New("object too large")
	ErrNotAnImage  = errors.New("object is not an image")
)

// http.DetectContentType never looks past this many bytes
const sniffLen = 512

// Storage prefixes in use.
const (
	PrefixProfiles          = "profiles"
	PrefixUserProgramPhotos = "userProgramPhotos"
)

type DiskStore struct {
	rootPath      string
	publicBaseURL string
	maxSize       int64
	objects       map[string]*Object
	mutex         sync.RWMutex
}

func NewDiskStore(rootPath, publicBaseURL string, maxSize int64) (*DiskStore, error) {
	if rootPath == "" {
		return nil, errors.New("root path cannot be empty")
	}
	objects, err := loadIndex(rootPath)
	if err != nil {
		return nil, fmt.Errorf("load objects index: %w", err)
	}
	return &DiskStore{
		rootPath:      rootPath,
		publicBaseURL: strings.TrimSuffix(publicBaseURL, "/"),
		maxSize:       maxSize,
		objects:       objects,
	}, nil
}

type UploadParams struct {
	Prefix   string
	OwnerID  string
	Filename string
	File     io.Reader
}

// ObjectPath builds <prefix>/<owner>/<sanitized filename>.
func ObjectPath(prefix, ownerID, filename string) (string, error) {
	for _, segment := range []string{prefix, ownerID} {
		if !validSegment(segment) {
			return "", fmt.Errorf("%w: segment [%s]", ErrInvalidPath, segment)
		}
	}
	return path.Join(prefix, ownerID, pkg.SanitizeFilename(filename)), nil
}

func validSegment(segment string) bool {
	if segment == "" || segment == "." || segment == ".." {
		return false
	}
	return !strings.ContainsAny(segment, `/\`)
}

// Upload stores the file under its object path, replacing an object with
// the same path. Only images are accepted; the content type is sniffed
// from the file itself.
func (ds *DiskStore) Upload(ctx context.Context, params UploadParams) (_ Object, err error) {
	_, span := tracing.GlobalTracer.Start(ctx, "objectStore.upload")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	objectPath, err := ObjectPath(params.Prefix, params.OwnerID, params.Filename)
	if err != nil {
		return Object{}, err
	}
	span.SetAttributes(attribute.String("object.path", objectPath))

	contentType, content, err := sniffImage(params.File)
	if err != nil {
		return Object{}, err
	}

	diskPath := filepath.Join(ds.rootPath, filepath.FromSlash(objectPath))
	if err := os.MkdirAll(filepath.Dir(diskPath), 0o750); err != nil {
		return Object{}, fmt.Errorf("create object dir: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(diskPath), ".upload-*")
	if err != nil {
		return Object{}, fmt.Errorf("create temp object: %w", err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	reader := content
	if ds.maxSize > 0 {
		reader = io.LimitReader(content, ds.maxSize+1)
	}
	size, err := io.Copy(tmp, reader)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return Object{}, fmt.Errorf("write object: %w", err)
	}
	if ds.maxSize > 0 && size > ds.maxSize {
		return Object{}, ErrTooLarge
	}

	if err = os.Rename(tmp.Name(), diskPath); err != nil {
		return Object{}, fmt.Errorf("move object in place: %w", err)
	}

	obj := &Object{
		Path:        objectPath,
		Name:        path.Base(objectPath),
		OwnerID:     params.OwnerID,
		ContentType: contentType,
		Size:        size,
		CreatedAt:   time.Now(),
	}

	ds.mutex.Lock()
	defer ds.mutex.Unlock()

	ds.objects[objectPath] = obj
	if err = saveIndex(ds.rootPath, ds.objects); err != nil {
		return Object{}, fmt.Errorf("object stored, but failed to save index: %w", err)
	}

	log.Debugf("object store: saved [%s] (%d bytes)", objectPath, size)

	stored := *obj
	stored.URL = ds.URL(objectPath)
	return stored, nil
}

// sniffImage detects the content type from the head of the file and hands
// back a reader that still yields the whole file.
func sniffImage(file io.Reader) (string, io.Reader, error) {
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(file, head)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return "", nil, fmt.Errorf("read object head: %w", err)
	}
	head = head[:n]

	contentType := http.DetectContentType(head)
	if !strings.HasPrefix(contentType, "image/") {
		return "", nil, fmt.Errorf("%w: %s", ErrNotAnImage, contentType)
	}
	return contentType, io.MultiReader(bytes.NewReader(head), file), nil
}

// Open returns the stored file and its metadata. The caller closes the file.
func (ds *DiskStore) Open(ctx context.Context, objectPath string) (_ *os.File, _ Object, err error) {
	_, span := tracing.GlobalTracer.Start(ctx, "objectStore.open")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("object.path", objectPath))

	cleaned := path.Clean("/" + objectPath)[1:]
	if cleaned != objectPath {
		return nil, Object{}, ErrInvalidPath
	}

	ds.mutex.RLock()
	obj, ok := ds.objects[objectPath]
	ds.mutex.RUnlock()
	if !ok {
		return nil, Object{}, ErrNotFound
	}

	f, err := os.Open(filepath.Join(ds.rootPath, filepath.FromSlash(objectPath)))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, Object{}, ErrNotFound
		}
		return nil, Object{}, fmt.Errorf("open object: %w", err)
	}

	found := *obj
	found.URL = ds.URL(objectPath)
	return f, found, nil
}

// MaxSize is the largest accepted object in bytes, 0 meaning unlimited.
func (ds *DiskStore) MaxSize() int64 {
	return ds.maxSize
}

func (ds *DiskStore) URL(objectPath string) string {
	segments := strings.Split(objectPath, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return ds.publicBaseURL + "/files/" + strings.Join(segments, "/")
}
