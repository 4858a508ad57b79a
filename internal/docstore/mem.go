package docstore

import (
	"context"
	"reflect"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

var _ Store = (*MemStore)(nil)

type memDoc struct {
	doc Document
	seq uint64
}

// MemStore is an in-memory Store, used in dev mode and tests.
type MemStore struct {
	mu          sync.RWMutex
	collections map[string]map[string]*memDoc
	seq         uint64

	NewID func() string
	Now   func() time.Time
}

func NewMemStore() *MemStore {
	return &MemStore{
		collections: map[string]map[string]*memDoc{},
		NewID:       uuid.NewString,
		Now:         time.Now,
	}
}

func (s *MemStore) Add(_ context.Context, collection string, data any) (string, error) {
	if err := validateCollection(collection); err != nil {
		return "", err
	}
	fields, err := toFields(data)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.NewID()
	s.putLocked(collection, id, fields)
	return id, nil
}

func (s *MemStore) Get(_ context.Context, collection, id string) (Document, error) {
	if err := validateCollection(collection); err != nil {
		return Document{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.collections[collection][id]
	if !ok {
		return Document{}, ErrNotFound
	}
	return copyDoc(d.doc), nil
}

func (s *MemStore) Set(_ context.Context, collection, id string, data any, merge bool) error {
	if err := validateCollection(collection); err != nil {
		return err
	}
	if err := validateID(id); err != nil {
		return err
	}
	fields, err := toFields(data)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.collections[collection][id]
	if !ok {
		s.putLocked(collection, id, fields)
		return nil
	}

	if merge {
		for k, v := range fields {
			existing.doc.Data[k] = v
		}
	} else {
		existing.doc.Data = fields
	}
	existing.doc.UpdatedAt = s.Now()
	return nil
}

func (s *MemStore) Update(_ context.Context, collection, id string, fields map[string]any) error {
	if err := validateCollection(collection); err != nil {
		return err
	}
	normalized, err := toFields(fields)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.collections[collection][id]
	if !ok {
		return ErrNotFound
	}
	for k, v := range normalized {
		existing.doc.Data[k] = v
	}
	existing.doc.UpdatedAt = s.Now()
	return nil
}

func (s *MemStore) Query(_ context.Context, collection, field string, value any) ([]Document, error) {
	if err := validateCollection(collection); err != nil {
		return nil, err
	}
	want, err := normalizeValue(value)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.sortedLocked(collection, func(d Document) bool {
		got, ok := d.Data[field]
		return ok && reflect.DeepEqual(got, want)
	}), nil
}

func (s *MemStore) List(_ context.Context, collection string) ([]Document, error) {
	if err := validateCollection(collection); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.sortedLocked(collection, func(Document) bool { return true }), nil
}

func (s *MemStore) putLocked(collection, id string, fields map[string]any) {
	if s.collections[collection] == nil {
		s.collections[collection] = map[string]*memDoc{}
	}
	now := s.Now()
	s.seq++
	s.collections[collection][id] = &memDoc{
		doc: Document{
			ID:        id,
			Data:      fields,
			CreatedAt: now,
			UpdatedAt: now,
		},
		seq: s.seq,
	}
}

func (s *MemStore) sortedLocked(collection string, keep func(Document) bool) []Document {
	var found []*memDoc
	for _, d := range s.collections[collection] {
		if keep(d.doc) {
			found = append(found, d)
		}
	}
	sort.Slice(found, func(i, j int) bool {
		return found[i].seq < found[j].seq
	})

	docs := make([]Document, 0, len(found))
	for _, d := range found {
		docs = append(docs, copyDoc(d.doc))
	}
	return docs
}

func copyDoc(d Document) Document {
	data := make(map[string]any, len(d.Data))
	for k, v := range d.Data {
		data[k] = v
	}
	d.Data = data
	return d
}
