// Package docstore keeps schemaless JSON documents in named collections.
// A collection path is either a top level name ("programs") or a
// subcollection of a document ("programs/<id>/phases").
package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrNotFound          = errors.New("document not found")
	ErrInvalidCollection = errors.New("invalid collection path")
	ErrInvalidID         = errors.New("invalid document id")
)

const idField = "id"

type Document struct {
	ID        string
	Data      map[string]any
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DataTo decodes the document fields, plus its id, into v.
func (d Document) DataTo(v any) error {
	fields := make(map[string]any, len(d.Data)+1)
	for k, val := range d.Data {
		fields[k] = val
	}
	fields[idField] = d.ID

	raw, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("marshal document [%s]: %w", d.ID, err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode document [%s]: %w", d.ID, err)
	}
	return nil
}

type Store interface {
	Add(ctx context.Context, collection string, data any) (string, error)
	Get(ctx context.Context, collection, id string) (Document, error)
	Set(ctx context.Context, collection, id string, data any, merge bool) error
	Update(ctx context.Context, collection, id string, fields map[string]any) error
	Query(ctx context.Context, collection, field string, value any) ([]Document, error)
	List(ctx context.Context, collection string) ([]Document, error)
}

// Subcollection returns the path of a collection nested under a document.
func Subcollection(collection, id, name string) string {
	return collection + "/" + id + "/" + name
}

func validateCollection(collection string) error {
	if collection == "" {
		return ErrInvalidCollection
	}
	parts := strings.Split(collection, "/")
	// name, or name/id/name/id/.../name
	if len(parts)%2 == 0 {
		return fmt.Errorf("%w: %s", ErrInvalidCollection, collection)
	}
	for _, p := range parts {
		if strings.TrimSpace(p) == "" {
			return fmt.Errorf("%w: %s", ErrInvalidCollection, collection)
		}
	}
	return nil
}

func validateID(id string) error {
	if strings.TrimSpace(id) == "" || strings.Contains(id, "/") {
		return ErrInvalidID
	}
	return nil
}

// toFields turns a struct (or map) into document fields. The id field is
// never stored as data, it is the document key.
func toFields(data any) (map[string]any, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("marshal document data: %w", err)
	}
	fields := map[string]any{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("document data must be an object: %w", err)
	}
	delete(fields, idField)
	return fields, nil
}

// normalizeValue gives a query value the same shape it has after a JSON round trip.
func normalizeValue(value any) (any, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("marshal query value: %w", err)
	}
	var normalized any
	if err := json.Unmarshal(raw, &normalized); err != nil {
		return nil, fmt.Errorf("unmarshal query value: %w", err)
	}
	return normalized, nil
}
