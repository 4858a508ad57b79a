package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/coachportal/internal/telemetry/tracing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var _ Store = (*PsqlStore)(nil)

const Schema = `
CREATE TABLE IF NOT EXISTS document
(
    collection VARCHAR     NOT NULL,
    id         VARCHAR     NOT NULL,
    data       JSONB       NOT NULL DEFAULT '{}',
    created_at TIMESTAMPTZ NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL,
    PRIMARY KEY (collection, id)
);

CREATE INDEX IF NOT EXISTS ix_document_collection_created_at ON document (collection, created_at);
CREATE INDEX IF NOT EXISTS ix_document_data ON document USING gin (data jsonb_path_ops);
`

type PsqlStore struct {
	db *pgxpool.Pool

	NewID func() string
	Now   func() time.Time
}

func NewPsqlStore(db *pgxpool.Pool) *PsqlStore {
	return &PsqlStore{
		db:    db,
		NewID: uuid.NewString,
		Now:   time.Now,
	}
}

func (s *PsqlStore) EnsureSchema(ctx context.Context) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.docstore.ensure_schema")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if _, err = s.db.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("document schema [exec]: %w", err)
	}
	return nil
}

func (s *PsqlStore) Add(ctx context.Context, collection string, data any) (_ string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.docstore.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("collection", collection))

	if err := validateCollection(collection); err != nil {
		return "", err
	}
	raw, err := marshalFields(data)
	if err != nil {
		return "", err
	}

	id := s.NewID()
	now := s.Now()
	_, err = s.db.Exec(
		ctx,
		`
			INSERT INTO document (collection, id, data, created_at, updated_at)
			VALUES ($1, $2, $3::jsonb, $4, $4)
		`,
		collection, id, raw, now,
	)
	if err != nil {
		return "", fmt.Errorf("add document [exec]: %w", err)
	}

	return id, nil
}

func (s *PsqlStore) Get(ctx context.Context, collection, id string) (_ Document, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.docstore.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("collection", collection))

	if err := validateCollection(collection); err != nil {
		return Document{}, err
	}

	var raw []byte
	doc := Document{ID: id}
	err = s.db.QueryRow(
		ctx,
		`
			SELECT data, created_at, updated_at
			FROM document
			WHERE collection = $1 AND id = $2
		`,
		collection, id,
	).Scan(&raw, &doc.CreatedAt, &doc.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Document{}, ErrNotFound
		}
		return Document{}, fmt.Errorf("get document [query row]: %w", err)
	}

	if err := json.Unmarshal(raw, &doc.Data); err != nil {
		return Document{}, fmt.Errorf("get document [unmarshal]: %w", err)
	}

	return doc, nil
}

func (s *PsqlStore) Set(ctx context.Context, collection, id string, data any, merge bool) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.docstore.set")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.String("collection", collection),
		attribute.Bool("merge", merge),
	)

	if err := validateCollection(collection); err != nil {
		return err
	}
	if err := validateID(id); err != nil {
		return err
	}
	raw, err := marshalFields(data)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO document (collection, id, data, created_at, updated_at)
		VALUES ($1, $2, $3::jsonb, $4, $4)
		ON CONFLICT (collection, id) DO UPDATE SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at
	`
	if merge {
		query = `
			INSERT INTO document (collection, id, data, created_at, updated_at)
			VALUES ($1, $2, $3::jsonb, $4, $4)
			ON CONFLICT (collection, id) DO UPDATE SET data = document.data || EXCLUDED.data, updated_at = EXCLUDED.updated_at
		`
	}

	if _, err = s.db.Exec(ctx, query, collection, id, raw, s.Now()); err != nil {
		return fmt.Errorf("set document [exec]: %w", err)
	}
	return nil
}

func (s *PsqlStore) Update(ctx context.Context, collection, id string, fields map[string]any) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.docstore.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("collection", collection))

	if err := validateCollection(collection); err != nil {
		return err
	}
	raw, err := marshalFields(fields)
	if err != nil {
		return err
	}

	tag, err := s.db.Exec(
		ctx,
		`
			UPDATE document
			SET data = data || $3::jsonb, updated_at = $4
			WHERE collection = $1 AND id = $2
		`,
		collection, id, raw, s.Now(),
	)
	if err != nil {
		return fmt.Errorf("update document [exec]: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PsqlStore) Query(ctx context.Context, collection, field string, value any) (_ []Document, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.docstore.query")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.String("collection", collection),
		attribute.String("field", field),
	)

	if err := validateCollection(collection); err != nil {
		return nil, err
	}
	rawValue, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("marshal query value: %w", err)
	}

	rows, err := s.db.Query(
		ctx,
		`
			SELECT id, data, created_at, updated_at
			FROM document
			WHERE collection = $1 AND data -> $2::text = $3::jsonb
			ORDER BY created_at, id
		`,
		collection, field, rawValue,
	)
	if err != nil {
		return nil, fmt.Errorf("query documents [query]: %w", err)
	}

	return scanDocuments(rows)
}

func (s *PsqlStore) List(ctx context.Context, collection string) (_ []Document, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.docstore.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("collection", collection))

	if err := validateCollection(collection); err != nil {
		return nil, err
	}

	rows, err := s.db.Query(
		ctx,
		`
			SELECT id, data, created_at, updated_at
			FROM document
			WHERE collection = $1
			ORDER BY created_at, id
		`,
		collection,
	)
	if err != nil {
		return nil, fmt.Errorf("list documents [query]: %w", err)
	}

	return scanDocuments(rows)
}

func scanDocuments(rows pgx.Rows) ([]Document, error) {
	defer rows.Close()

	docs := []Document{}
	for rows.Next() {
		var doc Document
		var raw []byte
		if err := rows.Scan(&doc.ID, &raw, &doc.CreatedAt, &doc.UpdatedAt); err != nil {
			return nil, fmt.Errorf("documents [rows scan]: %w", err)
		}
		if err := json.Unmarshal(raw, &doc.Data); err != nil {
			return nil, fmt.Errorf("documents [unmarshal %s]: %w", doc.ID, err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("documents [rows error]: %w", err)
	}

	return docs, nil
}

func marshalFields(data any) ([]byte, error) {
	fields, err := toFields(data)
	if err != nil {
		return nil, err
	}
	raw, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("marshal document fields: %w", err)
	}
	return raw, nil
}
