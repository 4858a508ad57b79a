package exercises

import (
	"context"
	"errors"
	"fmt"

	"github.com/2beens/coachportal/internal/coaching"
	"github.com/2beens/coachportal/internal/docstore"
	"github.com/2beens/coachportal/internal/telemetry/metrics"
	"github.com/2beens/coachportal/internal/telemetry/tracing"

	"go.opentelemetry.io/otel/attribute"
)

const Collection = "exercises"

var ErrExerciseNotFound = errors.New("exercise not found")

type Repo struct {
	store          docstore.Store
	metricsManager *metrics.Manager
}

func NewRepo(store docstore.Store, metricsManager *metrics.Manager) *Repo {
	return &Repo{
		store:          store,
		metricsManager: metricsManager,
	}
}

func (r *Repo) Add(ctx context.Context, exercise Exercise) (_ string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	id, err := r.store.Add(ctx, Collection, exercise)
	if err != nil {
		return "", err
	}
	if r.metricsManager != nil {
		r.metricsManager.CounterDocumentsCreated.WithLabelValues(Collection).Inc()
	}
	return id, nil
}

func (r *Repo) Get(ctx context.Context, id string) (_ Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("exercise.id", id))

	doc, err := r.store.Get(ctx, Collection, id)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) || errors.Is(err, docstore.ErrInvalidID) {
			return Exercise{}, ErrExerciseNotFound
		}
		return Exercise{}, fmt.Errorf("get exercise: %w", err)
	}

	var exercise Exercise
	if err := doc.DataTo(&exercise); err != nil {
		return Exercise{}, err
	}
	return exercise, nil
}

func (r *Repo) ListByOwner(ctx context.Context, ownerID string) (_ []Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.list_by_owner")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	docs, err := r.store.Query(ctx, Collection, "ownerId", ownerID)
	if err != nil {
		return nil, fmt.Errorf("query exercises: %w", err)
	}

	return coaching.DecodeAll[Exercise](docs)
}

// ListRefs lists the owner's exercises as pickable {id, name} pairs.
func (r *Repo) ListRefs(ctx context.Context, ownerID string) ([]coaching.Ref, error) {
	exercises, err := r.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	refs := make([]coaching.Ref, 0, len(exercises))
	for _, e := range exercises {
		refs = append(refs, coaching.Ref{ID: e.ID, Name: e.Name})
	}
	return refs, nil
}
