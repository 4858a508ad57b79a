package sets

import (
	"context"
	"fmt"

	"github.com/2beens/coachportal/internal/coaching"
	"github.com/2beens/coachportal/internal/docstore"
	"github.com/2beens/coachportal/internal/telemetry/metrics"
	"github.com/2beens/coachportal/internal/telemetry/tracing"
)

const Collection = "sets"

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

func (r *Repo) Add(ctx context.Context, set Set) (_ string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sets.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	id, err := r.store.Add(ctx, Collection, set)
	if err != nil {
		return "", err
	}
	if r.metricsManager != nil {
		r.metricsManager.CounterDocumentsCreated.WithLabelValues(Collection).Inc()
	}
	return id, nil
}

func (r *Repo) ListByOwner(ctx context.Context, ownerID string) (_ []Set, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sets.list_by_owner")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	docs, err := r.store.Query(ctx, Collection, "ownerId", ownerID)
	if err != nil {
		return nil, fmt.Errorf("query sets: %w", err)
	}
	return coaching.DecodeAll[Set](docs)
}

func (r *Repo) ListRefs(ctx context.Context, ownerID string) ([]coaching.Ref, error) {
	sets, err := r.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	refs := make([]coaching.Ref, 0, len(sets))
	for _, s := range sets {
		refs = append(refs, coaching.Ref{ID: s.ID, Name: s.Name})
	}
	return refs, nil
}
