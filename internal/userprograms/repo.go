package userprograms

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/2beens/coachportal/internal/coaching"
	"github.com/2beens/coachportal/internal/docstore"
	"github.com/2beens/coachportal/internal/telemetry/metrics"
	"github.com/2beens/coachportal/internal/telemetry/tracing"

	"go.opentelemetry.io/otel/attribute"
)

const Collection = "userPrograms"

var ErrUserProgramNotFound = errors.New("user program not found")

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

func (r *Repo) Add(ctx context.Context, userProgram UserProgram) (_ string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.user_programs.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	id, err := r.store.Add(ctx, Collection, userProgram)
	if err != nil {
		return "", err
	}
	if r.metricsManager != nil {
		r.metricsManager.CounterDocumentsCreated.WithLabelValues(Collection).Inc()
	}
	return id, nil
}

// FirstByUser returns the earliest assigned program of the user.
func (r *Repo) FirstByUser(ctx context.Context, userID string) (_ UserProgram, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.user_programs.first_by_user")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	docs, err := r.store.Query(ctx, Collection, "userId", userID)
	if err != nil {
		return UserProgram{}, fmt.Errorf("query user programs: %w", err)
	}
	assigned, err := coaching.DecodeAll[UserProgram](docs)
	if err != nil {
		return UserProgram{}, err
	}
	if len(assigned) == 0 {
		return UserProgram{}, ErrUserProgramNotFound
	}
	sort.SliceStable(assigned, func(i, j int) bool {
		return assigned[i].AssignedAt.Before(assigned[j].AssignedAt)
	})
	return assigned[0], nil
}

// SaveMeasurements replaces the measurements and the start photo, a nil
// photo url clears it.
func (r *Repo) SaveMeasurements(ctx context.Context, id string, measurements Measurements, startPhoto *string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.user_programs.save_measurements")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user_program.id", id))

	var photo any
	if startPhoto != nil {
		photo = *startPhoto
	}
	err = r.store.Update(ctx, Collection, id, map[string]any{
		"measurements": measurements,
		"startPhoto":   photo,
	})
	if errors.Is(err, docstore.ErrNotFound) {
		return ErrUserProgramNotFound
	}
	return err
}
