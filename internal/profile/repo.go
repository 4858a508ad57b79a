package profile

import (
	"context"
	"errors"
	"fmt"

	"github.com/2beens/coachportal/internal/docstore"
	"github.com/2beens/coachportal/internal/telemetry/tracing"

	"go.opentelemetry.io/otel/attribute"
)

// Collection holds one profile document per user, keyed by the user id.
const Collection = "users"

var ErrProfileNotFound = errors.New("profile not found")

type Repo struct {
	store docstore.Store
}

func NewRepo(store docstore.Store) *Repo {
	return &Repo{
		store: store,
	}
}

func (r *Repo) Get(ctx context.Context, uid string) (_ UserProfile, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.profile.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("uid", uid))

	doc, err := r.store.Get(ctx, Collection, uid)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) || errors.Is(err, docstore.ErrInvalidID) {
			return UserProfile{}, ErrProfileNotFound
		}
		return UserProfile{}, fmt.Errorf("get profile: %w", err)
	}

	var p UserProfile
	if err := doc.DataTo(&p); err != nil {
		return UserProfile{}, err
	}
	return p, nil
}

// Merge writes the given top level fields, creating the profile if needed.
func (r *Repo) Merge(ctx context.Context, uid string, fields map[string]any) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.profile.merge")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("uid", uid))

	return r.store.Set(ctx, Collection, uid, fields, true)
}
