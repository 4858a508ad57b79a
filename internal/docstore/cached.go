package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"hash/maphash"
	"sync/atomic"

	"github.com/2beens/coachportal/internal/telemetry/metrics"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
)

var _ Store = (*CachedStore)(nil)

const versionStripes = 256

// CachedStore keeps recently read documents in a freecache in front of
// another Store. Only Get is served from the cache; every write through
// this store drops the written key once the write is done.
//
// Each write also bumps a version counter for the key's stripe. A Get that
// missed only keeps its fill if no write to that stripe happened while it
// was reading, so a slow read never re-caches a document a write replaced.
type CachedStore struct {
	store         Store
	cache         *freecache.Cache
	expireSeconds int
	metrics       *metrics.Manager
	seed          maphash.Seed
	versions      [versionStripes]atomic.Uint64
}

func NewCachedStore(store Store, cacheSizeBytes, expireSeconds int, metricsManager *metrics.Manager) *CachedStore {
	return &CachedStore{
		store:         store,
		cache:         freecache.NewCache(cacheSizeBytes),
		expireSeconds: expireSeconds,
		metrics:       metricsManager,
		seed:          maphash.MakeSeed(),
	}
}

func (s *CachedStore) version(key []byte) *atomic.Uint64 {
	return &s.versions[maphash.Bytes(s.seed, key)%versionStripes]
}

func (s *CachedStore) invalidate(collection, id string) {
	key := cacheKey(collection, id)
	s.version(key).Add(1)
	s.cache.Del(key)
}

func cacheKey(collection, id string) []byte {
	return []byte(collection + "\x00" + id)
}

func (s *CachedStore) Add(ctx context.Context, collection string, data any) (string, error) {
	return s.store.Add(ctx, collection, data)
}

func (s *CachedStore) Get(ctx context.Context, collection, id string) (Document, error) {
	key := cacheKey(collection, id)
	if cached, err := s.cache.Get(key); err == nil {
		var doc Document
		if err := json.Unmarshal(cached, &doc); err == nil {
			s.hit()
			return doc, nil
		}
		log.Warnf("docstore cache: drop undecodable entry for %s/%s", collection, id)
		s.cache.Del(key)
	} else if !errors.Is(err, freecache.ErrNotFound) {
		log.Errorf("docstore cache get %s/%s: %s", collection, id, err)
	}
	s.miss()

	version := s.version(key)
	readVersion := version.Load()
	doc, err := s.store.Get(ctx, collection, id)
	if err != nil {
		return Document{}, err
	}
	if version.Load() != readVersion {
		return doc, nil
	}

	if encoded, err := json.Marshal(doc); err != nil {
		log.Errorf("docstore cache: marshal %s/%s: %s", collection, id, err)
	} else if err := s.cache.Set(key, encoded, s.expireSeconds); err != nil {
		// entries larger than 1/1024 of the cache are refused
		log.Debugf("docstore cache: skip %s/%s: %s", collection, id, err)
	} else if version.Load() != readVersion {
		// a write landed between the check and the fill
		s.cache.Del(key)
	}

	return doc, nil
}

func (s *CachedStore) Set(ctx context.Context, collection, id string, data any, merge bool) error {
	err := s.store.Set(ctx, collection, id, data, merge)
	s.invalidate(collection, id)
	return err
}

func (s *CachedStore) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	err := s.store.Update(ctx, collection, id, fields)
	s.invalidate(collection, id)
	return err
}

func (s *CachedStore) Query(ctx context.Context, collection, field string, value any) ([]Document, error) {
	return s.store.Query(ctx, collection, field, value)
}

func (s *CachedStore) List(ctx context.Context, collection string) ([]Document, error) {
	return s.store.List(ctx, collection)
}

func (s *CachedStore) hit() {
	if s.metrics != nil {
		s.metrics.CounterDocCacheHits.Inc()
	}
}

func (s *CachedStore) miss() {
	if s.metrics != nil {
		s.metrics.CounterDocCacheMisses.Inc()
	}
}
