// Package cache implements the time-bounded cache of rendered listing pages.
//
// A page stored in the cache is served unchanged until its window elapses,
// whatever happens to the underlying posts meanwhile. Clear invalidates all
// pages of the listing at once.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/BloggingApp/feed-service/internal/metrics"
	"github.com/BloggingApp/feed-service/internal/model"
	"github.com/BloggingApp/feed-service/internal/repository/redisrepo"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const GlobalListing = "global"

type Clock func() time.Time

type PostsPage = model.Page[*model.FullPost]

type entry struct {
	StoredAt   time.Time  `json:"stored_at"`
	Generation uint64     `json:"generation"`
	Page       *PostsPage `json:"page"`
}

type Listing struct {
	name    string
	store   Store
	ttl     time.Duration
	now     Clock
	logger  *zap.Logger
	metrics *metrics.Metrics

	loads singleflight.Group
	// generation is bumped by Clear. Entries written under an older
	// generation are never served.
	generation atomic.Uint64
}

type Option func(*Listing)

func WithClock(now Clock) Option {
	return func(l *Listing) {
		l.now = now
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(l *Listing) {
		l.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(l *Listing) {
		l.metrics = m
	}
}

func NewListing(name string, store Store, ttl time.Duration, opts ...Option) *Listing {
	l := &Listing{
		name:   name,
		store:  store,
		ttl:    ttl,
		now:    time.Now,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Listing) TTL() time.Duration {
	return l.ttl
}

func (l *Listing) key(page int) string {
	return redisrepo.ListingPageKey(l.name, page)
}

// Get returns the stored page if it is still inside its window.
func (l *Listing) Get(ctx context.Context, page int) (*PostsPage, bool) {
	raw, err := l.store.Get(ctx, l.key(page))
	if err != nil {
		if !errors.Is(err, ErrMiss) {
			l.logger.Sugar().Errorf("failed to get %s listing page(%d) from cache: %s", l.name, page, err.Error())
		}
		return nil, false
	}

	var e entry
	if err := json.Unmarshal(raw, &e); err != nil {
		l.logger.Sugar().Errorf("failed to decode %s listing page(%d) from cache: %s", l.name, page, err.Error())
		return nil, false
	}

	if e.Page == nil || e.Generation != l.generation.Load() || l.now().Sub(e.StoredAt) >= l.ttl {
		return nil, false
	}

	return e.Page, true
}

func (l *Listing) Set(ctx context.Context, page int, value *PostsPage) error {
	return l.set(ctx, page, value, l.generation.Load())
}

func (l *Listing) set(ctx context.Context, page int, value *PostsPage, generation uint64) error {
	raw, err := json.Marshal(entry{StoredAt: l.now(), Generation: generation, Page: value})
	if err != nil {
		return err
	}

	return l.store.Set(ctx, l.key(page), raw, l.ttl)
}

// Clear drops every stored page. It is safe to call repeatedly.
func (l *Listing) Clear(ctx context.Context) error {
	l.generation.Add(1)
	l.metrics.ListingCache(l.name, "clear")
	return l.store.Clear(ctx)
}

// GetOrLoad serves the page from the cache, or computes it with load and
// stores it for the rest of the window. Concurrent misses on the same page
// share one load. The shared load is not cancelled when one of its callers
// goes away; each caller stops waiting on its own ctx.
func (l *Listing) GetOrLoad(ctx context.Context, page int, load func(ctx context.Context) (*PostsPage, error)) (*PostsPage, error) {
	if cached, ok := l.Get(ctx, page); ok {
		l.metrics.ListingCache(l.name, "hit")
		return cached, nil
	}
	l.metrics.ListingCache(l.name, "miss")

	loadCtx := context.WithoutCancel(ctx)
	ch := l.loads.DoChan(strconv.Itoa(page), func() (interface{}, error) {
		if cached, ok := l.Get(loadCtx, page); ok {
			return cached, nil
		}

		generation := l.generation.Load()
		loaded, err := load(loadCtx)
		if err != nil {
			return nil, err
		}

		if err := l.set(loadCtx, page, loaded, generation); err != nil {
			l.logger.Sugar().Errorf("failed to set %s listing page(%d) in cache: %s", l.name, page, err.Error())
		}

		return loaded, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*PostsPage), nil
	}
}
