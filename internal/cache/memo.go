// Package cache memoizes a slow source for the lifetime of a service instance.
package cache

import (
	"context"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"golang.org/x/sync/singleflight"
)

var (
	memoHitsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "crub_cache_hits_total",
		Help: "Memo reads served from memory.",
	}, []string{"cache"})
	memoMissesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "crub_cache_misses_total",
		Help: "Memo reads that had to wait for a fetch.",
	}, []string{"cache"})
	memoFetchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "crub_cache_fetches_total",
		Help: "Fetches performed against the underlying source.",
	}, []string{"cache", "result"})
	memoInvalidationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "crub_cache_invalidations_total",
		Help: "Explicit memo invalidations.",
	}, []string{"cache"})
)

// Fetcher loads the full record set.
type Fetcher[T any] func(ctx context.Context) ([]T, error)

// Status describes the memo without triggering a fetch.
type Status struct {
	Name     string    `json:"name"`
	Loaded   bool      `json:"loaded"`
	Count    int       `json:"count"`
	LoadedAt time.Time `json:"loaded_at,omitempty"`
	Fetches  int       `json:"fetches"`
}

// Memo holds the result of the first successful fetch until Invalidate.
//
// Concurrent misses share a single fetch. A fetch that started before an
// Invalidate is handed to its waiting callers but never stored.
type Memo[T any] struct {
	name  string
	fetch Fetcher[T]
	now   func() time.Time
	group singleflight.Group

	mu       sync.RWMutex
	items    []T
	loaded   bool
	loadedAt time.Time
	gen      uint64
	fetches  int
}

type Option[T any] func(*Memo[T])

// WithClock replaces time.Now for LoadedAt.
func WithClock[T any](now func() time.Time) Option[T] {
	return func(m *Memo[T]) { m.now = now }
}

func New[T any](name string, fetch Fetcher[T], opts ...Option[T]) *Memo[T] {
	m := &Memo[T]{name: name, fetch: fetch, now: time.Now}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Get returns a copy of the memoized records, fetching them on first use. Fetch
// errors are returned as is and nothing is stored. Cancelling ctx abandons the wait
// but not a fetch other callers share.
func (m *Memo[T]) Get(ctx context.Context) ([]T, error) {
	m.mu.RLock()
	if m.loaded {
		items := slices.Clone(m.items)
		m.mu.RUnlock()
		memoHitsTotal.WithLabelValues(m.name).Inc()
		return items, nil
	}
	gen := m.gen
	m.mu.RUnlock()

	memoMissesTotal.WithLabelValues(m.name).Inc()
	ch := m.group.DoChan(strconv.FormatUint(gen, 10), func() (any, error) {
		return m.load(context.WithoutCancel(ctx), gen)
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return slices.Clone(res.Val.([]T)), nil
	}
}

func (m *Memo[T]) load(ctx context.Context, gen uint64) ([]T, error) {
	items, err := m.fetch(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.fetches++
	if err != nil {
		memoFetchesTotal.WithLabelValues(m.name, "error").Inc()
		return nil, err
	}
	memoFetchesTotal.WithLabelValues(m.name, "ok").Inc()
	if items == nil {
		items = []T{}
	}
	if m.gen == gen {
		m.items = items
		m.loaded = true
		m.loadedAt = m.now()
	}
	return items, nil
}

// Invalidate drops the memo. The next Get fetches again.
func (m *Memo[T]) Invalidate() {
	m.mu.Lock()
	m.items = nil
	m.loaded = false
	m.loadedAt = time.Time{}
	m.gen++
	m.mu.Unlock()
	memoInvalidationsTotal.WithLabelValues(m.name).Inc()
}

func (m *Memo[T]) Status() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return Status{
		Name:     m.name,
		Loaded:   m.loaded,
		Count:    len(m.items),
		LoadedAt: m.loadedAt,
		Fetches:  m.fetches,
	}
}
