package casestudies

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"sync"
	"time"

	"rts-backend/internal/storage"

	"golang.org/x/sync/singleflight"
)

const refreshTimeout = 5 * time.Second

// ComputeHomepage keeps the flagged records that have an id, a title and a
// description, orders them by id and caps the result at HomepageLimit.
func ComputeHomepage(items []CaseStudy) []CaseStudy {
	out := make([]CaseStudy, 0, HomepageLimit)
	for _, item := range items {
		if !item.ShowOnHomepage || !item.displayable() {
			continue
		}
		out = append(out, item.Clone())
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ID < out[j].ID
	})
	if len(out) > HomepageLimit {
		out = out[:HomepageLimit]
	}
	return out
}

// DefaultHomepage is served when no snapshot can be read at all.
func DefaultHomepage() []CaseStudy {
	return ComputeHomepage(DefaultCatalog())
}

// Homepage is a read-only view over the persisted catalog. It never writes
// to the repository; it re-reads the snapshot whenever it is told the
// catalog changed.
type Homepage struct {
	repo  Repository
	log   *slog.Logger
	group singleflight.Group

	mu       sync.RWMutex
	items    []CaseStudy
	computed bool
}

func NewHomepage(repo Repository, log *slog.Logger) *Homepage {
	return &Homepage{repo: repo, log: log}
}

// Refresh recomputes the projection from the persisted snapshot. Concurrent
// calls share one read.
func (h *Homepage) Refresh(ctx context.Context) []CaseStudy {
	v, _, _ := h.group.Do("refresh", func() (interface{}, error) {
		items, err := h.repo.Load(ctx)
		var out []CaseStudy
		switch {
		case err == nil:
			out = ComputeHomepage(items)
		case errors.Is(err, ErrNoSnapshot):
			out = DefaultHomepage()
		default:
			h.log.Warn("homepage refresh: using defaults", slog.String("error", err.Error()))
			out = DefaultHomepage()
		}

		h.mu.Lock()
		h.items = out
		h.computed = true
		h.mu.Unlock()
		return out, nil
	})
	return cloneAll(v.([]CaseStudy))
}

// Items returns the current projection, computing it on first use.
func (h *Homepage) Items(ctx context.Context) []CaseStudy {
	h.mu.RLock()
	if h.computed {
		out := cloneAll(h.items)
		h.mu.RUnlock()
		return out
	}
	h.mu.RUnlock()
	return h.Refresh(ctx)
}

// Attach refreshes the projection after every persist of store. The returned
// func detaches it.
func (h *Homepage) Attach(store *Store) func() {
	return store.Subscribe(h.refreshInBackground)
}

// Watch refreshes the projection when another process changes the snapshot.
func (h *Homepage) Watch(ctx context.Context, w storage.Watcher, key string) error {
	return w.Watch(ctx, key, h.refreshInBackground)
}

func (h *Homepage) refreshInBackground() {
	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()
	h.Refresh(ctx)
}

func cloneAll(items []CaseStudy) []CaseStudy {
	out := make([]CaseStudy, len(items))
	for i, item := range items {
		out[i] = item.Clone()
	}
	return out
}
