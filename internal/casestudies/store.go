package casestudies

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"rts-backend/internal/debounce"
)

var (
	ErrNotFound            = errors.New("case study not found")
	ErrHomepageCapExceeded = fmt.Errorf("at most %d case studies can be shown on the homepage", HomepageLimit)
	ErrInvalidRecord       = errors.New("case study title is required")
	ErrNoSnapshot          = errors.New("no catalog snapshot")
	ErrCorruptSnapshot     = errors.New("corrupt catalog snapshot")
	ErrLoadTimeout         = errors.New("catalog load timed out")
	ErrStorageUnavailable  = errors.New("catalog storage unavailable")
	ErrEmptyCatalog        = errors.New("catalog would be empty")
)

const (
	DefaultPersistDebounce = 100 * time.Millisecond
	DefaultLoadTimeout     = 3 * time.Second

	writeTimeout = 5 * time.Second
)

type Options struct {
	PersistDebounce time.Duration
	LoadTimeout     time.Duration
	// Now is used for generated ids; time.Now when nil.
	Now func() time.Time
}

// Store is the single owner of the catalog. Reads and mutations work on the
// in-memory list; writes to the repository are debounced and followed by a
// notification to subscribers.
type Store struct {
	repo      Repository
	log       *slog.Logger
	opts      Options
	debouncer *debounce.Debouncer

	mu      sync.RWMutex
	items   []CaseStudy
	version uint64

	// persistMu orders writes; saved is the version last written.
	persistMu sync.Mutex
	saved     uint64

	subMu   sync.Mutex
	subs    map[uint64]func()
	nextSub uint64
}

func NewStore(repo Repository, log *slog.Logger, opts Options) *Store {
	if opts.PersistDebounce <= 0 {
		opts.PersistDebounce = DefaultPersistDebounce
	}
	if opts.LoadTimeout <= 0 {
		opts.LoadTimeout = DefaultLoadTimeout
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Store{
		repo:      repo,
		log:       log,
		opts:      opts,
		debouncer: debounce.New(opts.PersistDebounce),
		subs:      make(map[uint64]func()),
	}
}

// Load installs the persisted catalog, or the default catalog when the
// snapshot is missing, corrupt, unreadable or slower than the load timeout.
// The store is never empty afterwards.
func (s *Store) Load(ctx context.Context) []CaseStudy {
	items, err := s.read(ctx)
	switch {
	case err == nil:
		items = s.repair(items)
		if len(items) > 0 {
			v := s.replace(items)
			s.persistMu.Lock()
			s.saved = v
			s.persistMu.Unlock()
			s.log.Info("catalog load: ok", slog.Int("count", len(items)))
			return s.List()
		}
		s.log.Warn("catalog load: empty snapshot, using defaults")
	case errors.Is(err, ErrNoSnapshot):
		s.log.Info("catalog load: no snapshot, using defaults")
	case errors.Is(err, ErrCorruptSnapshot):
		s.log.Warn("catalog load: corrupt snapshot, using defaults", slog.String("error", err.Error()))
		discardCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), writeTimeout)
		if derr := s.repo.Discard(discardCtx); derr != nil {
			s.log.Error("catalog load: discard failed", slog.String("error", derr.Error()))
		}
		cancel()
	case errors.Is(err, ErrLoadTimeout):
		s.log.Warn("catalog load: timeout, using defaults", slog.Duration("timeout", s.opts.LoadTimeout))
	default:
		s.log.Error("catalog load: storage error, using defaults", slog.String("error", err.Error()))
	}

	s.replace(DefaultCatalog())
	s.debouncer.Cancel()
	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), writeTimeout)
	defer cancel()
	_ = s.write(writeCtx)
	return s.List()
}

func (s *Store) read(ctx context.Context) ([]CaseStudy, error) {
	ctx, cancel := context.WithTimeout(ctx, s.opts.LoadTimeout)
	defer cancel()

	type result struct {
		items []CaseStudy
		err   error
	}
	done := make(chan result, 1)
	go func() {
		items, err := s.repo.Load(ctx)
		done <- result{items: items, err: err}
	}()

	select {
	case res := <-done:
		return res.items, res.err
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %v", ErrLoadTimeout, ctx.Err())
	}
}

// repair drops entries without an id, keeps the first of duplicated ids and
// clears homepage flags beyond the limit.
func (s *Store) repair(items []CaseStudy) []CaseStudy {
	seen := make(map[string]struct{}, len(items))
	out := make([]CaseStudy, 0, len(items))
	flagged := 0
	for _, item := range items {
		if strings.TrimSpace(item.ID) == "" {
			s.log.Warn("catalog load: dropped entry without id")
			continue
		}
		if _, dup := seen[item.ID]; dup {
			s.log.Warn("catalog load: dropped duplicate id", slog.String("case_study_id", item.ID))
			continue
		}
		seen[item.ID] = struct{}{}
		if item.ShowOnHomepage {
			if flagged >= HomepageLimit {
				s.log.Warn("catalog load: homepage limit exceeded, flag cleared", slog.String("case_study_id", item.ID))
				item.ShowOnHomepage = false
			} else {
				flagged++
			}
		}
		out = append(out, item)
	}
	return out
}

func (s *Store) replace(items []CaseStudy) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = items
	s.version++
	return s.version
}

// Replace swaps in a whole catalog, repaired the same way as on Load, and
// writes it at once. The in-memory list is replaced even when the write
// fails.
func (s *Store) Replace(ctx context.Context, items []CaseStudy) ([]CaseStudy, error) {
	cloned := make([]CaseStudy, len(items))
	for i, item := range items {
		cloned[i] = item.Clone()
		cloned[i].normalize()
	}
	cloned = s.repair(cloned)
	if len(cloned) == 0 {
		return nil, ErrEmptyCatalog
	}

	s.replace(cloned)
	s.debouncer.Cancel()
	if err := s.write(ctx); err != nil {
		return s.List(), err
	}
	return s.List(), nil
}

// Add appends a new record with a generated id.
func (s *Store) Add(p Partial) (CaseStudy, error) {
	if p.Title == nil || strings.TrimSpace(*p.Title) == "" {
		return CaseStudy{}, ErrInvalidRecord
	}

	s.mu.Lock()
	if p.requestsHomepage() && s.homepageCountExcept("") >= HomepageLimit {
		s.mu.Unlock()
		return CaseStudy{}, ErrHomepageCapExceeded
	}
	item := CaseStudy{
		ID:               s.newID(),
		Icon:             DefaultIcon(),
		AdditionalImages: []string{},
	}
	p.apply(&item)
	item.normalize()
	s.items = append(s.items, item)
	s.version++
	out := item.Clone()
	s.mu.Unlock()

	s.schedulePersist()
	return out, nil
}

// Update merges the supplied fields into the record with the given id.
func (s *Store) Update(id string, p Partial) (CaseStudy, error) {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return CaseStudy{}, ErrInvalidRecord
	}

	s.mu.Lock()
	idx := s.indexOf(id)
	if idx < 0 {
		s.mu.Unlock()
		return CaseStudy{}, ErrNotFound
	}
	updated := s.items[idx].Clone()
	p.apply(&updated)
	updated.normalize()
	if updated.ShowOnHomepage && s.homepageCountExcept(id) >= HomepageLimit {
		s.mu.Unlock()
		return CaseStudy{}, ErrHomepageCapExceeded
	}
	s.items[idx] = updated
	s.version++
	out := updated.Clone()
	s.mu.Unlock()

	s.schedulePersist()
	return out, nil
}

// Remove deletes the record with the given id. Callers confirm beforehand.
func (s *Store) Remove(id string) error {
	s.mu.Lock()
	idx := s.indexOf(id)
	if idx < 0 {
		s.mu.Unlock()
		return ErrNotFound
	}
	s.items = append(s.items[:idx:idx], s.items[idx+1:]...)
	s.version++
	s.mu.Unlock()

	s.schedulePersist()
	return nil
}

// ToggleHomepage flips the homepage flag of a record.
func (s *Store) ToggleHomepage(id string) (CaseStudy, error) {
	s.mu.Lock()
	idx := s.indexOf(id)
	if idx < 0 {
		s.mu.Unlock()
		return CaseStudy{}, ErrNotFound
	}
	if !s.items[idx].ShowOnHomepage && s.homepageCountExcept(id) >= HomepageLimit {
		s.mu.Unlock()
		return CaseStudy{}, ErrHomepageCapExceeded
	}
	s.items[idx].ShowOnHomepage = !s.items[idx].ShowOnHomepage
	s.version++
	out := s.items[idx].Clone()
	s.mu.Unlock()

	s.schedulePersist()
	return out, nil
}

func (s *Store) List() []CaseStudy {
	items, _ := s.snapshot()
	return items
}

func (s *Store) snapshot() ([]CaseStudy, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]CaseStudy, len(s.items))
	for i, item := range s.items {
		out[i] = item.Clone()
	}
	return out, s.version
}

func (s *Store) Filter(f ListFilter) []CaseStudy {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]CaseStudy, 0, len(s.items))
	for _, item := range s.items {
		if f.matches(item) {
			out = append(out, item.Clone())
		}
	}
	return out
}

func (s *Store) Get(id string) (CaseStudy, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx := s.indexOf(id)
	if idx < 0 {
		return CaseStudy{}, ErrNotFound
	}
	return s.items[idx].Clone(), nil
}

func (s *Store) HomepageCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.homepageCountExcept("")
}

// Subscribe registers fn to run after every successful persist. The returned
// func removes the registration.
func (s *Store) Subscribe(fn func()) func() {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

// Flush writes unsaved changes immediately, waiting for a write already in
// flight. It is meant for shutdown.
func (s *Store) Flush(ctx context.Context) error {
	s.debouncer.Cancel()
	return s.persist(ctx, true)
}

func (s *Store) schedulePersist() {
	s.debouncer.Debounce(func() {
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		defer cancel()
		_ = s.persist(ctx, true)
	})
}

func (s *Store) write(ctx context.Context) error {
	return s.persist(ctx, false)
}

// persist writes the current list. Writes never overlap and the snapshot is
// taken once the previous write has finished, so the last write to land is
// the latest list. With onlyUnsaved set, a list already written is skipped.
// Failures are logged and leave the in-memory list as the source of truth.
func (s *Store) persist(ctx context.Context, onlyUnsaved bool) error {
	s.persistMu.Lock()
	snapshot, version := s.snapshot()
	if onlyUnsaved && version == s.saved {
		s.persistMu.Unlock()
		return nil
	}
	if err := s.repo.Save(ctx, snapshot); err != nil {
		s.persistMu.Unlock()
		s.log.Error("catalog persist: failed", slog.String("error", err.Error()))
		return err
	}
	s.saved = version
	s.persistMu.Unlock()

	s.log.Debug("catalog persist: ok", slog.Int("count", len(snapshot)))
	s.notify()
	return nil
}

func (s *Store) notify() {
	s.subMu.Lock()
	fns := make([]func(), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// callers hold s.mu
func (s *Store) indexOf(id string) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}

// callers hold s.mu
func (s *Store) homepageCountExcept(id string) int {
	count := 0
	for _, item := range s.items {
		if item.ShowOnHomepage && (id == "" || item.ID != id) {
			count++
		}
	}
	return count
}

// callers hold s.mu
func (s *Store) newID() string {
	stamp := s.opts.Now().UnixMilli()
	for {
		id := fmt.Sprintf("case-%d", stamp)
		if s.indexOf(id) < 0 {
			return id
		}
		stamp++
	}
}
