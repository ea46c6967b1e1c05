package casestudies

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"rts-backend/internal/storage"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/goleak"
)

const testKey = "allSolutions_cases"

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// countingStore wraps a memory store and counts writes.
type countingStore struct {
	*storage.MemoryStore
	mu   sync.Mutex
	sets int
}

func newCountingStore() *countingStore {
	return &countingStore{MemoryStore: storage.NewMemory()}
}

func (c *countingStore) Set(ctx context.Context, key string, value []byte) error {
	c.mu.Lock()
	c.sets++
	c.mu.Unlock()
	return c.MemoryStore.Set(ctx, key, value)
}

func (c *countingStore) Sets() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sets
}

// blockingRepo never answers a load before its context ends.
type blockingRepo struct {
	mu    sync.Mutex
	saved [][]CaseStudy
}

func (b *blockingRepo) Load(ctx context.Context) ([]CaseStudy, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (b *blockingRepo) Save(ctx context.Context, items []CaseStudy) error {
	b.mu.Lock()
	b.saved = append(b.saved, items)
	b.mu.Unlock()
	return nil
}

func (b *blockingRepo) Discard(ctx context.Context) error { return nil }

// gatedRepo holds the first Save after hold() until release is closed.
type gatedRepo struct {
	Repository
	mu      sync.Mutex
	gate    chan struct{}
	started chan struct{}
}

func (g *gatedRepo) hold() (started <-chan struct{}, release chan<- struct{}) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.gate = make(chan struct{})
	g.started = make(chan struct{})
	return g.started, g.gate
}

func (g *gatedRepo) Save(ctx context.Context, items []CaseStudy) error {
	g.mu.Lock()
	gate, started := g.gate, g.started
	g.gate, g.started = nil, nil
	g.mu.Unlock()

	if gate != nil {
		close(started)
		<-gate
	}
	return g.Repository.Save(ctx, items)
}

func newTestStore(t *testing.T, kv storage.Store, opts Options) *Store {
	t.Helper()
	if opts.PersistDebounce == 0 {
		opts.PersistDebounce = 10 * time.Millisecond
	}
	s := NewStore(NewRepository(kv, testKey, testLogger()), testLogger(), opts)
	t.Cleanup(func() { _ = s.Flush(context.Background()) })
	return s
}

func fixedClock(ms int64) func() time.Time {
	return func() time.Time { return time.UnixMilli(ms) }
}

func ids(items []CaseStudy) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.ID
	}
	return out
}

func storedItems(t *testing.T, kv storage.Store) []CaseStudy {
	t.Helper()
	raw, found, err := kv.Get(context.Background(), testKey)
	if err != nil || !found {
		t.Fatalf("expected stored snapshot, found=%v err=%v", found, err)
	}
	var items []CaseStudy
	if err := json.Unmarshal(raw, &items); err != nil {
		t.Fatalf("decode stored snapshot: %v", err)
	}
	return items
}

func seed(t *testing.T, kv storage.Store, items []CaseStudy) {
	t.Helper()
	raw, err := json.Marshal(items)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if err := kv.Set(context.Background(), testKey, raw); err != nil {
		t.Fatalf("seed: %v", err)
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met in time")
}

func TestLoadMissingKeyInstallsDefaults(t *testing.T) {
	kv := storage.NewMemory()
	s := newTestStore(t, kv, Options{})

	items := s.Load(context.Background())

	want := ids(DefaultCatalog())
	if diff := cmp.Diff(want, ids(items)); diff != "" {
		t.Fatalf("unexpected ids (-want +got):\n%s", diff)
	}
	// the default catalog is written right away, not debounced
	if diff := cmp.Diff(want, ids(storedItems(t, kv))); diff != "" {
		t.Fatalf("unexpected stored ids (-want +got):\n%s", diff)
	}
}

func TestLoadCorruptSnapshotIsIdempotent(t *testing.T) {
	kv := storage.NewMemory()
	if err := kv.Set(context.Background(), testKey, []byte("not json")); err != nil {
		t.Fatalf("seed: %v", err)
	}

	first := newTestStore(t, kv, Options{}).Load(context.Background())
	if len(first) != len(DefaultCatalog()) {
		t.Fatalf("expected defaults, got %d records", len(first))
	}
	if got := storedItems(t, kv); len(got) != len(first) {
		t.Fatalf("expected defaults persisted, got %d", len(got))
	}

	second := newTestStore(t, kv, Options{}).Load(context.Background())
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("second load differs (-first +second):\n%s", diff)
	}
}

func TestLoadEmptyArrayInstallsDefaults(t *testing.T) {
	kv := storage.NewMemory()
	seed(t, kv, []CaseStudy{})

	items := newTestStore(t, kv, Options{}).Load(context.Background())
	if len(items) != len(DefaultCatalog()) {
		t.Fatalf("expected defaults, got %d", len(items))
	}
}

func TestLoadKeepsStoredCatalog(t *testing.T) {
	kv := storage.NewMemory()
	seed(t, kv, []CaseStudy{
		{ID: "b", Title: "B", Description: "b"},
		{ID: "a", Title: "A", Description: "a", Icon: ResolveIcon("Rocket")},
	})

	items := newTestStore(t, kv, Options{}).Load(context.Background())
	if diff := cmp.Diff([]string{"b", "a"}, ids(items)); diff != "" {
		t.Fatalf("order must be preserved (-want +got):\n%s", diff)
	}
	if items[0].Icon.Name != "MessageSquare" || items[1].Icon.Name != "Rocket" {
		t.Fatalf("unexpected icons: %q %q", items[0].Icon.Name, items[1].Icon.Name)
	}
}

func TestLoadDropsMalformedEntries(t *testing.T) {
	kv := storage.NewMemory()
	raw := `[{"id":"a","title":"A","description":"a"}, null, 5, {"id":"b","title":"B","iconName":"Nope"}]`
	if err := kv.Set(context.Background(), testKey, []byte(raw)); err != nil {
		t.Fatalf("seed: %v", err)
	}

	items := newTestStore(t, kv, Options{}).Load(context.Background())
	if diff := cmp.Diff([]string{"a", "b"}, ids(items)); diff != "" {
		t.Fatalf("unexpected ids (-want +got):\n%s", diff)
	}
	if items[1].Icon.Name != "MessageSquare" {
		t.Fatalf("unknown icon should fall back, got %q", items[1].Icon.Name)
	}
}

func TestLoadRepairsForeignData(t *testing.T) {
	kv := storage.NewMemory()
	var items []CaseStudy
	for _, id := range []string{"a", "b", "c", "a", "d", "", "e", "f", "g"} {
		items = append(items, CaseStudy{ID: id, Title: "T" + id, Description: "d", ShowOnHomepage: true})
	}
	seed(t, kv, items)

	s := newTestStore(t, kv, Options{})
	got := s.Load(context.Background())

	if diff := cmp.Diff([]string{"a", "b", "c", "d", "e", "f", "g"}, ids(got)); diff != "" {
		t.Fatalf("unexpected ids (-want +got):\n%s", diff)
	}
	if s.HomepageCount() != HomepageLimit {
		t.Fatalf("expected %d flagged, got %d", HomepageLimit, s.HomepageCount())
	}
	if got[6].ShowOnHomepage {
		t.Fatalf("flag beyond the limit should be cleared")
	}
}

func TestLoadTimeoutFallsBackToDefaults(t *testing.T) {
	repo := &blockingRepo{}
	s := NewStore(repo, testLogger(), Options{LoadTimeout: 20 * time.Millisecond})

	start := time.Now()
	items := s.Load(context.Background())
	if time.Since(start) > time.Second {
		t.Fatalf("load did not honor its timeout")
	}
	if len(items) != len(DefaultCatalog()) {
		t.Fatalf("expected defaults, got %d", len(items))
	}

	repo.mu.Lock()
	defer repo.mu.Unlock()
	if len(repo.saved) != 1 || len(repo.saved[0]) != len(DefaultCatalog()) {
		t.Fatalf("expected defaults persisted once, got %d saves", len(repo.saved))
	}
}

func TestAddAssignsUniqueIDs(t *testing.T) {
	s := newTestStore(t, storage.NewMemory(), Options{Now: fixedClock(1700000000000)})
	s.Load(context.Background())

	a, err := s.Add(Partial{Title: Ptr("First")})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	b, err := s.Add(Partial{Title: Ptr("Second")})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	if a.ID != "case-1700000000000" || b.ID != "case-1700000000001" {
		t.Fatalf("unexpected ids %q %q", a.ID, b.ID)
	}
	if a.Icon.Name != "MessageSquare" {
		t.Fatalf("expected default icon, got %q", a.Icon.Name)
	}
	if a.AdditionalImages == nil || len(a.AdditionalImages) != 0 {
		t.Fatalf("expected empty additional images, got %v", a.AdditionalImages)
	}
	if got := s.List(); len(got) != 8 || got[7].ID != b.ID {
		t.Fatalf("new records must be appended, got %v", ids(got))
	}
}

func TestAddRequiresTitle(t *testing.T) {
	s := newTestStore(t, storage.NewMemory(), Options{})
	s.Load(context.Background())

	for _, p := range []Partial{{}, {Title: Ptr("   ")}} {
		if _, err := s.Add(p); !errors.Is(err, ErrInvalidRecord) {
			t.Fatalf("expected ErrInvalidRecord, got %v", err)
		}
	}
	if len(s.List()) != 6 {
		t.Fatalf("rejected add must not change the catalog")
	}
}

func TestAddRespectsHomepageLimit(t *testing.T) {
	s := newTestStore(t, storage.NewMemory(), Options{})
	s.Load(context.Background())
	if s.HomepageCount() != 6 {
		t.Fatalf("defaults should fill the homepage, got %d", s.HomepageCount())
	}

	if _, err := s.Add(Partial{Title: Ptr("X"), ShowOnHomepage: Ptr(true)}); !errors.Is(err, ErrHomepageCapExceeded) {
		t.Fatalf("expected ErrHomepageCapExceeded, got %v", err)
	}
	if len(s.List()) != 6 {
		t.Fatalf("rejected add must not change the catalog")
	}

	if _, err := s.Add(Partial{Title: Ptr("X"), ShowOnHomepage: Ptr(false)}); err != nil {
		t.Fatalf("add without homepage: %v", err)
	}
}

func TestUpdateHomepageLimitExcludesSelf(t *testing.T) {
	s := newTestStore(t, storage.NewMemory(), Options{})
	s.Load(context.Background())

	updated, err := s.Update("telegram-bot", Partial{Title: Ptr("Renamed"), ShowOnHomepage: Ptr(true)})
	if err != nil {
		t.Fatalf("editing a flagged record must pass the limit: %v", err)
	}
	if updated.Title != "Renamed" || updated.Description == "" {
		t.Fatalf("only supplied fields should change: %+v", updated)
	}

	extra, err := s.Add(Partial{Title: Ptr("Extra")})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := s.Update(extra.ID, Partial{ShowOnHomepage: Ptr(true)}); !errors.Is(err, ErrHomepageCapExceeded) {
		t.Fatalf("expected ErrHomepageCapExceeded, got %v", err)
	}
	if got, _ := s.Get(extra.ID); got.ShowOnHomepage {
		t.Fatalf("rejected update must not change the record")
	}
}

func TestUpdateErrors(t *testing.T) {
	s := newTestStore(t, storage.NewMemory(), Options{})
	s.Load(context.Background())

	if _, err := s.Update("missing", Partial{Title: Ptr("x")}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := s.Update("telegram-bot", Partial{Title: Ptr("")}); !errors.Is(err, ErrInvalidRecord) {
		t.Fatalf("expected ErrInvalidRecord, got %v", err)
	}
}

func TestUpdateIconAndLists(t *testing.T) {
	s := newTestStore(t, storage.NewMemory(), Options{})
	s.Load(context.Background())

	got, err := s.Update("ai-agents", Partial{
		IconName:         Ptr("Zap"),
		UniqueFeaturesRu: Ptr([]string(nil)),
		Technologies:     Ptr([]string{"Go"}),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Icon.Name != "Zap" || got.Icon.Glyph != "zap" {
		t.Fatalf("unexpected icon %+v", got.Icon)
	}
	if got.UniqueFeaturesRu != nil {
		t.Fatalf("russian features should be cleared, got %v", got.UniqueFeaturesRu)
	}
	if diff := cmp.Diff([]string{"Go"}, got.Technologies); diff != "" {
		t.Fatalf("technologies (-want +got):\n%s", diff)
	}
}

func TestRemove(t *testing.T) {
	s := newTestStore(t, storage.NewMemory(), Options{})
	s.Load(context.Background())

	if err := s.Remove("price-calculator"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := s.Get("price-calculator"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected record gone, got %v", err)
	}
	if len(s.List()) != 5 {
		t.Fatalf("expected 5 records, got %d", len(s.List()))
	}
	if err := s.Remove("price-calculator"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for second remove, got %v", err)
	}
	if len(s.List()) != 5 {
		t.Fatalf("removing a missing id must be a no-op")
	}
}

func TestToggleHomepage(t *testing.T) {
	s := newTestStore(t, storage.NewMemory(), Options{})
	s.Load(context.Background())

	off, err := s.ToggleHomepage("ai-agents")
	if err != nil || off.ShowOnHomepage {
		t.Fatalf("toggle off: %+v %v", off, err)
	}

	extra, err := s.Add(Partial{Title: Ptr("Extra"), ShowOnHomepage: Ptr(true)})
	if err != nil {
		t.Fatalf("add into the freed slot: %v", err)
	}
	if !extra.ShowOnHomepage {
		t.Fatalf("expected extra on the homepage")
	}

	if _, err := s.ToggleHomepage("ai-agents"); !errors.Is(err, ErrHomepageCapExceeded) {
		t.Fatalf("expected ErrHomepageCapExceeded, got %v", err)
	}
	if got, _ := s.Get("ai-agents"); got.ShowOnHomepage {
		t.Fatalf("rejected toggle must not change the record")
	}
	if _, err := s.ToggleHomepage("missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListReturnsCopies(t *testing.T) {
	s := newTestStore(t, storage.NewMemory(), Options{})
	s.Load(context.Background())

	items := s.List()
	items[0].Title = "mutated"
	items[0].Technologies[0] = "mutated"

	got, _ := s.Get(items[0].ID)
	if got.Title == "mutated" || got.Technologies[0] == "mutated" {
		t.Fatalf("store state leaked through List")
	}
}

func TestFilter(t *testing.T) {
	s := newTestStore(t, storage.NewMemory(), Options{})
	s.Load(context.Background())

	cases := []struct {
		name   string
		filter ListFilter
		want   []string
	}{
		{name: "all", filter: ListFilter{Category: "All", Industry: "All"}, want: ids(DefaultCatalog())},
		{name: "category", filter: ListFilter{Category: "Automation"}, want: []string{"telegram-bot", "apg-ecosystem"}},
		{name: "industry", filter: ListFilter{Industry: "FinTech"}, want: []string{"telegram-bot"}},
		{name: "technology search", filter: ListFilter{Search: "django"}, want: []string{"bench-tournaments", "apg-ecosystem"}},
		{name: "russian description", filter: ListFilter{Search: "единое"}, want: []string{"telegram-bot"}},
		{name: "combined", filter: ListFilter{Category: "AI Solutions", Search: "HR"}, want: []string{"ai-agents"}},
		{name: "no match", filter: ListFilter{Search: "cobol"}, want: []string{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if diff := cmp.Diff(tc.want, ids(s.Filter(tc.filter))); diff != "" {
				t.Fatalf("unexpected ids (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPersistIsDebounced(t *testing.T) {
	kv := newCountingStore()
	s := newTestStore(t, kv, Options{PersistDebounce: 30 * time.Millisecond, Now: fixedClock(1)})
	s.Load(context.Background())
	if kv.Sets() != 1 {
		t.Fatalf("expected the defaults write, got %d", kv.Sets())
	}

	persisted := make(chan struct{}, 8)
	defer s.Subscribe(func() { persisted <- struct{}{} })()

	for i := 0; i < 5; i++ {
		if _, err := s.Add(Partial{Title: Ptr("Burst")}); err != nil {
			t.Fatalf("add: %v", err)
		}
	}
	if _, err := s.ToggleHomepage("telegram-bot"); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	select {
	case <-persisted:
	case <-time.After(2 * time.Second):
		t.Fatalf("no persist happened")
	}
	time.Sleep(60 * time.Millisecond)

	if kv.Sets() != 2 {
		t.Fatalf("expected one coalesced write, got %d", kv.Sets()-1)
	}
	if diff := cmp.Diff(s.List(), storedItems(t, kv)); diff != "" {
		t.Fatalf("stored snapshot is not the latest list (-memory +stored):\n%s", diff)
	}
}

func TestPersistFailureKeepsMemory(t *testing.T) {
	s := newTestStore(t, storage.Unavailable{}, Options{PersistDebounce: time.Hour})

	items := s.Load(context.Background())
	if len(items) != len(DefaultCatalog()) {
		t.Fatalf("expected defaults in memory, got %d", len(items))
	}

	added, err := s.Add(Partial{Title: Ptr("Offline")})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := s.Flush(context.Background()); !errors.Is(err, ErrStorageUnavailable) {
		t.Fatalf("expected ErrStorageUnavailable from flush, got %v", err)
	}
	if _, err := s.Get(added.ID); err != nil {
		t.Fatalf("memory must stay authoritative: %v", err)
	}
}

func TestFlushWritesPending(t *testing.T) {
	kv := storage.NewMemory()
	s := NewStore(NewRepository(kv, testKey, testLogger()), testLogger(), Options{PersistDebounce: time.Hour})
	s.Load(context.Background())

	if err := s.Remove("telegram-bot"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := s.Flush(context.Background()); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if got := storedItems(t, kv); len(got) != 5 {
		t.Fatalf("expected flushed snapshot of 5, got %d", len(got))
	}
	if err := s.Flush(context.Background()); err != nil {
		t.Fatalf("flush with nothing pending: %v", err)
	}
}

func TestSubscribeAndUnsubscribe(t *testing.T) {
	s := newTestStore(t, storage.NewMemory(), Options{PersistDebounce: time.Hour})
	s.Load(context.Background())

	var mu sync.Mutex
	calls := 0
	unsubscribe := s.Subscribe(func() {
		mu.Lock()
		calls++
		mu.Unlock()
	})

	if _, err := s.ToggleHomepage("ai-agents"); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if err := s.Flush(context.Background()); err != nil {
		t.Fatalf("flush: %v", err)
	}

	unsubscribe()
	if _, err := s.ToggleHomepage("ai-agents"); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if err := s.Flush(context.Background()); err != nil {
		t.Fatalf("flush: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if calls != 1 {
		t.Fatalf("expected one notification, got %d", calls)
	}
}

func TestReplace(t *testing.T) {
	kv := storage.NewMemory()
	s := newTestStore(t, kv, Options{})
	s.Load(context.Background())

	got, err := s.Replace(context.Background(), []CaseStudy{
		{ID: "one", Title: "One", Description: "d", ShowOnHomepage: true},
		{ID: "one", Title: "Duplicate"},
		{ID: "two", Title: "Two"},
	})
	if err != nil {
		t.Fatalf("replace: %v", err)
	}
	if diff := cmp.Diff([]string{"one", "two"}, ids(got)); diff != "" {
		t.Fatalf("unexpected ids (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(got, storedItems(t, kv)); diff != "" {
		t.Fatalf("replace must write through (-memory +stored):\n%s", diff)
	}

	if _, err := s.Replace(context.Background(), []CaseStudy{{Title: "no id"}}); !errors.Is(err, ErrEmptyCatalog) {
		t.Fatalf("expected ErrEmptyCatalog, got %v", err)
	}
	if len(s.List()) != 2 {
		t.Fatalf("refused replace must keep the catalog")
	}
}

func TestLoadToleratesNonStringIconName(t *testing.T) {
	kv := storage.NewMemory()
	raw := `[{"id":"a","title":"A","description":"a","iconName":123},{"id":"b","title":"B","description":"b","iconName":null}]`
	if err := kv.Set(context.Background(), testKey, []byte(raw)); err != nil {
		t.Fatalf("seed: %v", err)
	}

	items := newTestStore(t, kv, Options{}).Load(context.Background())
	if diff := cmp.Diff([]string{"a", "b"}, ids(items)); diff != "" {
		t.Fatalf("unexpected ids (-want +got):\n%s", diff)
	}
	for _, item := range items {
		if item.Icon != DefaultIcon() {
			t.Fatalf("%s: expected default icon, got %+v", item.ID, item.Icon)
		}
	}
}

func TestUpdateTitleKeepsHomepageCount(t *testing.T) {
	s := newTestStore(t, storage.NewMemory(), Options{})
	s.Load(context.Background())
	before := s.HomepageCount()

	got, err := s.Update("bench-tournaments", Partial{Title: Ptr("New Title")})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Title != "New Title" || !got.ShowOnHomepage {
		t.Fatalf("unexpected record %+v", got)
	}
	if s.HomepageCount() != before {
		t.Fatalf("homepage count changed: %d -> %d", before, s.HomepageCount())
	}
}

func TestToggleSeventhRecordRejected(t *testing.T) {
	s := newTestStore(t, storage.NewMemory(), Options{})
	s.Load(context.Background())

	seventh, err := s.Add(Partial{Title: Ptr("Seventh"), Description: Ptr("d")})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if seventh.ShowOnHomepage {
		t.Fatalf("new record should start off the homepage")
	}

	if _, err := s.ToggleHomepage(seventh.ID); !errors.Is(err, ErrHomepageCapExceeded) {
		t.Fatalf("expected ErrHomepageCapExceeded, got %v", err)
	}
	got, err := s.Get(seventh.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ShowOnHomepage {
		t.Fatalf("rejected toggle must leave the record off the homepage")
	}
	if s.HomepageCount() != HomepageLimit {
		t.Fatalf("expected %d flagged, got %d", HomepageLimit, s.HomepageCount())
	}
}

func TestSlowWriteDoesNotOverwriteNewerSnapshot(t *testing.T) {
	kv := storage.NewMemory()
	repo := &gatedRepo{Repository: NewRepository(kv, testKey, testLogger())}
	s := NewStore(repo, testLogger(), Options{PersistDebounce: 5 * time.Millisecond})
	s.Load(context.Background())
	defer func() { _ = s.Flush(context.Background()) }()

	started, release := repo.hold()
	if _, err := s.Update("telegram-bot", Partial{Title: Ptr("First")}); err != nil {
		t.Fatalf("update: %v", err)
	}
	<-started

	// a second debounced write fires while the first is still saving
	if _, err := s.Update("telegram-bot", Partial{Title: Ptr("Second")}); err != nil {
		t.Fatalf("update: %v", err)
	}
	time.Sleep(30 * time.Millisecond)
	close(release)

	waitFor(t, func() bool {
		raw, found, err := kv.Get(context.Background(), testKey)
		if err != nil || !found {
			return false
		}
		var items []CaseStudy
		if err := json.Unmarshal(raw, &items); err != nil {
			return false
		}
		return len(items) > 0 && items[0].Title == "Second"
	})
	if err := s.Flush(context.Background()); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if got := storedItems(t, kv)[0].Title; got != "Second" {
		t.Fatalf("stored title %q, want %q", got, "Second")
	}
}

func TestFlushWaitsForWriteInFlight(t *testing.T) {
	kv := storage.NewMemory()
	repo := &gatedRepo{Repository: NewRepository(kv, testKey, testLogger())}
	s := NewStore(repo, testLogger(), Options{PersistDebounce: 5 * time.Millisecond})
	s.Load(context.Background())

	started, release := repo.hold()
	if _, err := s.Update("telegram-bot", Partial{Title: Ptr("Only")}); err != nil {
		t.Fatalf("update: %v", err)
	}
	<-started

	timer := time.AfterFunc(20*time.Millisecond, func() { close(release) })
	defer timer.Stop()

	if err := s.Flush(context.Background()); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if got := storedItems(t, kv)[0].Title; got != "Only" {
		t.Fatalf("stored title %q after flush, want %q", got, "Only")
	}
}
