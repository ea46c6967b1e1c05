package casestudies

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"rts-backend/internal/storage"
)

// Repository reads and writes the whole catalog snapshot.
type Repository interface {
	Load(ctx context.Context) ([]CaseStudy, error)
	Save(ctx context.Context, items []CaseStudy) error
	Discard(ctx context.Context) error
}

// KVRepository keeps the catalog as one JSON array under a single key.
type KVRepository struct {
	store storage.Store
	key   string
	log   *slog.Logger
}

func NewRepository(store storage.Store, key string, log *slog.Logger) *KVRepository {
	return &KVRepository{store: store, key: key, log: log}
}

func (r *KVRepository) Key() string {
	return r.key
}

// Load returns ErrNoSnapshot when nothing is stored, ErrCorruptSnapshot when
// the value is not a JSON array and ErrStorageUnavailable on backend
// failures. Elements that do not decode are skipped.
func (r *KVRepository) Load(ctx context.Context) ([]CaseStudy, error) {
	raw, found, err := r.store.Get(ctx, r.key)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrStorageUnavailable, r.key, err)
	}
	if !found || len(bytes.TrimSpace(raw)) == 0 {
		return nil, ErrNoSnapshot
	}

	items, dropped, err := decodeSnapshot(raw)
	if err != nil {
		return nil, err
	}
	if dropped > 0 {
		r.log.Warn("catalog snapshot: dropped malformed entries", slog.String("key", r.key), slog.Int("dropped", dropped))
	}
	return items, nil
}

func (r *KVRepository) Save(ctx context.Context, items []CaseStudy) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}
	if err := r.store.Set(ctx, r.key, raw); err != nil {
		return fmt.Errorf("%w: write %s: %w", ErrStorageUnavailable, r.key, err)
	}
	return nil
}

func (r *KVRepository) Discard(ctx context.Context) error {
	if err := r.store.Delete(ctx, r.key); err != nil {
		return fmt.Errorf("%w: delete %s: %w", ErrStorageUnavailable, r.key, err)
	}
	return nil
}

func decodeSnapshot(raw []byte) ([]CaseStudy, int, error) {
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}

	items := make([]CaseStudy, 0, len(elems))
	dropped := 0
	for _, elem := range elems {
		if bytes.Equal(bytes.TrimSpace(elem), []byte("null")) {
			dropped++
			continue
		}
		var item CaseStudy
		if err := json.Unmarshal(elem, &item); err != nil {
			dropped++
			continue
		}
		item.normalize()
		items = append(items, item)
	}
	return items, dropped, nil
}
