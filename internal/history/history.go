package history

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/Laky-64/gologging"

	"github.com/jpp0ca/MusicRecognition-API/internal/domain"
	"github.com/jpp0ca/MusicRecognition-API/internal/ports"
)

const (
	// DefaultKey is the store key holding the serialized list.
	DefaultKey = "recentSearches"
	// DefaultLimit is the number of results kept.
	DefaultLimit = 5
)

// RecentSearches is a bounded, deduplicated, most-recent-first list of
// matched results persisted in a key-value store. Writers are serialized so
// concurrent Record calls never lose each other's entries.
type RecentSearches struct {
	mu    sync.Mutex
	store ports.KeyValueStore
	key   string
	limit int
}

// Option customizes a RecentSearches.
type Option func(*RecentSearches)

// WithKey overrides the store key.
func WithKey(key string) Option {
	return func(r *RecentSearches) {
		if key != "" {
			r.key = key
		}
	}
}

// WithLimit overrides the number of results kept.
func WithLimit(limit int) Option {
	return func(r *RecentSearches) {
		if limit > 0 {
			r.limit = limit
		}
	}
}

func New(store ports.KeyValueStore, opts ...Option) *RecentSearches {
	r := &RecentSearches{
		store: store,
		key:   DefaultKey,
		limit: DefaultLimit,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Load returns the persisted list. A missing, unreadable or corrupt entry
// yields an empty list.
func (r *RecentSearches) Load(ctx context.Context) []domain.Result {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load(ctx)
}

func (r *RecentSearches) load(ctx context.Context) []domain.Result {
	raw, ok, err := r.store.Get(ctx, r.key)
	if err != nil {
		gologging.WarnF("[history] failed to read %s: %v", r.key, err)
		return []domain.Result{}
	}
	if !ok || raw == "" {
		return []domain.Result{}
	}

	var results []domain.Result
	if err := json.Unmarshal([]byte(raw), &results); err != nil {
		gologging.WarnF("[history] discarding corrupt %s: %v", r.key, err)
		return []domain.Result{}
	}
	if results == nil {
		return []domain.Result{}
	}
	if len(results) > r.limit {
		results = results[:r.limit]
	}
	return results
}

// Record puts result at the head of the list, dropping any older entry with
// the same artist and title, truncates to the limit and persists the list.
// The new list is returned even when persisting fails.
func (r *RecentSearches) Record(ctx context.Context, result domain.Result) ([]domain.Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current := r.load(ctx)

	next := make([]domain.Result, 0, r.limit)
	next = append(next, result)
	for _, existing := range current {
		if len(next) == r.limit {
			break
		}
		if existing.SameTrack(result) {
			continue
		}
		next = append(next, existing)
	}

	encoded, err := json.Marshal(next)
	if err != nil {
		return next, fmt.Errorf("history: encoding %s: %w", r.key, err)
	}
	if err := r.store.Set(ctx, r.key, string(encoded)); err != nil {
		return next, fmt.Errorf("history: persisting %s: %w", r.key, err)
	}

	gologging.DebugF("[history] recorded %q by %q (%d kept)", result.Title, result.Artist, len(next))
	return next, nil
}

// Clear forgets every recorded result.
func (r *RecentSearches) Clear(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.store.Delete(ctx, r.key); err != nil {
		return fmt.Errorf("history: clearing %s: %w", r.key, err)
	}
	return nil
}
