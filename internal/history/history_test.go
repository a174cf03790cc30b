package history

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/jpp0ca/MusicRecognition-API/internal/adapters/storage/memory"
	"github.com/jpp0ca/MusicRecognition-API/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -- Helpers -----------------------------------------------------------------

type failingStore struct {
	err error
}

func (f *failingStore) Get(_ context.Context, _ string) (string, bool, error) {
	return "", false, f.err
}

func (f *failingStore) Set(_ context.Context, _, _ string) error { return f.err }
func (f *failingStore) Delete(_ context.Context, _ string) error { return f.err }

func track(i int) domain.Result {
	return domain.Result{Artist: fmt.Sprintf("Artist %d", i), Title: fmt.Sprintf("Title %d", i)}
}

// -- Tests -------------------------------------------------------------------

func TestRecord_EmptyCache(t *testing.T) {
	h := New(memory.NewStore())
	ctx := context.Background()

	got, err := h.Record(ctx, track(1))
	require.NoError(t, err)
	assert.Equal(t, []domain.Result{track(1)}, got)
	assert.Equal(t, got, h.Load(ctx))
}

func TestRecord_DeduplicatesByArtistAndTitle(t *testing.T) {
	h := New(memory.NewStore())
	ctx := context.Background()

	first := domain.Result{Artist: "A", Title: "B", Album: "Old"}
	second := domain.Result{Artist: "A", Title: "B", Album: "New"}

	_, err := h.Record(ctx, first)
	require.NoError(t, err)
	got, err := h.Record(ctx, second)
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, "New", got[0].Album)
}

func TestRecord_MovesRepeatToFront(t *testing.T) {
	h := New(memory.NewStore())
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		_, err := h.Record(ctx, track(i))
		require.NoError(t, err)
	}
	got, err := h.Record(ctx, track(1))
	require.NoError(t, err)

	assert.Equal(t, []domain.Result{track(1), track(3), track(2)}, got)
}

func TestRecord_IdentityIsCaseSensitive(t *testing.T) {
	h := New(memory.NewStore())
	ctx := context.Background()

	_, err := h.Record(ctx, domain.Result{Artist: "a", Title: "b"})
	require.NoError(t, err)
	got, err := h.Record(ctx, domain.Result{Artist: "A", Title: "B"})
	require.NoError(t, err)

	assert.Len(t, got, 2)
}

func TestRecord_KeepsFiveNewestFirst(t *testing.T) {
	h := New(memory.NewStore())
	ctx := context.Background()

	for i := 1; i <= 6; i++ {
		_, err := h.Record(ctx, track(i))
		require.NoError(t, err)
	}

	got := h.Load(ctx)
	assert.Equal(t, []domain.Result{track(6), track(5), track(4), track(3), track(2)}, got)
}

func TestLoad_CorruptStateIsEmpty(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, DefaultKey, "{not json"))

	h := New(store)
	assert.Empty(t, h.Load(ctx))

	got, err := h.Record(ctx, track(1))
	require.NoError(t, err)
	assert.Equal(t, []domain.Result{track(1)}, got)
}

func TestLoad_StoreFailureIsEmpty(t *testing.T) {
	h := New(&failingStore{err: errors.New("disk gone")})

	got := h.Load(context.Background())
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestRecord_PersistFailureReturnsList(t *testing.T) {
	h := New(&failingStore{err: errors.New("read only")})

	got, err := h.Record(context.Background(), track(1))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "persisting")
	assert.Equal(t, []domain.Result{track(1)}, got)
}

func TestLoad_SurvivesNewInstance(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	_, err := New(store).Record(ctx, track(1))
	require.NoError(t, err)

	assert.Equal(t, []domain.Result{track(1)}, New(store).Load(ctx))
}

func TestClear(t *testing.T) {
	h := New(memory.NewStore())
	ctx := context.Background()

	_, err := h.Record(ctx, track(1))
	require.NoError(t, err)
	require.NoError(t, h.Clear(ctx))

	assert.Empty(t, h.Load(ctx))
}

func TestOptions(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	h := New(store, WithKey("other"), WithLimit(2))

	for i := 1; i <= 3; i++ {
		_, err := h.Record(ctx, track(i))
		require.NoError(t, err)
	}

	assert.Len(t, h.Load(ctx), 2)
	_, ok, err := store.Get(ctx, DefaultKey)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRecord_ConcurrentWritersKeepEveryEntry(t *testing.T) {
	h := New(memory.NewStore(), WithLimit(50))
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _ = h.Record(ctx, track(i))
		}(i)
	}
	wg.Wait()

	assert.Len(t, h.Load(ctx), 20)
}
