package storage_test

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"github.com/taskplanner/task-planner/internal/infrastructure/storage"
)

func newStore(t *testing.T) *storage.Store {
	t.Helper()
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	store, err := storage.NewStore(t.TempDir(), logger)
	require.NoError(t, err)
	return store
}

func TestRead_CreatesMissingResource(t *testing.T) {
	store := newStore(t)

	items := storage.Read(store, "items", []string{})
	require.Empty(t, items)

	// First read must leave an initialized file behind so later callers
	// never see a missing resource.
	data, err := os.ReadFile(filepath.Join(store.Dir(), "items.json"))
	require.NoError(t, err)
	require.JSONEq(t, "[]", string(data))
}

func TestUpdate_RoundTrip(t *testing.T) {
	store := newStore(t)

	err := storage.Update(store, "items", []string{}, func(items []string) ([]string, error) {
		return append(items, "first", "second"), nil
	})
	require.NoError(t, err)

	items := storage.Read(store, "items", []string{})
	require.Equal(t, []string{"first", "second"}, items)
}

func TestUpdate_FnErrorWritesNothing(t *testing.T) {
	store := newStore(t)

	require.NoError(t, storage.Update(store, "items", []string{}, func(items []string) ([]string, error) {
		return append(items, "kept"), nil
	}))

	sentinel := errors.New("rejected")
	err := storage.Update(store, "items", []string{}, func(items []string) ([]string, error) {
		return nil, sentinel
	})
	require.ErrorIs(t, err, sentinel)

	items := storage.Read(store, "items", []string{})
	require.Equal(t, []string{"kept"}, items)
}

func TestRead_CorruptFileFallsBackToEmpty(t *testing.T) {
	store := newStore(t)

	require.NoError(t, os.WriteFile(filepath.Join(store.Dir(), "items.json"), []byte("{not json"), 0o644))
	require.Empty(t, storage.Read(store, "items", []string{}))
}

func TestRead_WrongShapeFallsBackToEmpty(t *testing.T) {
	store := newStore(t)

	// A mapping where a list is expected decodes to the empty list.
	require.NoError(t, os.WriteFile(filepath.Join(store.Dir(), "items.json"), []byte(`{"a":1}`), 0o644))
	require.Empty(t, storage.Read(store, "items", []string{}))

	// And a null document decodes to the supplied empty map, not a nil map.
	require.NoError(t, os.WriteFile(filepath.Join(store.Dir(), "codes.json"), []byte("null"), 0o644))
	codes := storage.Read(store, "codes", map[string]string{})
	require.NotNil(t, codes)
	require.Empty(t, codes)
}

func TestUpdate_ConcurrentWritersDoNotLoseUpdates(t *testing.T) {
	store := newStore(t)

	const writers = 25
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = storage.Update(store, "items", []string{}, func(items []string) ([]string, error) {
				return append(items, "x"), nil
			})
		}()
	}
	wg.Wait()

	require.Len(t, storage.Read(store, "items", []string{}), writers)
}

func TestCodec_Decode(t *testing.T) {
	for _, payload := range [][]byte{nil, {}, []byte("  \n"), []byte("null"), []byte("not json"), []byte(`{"a":1}`)} {
		items, _ := storage.Decode(payload, []string{})
		require.Empty(t, items, "payload %q", payload)
	}

	items, err := storage.Decode([]byte(`["a","b"]`), []string{})
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, items)
}

func TestCodec_EncodeDecodeRoundTrip(t *testing.T) {
	in := map[string]int{"a": 1, "b": 2}
	data, err := storage.Encode(in)
	require.NoError(t, err)

	out, err := storage.Decode(data, map[string]int{})
	require.NoError(t, err)
	require.Equal(t, in, out)
}
