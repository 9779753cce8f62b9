package am

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStoreReadMissingIsErrNotExist(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	_, err = store.Read("nope")
	require.ErrorIs(t, err, ErrNotExist)
}

func TestStoreWriteReadRoundTrip(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.WriteString("greeting", "hello\n"))
	got, err := store.Read("greeting")
	require.NoError(t, err)
	require.Equal(t, "hello", got)
}

func TestStoreRemoveIsIdempotent(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Remove("never-existed"))
	require.NoError(t, store.WriteString("x", "y"))
	require.NoError(t, store.Remove("x"))
	require.NoError(t, store.Remove("x"))
}

func TestStoreDestroy(t *testing.T) {
	dir := t.TempDir() + "/session"
	store, err := NewStore(dir)
	require.NoError(t, err)
	require.True(t, store.Exists())
	require.NoError(t, store.Destroy())
	require.False(t, store.Exists())
}
