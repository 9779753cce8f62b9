package am

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestMachine(t *testing.T) *Machine {
	t.Helper()
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	return NewMachine(store)
}

func TestMachineSetupAndLoad(t *testing.T) {
	m := newTestMachine(t)
	require.False(t, m.InProgress())

	sess, err := m.Setup(3)
	require.NoError(t, err)
	require.Equal(t, 1, sess.Cur)
	require.Equal(t, 3, sess.Last)
	require.True(t, m.InProgress())

	loaded, err := m.Load()
	require.NoError(t, err)
	require.Equal(t, sess.Cur, loaded.Cur)
	require.Equal(t, sess.Last, loaded.Last)
}

func TestMachineAdvanceClearsScratchAndBumpsNext(t *testing.T) {
	m := newTestMachine(t)
	sess, err := m.Setup(2)
	require.NoError(t, err)

	require.NoError(t, m.Store.WriteString(fileAuthorScript, "scratch"))
	require.NoError(t, m.Store.WriteString(fileFinalCommit, "scratch"))

	require.NoError(t, m.Advance(sess))
	require.Equal(t, 2, sess.Cur)

	_, err = m.Store.Read(fileAuthorScript)
	require.ErrorIs(t, err, ErrNotExist)
	_, err = m.Store.Read(fileFinalCommit)
	require.ErrorIs(t, err, ErrNotExist)

	next, err := m.Store.Read(fileNext)
	require.NoError(t, err)
	require.Equal(t, "2", next)

	require.False(t, sess.Done())
	require.NoError(t, m.Advance(sess))
	require.True(t, sess.Done())
}

func TestMachineDestroy(t *testing.T) {
	m := newTestMachine(t)
	_, err := m.Setup(1)
	require.NoError(t, err)
	require.True(t, m.Store.Exists())
	require.NoError(t, m.Destroy())
	require.False(t, m.Store.Exists())
}
