package sqlite_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fruitstand/backoffice/store"
	"github.com/fruitstand/backoffice/store/sqlite"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	st, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func TestSQLite_SaveLoadRoundTrip(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	payload := []byte(`{"branches":[{"id":"b1","name":"Main"}]}`)
	require.NoError(t, st.Save(ctx, "shift-store", payload))

	got, err := st.Load(ctx, "shift-store")
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestSQLite_SaveReplacesExisting(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.Save(ctx, "shift-store", []byte(`{"v":1}`)))
	require.NoError(t, st.Save(ctx, "shift-store", []byte(`{"v":2}`)))

	got, err := st.Load(ctx, "shift-store")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"v":2}`), got)
}

func TestSQLite_LoadMissing(t *testing.T) {
	st := newTestStore(t)

	_, err := st.Load(context.Background(), "nothing-here")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestSQLite_Names(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.Save(ctx, "shift-store", []byte(`{}`)))
	require.NoError(t, st.Save(ctx, "inventory-store", []byte(`{}`)))

	names, err := st.Names(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"inventory-store", "shift-store"}, names)
}
