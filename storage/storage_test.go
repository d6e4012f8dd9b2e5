package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSnapshots(t *testing.T) *Snapshots {
	t.Helper()

	_, queries, cleanup, err := NewTestDB()
	require.NoError(t, err)
	t.Cleanup(cleanup)

	return NewSnapshots(queries)
}

func TestSnapshotsGetAbsentKey(t *testing.T) {
	s := newTestSnapshots(t)

	payload, err := s.Get(context.Background(), "cart:missing")
	require.NoError(t, err)
	assert.Nil(t, payload)
}

func TestSnapshotsPutGetDelete(t *testing.T) {
	s := newTestSnapshots(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "cart:v1", []byte(`[{"key":"1-M-Black"}]`)))

	payload, err := s.Get(ctx, "cart:v1")
	require.NoError(t, err)
	assert.Equal(t, `[{"key":"1-M-Black"}]`, string(payload))

	require.NoError(t, s.Delete(ctx, "cart:v1"))

	payload, err = s.Get(ctx, "cart:v1")
	require.NoError(t, err)
	assert.Nil(t, payload)
}

func TestSnapshotsPutOverwrites(t *testing.T) {
	s := newTestSnapshots(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "profile:v1", []byte(`{"name":"A"}`)))
	require.NoError(t, s.Put(ctx, "profile:v1", []byte(`{"name":"B"}`)))

	payload, err := s.Get(ctx, "profile:v1")
	require.NoError(t, err)
	assert.Equal(t, `{"name":"B"}`, string(payload))
}

func TestSnapshotsKeysAreIndependent(t *testing.T) {
	s := newTestSnapshots(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "cart:v1", []byte(`[]`)))
	require.NoError(t, s.Put(ctx, "profile:v1", []byte(`{}`)))

	require.NoError(t, s.Delete(ctx, "cart:v1"))

	payload, err := s.Get(ctx, "profile:v1")
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(payload))
}

func TestDeleteAbsentKeyIsNoError(t *testing.T) {
	s := newTestSnapshots(t)
	assert.NoError(t, s.Delete(context.Background(), "cart:never-existed"))
}
