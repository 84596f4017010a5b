package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/batuta-io/batuta/pkg/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return New(t.TempDir())
}

func TestStore_SaveAndLoad(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	state := domain.NewState("sess-1", "user-1")
	state.Set(domain.KeyJiraTicketID, "PROJ-123")
	require.NoError(t, store.Save(ctx, "sess-1", state))

	loaded, err := store.Load(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, "sess-1", loaded.SessionID)
	assert.Equal(t, "PROJ-123", loaded.GetString(domain.KeyJiraTicketID))
}

func TestStore_LoadNotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Load(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestStore_Overwrite(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	state := domain.NewState("sess-1", "user-1")
	state.Set(domain.KeyReply, "first")
	require.NoError(t, store.Save(ctx, "sess-1", state))

	state.Set(domain.KeyReply, "second")
	require.NoError(t, store.Save(ctx, "sess-1", state))

	loaded, err := store.Load(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, "second", loaded.GetString(domain.KeyReply))
}

func TestStore_RejectsPathTraversal(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	err := store.Save(ctx, "../escape", domain.NewState("../escape", "u"))
	assert.Error(t, err)

	_, err = store.Load(ctx, "a/b")
	assert.Error(t, err)

	err = store.Save(ctx, "", domain.NewState("", "u"))
	assert.Error(t, err)
}

func TestStore_Delete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "sess-1", domain.NewState("sess-1", "u")))
	require.NoError(t, store.Delete(ctx, "sess-1"))

	_, err := store.Load(ctx, "sess-1")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	assert.NoError(t, store.Delete(ctx, "missing"))
}

func TestStore_List(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	sessions, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, sessions)

	require.NoError(t, store.Save(ctx, "sess-1", domain.NewState("sess-1", "u")))
	require.NoError(t, store.Save(ctx, "sess-2", domain.NewState("sess-2", "u")))

	// Stray temp files must not show up as sessions.
	require.NoError(t, os.WriteFile(filepath.Join(store.BasePath, "tmp-sess-3-x.json"), []byte("{}"), 0o644))

	sessions, err = store.List(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"sess-1", "sess-2"}, sessions)
}

func TestStore_ListMissingDir(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "never-created"))

	sessions, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, sessions)
}

func TestNew_DefaultPath(t *testing.T) {
	store := New("")
	assert.Equal(t, filepath.Join(".batuta", "sessions"), store.BasePath)
}
