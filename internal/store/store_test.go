package store

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ribaund/reader/internal/wp"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "reader.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestToggleFavorite(t *testing.T) {
	s := newTestStore(t)

	post := wp.Post{ID: 42, Date: "2025-11-20T14:30:00", Title: &wp.RenderedText{Rendered: "Başlık"}}

	fav, err := s.IsFavorite(post.ID)
	require.NoError(t, err)
	assert.False(t, fav)

	nowFav, err := s.ToggleFavorite(post)
	require.NoError(t, err)
	assert.True(t, nowFav)

	fav, err = s.IsFavorite(post.ID)
	require.NoError(t, err)
	assert.True(t, fav)

	nowFav, err = s.ToggleFavorite(post)
	require.NoError(t, err)
	assert.False(t, nowFav)

	fav, err = s.IsFavorite(post.ID)
	require.NoError(t, err)
	assert.False(t, fav)
}

func TestFavoritesRoundTrip(t *testing.T) {
	s := newTestStore(t)

	first := wp.Post{ID: 1, Date: "2025-11-20T14:30:00", Title: &wp.RenderedText{Rendered: "ilk"}}
	second := wp.Post{ID: 2, Date: "2025-11-21T09:00:00"}

	_, err := s.ToggleFavorite(first)
	require.NoError(t, err)
	_, err = s.ToggleFavorite(second)
	require.NoError(t, err)

	posts, err := s.Favorites()
	require.NoError(t, err)
	require.Len(t, posts, 2)

	assert.Equal(t, 1, posts[0].ID)
	require.NotNil(t, posts[0].Title)
	assert.Equal(t, "ilk", posts[0].Title.Rendered)

	assert.Equal(t, 2, posts[1].ID)
	assert.Nil(t, posts[1].Title, "absent title survives the round trip as absent")
}

func TestDarkModeDefaultsToDark(t *testing.T) {
	s := newTestStore(t)

	enabled, set, err := s.DarkMode()
	require.NoError(t, err)
	assert.True(t, set, "first run writes an explicit preference")
	assert.True(t, enabled, "default is dark")
}

func TestNewSurfacesBrokenSettings(t *testing.T) {
	// A pre-existing settings table with the wrong shape makes the
	// first-run preference read fail; New must report that, not swallow
	// it and silently skip the dark default.
	path := filepath.Join(t.TempDir(), "reader.db")

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	_, err = db.Exec(`CREATE TABLE settings (key TEXT PRIMARY KEY)`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	_, err = New(path)
	assert.Error(t, err)
}

func TestSetDarkMode(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.SetDarkMode(false))

	enabled, set, err := s.DarkMode()
	require.NoError(t, err)
	assert.True(t, set)
	assert.False(t, enabled)
}
