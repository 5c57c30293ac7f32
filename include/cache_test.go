package include_test

import (
	"io/fs"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/stemplate/include"
)

func TestWatchDir_Load(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "motd.inc", "one")

	w, err := include.NewWatchDir(dir)
	require.NoError(t, err)
	defer w.Close()

	content, err := w.Load("motd.inc")
	require.NoError(t, err)
	assert.Equal(t, "one", content)

	// Repeated loads serve the cache.
	content, err = w.Load("motd.inc")
	require.NoError(t, err)
	assert.Equal(t, "one", content)
}

func TestWatchDir_Invalidation(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "motd.inc", "one")

	w, err := include.NewWatchDir(dir)
	require.NoError(t, err)
	defer w.Close()

	content, err := w.Load("motd.inc")
	require.NoError(t, err)
	require.Equal(t, "one", content)

	writeFile(t, dir, "motd.inc", "two")

	assert.Eventually(t, func() bool {
		content, err := w.Load("motd.inc")
		return err == nil && content == "two"
	}, 2*time.Second, 10*time.Millisecond, "cache should pick up the rewritten file")
}

func TestWatchDir_Missing(t *testing.T) {
	w, err := include.NewWatchDir(t.TempDir())
	require.NoError(t, err)
	defer w.Close()

	_, err = w.Load("absent.inc")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestWatchDir_MissingRoot(t *testing.T) {
	_, err := include.NewWatchDir("/no/such/directory")
	assert.Error(t, err)
}

func TestWatchDir_CloseIdempotent(t *testing.T) {
	w, err := include.NewWatchDir(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, w.Close())
	require.NoError(t, w.Close())
}
