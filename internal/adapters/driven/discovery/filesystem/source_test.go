package filesystem

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ase-lab/saturate/internal/core/domain"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("x"), 0600))
}

func TestSource_Discover_FiltersAndSorts(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.pdf", "a.PNG", "notes.txt", "scan.jpg", "c.png", "README"} {
		touch(t, filepath.Join(dir, name))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.pdf"), 0700))
	touch(t, filepath.Join(dir, "nested.pdf", "inner.pdf"))

	docs, err := NewSource(dir).Discover(context.Background())

	require.NoError(t, err)
	require.Len(t, docs, 3)
	assert.Equal(t, "a.PNG", docs[0].Name())
	assert.Equal(t, domain.DocumentTypeImage, docs[0].Type)
	assert.Equal(t, "b.pdf", docs[1].Name())
	assert.Equal(t, domain.DocumentTypePDF, docs[1].Type)
	assert.Equal(t, "c.png", docs[2].Name())
	assert.Equal(t, filepath.Join(dir, "c.png"), docs[2].Path)
}

func TestSource_Discover_EmptyDirectory(t *testing.T) {
	docs, err := NewSource(t.TempDir()).Discover(context.Background())

	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestSource_Discover_MissingDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")

	_, err := NewSource(dir).Discover(context.Background())

	assert.ErrorContains(t, err, "read input directory")
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSource_Discover_Cancelled(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "a.pdf"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewSource(dir).Discover(ctx)

	assert.ErrorIs(t, err, context.Canceled)
}

func TestSource_Location(t *testing.T) {
	assert.Equal(t, "data", NewSource("data").Location())
}
