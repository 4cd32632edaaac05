package file

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ase-lab/saturate/internal/core/ports/driven"
)

const analystFile = "analyst_instructions.txt"

func TestPromptStore_ImplementsInterface(t *testing.T) {
	var _ driven.PromptStore = (*PromptStore)(nil)
}

func TestNewPromptStore_Dirs(t *testing.T) {
	dir := t.TempDir()
	assert.Equal(t, dir, NewPromptStore(dir).Dir())
	assert.Equal(t, DefaultPromptDir, NewPromptStore("").Dir())
}

func TestPromptStore_Load_CreatesDefaultFiles(t *testing.T) {
	dir := t.TempDir()
	store := NewPromptStore(dir)

	_, err := store.Load(driven.PromptAnalystInstructions)
	require.NoError(t, err)

	for _, f := range []string{analystFile, "README.md"} {
		assert.FileExists(t, filepath.Join(dir, f))
	}
}

func TestPromptStore_Load_ReturnsDefaultContent(t *testing.T) {
	store := NewPromptStore(t.TempDir())

	prompt, err := store.Load(driven.PromptAnalystInstructions)

	require.NoError(t, err)
	assert.Contains(t, prompt, "saturación teórica")
	assert.Contains(t, prompt, "Necesidades de información")
	assert.Contains(t, prompt, "Necesidades de comunicación")
}

func TestPromptStore_Load_ReturnsCustomContent(t *testing.T) {
	dir := t.TempDir()
	custom := "Analyse each fragment for unmet information needs."
	require.NoError(t, os.WriteFile(filepath.Join(dir, analystFile), []byte(custom), 0600))

	prompt, err := NewPromptStore(dir).Load(driven.PromptAnalystInstructions)

	require.NoError(t, err)
	assert.Equal(t, custom, prompt)
}

func TestPromptStore_Load_FallsBackToDefault(t *testing.T) {
	dir := t.TempDir()
	store := NewPromptStore(dir)

	_, _ = store.Load(driven.PromptAnalystInstructions)
	require.NoError(t, os.Remove(filepath.Join(dir, analystFile)))
	store.Reload()

	prompt, err := store.Load(driven.PromptAnalystInstructions)

	require.NoError(t, err)
	assert.Contains(t, prompt, "saturación teórica")
}

func TestPromptStore_Load_UnknownPrompt(t *testing.T) {
	store := NewPromptStore(t.TempDir())

	_, err := store.Load("nonexistent_prompt")

	assert.ErrorContains(t, err, "nonexistent_prompt")
}

func TestPromptStore_Load_InitFailureUsesDefaults(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0600))

	// A regular file where the directory should be makes init fail.
	store := NewPromptStore(filepath.Join(blocker, "prompts"))

	prompt, err := store.Load(driven.PromptAnalystInstructions)
	require.NoError(t, err)
	assert.Contains(t, prompt, "saturación teórica")

	_, err = store.Load("other")
	assert.ErrorContains(t, err, "init failed")
}

func TestPromptStore_Load_CachesResults(t *testing.T) {
	dir := t.TempDir()
	store := NewPromptStore(dir)

	first, err := store.Load(driven.PromptAnalystInstructions)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, analystFile), []byte("modified"), 0600))

	second, err := store.Load(driven.PromptAnalystInstructions)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestPromptStore_Reload_ClearsCache(t *testing.T) {
	dir := t.TempDir()
	store := NewPromptStore(dir)

	_, err := store.Load(driven.PromptAnalystInstructions)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, analystFile), []byte("modified"), 0600))
	store.Reload()

	prompt, err := store.Load(driven.PromptAnalystInstructions)
	require.NoError(t, err)
	assert.Equal(t, "modified", prompt)
}

func TestPromptStore_Load_ConcurrentAccess(t *testing.T) {
	store := NewPromptStore(t.TempDir())

	const goroutines = 50
	var wg sync.WaitGroup
	results := make([]string, goroutines)

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			prompt, err := store.Load(driven.PromptAnalystInstructions)
			assert.NoError(t, err)
			results[i] = prompt
		}(i)
	}
	wg.Wait()

	for _, r := range results[1:] {
		assert.Equal(t, results[0], r)
	}
}

func TestPromptStore_DoesNotOverwriteExistingFiles(t *testing.T) {
	dir := t.TempDir()
	custom := "pre-existing custom prompt"
	require.NoError(t, os.WriteFile(filepath.Join(dir, analystFile), []byte(custom), 0600))

	_, _ = NewPromptStore(dir).Load("anything")

	data, err := os.ReadFile(filepath.Join(dir, analystFile))
	require.NoError(t, err)
	assert.Equal(t, custom, string(data))
}

func TestPromptStore_TrimsWhitespace(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, analystFile), []byte("\n\n  prompt content  \n\n"), 0600))

	prompt, err := NewPromptStore(dir).Load(driven.PromptAnalystInstructions)

	require.NoError(t, err)
	assert.Equal(t, "prompt content", prompt)
}
