package file

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/ase-lab/saturate/internal/core/ports/driven"
)

// Ensure PromptStore implements the interface.
var _ driven.PromptStore = (*PromptStore)(nil)

// PromptStore loads agent prompts from user-editable files on disk.
// Prompts are loaded from a configurable directory with fallback to embedded defaults.
//
// The store uses lazy initialisation - files are only created when first accessed,
// not in the constructor. This makes testing easier and avoids unexpected I/O.
type PromptStore struct {
	mu        sync.RWMutex
	promptDir string
	cache     map[string]string
	initOnce  sync.Once
	initErr   error
}

// defaultPrompts contains embedded default prompts.
// These are used when user files don't exist and as the initial content for new files.
//
//nolint:lll // Prompt content is intentionally long and should not be wrapped.
var defaultPrompts = map[string]string{
	driven.PromptAnalystInstructions: `Rol:
Eres un experto en investigación cualitativa que estudia los daños y necesidades de la población posterior a sismos mediante el método de saturación teórica.

Objetivo:
Tu tarea es analizar una serie de textos sobre sismos en Puebla Capital utilizando el método cualitativo de saturación teórica y tu conocimiento acerca de las necesidades informativas y de comunicación que una población pueda generar posteriormente a estos eventos.

Instrucciones de análisis:
1. Mediante el método de saturación teórica elige un texto y utiliza como categorías semilla: "Necesidades de información" y "Necesidades de comunicación".
2. En cada texto que elijas, identifica las frases clave o un dato que impliquen una necesidad informativa, una necesidad de comunicación o de relevancia que ayuden a mantener informada y comunicada a la población mediante un sistema de información offline posterior a eventos sísmicos.
3. Aplica el método de saturación teórica: cuando se alcance la saturación teórica y los textos ya no arrojen frases, datos o implicaciones nuevas detén el análisis e indica: "Saturación teórica alcanzada en el texto [número total de textos revisados hasta alcanzar la saturación teórica]".
4. Por cada texto, devuelve el título del documento y genera un listado por texto de las frases o datos encontrados en cada uno y su implicación. Si dos frases implican la misma necesidad agrúpalas.
5. No incluyas citas, subtítulos ni explicaciones adicionales.`,
}

// DefaultPromptDir is the prompt directory used when none is given.
const DefaultPromptDir = "prompts"

// NewPromptStore creates a new file-based prompt store.
// If promptDir is empty, defaults to ./prompts.
//
// The constructor does not perform any I/O - directory creation and
// file writes happen lazily on first Load() call.
func NewPromptStore(promptDir string) *PromptStore {
	if promptDir == "" {
		promptDir = DefaultPromptDir
	}

	return &PromptStore{
		promptDir: promptDir,
		cache:     make(map[string]string),
	}
}

// Load returns the prompt template for the given name.
// On first call, initialises the prompt directory and creates default files.
// Returns cached value if available, otherwise loads from file.
// Falls back to embedded default if file doesn't exist.
func (s *PromptStore) Load(name string) (string, error) {
	// Ensure directory and defaults exist (lazy init)
	s.initOnce.Do(s.initialise)
	if s.initErr != nil {
		// Fall back to embedded defaults if init failed
		if prompt, ok := defaultPrompts[name]; ok {
			return prompt, nil
		}
		return "", fmt.Errorf("prompt store init failed: %w", s.initErr)
	}

	// Check cache first (read lock)
	s.mu.RLock()
	if prompt, ok := s.cache[name]; ok {
		s.mu.RUnlock()
		return prompt, nil
	}
	s.mu.RUnlock()

	// Load from file (no lock held during I/O)
	prompt, err := s.loadFromFile(name)
	if err != nil {
		// Fall back to embedded default
		if defaultPrompt, ok := defaultPrompts[name]; ok {
			return defaultPrompt, nil
		}
		return "", fmt.Errorf("load prompt %q: %w", name, err)
	}

	// Cache the result (write lock)
	// Use double-check pattern to avoid overwriting concurrent loads
	s.mu.Lock()
	if _, ok := s.cache[name]; !ok {
		s.cache[name] = prompt
	} else {
		// Another goroutine loaded it first, use their value
		prompt = s.cache[name]
	}
	s.mu.Unlock()

	return prompt, nil
}

// Reload clears the prompt cache, forcing fresh loads from disk.
func (s *PromptStore) Reload() {
	s.mu.Lock()
	s.cache = make(map[string]string)
	s.mu.Unlock()
}

// Dir returns the prompt directory path.
func (s *PromptStore) Dir() string {
	return s.promptDir
}

// initialise creates the prompt directory and default files.
// Called once via sync.Once on first Load().
func (s *PromptStore) initialise() {
	// Create directory
	if err := os.MkdirAll(s.promptDir, 0700); err != nil {
		s.initErr = fmt.Errorf("create prompt directory: %w", err)
		return
	}

	// Create default prompt files (only if they don't exist)
	for name, content := range defaultPrompts {
		path := filepath.Join(s.promptDir, name+".txt")
		if _, err := os.Stat(path); os.IsNotExist(err) {
			if err := os.WriteFile(path, []byte(content), 0600); err != nil {
				s.initErr = fmt.Errorf("create default prompt %q: %w", name, err)
				return
			}
		}
	}

	// Create README
	if err := s.createReadme(); err != nil {
		s.initErr = err
	}
}

// loadFromFile reads a prompt from disk.
func (s *PromptStore) loadFromFile(name string) (string, error) {
	path := filepath.Join(s.promptDir, name+".txt")
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// createReadme writes a README file explaining the prompts directory.
func (s *PromptStore) createReadme() error {
	path := filepath.Join(s.promptDir, "README.md")
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		return nil // Already exists or stat error (ignore)
	}

	content := `# Analysis Prompts

This directory holds the prompts sent to the analysis agent.

## Files

- ` + "`analyst_instructions.txt`" + ` - System instructions for the saturation analysis

## Customisation

Edit a file to change the agent's behaviour. Changes apply on the next batch run.
Delete a file to restore the built-in default on the next run.
`
	return os.WriteFile(path, []byte(content), 0600)
}
