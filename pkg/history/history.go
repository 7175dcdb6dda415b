// Package history is the caller-side store the engine's weight learning
// consumes: previously generated prompts, newest first, capped at the
// learning window. It also round-trips tuned weights between runs, since the
// core itself never performs I/O.
package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"promptforge/pkg/scoring"
)

// MaxPrompts caps the stored prompt list; it matches the learning window.
const MaxPrompts = 50

// Store persists prompts and tuned weights under a state directory.
type Store struct {
	dir string
}

// NewStore returns a store rooted at dir, typically ~/.promptforge.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// DefaultDir is the per-user state directory.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".promptforge"
	}
	return filepath.Join(home, ".promptforge")
}

func (s *Store) promptsPath() string { return filepath.Join(s.dir, "history.json") }
func (s *Store) weightsPath() string { return filepath.Join(s.dir, "weights.json") }

// Prompts returns stored prompts, newest first. A missing file is an empty
// history, not an error.
func (s *Store) Prompts() ([]string, error) {
	data, err := os.ReadFile(s.promptsPath())
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}
	var prompts []string
	if err := json.Unmarshal(data, &prompts); err != nil {
		return nil, fmt.Errorf("parse history %s: %w", s.promptsPath(), err)
	}
	return prompts, nil
}

// Add prepends a prompt and trims the list to MaxPrompts.
func (s *Store) Add(prompt string) error {
	prompts, err := s.Prompts()
	if err != nil {
		return err
	}
	prompts = append([]string{prompt}, prompts...)
	if len(prompts) > MaxPrompts {
		prompts = prompts[:MaxPrompts]
	}
	return s.writeJSON(s.promptsPath(), prompts)
}

// SaveWeights persists a tuned weight vector for the next run.
func (s *Store) SaveWeights(w scoring.Weights) error {
	return s.writeJSON(s.weightsPath(), w)
}

// LoadWeights returns the persisted vector, or nil when none exists.
func (s *Store) LoadWeights() (*scoring.Weights, error) {
	data, err := os.ReadFile(s.weightsPath())
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read weights: %w", err)
	}
	var w scoring.Weights
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("parse weights %s: %w", s.weightsPath(), err)
	}
	clamped := w.Clamped()
	return &clamped, nil
}

// ResetWeights removes the persisted vector.
func (s *Store) ResetWeights() error {
	err := os.Remove(s.weightsPath())
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (s *Store) writeJSON(path string, v any) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}
