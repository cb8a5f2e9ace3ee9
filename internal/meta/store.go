// Package meta persists session metadata as one JSON file per session
// name under a scratch directory.
//
// The store is a flat key-value layer with no locking: concurrent writers
// for the same name race and the last writer wins. Metadata is advisory —
// the multiplexer, not this file, is the source of truth for whether a
// session exists.
package meta

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// StoragePaths holds the directories the tool persists state under.
// Injected at construction so tests can isolate into a temp directory.
type StoragePaths struct {
	// ScratchDir holds per-session metadata files.
	ScratchDir string
	// ConfigDir holds one-time setup artifacts (command documentation).
	ConfigDir string
}

// DefaultPaths returns the conventional storage locations.
func DefaultPaths() StoragePaths {
	p := StoragePaths{ScratchDir: filepath.Join(os.TempDir(), "replmux")}
	if home, err := os.UserHomeDir(); err == nil {
		p.ConfigDir = filepath.Join(home, ".replmux")
	}
	return p
}

// Record is the persisted metadata for one named session.
type Record struct {
	SessionName string    `json:"session_name"`
	CreatedAt   time.Time `json:"created_at"`
	WorkingDir  string    `json:"working_dir"`
	Paused      bool      `json:"paused"`
	VenvPath    string    `json:"venv_path,omitempty"`
	Status      string    `json:"status"`
}

// Store reads and writes Records keyed by session name.
type Store struct {
	paths StoragePaths
}

// NewStore creates a store rooted at the given paths.
func NewStore(paths StoragePaths) *Store {
	return &Store{paths: paths}
}

// Path returns the metadata file path for the named session.
func (s *Store) Path(name string) string {
	return filepath.Join(s.paths.ScratchDir, name+".json")
}

// Save writes the record for the named session, creating the scratch
// directory if absent.
func (s *Store) Save(name string, rec Record) error {
	if err := os.MkdirAll(s.paths.ScratchDir, 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.Path(name), data, 0o644)
}

// Load reads the record for the named session. A missing file is a normal
// state and returns a zero Record with no error; an unreadable or
// malformed file degrades the same way, since metadata is advisory.
func (s *Store) Load(name string) Record {
	data, err := os.ReadFile(s.Path(name))
	if err != nil {
		return Record{}
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}
	}
	return rec
}

// Delete removes the record for the named session; no-op when absent.
func (s *Store) Delete(name string) error {
	err := os.Remove(s.Path(name))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
