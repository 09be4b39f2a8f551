package workspace

import (
	"fmt"
	"os"
	"path/filepath"
)

// Workspace holds the temporary files for a single conversion
type Workspace struct {
	Dir string
}

// Create makes an isolated workspace in the system temp directory
func Create() (*Workspace, error) {
	dir, err := os.MkdirTemp("", "pitch2midi-*")
	if err != nil {
		return nil, fmt.Errorf("create workspace: %w", err)
	}
	return &Workspace{Dir: dir}, nil
}

// NotesJSON is where the inference script drops its note output
func (w *Workspace) NotesJSON() string {
	return filepath.Join(w.Dir, "notes.json")
}

// Cleanup removes the workspace directory and all contents
func (w *Workspace) Cleanup() error {
	return os.RemoveAll(w.Dir)
}
