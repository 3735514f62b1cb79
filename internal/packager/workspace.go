package packager

import (
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/bware/jimpl/internal/errors"
	"github.com/bware/jimpl/internal/utils"
)

// Workspace is the scoped temporary working directory for a compile-and-
// package run. It lives next to the jar so the two stay on one filesystem,
// and is removed recursively on every exit path.
type Workspace struct {
	Dir string
}

// NewWorkspace creates a uniquely named working directory under parent.
func NewWorkspace(parent string) (*Workspace, error) {
	dir := filepath.Join(parent, "jimpl-"+uuid.NewString())
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.WrapFileSystemError("create working directory", dir, err)
	}
	return &Workspace{Dir: dir}, nil
}

// Cleanup removes the working directory and everything under it. A cleanup
// failure is reported but never overrides the outcome of the run.
func (w *Workspace) Cleanup(diagnostics *utils.DiagnosticSystem) {
	if err := os.RemoveAll(w.Dir); err != nil {
		diagnostics.Warn("failed to delete temporary directory '%s': %v", w.Dir, err)
	}
}
