package utils

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/bware/jimpl/internal/errors"
)

// FileSink writes generated text to derived locations, creating any missing
// directories. It is the only component that touches the filesystem during
// generation.
type FileSink struct{}

// NewFileSink creates a new file sink
func NewFileSink() *FileSink {
	return &FileSink{}
}

// TargetPath derives the location of a generated file: the output root,
// then the package name mapped to nested directories, then the file name.
// Parent directories are created on the way.
func (s *FileSink) TargetPath(root, packageName, fileName string) (string, error) {
	packageDir := strings.ReplaceAll(packageName, ".", string(os.PathSeparator))
	path := filepath.Join(root, packageDir, fileName)
	if err := EnsureParentDir(path); err != nil {
		return "", err
	}
	return path, nil
}

// Write stores the rendered text at the given path.
func (s *FileSink) Write(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return errors.WrapFileSystemError("write", path, err)
	}
	return nil
}

// EnsureParentDir creates the parent directories of path if they do not
// exist yet.
func EnsureParentDir(path string) error {
	parent := filepath.Dir(path)
	if parent == "" || parent == "." {
		return nil
	}
	if err := os.MkdirAll(parent, 0755); err != nil {
		return errors.WrapFileSystemError("create directories for", path, err)
	}
	return nil
}

// FileExists checks if a file exists
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
