package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrTargetExists is returned when a named target directory is already present.
var ErrTargetExists = errors.New("target already exists")

// ExistsError reports a named target that is already on disk. It matches
// ErrTargetExists with errors.Is.
type ExistsError struct {
	Name string
	Path string
}

func (e *ExistsError) Error() string {
	return fmt.Sprintf("the folder '%s' already exists", e.Name)
}

// Is makes errors.Is(err, ErrTargetExists) hold.
func (e *ExistsError) Is(target error) bool {
	return target == ErrTargetExists
}

// Target is the resolved location of the project being created.
type Target struct {
	Name    string // as given on the command line; empty when in place
	Path    string // absolute path
	InPlace bool   // true when scaffolding into the current directory
}

// Resolve derives the target for name relative to cwd. An empty name (or
// one that cleans to ".") selects cwd itself and skips the existence check.
func Resolve(cwd, name string) (*Target, error) {
	name = strings.TrimSpace(name)

	base, err := filepath.Abs(cwd)
	if err != nil {
		return nil, fmt.Errorf("resolving working directory %s: %w", cwd, err)
	}

	if name == "" || filepath.Clean(name) == "." {
		return &Target{Path: base, InPlace: true}, nil
	}

	path := name
	if !filepath.IsAbs(path) {
		path = filepath.Join(base, name)
	}
	path = filepath.Clean(path)

	if path == base {
		return &Target{Name: name, Path: base, InPlace: true}, nil
	}

	if _, err := os.Lstat(path); err == nil {
		return nil, &ExistsError{Name: name, Path: path}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("checking %s: %w", path, err)
	}

	return &Target{Name: name, Path: path}, nil
}

// Create makes the target directory (recursively) unless scaffolding in place.
func (t *Target) Create() error {
	if t.InPlace {
		return nil
	}
	if err := os.MkdirAll(t.Path, 0755); err != nil {
		return fmt.Errorf("creating project directory %s: %w", t.Path, err)
	}
	return nil
}

// IsEmpty reports whether the target directory has no entries. A missing
// directory counts as empty.
func (t *Target) IsEmpty() (bool, error) {
	entries, err := os.ReadDir(t.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return true, nil
		}
		return false, fmt.Errorf("reading %s: %w", t.Path, err)
	}
	return len(entries) == 0, nil
}

// DisplayName is the name used in user-facing messages.
func (t *Target) DisplayName() string {
	if t.Name != "" {
		return t.Name
	}
	return filepath.Base(t.Path)
}
