package pkgjson

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/create-react-tw/create-react-tw/internal/ctxlog"
	"github.com/create-react-tw/create-react-tw/internal/runner"
)

// Result holds the outcome of manifest generation.
type Result struct {
	Path     string
	Before   []byte // as written by the init command
	After    []byte
	Warnings []string
}

// Generate runs initCmd in dir to create a baseline package.json, applies
// fields according to mode and writes the manifest back. Schema and version
// range problems are reported as warnings, not errors.
func Generate(ctx context.Context, r runner.Runner, initCmd runner.Command, dir string, fields Fields, mode Mode) (*Result, error) {
	initCmd.Dir = dir
	if _, err := r.Run(ctx, initCmd); err != nil {
		return nil, fmt.Errorf("creating manifest with %s: %w", initCmd.String(), err)
	}

	path := filepath.Join(dir, FileName)
	m, err := Load(path)
	if err != nil {
		return nil, err
	}
	before := append([]byte(nil), m.data...)

	if err := m.Apply(fields, mode); err != nil {
		return nil, fmt.Errorf("updating manifest: %w", err)
	}
	if err := m.Save(path); err != nil {
		return nil, err
	}

	result := &Result{Path: path, Before: before, After: m.Bytes()}

	ctxlog.FromContext(ctx).Debug("manifest rewritten", "path", path, "mode", string(mode))

	valResult, err := Validate(result.After)
	if err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Could not validate manifest: %v", err))
	} else if !valResult.Valid {
		for _, issue := range valResult.Issues {
			result.Warnings = append(result.Warnings, issue.String())
		}
	}
	for _, issue := range CheckRanges(fields) {
		result.Warnings = append(result.Warnings, issue.String())
	}

	return result, nil
}
