package pipeline

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/create-react-tw/create-react-tw/internal/project"
	"github.com/create-react-tw/create-react-tw/internal/runner"
	"github.com/create-react-tw/create-react-tw/internal/scaffold"
)

// Stage names a pipeline step.
type Stage string

const (
	StageResolve   Stage = "resolve"
	StageCreate    Stage = "create"
	StageManifest  Stage = "manifest"
	StageTemplates Stage = "templates"
	StageInstall   Stage = "install"
	StageDev       Stage = "dev"
)

// Kind classifies a stage failure.
type Kind string

const (
	// KindPrecondition means the run was refused before doing any work.
	KindPrecondition Kind = "precondition"
	// KindProcess means an external command was missing or exited non-zero.
	KindProcess Kind = "process"
	// KindFilesystem means creating, reading, writing or removing a path failed.
	KindFilesystem Kind = "filesystem"
)

// ErrDeclined is returned when the user does not confirm scaffolding into
// a non-empty current directory.
var ErrDeclined = errors.New("aborted: current directory is not empty")

// StageError wraps the error that stopped the pipeline.
type StageError struct {
	Stage Stage
	Kind  Kind
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s (%s): %v", e.Stage, e.Kind, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// fail wraps err for stage, classifying it by what is in its chain.
func fail(stage Stage, fallback Kind, err error) *StageError {
	return &StageError{Stage: stage, Kind: classify(err, fallback), Err: err}
}

func classify(err error, fallback Kind) Kind {
	var exitErr *runner.ExitError
	var pathErr *fs.PathError
	switch {
	case errors.Is(err, project.ErrTargetExists),
		errors.Is(err, scaffold.ErrConflict),
		errors.Is(err, ErrDeclined):
		return KindPrecondition
	case errors.As(err, &exitErr), errors.Is(err, runner.ErrNotFound):
		return KindProcess
	case errors.As(err, &pathErr):
		return KindFilesystem
	}
	return fallback
}
