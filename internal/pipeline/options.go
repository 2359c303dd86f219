package pipeline

import (
	"io"

	"github.com/create-react-tw/create-react-tw/internal/pkgjson"
	"github.com/create-react-tw/create-react-tw/internal/pm"
	"github.com/create-react-tw/create-react-tw/internal/runner"
	"github.com/create-react-tw/create-react-tw/internal/scaffold"
)

// Options selects the behavior of a pipeline run.
type Options struct {
	// MergeDependencies keeps dependencies written by npm init that do not
	// collide with the fixed set. When false the fixed set replaces them.
	MergeDependencies bool
	Directives        scaffold.DirectiveSet
	// Alternate installs dependencies instead of npm; nil means npm.
	Alternate       *pm.Manager
	MigrateLockfile bool
	SkipInstall     bool
	LaunchDevServer bool
	// Verbose prints the manifest diff after package.json is rewritten.
	Verbose bool

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Runner executes external commands. Defaults to an ExecRunner wired to
	// the streams above.
	Runner runner.Runner

	// Confirm is asked before scaffolding into a non-empty current
	// directory. Nil means proceed.
	Confirm func(dir string) (bool, error)
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	bun := pm.Bun
	return Options{
		MergeDependencies: true,
		Directives:        scaffold.DirectivesStandard,
		Alternate:         &bun,
		MigrateLockfile:   true,
	}
}

func (o *Options) mode() pkgjson.Mode {
	if o.MergeDependencies {
		return pkgjson.ModeMerge
	}
	return pkgjson.ModeReplace
}

func (o *Options) stdout() io.Writer {
	if o.Stdout == nil {
		return io.Discard
	}
	return o.Stdout
}

func (o *Options) runner() runner.Runner {
	if o.Runner != nil {
		return o.Runner
	}
	return &runner.ExecRunner{Stdin: o.Stdin, Stdout: o.Stdout, Stderr: o.Stderr}
}
