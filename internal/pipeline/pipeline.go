package pipeline

import (
	"context"
	"fmt"

	"github.com/create-react-tw/create-react-tw/internal/ctxlog"
	"github.com/create-react-tw/create-react-tw/internal/pkgjson"
	"github.com/create-react-tw/create-react-tw/internal/pm"
	"github.com/create-react-tw/create-react-tw/internal/project"
	"github.com/create-react-tw/create-react-tw/internal/scaffold"
)

// Report describes a completed run.
type Report struct {
	Target    *project.Target
	Manifest  *pkgjson.Result
	Scaffold  *scaffold.Result
	Install   *pm.InstallResult // nil when installation was skipped
	DevServer bool              // true if the dev server ran
	Warnings  []string
}

// Run creates a project named name under cwd. An empty name scaffolds
// into cwd itself.
func Run(ctx context.Context, opts Options, cwd, name string) (*Report, error) {
	log := ctxlog.FromContext(ctx)
	out := opts.stdout()
	r := opts.runner()

	target, err := project.Resolve(cwd, name)
	if err != nil {
		return nil, fail(StageResolve, KindFilesystem, err)
	}
	log.Debug("target resolved", "path", target.Path, "in_place", target.InPlace)

	if target.InPlace && opts.Confirm != nil {
		empty, err := target.IsEmpty()
		if err != nil {
			return nil, fail(StageResolve, KindFilesystem, err)
		}
		if !empty {
			ok, err := opts.Confirm(target.Path)
			if err != nil {
				return nil, fail(StageResolve, KindPrecondition, err)
			}
			if !ok {
				return nil, fail(StageResolve, KindPrecondition, ErrDeclined)
			}
		}
	}

	// Template conflicts are checked before anything is written so a taken
	// destination never leaves a half-built project behind.
	if err := scaffold.Preflight(target.Path); err != nil {
		return nil, fail(StageResolve, KindPrecondition, err)
	}

	report := &Report{Target: target}
	fmt.Fprintf(out, "Creating project in: %s\n", target.Path)

	if err := target.Create(); err != nil {
		return nil, fail(StageCreate, KindFilesystem, err)
	}

	fields := pkgjson.Fixed()
	manifest, err := pkgjson.Generate(ctx, r, pm.InitCommand(), target.Path, fields, opts.mode())
	if err != nil {
		return nil, fail(StageManifest, KindFilesystem, err)
	}
	report.Manifest = manifest
	report.Warnings = append(report.Warnings, manifest.Warnings...)
	if opts.Verbose {
		if d := pkgjson.Diff(manifest.Before, manifest.After); d != "" {
			fmt.Fprint(out, d)
		}
	}

	data, err := scaffold.NewScaffoldData(opts.Directives, fields)
	if err != nil {
		return nil, fail(StageTemplates, KindFilesystem, err)
	}
	files, err := scaffold.Generate(data, target.Path)
	if err != nil {
		return nil, fail(StageTemplates, KindFilesystem, err)
	}
	report.Scaffold = files
	report.Warnings = append(report.Warnings, files.Warnings...)

	if opts.SkipInstall {
		log.Debug("install skipped")
	} else {
		inst := &pm.Installer{
			Runner:          r,
			Alternate:       opts.Alternate,
			MigrateLockfile: opts.MigrateLockfile,
			Out:             out,
		}
		res, err := inst.Install(ctx, target.Path)
		if err != nil {
			return nil, fail(StageInstall, KindProcess, err)
		}
		report.Install = res
		report.Warnings = append(report.Warnings, res.Warnings...)
	}

	if !opts.LaunchDevServer {
		return report, nil
	}

	fmt.Fprintf(out, "\nDone. Now:\n\n  Starting Dev Server...\n")
	report.DevServer = true
	if err := pm.RunDev(ctx, r, target.Path); err != nil {
		return report, fail(StageDev, KindProcess, err)
	}
	return report, nil
}
