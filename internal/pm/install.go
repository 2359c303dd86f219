package pm

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/create-react-tw/create-react-tw/internal/ctxlog"
	"github.com/create-react-tw/create-react-tw/internal/runner"
)

// Installer installs a scaffolded project's dependencies.
type Installer struct {
	Runner runner.Runner
	// Alternate is the manager used for installation; nil means npm.
	Alternate *Manager
	// MigrateLockfile replaces the alternate's lockfile with package-lock.json.
	MigrateLockfile bool
	// Out receives progress messages; defaults to io.Discard.
	Out io.Writer
}

// InstallResult describes what the installer did.
type InstallResult struct {
	Manager           string
	Version           string // empty if unknown
	GloballyInstalled bool
	LockfileRemoved   string // lockfile deleted during migration, if any
	Warnings          []string
}

// Install runs the dependency install inside dir. With an alternate
// manager it first probes "<alt> --version"; when that fails the alternate
// is installed globally through npm before "<alt> install" runs.
func (i *Installer) Install(ctx context.Context, dir string) (*InstallResult, error) {
	if i.Alternate == nil {
		i.printf("Running 'npm install'...\n")
		if _, err := i.Runner.Run(ctx, NPM.InstallCommand(dir)); err != nil {
			return nil, fmt.Errorf("installing dependencies: %w", err)
		}
		return &InstallResult{Manager: NPM.Name}, nil
	}

	alt := *i.Alternate
	result := &InstallResult{Manager: alt.Name}
	log := ctxlog.FromContext(ctx)

	out, err := i.Runner.Run(ctx, alt.VersionCommand())
	if err == nil {
		result.Version = versionString(out)
		i.printf("%s is already installed. Running '%s install'...\n", alt.Name, alt.Name)
	} else {
		log.Debug("alternate manager not available", "manager", alt.Name, "err", err)
		i.printf("%s is not installed. Installing %s...(This is one time process)\n", alt.Name, alt.Name)
		if _, err := i.Runner.Run(ctx, alt.GlobalInstallCommand()); err != nil {
			return nil, fmt.Errorf("installing %s globally: %w", alt.Name, err)
		}
		result.GloballyInstalled = true
		i.printf("%s installed successfully. Running '%s install'...\n", alt.Name, alt.Name)

		if out, err := i.Runner.Run(ctx, alt.VersionCommand()); err == nil {
			result.Version = versionString(out)
		}
	}

	if _, err := i.Runner.Run(ctx, alt.InstallCommand(dir)); err != nil {
		return nil, fmt.Errorf("installing dependencies with %s: %w", alt.Name, err)
	}

	if i.MigrateLockfile {
		if err := i.migrateLockfile(ctx, alt, dir, result); err != nil {
			return nil, err
		}
	}

	return result, nil
}

// migrateLockfile deletes the alternate's lockfile and regenerates
// package-lock.json. A missing lockfile skips the step with a warning.
func (i *Installer) migrateLockfile(ctx context.Context, alt Manager, dir string, result *InstallResult) error {
	version, _ := ParseVersion(result.Version)

	var found string
	for _, name := range alt.LockfileCandidates(version) {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			found = name
			break
		} else if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("checking %s: %w", name, err)
		}
	}

	if found == "" {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("No %s lockfile found; skipped package-lock.json regeneration", alt.Name))
		return nil
	}

	i.printf("Deleting %s...\n", found)
	if err := os.Remove(filepath.Join(dir, found)); err != nil {
		return fmt.Errorf("removing %s: %w", found, err)
	}
	result.LockfileRemoved = found

	i.printf("Creating %s...\n", NPM.Lockfiles[0])
	if _, err := i.Runner.Run(ctx, LockfileOnlyCommand(dir)); err != nil {
		return fmt.Errorf("regenerating %s: %w", NPM.Lockfiles[0], err)
	}
	return nil
}

func (i *Installer) printf(format string, args ...any) {
	if i.Out == nil {
		return
	}
	fmt.Fprintf(i.Out, format, args...)
}

func versionString(out *runner.Output) string {
	if out == nil {
		return ""
	}
	if v, err := ParseVersion(out.Stdout); err == nil {
		return v.String()
	}
	return ""
}

// RunDev starts the dev script attached to the terminal and blocks until it
// exits. Stopping it through ctx (Ctrl-C) is not an error.
func RunDev(ctx context.Context, r runner.Runner, dir string) error {
	_, err := r.Run(ctx, RunScriptCommand(dir, "dev"))
	if err != nil && ctx.Err() != nil {
		return nil
	}
	if err != nil {
		return fmt.Errorf("starting dev server: %w", err)
	}
	return nil
}
