package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/create-react-tw/create-react-tw/internal/config"
	"github.com/create-react-tw/create-react-tw/internal/pipeline"
	"github.com/create-react-tw/create-react-tw/internal/pm"
	"github.com/create-react-tw/create-react-tw/internal/runner"
	"github.com/create-react-tw/create-react-tw/internal/scaffold"
)

// commandRunner overrides the runner used by the pipeline; nil runs real
// processes.
var commandRunner runner.Runner

func runCreate(cmd *cobra.Command, args []string) error {
	opts, err := resolveOptions(cmd)
	if err != nil {
		return err
	}

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("resolving working directory: %w", err)
	}
	var name string
	if len(args) == 1 {
		name = args[0]
	}

	report, err := pipeline.Run(cmd.Context(), opts, cwd, name)
	if err != nil {
		return err
	}
	if !report.DevServer {
		printReport(cmd.OutOrStdout(), report, cwd)
	}
	return nil
}

// resolveOptions builds pipeline options from flags and configuration.
func resolveOptions(cmd *cobra.Command) (pipeline.Options, error) {
	opts := pipeline.Options{
		Stdin:   cmd.InOrStdin(),
		Stdout:  cmd.OutOrStdout(),
		Stderr:  cmd.ErrOrStderr(),
		Runner:  commandRunner,
		Verbose: verbose,
	}

	// --merge-deps=false or --replace-deps=false express no preference, so
	// the configured mode applies.
	flags := cmd.Flags()
	replace, err := flags.GetBool("replace-deps")
	if err != nil {
		return opts, err
	}
	merge, err := flags.GetBool("merge-deps")
	if err != nil {
		return opts, err
	}
	switch {
	case replace:
		opts.MergeDependencies = false
	case merge:
		opts.MergeDependencies = true
	default:
		switch mode := config.Get(config.KeyDependencyMode); mode {
		case "merge", "":
			opts.MergeDependencies = true
		case "replace":
			opts.MergeDependencies = false
		default:
			return opts, fmt.Errorf("invalid %s %q: must be merge or replace", config.KeyDependencyMode, mode)
		}
	}

	directives, err := scaffold.ParseDirectiveSet(config.Get(config.KeyDirectives))
	if err != nil {
		return opts, err
	}
	opts.Directives = directives

	alt, err := pm.ParseAlternate(config.Get(config.KeyInstaller))
	if err != nil {
		return opts, err
	}
	opts.Alternate = alt

	opts.MigrateLockfile = config.GetBool(config.KeyMigrateLockfile)
	opts.SkipInstall = config.GetBool(config.KeySkipInstall)
	opts.LaunchDevServer = config.GetBool(config.KeyLaunchDevServer)

	if !assumeYes && isTerminal(os.Stdin) && isTerminal(os.Stdout) {
		opts.Confirm = confirmInPlace
	}
	return opts, nil
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// confirmInPlace asks before scaffolding into a non-empty directory.
// Aborting the prompt counts as declining.
func confirmInPlace(dir string) (bool, error) {
	ok := false
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("%s is not empty. Create the project here anyway?", dir)).
				Description("Existing files are kept; any template file already present stops the run.").
				Affirmative("Yes").
				Negative("No").
				Value(&ok),
		),
	)
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, err
	}
	return ok, nil
}

func printReport(w io.Writer, report *pipeline.Report, cwd string) {
	target := report.Target
	fmt.Fprintf(w, "\n%s Created %s at %s\n", okMarker, target.DisplayName(), target.Path)
	if report.Scaffold != nil {
		for _, f := range report.Scaffold.Files {
			fmt.Fprintf(w, "  %s\n", f)
		}
	}
	if report.Install != nil {
		fmt.Fprintf(w, "%s Dependencies installed with %s\n", okMarker, report.Install.Manager)
	}
	for _, warning := range report.Warnings {
		fmt.Fprintf(w, "%s %s\n", warnMarker, warning)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, headerStyle.Render("Next steps:"))
	if !target.InPlace {
		dir, err := filepath.Rel(cwd, target.Path)
		if err != nil {
			dir = target.Path
		}
		fmt.Fprintf(w, "  cd %s\n", dir)
	}
	if report.Install == nil {
		fmt.Fprintln(w, "  npm install")
	}
	fmt.Fprintln(w, "  npm run dev")
}
