package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/create-react-tw/create-react-tw/internal/branding"
	"github.com/create-react-tw/create-react-tw/internal/config"
	"github.com/create-react-tw/create-react-tw/internal/ctxlog"
	"github.com/create-react-tw/create-react-tw/internal/pipeline"
	"github.com/create-react-tw/create-react-tw/internal/project"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var (
	verbose   bool
	assumeYes bool
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName() + " [project-name]",
	Short: branding.Description(),
	Long: heredoc.Docf(`
		%s creates a React project built with Vite and styled with Tailwind CSS.

		With a project name, a new directory of that name is created in the
		current directory and must not already exist. Without one, the project
		is scaffolded into the current directory.

		Flags override environment variables (%s and the like, one per
		config key), which override ~/%s/config.yaml.
	`, branding.DisplayName(), branding.EnvVar(config.KeyInstaller), branding.HomeDir()),
	Example: heredoc.Docf(`
		%[1]s my-app
		%[1]s my-app --installer pnpm --dev
		%[1]s --replace-deps --directives extended
	`, branding.CLIName()),
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger := ctxlog.New(cmd.ErrOrStderr(), verbose)
		cmd.SetContext(ctxlog.WithLogger(cmd.Context(), logger))
		return config.Load()
	},
	RunE: runCreate,
}

func init() {
	flags := rootCmd.Flags()
	flags.Bool("merge-deps", false, "Keep dependencies written by npm init (default)")
	flags.Bool("replace-deps", false, "Replace dependencies written by npm init with the fixed set")
	rootCmd.MarkFlagsMutuallyExclusive("merge-deps", "replace-deps")

	flags.String("directives", "standard", "Tailwind directives for src/index.css: standard or extended")
	flags.String("installer", "bun", "Package manager for installing dependencies: bun, pnpm, yarn or none")
	flags.Bool("migrate-lockfile", true, "Replace the installer's lockfile with package-lock.json")
	flags.Bool("skip-install", false, "Do not install dependencies")
	flags.Bool("dev", false, "Start the dev server after scaffolding")
	flags.BoolVarP(&assumeYes, "yes", "y", false, "Do not ask before scaffolding into a non-empty directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log external commands and the package.json diff")

	bindFlag(config.KeyDirectives, "directives")
	bindFlag(config.KeyInstaller, "installer")
	bindFlag(config.KeyMigrateLockfile, "migrate-lockfile")
	bindFlag(config.KeySkipInstall, "skip-install")
	bindFlag(config.KeyLaunchDevServer, "dev")
}

func bindFlag(key, flag string) {
	if err := viper.BindPFlag(key, rootCmd.Flags().Lookup(flag)); err != nil {
		panic(fmt.Sprintf("binding --%s: %v", flag, err))
	}
}

// Execute runs the root command with build info injected via ldflags. The
// command context is cancelled on SIGINT or SIGTERM, which stops any
// running child process. Errors are printed to stderr before returning.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		printError(os.Stderr, err)
	}
	return err
}

// printError writes the single error line for err.
func printError(w io.Writer, err error) {
	fmt.Fprintln(w, errorStyle.Render(formatError(err)))
}

func formatError(err error) string {
	var exists *project.ExistsError
	if errors.As(err, &exists) {
		return fmt.Sprintf("Error: The folder '%s' already exists!", exists.Name)
	}
	var se *pipeline.StageError
	if errors.As(err, &se) {
		return fmt.Sprintf("Error (%s, %s): %v", se.Kind, se.Stage, se.Err)
	}
	return fmt.Sprintf("Error: %v", err)
}
