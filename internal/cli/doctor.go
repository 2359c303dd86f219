package cli

import (
	"fmt"
	"io"

	"github.com/Masterminds/semver/v3"
	"github.com/spf13/cobra"

	"github.com/create-react-tw/create-react-tw/internal/config"
	"github.com/create-react-tw/create-react-tw/internal/pm"
	"github.com/create-react-tw/create-react-tw/internal/runner"
)

// nodeConstraint is the Node.js range supported by the generated toolchain.
var nodeConstraint = mustConstraint(">= 18.0.0")

func mustConstraint(s string) *semver.Constraints {
	c, err := semver.NewConstraint(s)
	if err != nil {
		panic(err)
	}
	return c
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the tools needed to create a project",
	Long:  `Report which of node, npm and the alternate package managers are installed, and show the effective settings.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		r := commandRunner
		if r == nil {
			r = &runner.ExecRunner{}
		}
		w := cmd.OutOrStdout()
		runToolCheck(w, pm.Detect(cmd.Context(), r))
		runConfigCheck(w)
		return nil
	},
}

func runToolCheck(w io.Writer, tools []pm.Tool) {
	fmt.Fprintln(w, headerStyle.Render("Tools:"))
	installer := config.Get(config.KeyInstaller)
	for _, t := range tools {
		if !t.Found {
			switch {
			case t.Name == "node" || t.Name == pm.NPM.Name:
				fmt.Fprintf(w, "  %s %s not found (required)\n", missMarker, t.Name)
			case t.Name == installer:
				fmt.Fprintf(w, "  %s %s not found (will be installed with npm on first use)\n", missMarker, t.Name)
			default:
				fmt.Fprintf(w, "  %s %s not found\n", missMarker, t.Name)
			}
			continue
		}

		if t.Name == "node" {
			if v, err := semver.NewVersion(t.Version); err == nil && !nodeConstraint.Check(v) {
				fmt.Fprintf(w, "  %s node %s is older than the supported %s\n", warnMarker, t.Version, nodeConstraint)
				continue
			}
		}
		fmt.Fprintf(w, "  %s %s %s\n", okMarker, t.Name, t.Version)
	}
}

func runConfigCheck(w io.Writer) {
	fmt.Fprintln(w, headerStyle.Render("Settings:"))
	fmt.Fprintf(w, "  file: %s\n", config.FilePath())
	for _, key := range config.Keys() {
		fmt.Fprintf(w, "  %s: %s\n", key, config.Get(key))
	}
}
