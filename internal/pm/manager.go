package pm

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/create-react-tw/create-react-tw/internal/runner"
)

// Manager describes one package manager CLI.
type Manager struct {
	Name      string   // executable name
	Package   string   // npm package providing the executable
	Lockfiles []string // lockfile names it may write, newest format first
}

var (
	// NPM is the primary package manager.
	NPM = Manager{Name: "npm", Package: "npm", Lockfiles: []string{"package-lock.json"}}
	// Bun switched from the binary bun.lockb to the text bun.lock in 1.2.
	Bun  = Manager{Name: "bun", Package: "bun", Lockfiles: []string{"bun.lock", "bun.lockb"}}
	PNPM = Manager{Name: "pnpm", Package: "pnpm", Lockfiles: []string{"pnpm-lock.yaml"}}
	Yarn = Manager{Name: "yarn", Package: "yarn", Lockfiles: []string{"yarn.lock"}}
)

// bunTextLockfile is the first bun release writing bun.lock by default.
var bunTextLockfile = semver.MustParse("1.2.0")

// Alternates lists the managers selectable for dependency installation.
var Alternates = []Manager{Bun, PNPM, Yarn}

// ParseAlternate maps a config or flag value to an alternate manager.
// "none" and "npm" select npm itself, returned as nil.
func ParseAlternate(s string) (*Manager, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	switch name {
	case "none", "npm":
		return nil, nil
	case "":
		m := Bun
		return &m, nil
	}
	for _, m := range Alternates {
		if m.Name == name {
			return &m, nil
		}
	}
	return nil, fmt.Errorf("unknown installer %q: must be one of bun, pnpm, yarn, none", s)
}

// InitCommand creates a default package.json.
func InitCommand() runner.Command {
	return runner.Command{Name: NPM.Name, Args: []string{"init", "--yes"}}
}

// VersionCommand probes whether the manager is installed.
func (m Manager) VersionCommand() runner.Command {
	return runner.Command{Name: m.Name, Args: []string{"--version"}}
}

// InstallCommand installs the project's dependencies in dir.
func (m Manager) InstallCommand(dir string) runner.Command {
	return runner.Command{Dir: dir, Name: m.Name, Args: []string{"install"}, Mode: runner.Streamed}
}

// GlobalInstallCommand installs m through npm.
func (m Manager) GlobalInstallCommand() runner.Command {
	return runner.Command{Name: NPM.Name, Args: []string{"install", "-g", m.Package}, Mode: runner.Streamed}
}

// LockfileOnlyCommand regenerates package-lock.json without touching node_modules.
func LockfileOnlyCommand(dir string) runner.Command {
	return runner.Command{Dir: dir, Name: NPM.Name, Args: []string{"install", "--package-lock-only"}, Mode: runner.Streamed}
}

// RunScriptCommand runs a manifest script attached to the terminal.
func RunScriptCommand(dir, script string) runner.Command {
	return runner.Command{Dir: dir, Name: NPM.Name, Args: []string{"run", script}, Mode: runner.Attached}
}

// LockfileCandidates returns the lockfile names to look for after an
// install, the one matching version first. An unknown version keeps the
// declared order.
func (m Manager) LockfileCandidates(version *semver.Version) []string {
	out := append([]string(nil), m.Lockfiles...)
	if m.Name == Bun.Name && version != nil && version.LessThan(bunTextLockfile) {
		out[0], out[1] = out[1], out[0]
	}
	return out
}

// ParseVersion parses the output of a --version command.
func ParseVersion(out string) (*semver.Version, error) {
	s := strings.TrimSpace(out)
	if i := strings.IndexAny(s, "\r\n"); i >= 0 {
		s = s[:i]
	}
	return semver.NewVersion(strings.TrimPrefix(s, "v"))
}
