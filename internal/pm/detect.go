package pm

import (
	"context"
	"strings"

	"github.com/create-react-tw/create-react-tw/internal/runner"
)

// Tool is the detected state of one executable.
type Tool struct {
	Name    string
	Found   bool
	Version string
}

// detectNames are the executables reported by Detect.
var detectNames = []string{"node", NPM.Name, Bun.Name, PNPM.Name, Yarn.Name}

// Detect probes node, npm and every alternate manager with --version.
func Detect(ctx context.Context, r runner.Runner) []Tool {
	tools := make([]Tool, 0, len(detectNames))
	for _, name := range detectNames {
		tools = append(tools, probe(ctx, r, name))
	}
	return tools
}

func probe(ctx context.Context, r runner.Runner, name string) Tool {
	out, err := r.Run(ctx, runner.Command{Name: name, Args: []string{"--version"}})
	if err != nil {
		return Tool{Name: name}
	}
	t := Tool{Name: name, Found: true, Version: strings.TrimSpace(out.Stdout)}
	if v, err := ParseVersion(out.Stdout); err == nil {
		t.Version = v.String()
	}
	return t
}
