package runner

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Mode controls how a command's standard streams are wired.
type Mode int

const (
	// Captured collects stdout/stderr into the Output without echoing them.
	Captured Mode = iota
	// Streamed echoes stdout/stderr to the runner's writers while capturing them.
	Streamed
	// Attached hands the terminal (stdin/stdout/stderr) to the child process.
	Attached
)

// Command describes one external process invocation.
type Command struct {
	Dir  string // working directory; the process cwd is never changed
	Name string
	Args []string
	Mode Mode
}

// String renders the command line for logs and error messages.
func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	return c.Name + " " + strings.Join(c.Args, " ")
}

// Output captures the result of a command execution.
type Output struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Runner runs external commands.
type Runner interface {
	Run(ctx context.Context, cmd Command) (*Output, error)
}

// ErrNotFound is returned when the command's executable is not on PATH.
var ErrNotFound = errors.New("executable not found")

// ExitError reports a command that ran but exited non-zero.
type ExitError struct {
	Command string
	Code    int
	Stderr  string
}

func (e *ExitError) Error() string {
	msg := fmt.Sprintf("%s exited with code %d", e.Command, e.Code)
	if s := strings.TrimSpace(e.Stderr); s != "" {
		msg += ": " + lastLine(s)
	}
	return msg
}

// lastLine returns the final non-empty line of s, which for npm and bun
// is usually the most specific part of the failure.
func lastLine(s string) string {
	lines := strings.Split(s, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if l := strings.TrimSpace(lines[i]); l != "" {
			return l
		}
	}
	return ""
}
