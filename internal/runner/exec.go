package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/create-react-tw/create-react-tw/internal/ctxlog"
)

// ExecRunner runs commands with os/exec.
type ExecRunner struct {
	// Stdin, Stdout and Stderr can be set for testing; default to the process streams.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Run executes cmd and waits for it to finish. A missing executable yields
// an error wrapping ErrNotFound; a non-zero exit yields an *ExitError along
// with the captured Output.
func (r *ExecRunner) Run(ctx context.Context, c Command) (*Output, error) {
	bin, err := exec.LookPath(c.Name)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", c.Name, ErrNotFound)
	}

	ctxlog.FromContext(ctx).Debug("running command", "cmd", c.String(), "dir", c.Dir)

	cmd := exec.CommandContext(ctx, bin, c.Args...)
	cmd.Dir = c.Dir

	var stdoutBuf, stderrBuf bytes.Buffer
	switch c.Mode {
	case Attached:
		cmd.Stdin = r.stdin()
		cmd.Stdout = r.stdout()
		cmd.Stderr = r.stderr()
	case Streamed:
		cmd.Stdout = io.MultiWriter(r.stdout(), &stdoutBuf)
		cmd.Stderr = io.MultiWriter(r.stderr(), &stderrBuf)
	default:
		cmd.Stdout = &stdoutBuf
		cmd.Stderr = &stderrBuf
	}

	err = cmd.Run()

	output := &Output{
		Stdout: stdoutBuf.String(),
		Stderr: stderrBuf.String(),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			output.ExitCode = exitErr.ExitCode()
			return output, &ExitError{Command: c.String(), Code: output.ExitCode, Stderr: output.Stderr}
		}
		return output, fmt.Errorf("running %s: %w", c.String(), err)
	}

	return output, nil
}

func (r *ExecRunner) stdin() io.Reader {
	if r.Stdin != nil {
		return r.Stdin
	}
	return os.Stdin
}

func (r *ExecRunner) stdout() io.Writer {
	if r.Stdout != nil {
		return r.Stdout
	}
	return os.Stdout
}

func (r *ExecRunner) stderr() io.Writer {
	if r.Stderr != nil {
		return r.Stderr
	}
	return os.Stderr
}
