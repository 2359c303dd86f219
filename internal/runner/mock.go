package runner

import (
	"context"
	"strings"
	"sync"
)

// HandlerFunc simulates one command. It may touch the filesystem (e.g. write
// package.json for "npm init") and returns the command's result.
type HandlerFunc func(c Command) (*Output, error)

// Mock implements Runner for testing. Commands are matched against
// registered handlers by command-line prefix; unmatched commands succeed
// with empty output.
type Mock struct {
	mu       sync.Mutex
	calls    []Command
	handlers []mockHandler
}

type mockHandler struct {
	prefix string
	fn     HandlerFunc
}

// NewMock creates an empty Mock.
func NewMock() *Mock {
	return &Mock{}
}

// Handle registers fn for every command whose String() starts with prefix.
// Later registrations take precedence.
func (m *Mock) Handle(prefix string, fn HandlerFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers = append(m.handlers, mockHandler{prefix: prefix, fn: fn})
}

// Fail makes every command starting with prefix return err.
func (m *Mock) Fail(prefix string, err error) {
	m.Handle(prefix, func(Command) (*Output, error) {
		return &Output{ExitCode: 1}, err
	})
}

// Run records c and dispatches it to the newest matching handler.
func (m *Mock) Run(_ context.Context, c Command) (*Output, error) {
	m.mu.Lock()
	m.calls = append(m.calls, c)
	var fn HandlerFunc
	line := c.String()
	for i := len(m.handlers) - 1; i >= 0; i-- {
		if strings.HasPrefix(line, m.handlers[i].prefix) {
			fn = m.handlers[i].fn
			break
		}
	}
	m.mu.Unlock()

	if fn == nil {
		return &Output{}, nil
	}
	return fn(c)
}

// Calls returns the recorded commands in invocation order.
func (m *Mock) Calls() []Command {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Command, len(m.calls))
	copy(out, m.calls)
	return out
}

// Lines returns the recorded command lines in invocation order.
func (m *Mock) Lines() []string {
	calls := m.Calls()
	out := make([]string, len(calls))
	for i, c := range calls {
		out[i] = c.String()
	}
	return out
}

// Index returns the position of the first recorded command equal to line, or -1.
func (m *Mock) Index(line string) int {
	for i, l := range m.Lines() {
		if l == line {
			return i
		}
	}
	return -1
}
