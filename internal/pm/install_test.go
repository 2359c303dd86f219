package pm

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/create-react-tw/create-react-tw/internal/runner"
)

func TestInstall_AlternatePresent(t *testing.T) {
	dir := t.TempDir()
	mock := runner.NewMock()
	mock.Handle("bun --version", versionOutput("1.2.4\n"))
	mock.Handle("bun install", writeLockfile("bun.lock"))

	var out bytes.Buffer
	inst := &Installer{Runner: mock, Alternate: &Bun, MigrateLockfile: true, Out: &out}
	res, err := inst.Install(context.Background(), dir)
	if err != nil {
		t.Fatalf("Install error: %v", err)
	}

	if mock.Index("npm install -g bun") != -1 {
		t.Error("global install must not run when bun is present")
	}
	assertOrder(t, mock, "bun --version", "bun install", "npm install --package-lock-only")

	if res.GloballyInstalled {
		t.Error("GloballyInstalled should be false")
	}
	if res.Version != "1.2.4" {
		t.Errorf("Version = %q, want 1.2.4", res.Version)
	}
	if res.LockfileRemoved != "bun.lock" {
		t.Errorf("LockfileRemoved = %q, want bun.lock", res.LockfileRemoved)
	}
	if _, err := os.Stat(filepath.Join(dir, "bun.lock")); !os.IsNotExist(err) {
		t.Error("bun.lock should be deleted")
	}
	if !strings.Contains(out.String(), "bun is already installed") {
		t.Errorf("progress output = %q", out.String())
	}
}

func TestInstall_AlternateMissing(t *testing.T) {
	dir := t.TempDir()
	mock := runner.NewMock()
	mock.Fail("bun --version", runner.ErrNotFound)
	mock.Handle("npm install -g bun", func(runner.Command) (*runner.Output, error) {
		// Once installed, the version probe succeeds.
		mock.Handle("bun --version", versionOutput("1.1.0"))
		return &runner.Output{}, nil
	})
	mock.Handle("bun install", writeLockfile("bun.lockb"))

	inst := &Installer{Runner: mock, Alternate: &Bun, MigrateLockfile: true}
	res, err := inst.Install(context.Background(), dir)
	if err != nil {
		t.Fatalf("Install error: %v", err)
	}

	assertOrder(t, mock, "bun --version", "npm install -g bun", "bun install", "npm install --package-lock-only")
	if !res.GloballyInstalled {
		t.Error("GloballyInstalled should be true")
	}
	if res.LockfileRemoved != "bun.lockb" {
		t.Errorf("LockfileRemoved = %q, want bun.lockb", res.LockfileRemoved)
	}
}

func TestInstall_VersionCheckNonZeroExit(t *testing.T) {
	mock := runner.NewMock()
	mock.Fail("bun --version", &runner.ExitError{Command: "bun --version", Code: 1})

	inst := &Installer{Runner: mock, Alternate: &Bun}
	if _, err := inst.Install(context.Background(), t.TempDir()); err != nil {
		t.Fatalf("Install error: %v", err)
	}
	assertOrder(t, mock, "npm install -g bun", "bun install")
}

func TestInstall_GlobalInstallFails(t *testing.T) {
	mock := runner.NewMock()
	mock.Fail("bun --version", runner.ErrNotFound)
	mock.Fail("npm install -g bun", &runner.ExitError{Command: "npm install -g bun", Code: 243})

	inst := &Installer{Runner: mock, Alternate: &Bun}
	_, err := inst.Install(context.Background(), t.TempDir())

	var exitErr *runner.ExitError
	if !errors.As(err, &exitErr) || exitErr.Code != 243 {
		t.Fatalf("expected ExitError 243, got %v", err)
	}
	if mock.Index("bun install") != -1 {
		t.Error("bun install must not run after a failed global install")
	}
}

func TestInstall_MissingLockfileIsSkipped(t *testing.T) {
	mock := runner.NewMock()
	mock.Handle("bun --version", versionOutput("1.2.0"))

	inst := &Installer{Runner: mock, Alternate: &Bun, MigrateLockfile: true}
	res, err := inst.Install(context.Background(), t.TempDir())
	if err != nil {
		t.Fatalf("missing lockfile should not fail the install: %v", err)
	}
	if mock.Index("npm install --package-lock-only") != -1 {
		t.Error("lockfile regeneration should be skipped")
	}
	if len(res.Warnings) != 1 || !strings.Contains(res.Warnings[0], "No bun lockfile found") {
		t.Errorf("Warnings = %v", res.Warnings)
	}
}

func TestInstall_NoMigration(t *testing.T) {
	dir := t.TempDir()
	mock := runner.NewMock()
	mock.Handle("pnpm install", writeLockfile("pnpm-lock.yaml"))

	inst := &Installer{Runner: mock, Alternate: &PNPM}
	if _, err := inst.Install(context.Background(), dir); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(dir, "pnpm-lock.yaml")); err != nil {
		t.Error("lockfile must be kept when migration is disabled")
	}
	if mock.Index("npm install --package-lock-only") != -1 {
		t.Error("lockfile regeneration must not run")
	}
}

func TestInstall_NPMOnly(t *testing.T) {
	mock := runner.NewMock()
	inst := &Installer{Runner: mock, MigrateLockfile: true}
	res, err := inst.Install(context.Background(), t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if got := mock.Lines(); len(got) != 1 || got[0] != "npm install" {
		t.Errorf("commands = %v, want [npm install]", got)
	}
	if res.Manager != "npm" {
		t.Errorf("Manager = %q, want npm", res.Manager)
	}
}

func TestDetect(t *testing.T) {
	mock := runner.NewMock()
	mock.Handle("node --version", versionOutput("v20.11.1\n"))
	mock.Handle("npm --version", versionOutput("10.2.4\n"))
	mock.Fail("bun --version", runner.ErrNotFound)
	mock.Fail("pnpm --version", runner.ErrNotFound)
	mock.Handle("yarn --version", versionOutput("1.22.19"))

	tools := Detect(context.Background(), mock)
	want := map[string]string{"node": "20.11.1", "npm": "10.2.4", "yarn": "1.22.19"}

	if len(tools) != 5 {
		t.Fatalf("got %d tools, want 5", len(tools))
	}
	for _, tool := range tools {
		v, ok := want[tool.Name]
		if tool.Found != ok {
			t.Errorf("%s Found = %v, want %v", tool.Name, tool.Found, ok)
		}
		if ok && tool.Version != v {
			t.Errorf("%s Version = %q, want %q", tool.Name, tool.Version, v)
		}
	}
}

func TestRunDev(t *testing.T) {
	mock := runner.NewMock()
	if err := RunDev(context.Background(), mock, "/p"); err != nil {
		t.Fatal(err)
	}
	calls := mock.Calls()
	if len(calls) != 1 || calls[0].Mode != runner.Attached || calls[0].Dir != "/p" {
		t.Errorf("unexpected calls: %+v", calls)
	}
}

func TestRunDev_CancelledIsClean(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	mock := runner.NewMock()
	mock.Handle("npm run dev", func(runner.Command) (*runner.Output, error) {
		cancel()
		return &runner.Output{ExitCode: 130}, &runner.ExitError{Command: "npm run dev", Code: 130}
	})
	if err := RunDev(ctx, mock, "/p"); err != nil {
		t.Errorf("interrupting the dev server should not be an error, got %v", err)
	}
}

func TestRunDev_Fails(t *testing.T) {
	mock := runner.NewMock()
	mock.Fail("npm run dev", &runner.ExitError{Command: "npm run dev", Code: 1})
	if err := RunDev(context.Background(), mock, "/p"); err == nil {
		t.Fatal("expected error")
	}
}

// ─── Test Helpers ──────────────────────────────────────────────────

func versionOutput(v string) runner.HandlerFunc {
	return func(runner.Command) (*runner.Output, error) {
		return &runner.Output{Stdout: v}, nil
	}
}

func writeLockfile(name string) runner.HandlerFunc {
	return func(c runner.Command) (*runner.Output, error) {
		return &runner.Output{}, os.WriteFile(filepath.Join(c.Dir, name), []byte("lock"), 0644)
	}
}

func assertOrder(t *testing.T, m *runner.Mock, lines ...string) {
	t.Helper()
	prev := -1
	for _, l := range lines {
		idx := m.Index(l)
		if idx == -1 {
			t.Errorf("%q was not run; commands: %v", l, m.Lines())
			return
		}
		if idx <= prev {
			t.Errorf("%q ran out of order; commands: %v", l, m.Lines())
			return
		}
		prev = idx
	}
}
