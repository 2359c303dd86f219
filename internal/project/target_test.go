package project

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestResolve_InPlace(t *testing.T) {
	cwd := t.TempDir()

	for _, name := range []string{"", "  ", ".", "./"} {
		t.Run("name="+name, func(t *testing.T) {
			target, err := Resolve(cwd, name)
			if err != nil {
				t.Fatalf("Resolve(%q) error: %v", name, err)
			}
			if !target.InPlace {
				t.Error("expected InPlace target")
			}
			if target.Path != cwd {
				t.Errorf("Path = %q, want %q", target.Path, cwd)
			}
		})
	}
}

func TestResolve_NewDirectory(t *testing.T) {
	cwd := t.TempDir()

	target, err := Resolve(cwd, "demo")
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if target.InPlace {
		t.Error("named target should not be in place")
	}
	if want := filepath.Join(cwd, "demo"); target.Path != want {
		t.Errorf("Path = %q, want %q", target.Path, want)
	}
	if target.DisplayName() != "demo" {
		t.Errorf("DisplayName = %q, want demo", target.DisplayName())
	}
	if _, err := os.Stat(target.Path); !os.IsNotExist(err) {
		t.Error("Resolve must not create the directory")
	}
}

func TestResolve_ExistingDirectory(t *testing.T) {
	cwd := t.TempDir()
	if err := os.Mkdir(filepath.Join(cwd, "demo"), 0755); err != nil {
		t.Fatal(err)
	}

	// Repeated attempts fail identically.
	for i := 0; i < 2; i++ {
		_, err := Resolve(cwd, "demo")
		if !errors.Is(err, ErrTargetExists) {
			t.Fatalf("attempt %d: expected ErrTargetExists, got %v", i, err)
		}
		if !strings.Contains(err.Error(), "the folder 'demo' already exists") {
			t.Errorf("unexpected message: %v", err)
		}
	}
}

func TestResolve_ExistingFile(t *testing.T) {
	cwd := t.TempDir()
	if err := os.WriteFile(filepath.Join(cwd, "demo"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Resolve(cwd, "demo"); !errors.Is(err, ErrTargetExists) {
		t.Fatalf("expected ErrTargetExists for a file, got %v", err)
	}
}

func TestResolve_AbsoluteName(t *testing.T) {
	cwd := t.TempDir()
	abs := filepath.Join(t.TempDir(), "elsewhere")

	target, err := Resolve(cwd, abs)
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if target.Path != abs {
		t.Errorf("Path = %q, want %q", target.Path, abs)
	}
}

func TestTarget_CreateNested(t *testing.T) {
	cwd := t.TempDir()
	target, err := Resolve(cwd, filepath.Join("apps", "web"))
	if err != nil {
		t.Fatal(err)
	}
	if err := target.Create(); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	info, err := os.Stat(target.Path)
	if err != nil || !info.IsDir() {
		t.Fatalf("expected directory at %s", target.Path)
	}
	empty, err := target.IsEmpty()
	if err != nil || !empty {
		t.Errorf("IsEmpty = %v, %v; want true, nil", empty, err)
	}
}

func TestTarget_CreateInPlaceIsNoop(t *testing.T) {
	cwd := t.TempDir()
	if err := os.WriteFile(filepath.Join(cwd, "notes.txt"), []byte("keep"), 0644); err != nil {
		t.Fatal(err)
	}
	target, err := Resolve(cwd, "")
	if err != nil {
		t.Fatal(err)
	}
	if err := target.Create(); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	empty, err := target.IsEmpty()
	if err != nil {
		t.Fatal(err)
	}
	if empty {
		t.Error("in-place directory with files should not be empty")
	}
	if got := target.Join("src", "App.jsx"); got != filepath.Join(cwd, "src", "App.jsx") {
		t.Errorf("Join = %q", got)
	}
}
