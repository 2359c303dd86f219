package scaffold

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/Masterminds/semver/v3"
	"github.com/Masterminds/sprig/v3"

	"github.com/create-react-tw/create-react-tw/internal/branding"
	"github.com/create-react-tw/create-react-tw/internal/pkgjson"
)

// ErrConflict is returned by Preflight when a template destination is taken.
var ErrConflict = errors.New("scaffold destination already exists")

// ScaffoldData holds all template variables available to project templates.
type ScaffoldData struct {
	Directives   []string // CSS lines for src/index.css
	ReactVersion string   // major.minor of the pinned react range, e.g. "18.3"
	Generator    string   // CLI name credited in README.md
}

// Result holds the outcome of a scaffold generation.
type Result struct {
	OutputDir string
	Dirs      []string
	Files     []string
	Warnings  []string
}

// NewScaffoldData derives template variables from the directive set and the
// manifest fields, so the lint settings always follow the pinned react version.
func NewScaffoldData(directives DirectiveSet, fields pkgjson.Fields) (*ScaffoldData, error) {
	reactRange, ok := pkgjson.Lookup(fields.Dependencies, "react")
	if !ok {
		return nil, fmt.Errorf("manifest fields do not pin react")
	}
	reactVersion, err := majorMinor(reactRange)
	if err != nil {
		return nil, fmt.Errorf("deriving react version: %w", err)
	}

	return &ScaffoldData{
		Directives:   directives.Lines(),
		ReactVersion: reactVersion,
		Generator:    branding.CLIName(),
	}, nil
}

// majorMinor extracts "X.Y" from a caret/tilde range or plain version.
func majorMinor(versionRange string) (string, error) {
	v, err := semver.NewVersion(strings.TrimLeft(strings.TrimSpace(versionRange), "^~=v>"))
	if err != nil {
		return "", fmt.Errorf("parsing %q: %w", versionRange, err)
	}
	return fmt.Sprintf("%d.%d", v.Major(), v.Minor()), nil
}

// Preflight reports every template destination already present in outputDir.
// Directories that already exist are fine.
func Preflight(outputDir string) error {
	var conflicts []string
	for _, f := range files {
		p := filepath.Join(outputDir, filepath.FromSlash(f.Dst))
		if _, err := os.Lstat(p); err == nil {
			conflicts = append(conflicts, f.Dst)
		} else if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("checking %s: %w", f.Dst, err)
		}
	}
	if len(conflicts) > 0 {
		return fmt.Errorf("%w: %s", ErrConflict, strings.Join(conflicts, ", "))
	}
	return nil
}

// Generate creates the project directories and writes every template file
// into outputDir. Existing files are never overwritten.
func Generate(data *ScaffoldData, outputDir string) (*Result, error) {
	result := &Result{OutputDir: outputDir}

	for _, d := range Dirs {
		if err := os.MkdirAll(filepath.Join(outputDir, filepath.FromSlash(d)), 0755); err != nil {
			return nil, fmt.Errorf("creating directory %s: %w", d, err)
		}
		result.Dirs = append(result.Dirs, d)
	}

	for _, f := range files {
		content, err := render(f, data)
		if err != nil {
			return nil, err
		}

		outPath := filepath.Join(outputDir, filepath.FromSlash(f.Dst))
		if err := writeNew(outPath, content); err != nil {
			return nil, fmt.Errorf("writing %s: %w", f.Dst, err)
		}
		result.Files = append(result.Files, f.Dst)
	}

	warnings, err := checkIgnoreRules(filepath.Join(outputDir, ".gitignore"))
	if err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Could not check .gitignore: %v", err))
	}
	result.Warnings = append(result.Warnings, warnings...)

	return result, nil
}

// render returns the bytes for one template file.
func render(f file, data *ScaffoldData) ([]byte, error) {
	tmplPath := path.Join(templateRoot, f.Src)
	tmplBytes, err := fs.ReadFile(scaffoldFS, tmplPath)
	if err != nil {
		return nil, fmt.Errorf("reading template %s: %w", tmplPath, err)
	}

	if !strings.HasSuffix(f.Src, ".tmpl") {
		return tmplBytes, nil
	}

	tmpl, err := template.New(f.Src).Funcs(sprig.TxtFuncMap()).Option("missingkey=error").Parse(string(tmplBytes))
	if err != nil {
		return nil, fmt.Errorf("parsing template %s: %w", f.Src, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template %s: %w", f.Src, err)
	}
	return buf.Bytes(), nil
}

// writeNew creates path exclusively so an existing file is never clobbered.
func writeNew(path string, content []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return err
	}
	if _, err := f.Write(content); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
