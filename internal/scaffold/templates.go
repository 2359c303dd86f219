package scaffold

import (
	"embed"
	"fmt"
	"strings"
)

//go:embed templates
var scaffoldFS embed.FS

// templateRoot is the embedded directory holding the project template.
const templateRoot = "templates/react-tailwind"

// file maps an embedded template to its destination, relative to the project root.
type file struct {
	Src string
	Dst string
}

// Dirs are created before any file is written, in this order.
var Dirs = []string{"public", "src", "src/assets"}

// files lists the template set in write order.
var files = []file{
	{Src: "src/App.jsx", Dst: "src/App.jsx"},
	{Src: "src/Index.jsx", Dst: "src/Index.jsx"},
	{Src: "vite.config.js", Dst: "vite.config.js"},
	{Src: "index.html", Dst: "index.html"},
	{Src: "eslint.config.js.tmpl", Dst: "eslint.config.js"},
	{Src: "src/index.css.tmpl", Dst: "src/index.css"},
	{Src: "tailwind.config.js", Dst: "tailwind.config.js"},
	{Src: "postcss.config.js", Dst: "postcss.config.js"},
	{Src: "gitignore", Dst: ".gitignore"},
	{Src: "README.md.tmpl", Dst: "README.md"},
}

// Files returns the destination paths of the template set in write order.
func Files() []string {
	out := make([]string, len(files))
	for i, f := range files {
		out[i] = f.Dst
	}
	return out
}

// DirectiveSet names a group of Tailwind directives written to src/index.css.
type DirectiveSet string

const (
	// DirectivesStandard is base, components and utilities.
	DirectivesStandard DirectiveSet = "standard"
	// DirectivesExtended adds the variants layer.
	DirectivesExtended DirectiveSet = "extended"
)

// ParseDirectiveSet converts a config or flag value into a DirectiveSet.
func ParseDirectiveSet(s string) (DirectiveSet, error) {
	switch DirectiveSet(strings.ToLower(strings.TrimSpace(s))) {
	case DirectivesStandard, "":
		return DirectivesStandard, nil
	case DirectivesExtended:
		return DirectivesExtended, nil
	default:
		return "", fmt.Errorf("unknown directive set %q: must be %q or %q", s, DirectivesStandard, DirectivesExtended)
	}
}

// Lines returns the CSS lines of the directive set.
func (d DirectiveSet) Lines() []string {
	lines := []string{
		"@tailwind base;",
		"@tailwind components;",
		"@tailwind utilities;",
	}
	if d == DirectivesExtended {
		lines = append(lines, "@tailwind variants;")
	}
	return lines
}
