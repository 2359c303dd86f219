package pkgjson

import (
	"fmt"
	"strings"
)

// Entry is one name/value pair of a JSON object whose key order matters.
type Entry struct {
	Name  string
	Value string
}

// Fields holds the values written into the manifest.
type Fields struct {
	Scripts         []Entry
	Dependencies    []Entry
	DevDependencies []Entry
	Type            string
}

// Mode selects how pre-existing dependency entries are treated.
type Mode string

const (
	// ModeMerge keeps dependencies npm (or the user) already declared;
	// the fixed versions win on name collisions.
	ModeMerge Mode = "merge"
	// ModeReplace discards pre-existing dependency entries.
	ModeReplace Mode = "replace"
)

// ParseMode converts a config or flag value into a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeMerge, "":
		return ModeMerge, nil
	case ModeReplace:
		return ModeReplace, nil
	default:
		return "", fmt.Errorf("unknown dependency mode %q: must be %q or %q", s, ModeMerge, ModeReplace)
	}
}

// Fixed returns the manifest values of a React + Vite + Tailwind project.
func Fixed() Fields {
	return Fields{
		Scripts: []Entry{
			{"dev", "vite"},
			{"build", "vite build"},
			{"lint", "eslint ."},
			{"preview", "vite preview"},
		},
		Dependencies: []Entry{
			{"react", "^18.3.1"},
			{"react-dom", "^18.3.1"},
		},
		DevDependencies: []Entry{
			{"@eslint/js", "^9.17.0"},
			{"@types/react", "^18.3.17"},
			{"@types/react-dom", "^18.3.5"},
			{"@vitejs/plugin-react-swc", "^3.5.0"},
			{"eslint", "^9.17.0"},
			{"eslint-plugin-react", "^7.37.2"},
			{"eslint-plugin-react-hooks", "^5.0.0"},
			{"eslint-plugin-react-refresh", "^0.4.16"},
			{"globals", "^15.13.0"},
			{"vite", "^6.0.3"},
			{"tailwindcss", "^3.0.0"},
			{"postcss", "^8.4.6"},
			{"autoprefixer", "^10.4.4"},
		},
		Type: "module",
	}
}

// Lookup returns the value of name in entries.
func Lookup(entries []Entry, name string) (string, bool) {
	for _, e := range entries {
		if e.Name == name {
			return e.Value, true
		}
	}
	return "", false
}

// mergeEntries overlays fixed onto existing the way an object spread does:
// existing keys stay in place (taking the fixed value on collision) and
// fixed keys not yet present are appended in their declared order.
func mergeEntries(existing, fixed []Entry) []Entry {
	out := make([]Entry, 0, len(existing)+len(fixed))
	seen := make(map[string]bool, len(existing))
	for _, e := range existing {
		if v, ok := Lookup(fixed, e.Name); ok {
			e.Value = v
		}
		seen[e.Name] = true
		out = append(out, e)
	}
	for _, f := range fixed {
		if !seen[f.Name] {
			out = append(out, f)
		}
	}
	return out
}
