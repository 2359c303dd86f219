package pkgjson

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

// FileName is the manifest file name at the project root.
const FileName = "package.json"

var prettyOptions = &pretty.Options{Width: 80, Prefix: "", Indent: "  ", SortKeys: false}

// Manifest is a package.json held as raw JSON.
type Manifest struct {
	data []byte
}

// Parse wraps data after checking it is a JSON object.
func Parse(data []byte) (*Manifest, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("invalid JSON")
	}
	if !gjson.ParseBytes(data).IsObject() {
		return nil, fmt.Errorf("manifest root is not a JSON object")
	}
	return &Manifest{data: append([]byte(nil), data...)}, nil
}

// Load reads and parses the manifest at path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	return m, nil
}

// Get returns the string value at a top-level key.
func (m *Manifest) Get(key string) string {
	return gjson.GetBytes(m.data, key).String()
}

// Entries returns the members of the object at key in document order.
// A missing or non-object value yields nil.
func (m *Manifest) Entries(key string) []Entry {
	r := gjson.GetBytes(m.data, key)
	if !r.IsObject() {
		return nil
	}
	var out []Entry
	r.ForEach(func(k, v gjson.Result) bool {
		out = append(out, Entry{Name: k.String(), Value: v.String()})
		return true
	})
	return out
}

// Apply writes f into the manifest. scripts and type are always replaced;
// dependency maps are merged or replaced according to mode.
func (m *Manifest) Apply(f Fields, mode Mode) error {
	deps := f.Dependencies
	devDeps := f.DevDependencies
	if mode == ModeMerge {
		deps = mergeEntries(m.Entries("dependencies"), f.Dependencies)
		devDeps = mergeEntries(m.Entries("devDependencies"), f.DevDependencies)
	}

	objects := []struct {
		key     string
		entries []Entry
	}{
		{"scripts", f.Scripts},
		{"dependencies", deps},
		{"devDependencies", devDeps},
	}

	data := m.data
	for _, o := range objects {
		raw, err := renderObject(o.entries)
		if err != nil {
			return fmt.Errorf("encoding %s: %w", o.key, err)
		}
		data, err = sjson.SetRawBytes(data, o.key, raw)
		if err != nil {
			return fmt.Errorf("setting %s: %w", o.key, err)
		}
	}

	data, err := sjson.SetBytes(data, "type", f.Type)
	if err != nil {
		return fmt.Errorf("setting type: %w", err)
	}

	m.data = data
	return nil
}

// Bytes returns the manifest indented with two spaces and newline-terminated.
func (m *Manifest) Bytes() []byte {
	out := pretty.PrettyOptions(m.data, prettyOptions)
	if !bytes.HasSuffix(out, []byte("\n")) {
		out = append(out, '\n')
	}
	return out
}

// Save writes the manifest to path.
func (m *Manifest) Save(path string) error {
	if err := os.WriteFile(path, m.Bytes(), 0644); err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}
	return nil
}

// renderObject encodes entries as a JSON object preserving their order.
// Values are written verbatim, so URLs keep their & < > characters.
func renderObject(entries []Entry) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	buf.WriteByte('{')
	for i, e := range entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := enc.Encode(e.Name); err != nil {
			return nil, err
		}
		buf.Truncate(buf.Len() - 1) // Encode appends a newline
		buf.WriteByte(':')
		if err := enc.Encode(e.Value); err != nil {
			return nil, err
		}
		buf.Truncate(buf.Len() - 1)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
