// Package manifest loads and edits package.json. Edits are surgical
// (gjson/sjson over the raw document) so unrelated fields and key
// order survive a fix round-trip.
package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Manifest holds a parsed package.json plus the raw document used for
// in-place edits.
type Manifest struct {
	Path            string
	Dependencies    []string          // declared runtime deps, document order
	DevDependencies []string          // document order
	Versions        map[string]string // name -> version range, both groups
	raw             []byte
}

// Load reads and validates a package.json. A missing or malformed file
// is an error; absent dependencies maps are not.
func Load(path string) (*Manifest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest %s: %w", path, err)
	}
	if !gjson.ValidBytes(raw) {
		return nil, fmt.Errorf("manifest %s is not valid JSON", path)
	}

	m := &Manifest{
		Path:     path,
		Versions: make(map[string]string),
		raw:      raw,
	}
	gjson.GetBytes(raw, "dependencies").ForEach(func(key, value gjson.Result) bool {
		m.Dependencies = append(m.Dependencies, key.String())
		m.Versions[key.String()] = value.String()
		return true
	})
	gjson.GetBytes(raw, "devDependencies").ForEach(func(key, value gjson.Result) bool {
		m.DevDependencies = append(m.DevDependencies, key.String())
		m.Versions[key.String()] = value.String()
		return true
	})
	return m, nil
}

// MoveToDev relocates each named package from dependencies to
// devDependencies in the raw document. Names absent from dependencies
// are no-ops. Each name moves atomically; on error the returned slice
// lists the names already moved, and the failing name is untouched.
func (m *Manifest) MoveToDev(names []string) ([]string, error) {
	moved := []string{}
	for _, name := range names {
		version := gjson.GetBytes(m.raw, "dependencies."+escapeKey(name))
		if !version.Exists() {
			continue
		}

		// Edit a scratch copy; m.raw only advances once both the set
		// and the delete succeed, so a failed name leaves no half-move.
		raw, err := sjson.SetBytes(m.raw, "devDependencies."+escapeKey(name), version.String())
		if err != nil {
			return moved, fmt.Errorf("set devDependencies.%s: %w", name, err)
		}
		raw, err = sjson.DeleteBytes(raw, "dependencies."+escapeKey(name))
		if err != nil {
			return moved, fmt.Errorf("delete dependencies.%s: %w", name, err)
		}
		m.raw = raw
		moved = append(moved, name)
	}
	return moved, nil
}

// Save writes the manifest back with 2-space indentation and a
// trailing newline, preserving document key order.
func (m *Manifest) Save() error {
	var out bytes.Buffer
	if err := json.Indent(&out, m.raw, "", "  "); err != nil {
		return fmt.Errorf("format manifest: %w", err)
	}
	out.WriteByte('\n')
	return os.WriteFile(m.Path, out.Bytes(), 0644)
}

// Raw returns the current document bytes (post-edit, pre-format).
func (m *Manifest) Raw() []byte {
	return m.raw
}

// escapeKey escapes every gjson/sjson path special character so a
// package name is always one literal key: dots stop splitting and a
// leading "@" (scoped packages) is not read as a modifier.
func escapeKey(name string) string {
	name = strings.ReplaceAll(name, `\`, `\\`)
	for _, ch := range []string{".", "*", "?", "@", "|", "#", ":"} {
		name = strings.ReplaceAll(name, ch, `\`+ch)
	}
	return name
}
