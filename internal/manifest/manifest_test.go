package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

const sampleManifest = `{
  "name": "sample-app",
  "version": "1.2.3",
  "scripts": {
    "build": "webpack"
  },
  "dependencies": {
    "lodash": "^4.0.0",
    "@types/node": "^20.0.0",
    "dayjs": "~1.11.0"
  },
  "devDependencies": {
    "jest": "^29.0.0"
  }
}
`

func writeManifest(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "package.json")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	return path
}

func TestLoad(t *testing.T) {
	m, err := Load(writeManifest(t, sampleManifest))
	require.NoError(t, err)

	assert.Equal(t, []string{"lodash", "@types/node", "dayjs"}, m.Dependencies,
		"dependency order follows the document")
	assert.Equal(t, []string{"jest"}, m.DevDependencies)
	assert.Equal(t, "^4.0.0", m.Versions["lodash"])
	assert.Equal(t, "^29.0.0", m.Versions["jest"])
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "package.json"))
	assert.Error(t, err)
}

func TestLoadMalformed(t *testing.T) {
	_, err := Load(writeManifest(t, `{"dependencies": {`))
	assert.Error(t, err)
}

func TestLoadWithoutDependencyMaps(t *testing.T) {
	m, err := Load(writeManifest(t, `{"name": "bare"}`))
	require.NoError(t, err)
	assert.Empty(t, m.Dependencies, "absent dependencies map means nothing to analyze")
	assert.Empty(t, m.DevDependencies)
}

func TestMoveToDev(t *testing.T) {
	path := writeManifest(t, sampleManifest)
	m, err := Load(path)
	require.NoError(t, err)

	moved, err := m.MoveToDev([]string{"@types/node", "not-declared"})
	require.NoError(t, err)
	assert.Equal(t, []string{"@types/node"}, moved, "absent names are no-ops")
	require.NoError(t, m.Save())

	out, err := os.ReadFile(path)
	require.NoError(t, err)
	doc := string(out)

	deps := gjson.Get(doc, "dependencies").Map()
	devDeps := gjson.Get(doc, "devDependencies").Map()
	assert.NotContains(t, deps, "@types/node")
	assert.Equal(t, "^20.0.0", devDeps["@types/node"].String())
	assert.Equal(t, "^29.0.0", devDeps["jest"].String(), "existing devDependencies survive")

	// Unrelated fields survive untouched.
	assert.Equal(t, "sample-app", gjson.Get(doc, "name").String())
	assert.Equal(t, "webpack", gjson.Get(doc, "scripts.build").String())
	assert.Equal(t, "^4.0.0", gjson.Get(doc, "dependencies.lodash").String())

	// 2-space indentation and trailing newline.
	assert.Contains(t, doc, "\n  \"name\": \"sample-app\"")
	assert.True(t, doc[len(doc)-1] == '\n')
}

func TestMoveToDevScopedAndDottedNames(t *testing.T) {
	path := writeManifest(t, `{
  "dependencies": {
    "@types/node": "^20.0.0",
    "@babel/core": "^7.24.0",
    "lodash.merge": "^4.6.2",
    "express": "^4.18.0"
  }
}
`)
	m, err := Load(path)
	require.NoError(t, err)

	moved, err := m.MoveToDev([]string{"@types/node", "@babel/core", "lodash.merge"})
	require.NoError(t, err, "names with gjson path characters move cleanly")
	assert.Equal(t, []string{"@types/node", "@babel/core", "lodash.merge"}, moved)

	deps := gjson.GetBytes(m.Raw(), "dependencies").Map()
	devDeps := gjson.GetBytes(m.Raw(), "devDependencies").Map()
	assert.Equal(t, []string{"express"}, keysOf(deps))
	assert.Equal(t, "^20.0.0", devDeps["@types/node"].String())
	assert.Equal(t, "^7.24.0", devDeps["@babel/core"].String())
	assert.Equal(t, "^4.6.2", devDeps["lodash.merge"].String(),
		"dotted name stays one key, not a nested object")
}

func keysOf(m map[string]gjson.Result) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

func TestMoveToDevCreatesDevDependencies(t *testing.T) {
	path := writeManifest(t, `{"dependencies": {"left-pad": "^1.0.0"}}`)
	m, err := Load(path)
	require.NoError(t, err)

	moved, err := m.MoveToDev([]string{"left-pad"})
	require.NoError(t, err)
	assert.Equal(t, []string{"left-pad"}, moved)
	require.NoError(t, m.Save())

	out, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "^1.0.0", gjson.GetBytes(out, "devDependencies").Map()["left-pad"].String())
	assert.False(t, gjson.GetBytes(out, "dependencies.left-pad").Exists())
}
