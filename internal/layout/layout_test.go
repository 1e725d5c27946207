package layout

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeDirs(t *testing.T, names ...string) string {
	t.Helper()
	root := t.TempDir()
	for _, name := range names {
		require.NoError(t, os.MkdirAll(filepath.Join(root, name), 0755))
	}
	return root
}

func TestDetectConventionalDirs(t *testing.T) {
	root := makeDirs(t, "src", "test", "dist")

	l, err := Detect(root, Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"src"}, l.SourceDirs)
	assert.Equal(t, []string{"test"}, l.TestDirs)
	assert.Equal(t, []string{"dist"}, l.BuildDirs)
	assert.False(t, l.HasTSConfig)
}

func TestDetectFallsBackToRootSource(t *testing.T) {
	root := makeDirs(t, "docs")

	l, err := Detect(root, Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"."}, l.SourceDirs, "no conventional source dir: root is the source tree")
}

func TestDetectTSConfig(t *testing.T) {
	root := makeDirs(t, "src")
	require.NoError(t, os.WriteFile(filepath.Join(root, "tsconfig.json"), []byte("{}"), 0644))

	l, err := Detect(root, Options{})
	require.NoError(t, err)
	assert.True(t, l.HasTSConfig)
}

func TestDetectMergesExtraDirs(t *testing.T) {
	root := makeDirs(t, "src", "test")

	l, err := Detect(root, Options{
		ExtraSourceDirs: []string{"packages/core"},
		ExtraTestDirs:   []string{"integration"},
		ExtraBuildDirs:  []string{"artifacts"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"src", "packages/core"}, l.SourceDirs)
	assert.Equal(t, []string{"test", "integration"}, l.TestDirs)
	assert.Equal(t, []string{"artifacts"}, l.BuildDirs)
}

func TestDetectMissingRoot(t *testing.T) {
	_, err := Detect(filepath.Join(t.TempDir(), "missing"), Options{})
	assert.Error(t, err)
}
