package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPackageName(t *testing.T) {
	tests := []struct {
		specifier string
		expected  string
	}{
		{"lodash", "lodash"},
		{"lodash/fp", "lodash"},
		{"lodash/fp/curry", "lodash"},
		{"@scope/pkg", "@scope/pkg"},
		{"@scope/pkg/sub/path", "@scope/pkg"},
		{"@types/node", "@types/node"},
		{"pkg?query=1", "pkg"},
		{"pkg/sub#fragment", "pkg"},
		{"@scope/pkg/sub?raw", "@scope/pkg"},
		{"@scope", "@scope"}, // malformed scoped specifier resolves to itself
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, PackageName(tt.specifier), "specifier %s", tt.specifier)
	}
}

func TestPackageNameIdempotent(t *testing.T) {
	for _, spec := range []string{"@scope/pkg/sub/path", "pkg/sub", "lodash"} {
		once := PackageName(spec)
		assert.Equal(t, once, PackageName(once), "specifier %s", spec)
	}
}

func TestIsExternal(t *testing.T) {
	tests := []struct {
		specifier string
		external  bool
	}{
		{"lodash", true},
		{"@scope/pkg", true},
		{"./local", false},
		{"../parent", false},
		{".", false},
		{"/abs/path", false},
		{`C:\abs\path`, false},
		{"D:/abs/path", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.external, IsExternal(tt.specifier), "specifier %q", tt.specifier)
	}
}
