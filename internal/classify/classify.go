// Package classify decides whether a file ships to production or only
// serves tests, build output, or tooling configuration. Classification
// is a pure function of the path and the detected project layout; any
// filesystem probing happened earlier when the layout was computed.
package classify

import (
	"fmt"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/sherwinski/depsort/internal/layout"
)

// Classification tags a single file. The flags are mutually exclusive
// by construction: the rule chain stops at the first match.
type Classification struct {
	IsProduction bool   `json:"is_production"`
	IsTest       bool   `json:"is_test"`
	IsBuild      bool   `json:"is_build"`
	IsConfig     bool   `json:"is_config"`
	Reason       string `json:"reason"`
}

// testFilePattern matches *.test.* / *.spec.* naming for JS/TS files,
// including emitted source maps (foo.test.js.map).
var testFilePattern = regexp.MustCompile(`\.(test|spec)\.(ts|tsx|js|jsx)(\.map)?$`)

// Tool configuration files recognized by rule 3. Each tool name may
// appear bare, with a .config suffix, or as a dotfile (.eslintrc,
// .babelrc.json, ...).
var configToolNames = []string{
	"babel", "webpack", "rollup", "vite", "vitest", "jest", "karma",
	"eslint", "prettier", "stylelint", "postcss", "tailwind",
	"playwright", "cypress", "nyc", "commitlint", "lint-staged",
	"tsup", "esbuild", "next", "nuxt", "svelte", "metro",
}

var configFilePattern = buildConfigPattern()

func buildConfigPattern() *regexp.Regexp {
	names := strings.Join(configToolNames, "|")
	// Three spellings: name[.config].ext, .namerc[.ext], and the two
	// fixed manifests handled separately below.
	expr := fmt.Sprintf(`^(?:(?:%[1]s)(?:\.config)?\.(?:js|ts|json|mjs|cjs)|\.(?:%[1]s)rc(?:\.(?:js|ts|json|mjs|cjs))?)$`, names)
	return regexp.MustCompile(expr)
}

// rule is one step of the priority-ordered classification chain.
// Precedence lives in the rules slice, not in nested conditionals, so
// each predicate stays testable in isolation.
type rule struct {
	match func(rel, base string, l *layout.Layout) (Classification, bool)
}

var rules = []rule{
	{
		// Rule 1: build output.
		match: func(rel, base string, l *layout.Layout) (Classification, bool) {
			for _, dir := range l.BuildDirs {
				if underDir(rel, dir) {
					return Classification{
						IsBuild: true,
						Reason:  fmt.Sprintf("inside build output directory %q", dir),
					}, true
				}
			}
			return Classification{}, false
		},
	},
	{
		// Rule 2: tests, by directory or naming pattern.
		match: func(rel, base string, l *layout.Layout) (Classification, bool) {
			for _, dir := range l.TestDirs {
				if underDir(rel, dir) {
					return Classification{
						IsTest: true,
						Reason: fmt.Sprintf("inside test directory %q", dir),
					}, true
				}
			}
			if testFilePattern.MatchString(base) {
				return Classification{
					IsTest: true,
					Reason: "test/spec file naming pattern",
				}, true
			}
			return Classification{}, false
		},
	},
	{
		// Rule 3: tool configuration, outside the source tree only.
		match: func(rel, base string, l *layout.Layout) (Classification, bool) {
			if underAnySource(rel, l) {
				return Classification{}, false
			}
			if base == "tsconfig.json" || base == "package.json" || configFilePattern.MatchString(base) {
				return Classification{
					IsConfig: true,
					Reason:   fmt.Sprintf("tool configuration file %q", base),
				}, true
			}
			return Classification{}, false
		},
	},
}

// Classify tags filePath against the project layout. Deterministic and
// I/O free; filePath may be absolute or relative to the layout root.
func Classify(filePath string, l *layout.Layout) Classification {
	rel := relToRoot(filePath, l.Root)
	base := path.Base(rel)

	for _, r := range rules {
		if c, ok := r.match(rel, base, l); ok {
			return c
		}
	}

	// Rule 4: production iff the file sits under a source directory.
	if underAnySource(rel, l) {
		return Classification{
			IsProduction: true,
			Reason:       "inside source directory",
		}
	}
	c := Classification{Reason: "outside all configured directories"}
	if strings.HasSuffix(base, ".d.ts") {
		c.Reason = "type declaration file outside source directories"
	}
	return c
}

// relToRoot normalizes filePath to a forward-slash path relative to
// root. Paths that are already relative are cleaned as-is.
func relToRoot(filePath, root string) string {
	p := filepath.ToSlash(filePath)
	if root != "" {
		if r, err := filepath.Rel(root, filePath); err == nil && !strings.HasPrefix(r, "..") {
			p = filepath.ToSlash(r)
		}
	}
	return path.Clean(p)
}

// underDir reports whether rel sits under dir. The special dir "."
// claims only files with no subdirectory component.
func underDir(rel, dir string) bool {
	dir = path.Clean(filepath.ToSlash(dir))
	if dir == "." {
		return !strings.Contains(rel, "/")
	}
	return rel == dir || strings.HasPrefix(rel, dir+"/")
}

func underAnySource(rel string, l *layout.Layout) bool {
	for _, dir := range l.SourceDirs {
		if underDir(rel, dir) {
			return true
		}
	}
	return false
}
