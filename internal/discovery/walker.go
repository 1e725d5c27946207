// Package discovery enumerates the candidate source files handed to
// extraction. Dependency caches and coverage output are always
// skipped; include/exclude globs narrow the rest.
package discovery

import (
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Directories never worth descending into, match or not.
var alwaysSkipDirs = map[string]bool{
	".git":          true,
	"node_modules":  true,
	"coverage":      true,
	".nyc_output":   true,
	".cache":        true,
	".parcel-cache": true,
	".turbo":        true,
	".yarn":         true,
	".pnpm-store":   true,
	".idea":         true,
	".vscode":       true,
}

var candidateExtensions = map[string]bool{
	".js": true, ".jsx": true, ".mjs": true, ".cjs": true,
	".ts": true, ".tsx": true, ".mts": true, ".cts": true,
}

// Options narrows the walk. Patterns are doublestar globs matched
// against the forward-slash path relative to root. Empty Include
// means everything.
type Options struct {
	Include []string
	Exclude []string
}

// Walk returns candidate file paths under root in deterministic
// (lexical walk) order. Paths are reported relative to root with the
// platform separator.
func Walk(root string, opts Options) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && alwaysSkipDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}

		if !candidateExtensions[filepath.Ext(path)] {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		slash := filepath.ToSlash(rel)

		// Cache and coverage content is excluded even when an include
		// pattern would reach it.
		if touchesSkippedDir(slash) {
			return nil
		}
		if !matchesAny(opts.Include, slash, true) {
			return nil
		}
		if matchesAny(opts.Exclude, slash, false) {
			return nil
		}

		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

func touchesSkippedDir(slash string) bool {
	for _, part := range strings.Split(slash, "/") {
		if alwaysSkipDirs[part] {
			return true
		}
	}
	return false
}

// matchesAny reports whether slash matches one of patterns. emptyValue
// is the answer for an empty pattern list.
func matchesAny(patterns []string, slash string, emptyValue bool) bool {
	if len(patterns) == 0 {
		return emptyValue
	}
	for _, pattern := range patterns {
		if ok, err := doublestar.Match(pattern, slash); err == nil && ok {
			return true
		}
	}
	return false
}
