package layout

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Layout describes where a project keeps its source, test, and build
// output files. Detected once per run; consumed read-only by the
// classifier afterwards.
type Layout struct {
	Root        string   `json:"root"`
	SourceDirs  []string `json:"source_dirs"` // ordered, relative to Root
	TestDirs    []string `json:"test_dirs"`
	BuildDirs   []string `json:"build_dirs"`
	HasTSConfig bool     `json:"has_tsconfig"`
}

// Conventional directory names probed during detection. Extra
// directories from configuration are merged in by Detect.
var (
	sourceCandidates = []string{"src", "lib", "app", "source"}
	testCandidates   = []string{"test", "tests", "__tests__", "spec", "e2e", "cypress"}
	buildCandidates  = []string{"dist", "build", "out", ".next", ".nuxt", "coverage"}
)

// Options carries extra directories to treat as source/test/build on
// top of the conventional names.
type Options struct {
	ExtraSourceDirs []string
	ExtraTestDirs   []string
	ExtraBuildDirs  []string
}

// Detect probes the project root once and returns an immutable Layout.
// This is the only place the layout touches the filesystem; everything
// downstream is pure path-string comparison.
func Detect(root string, opts Options) (*Layout, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("project root %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("project root %s is not a directory", root)
	}

	l := &Layout{Root: root}

	l.SourceDirs = probe(root, sourceCandidates, opts.ExtraSourceDirs)
	if len(l.SourceDirs) == 0 {
		// No conventional source directory: treat the root itself as
		// the source tree.
		l.SourceDirs = []string{"."}
	}
	l.TestDirs = probe(root, testCandidates, opts.ExtraTestDirs)
	l.BuildDirs = probe(root, buildCandidates, opts.ExtraBuildDirs)

	if _, err := os.Stat(filepath.Join(root, "tsconfig.json")); err == nil {
		l.HasTSConfig = true
	}

	return l, nil
}

// probe returns the candidate directories that exist under root,
// preserving candidate order, followed by the extra directories (which
// are trusted without a filesystem check, sorted for determinism).
func probe(root string, candidates, extra []string) []string {
	var found []string
	for _, name := range candidates {
		info, err := os.Stat(filepath.Join(root, name))
		if err == nil && info.IsDir() {
			found = append(found, name)
		}
	}
	ex := append([]string(nil), extra...)
	sort.Strings(ex)
	for _, name := range ex {
		if !contains(found, name) {
			found = append(found, filepath.ToSlash(name))
		}
	}
	return found
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
