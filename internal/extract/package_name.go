package extract

import (
	"regexp"
	"strings"
)

var windowsAbsPattern = regexp.MustCompile(`^[A-Za-z]:[\\/]`)

// IsExternal reports whether specifier names an installable package
// rather than a file within the project. Relative paths, rooted paths,
// and Windows drive paths are internal.
func IsExternal(specifier string) bool {
	if specifier == "" {
		return false
	}
	if strings.HasPrefix(specifier, ".") || strings.HasPrefix(specifier, "/") {
		return false
	}
	return !windowsAbsPattern.MatchString(specifier)
}

// PackageName resolves a module specifier to its package name:
// "@scope/pkg/sub" collapses to "@scope/pkg", "pkg/sub" to "pkg".
// Query strings and fragments are stripped first. Idempotent.
func PackageName(specifier string) string {
	if i := strings.IndexAny(specifier, "?#"); i >= 0 {
		specifier = specifier[:i]
	}
	parts := strings.Split(specifier, "/")
	if strings.HasPrefix(specifier, "@") && len(parts) >= 2 {
		return parts[0] + "/" + parts[1]
	}
	return parts[0]
}
