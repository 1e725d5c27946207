package extract

import (
	"regexp"
	"strings"
)

// Line-oriented patterns used when structural parsing is impossible.
// Three independent shapes: ESM import-from, require / require.resolve,
// and dynamic import.
var (
	esmPattern     = regexp.MustCompile(`import\s+(?:[\w$*{},\s]+?\s+from\s+)?['"]([^'"]+)['"]`)
	requirePattern = regexp.MustCompile(`require(?:\.resolve)?\(\s*['"]([^'"]+)['"]\s*\)`)
	dynamicPattern = regexp.MustCompile(`import\(\s*['"]([^'"]+)['"]\s*\)`)
)

// fallbackScan extracts records with regular expressions. Type-only
// usage is inferable only for the ESM form; require and dynamic import
// are always runtime. Columns are unknown and reported as 0.
func fallbackScan(contents []byte, filePath string) []ImportRecord {
	text := string(contents)
	records := []ImportRecord{}

	emit := func(matchStart int, specifier string, typeOnly bool) {
		if !IsExternal(specifier) {
			return
		}
		records = append(records, ImportRecord{
			Package:  PackageName(specifier),
			TypeOnly: typeOnly,
			File:     filePath,
			Line:     lineAt(text, matchStart),
			Column:   0,
		})
	}

	for _, m := range esmPattern.FindAllStringSubmatchIndex(text, -1) {
		matchText := text[m[0]:m[1]]
		typeOnly := strings.Contains(matchText, "import type") ||
			strings.Contains(matchText, "type {")
		emit(m[0], text[m[2]:m[3]], typeOnly)
	}
	for _, m := range requirePattern.FindAllStringSubmatchIndex(text, -1) {
		emit(m[0], text[m[2]:m[3]], false)
	}
	for _, m := range dynamicPattern.FindAllStringSubmatchIndex(text, -1) {
		emit(m[0], text[m[2]:m[3]], false)
	}

	return records
}

// lineAt converts a byte offset to a 1-based line number.
func lineAt(text string, offset int) int {
	return strings.Count(text[:offset], "\n") + 1
}
