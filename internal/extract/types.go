// Package extract pulls external package references out of
// JavaScript/TypeScript sources. The primary path parses with
// tree-sitter; a line-oriented scanner covers files the grammars
// cannot handle. Parse failures degrade, they never propagate.
package extract

// ImportRecord is one discovered reference to an external package.
// Immutable once emitted; relative and absolute specifiers never
// produce a record.
type ImportRecord struct {
	// Package is the resolved package name: "@scope/pkg" for scoped
	// specifiers, the first path segment otherwise.
	Package string `json:"package"`
	// TypeOnly marks references erased at compile time (import type).
	TypeOnly bool `json:"type_only"`
	// File is the originating file path as handed to Extract.
	File string `json:"file"`
	// Line is 1-based; Column is 0-based (0 when the fallback scanner
	// produced the record).
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Warning describes a non-fatal extraction problem, surfaced to the
// caller so one malformed file never blocks the project report.
type Warning struct {
	File    string `json:"file"`
	Message string `json:"message"`
}
