package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFallbackScanShapes(t *testing.T) {
	source := `import _ from 'lodash';
const chalk = require('chalk');
const lazy = import('dayjs');
const bin = require.resolve('typescript');
import './local.css';
`
	records := fallbackScan([]byte(source), "src/app.js")

	names := make([]string, 0, len(records))
	for _, rec := range records {
		names = append(names, rec.Package)
	}
	assert.ElementsMatch(t, []string{"lodash", "chalk", "dayjs", "typescript"}, names)
}

func TestFallbackScanLinesAndColumns(t *testing.T) {
	source := "// header\n\nconst x = require('lodash');\n"
	records := fallbackScan([]byte(source), "src/app.js")
	require.Len(t, records, 1)
	assert.Equal(t, 3, records[0].Line, "line counted from preceding newlines")
	assert.Equal(t, 0, records[0].Column, "column is unavailable in fallback")
}

func TestFallbackScanTypeOnlyInference(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		typeOnly bool
	}{
		{"import type form", `import type { A } from 'pkg';`, true},
		// The line scanner is coarser than the structural pass: inline
		// specifier markers are invisible to it.
		{"inline type marker not inferred", `import { type A } from 'pkg';`, false},
		{"value import", `import { a } from 'pkg';`, false},
		{"require is never type-only", `const a = require('pkg');`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records := fallbackScan([]byte(tt.source), "src/a.ts")
			require.Len(t, records, 1)
			assert.Equal(t, tt.typeOnly, records[0].TypeOnly)
		})
	}
}

func TestFallbackScanSkipsInternal(t *testing.T) {
	source := `import a from './x';
const b = require('/abs/x');
`
	records := fallbackScan([]byte(source), "src/a.ts")
	assert.Empty(t, records)
}
