package output

import (
	"fmt"
	"io"

	"github.com/sherwinski/depsort/internal/analyze"
	"github.com/sherwinski/depsort/internal/runner"
)

// StandardFormatter prints per-package verdicts with reasons.
type StandardFormatter struct{}

func (f *StandardFormatter) Format(report *runner.Report, w io.Writer) error {
	fmt.Fprintf(w, "🔍 depsort analysis\n")
	fmt.Fprintf(w, "Root: %s\n", report.Root)
	fmt.Fprintf(w, "Files scanned: %d\n", report.FilesScanned)
	fmt.Fprintf(w, "Declared runtime dependencies: %d\n\n", report.Declared)

	result := report.Result
	if result.MoveCount > 0 {
		fmt.Fprintf(w, "Can move to devDependencies (%d):\n", result.MoveCount)
		for _, v := range result.Move {
			fmt.Fprintf(w, "  ✅ %s - %s\n", v.Package, v.Reason)
		}
		fmt.Fprintf(w, "\n")
	}

	if result.KeepCount > 0 {
		fmt.Fprintf(w, "Must stay in dependencies (%d):\n", result.KeepCount)
		for _, v := range result.Keep {
			fmt.Fprintf(w, "  %s %s - %s\n", keepMarker(v), v.Package, v.Reason)
		}
		fmt.Fprintf(w, "\n")
	}

	if len(report.Warnings) > 0 {
		fmt.Fprintf(w, "Warnings:\n")
		for _, warn := range report.Warnings {
			fmt.Fprintf(w, "  ⚠️  %s: %s\n", warn.File, warn.Message)
		}
		fmt.Fprintf(w, "\n")
	}

	if result.MoveCount > 0 {
		fmt.Fprintf(w, "Run 'depsort fix' to apply these moves.\n")
	}
	return nil
}

// keepMarker distinguishes hard keeps (runtime production imports)
// from conservative ones (never statically referenced).
func keepMarker(v analyze.Verdict) string {
	if v.Reason == analyze.ReasonNotFound {
		return "❔"
	}
	return "⛔"
}
