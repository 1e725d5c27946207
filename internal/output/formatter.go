// Package output renders analysis reports for humans and machines.
package output

import (
	"io"
	"os"

	"golang.org/x/term"

	"github.com/sherwinski/depsort/internal/runner"
)

// Formatter renders one report to a writer.
type Formatter interface {
	Format(report *runner.Report, w io.Writer) error
}

// VerbosityLevel determines output detail.
type VerbosityLevel int

const (
	VerbosityQuiet    VerbosityLevel = iota // one-line summary
	VerbosityStandard                       // per-package verdicts
	VerbosityJSON                           // machine-readable
)

// NewFormatter creates the formatter for a level.
func NewFormatter(level VerbosityLevel) Formatter {
	switch level {
	case VerbosityQuiet:
		return &QuietFormatter{}
	case VerbosityJSON:
		return &JSONFormatter{}
	default:
		return &StandardFormatter{}
	}
}

// DefaultVerbosity picks a level from the environment: quiet in
// non-interactive pipes, standard on a terminal or in CI.
func DefaultVerbosity() VerbosityLevel {
	if os.Getenv("CI") == "true" {
		return VerbosityStandard
	}
	if term.IsTerminal(int(os.Stdout.Fd())) {
		return VerbosityStandard
	}
	return VerbosityQuiet
}
