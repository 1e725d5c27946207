package output

import (
	"fmt"
	"io"

	"github.com/sherwinski/depsort/internal/runner"
)

// QuietFormatter prints a one-line summary, suitable for hooks.
type QuietFormatter struct{}

func (f *QuietFormatter) Format(report *runner.Report, w io.Writer) error {
	result := report.Result
	_, err := fmt.Fprintf(w, "depsort: %d of %d dependencies can move to devDependencies\n",
		result.MoveCount, result.MoveCount+result.KeepCount)
	return err
}
