package output

import (
	"encoding/json"
	"io"

	"github.com/sherwinski/depsort/internal/runner"
)

// JSONFormatter emits the full report as indented JSON.
type JSONFormatter struct{}

func (f *JSONFormatter) Format(report *runner.Report, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
