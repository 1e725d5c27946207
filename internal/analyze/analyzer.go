// Package analyze joins extracted import records against file
// classifications to decide, per declared runtime dependency, whether
// it can relocate to devDependencies. Pure aggregation; identical
// inputs always yield identical output, including ordering.
package analyze

import (
	"github.com/sherwinski/depsort/internal/classify"
	"github.com/sherwinski/depsort/internal/extract"
)

// Verdict reasons. Exact strings are part of the report contract.
const (
	ReasonNotFound    = "not found in imports, may be used outside static analysis"
	ReasonDevOnly     = "only used in dev/test/config files"
	ReasonTypeOnly    = "only type-only imports in production code"
	ReasonRuntimeProd = "has runtime imports in production code"
	ReasonProd        = "used in production code"
)

// Verdict is the per-package decision.
type Verdict struct {
	Package             string                 `json:"package"`
	Records             []extract.ImportRecord `json:"records"`
	UsedInProduction    bool                   `json:"used_in_production"`
	UsedInDev           bool                   `json:"used_in_dev"`
	OnlyTypeOnlyImports bool                   `json:"only_type_only_imports"`
	CanMoveToDev        bool                   `json:"can_move_to_dev"`
	Reason              string                 `json:"reason"`
}

// Result partitions the declared runtime dependencies into move and
// keep lists. The sole output handed to reporting and fix
// collaborators.
type Result struct {
	Move      []Verdict `json:"move"`
	Keep      []Verdict `json:"keep"`
	MoveCount int       `json:"move_count"`
	KeepCount int       `json:"keep_count"`
}

// ClassifierFunc resolves a file path to its classification. Callers
// typically memoize classify.Classify over the detected layout.
type ClassifierFunc func(filePath string) classify.Classification

// Analyze produces a verdict for every declared runtime dependency.
// Iteration follows declared order (manifest insertion order), so two
// runs over identical inputs render identically.
func Analyze(declared []string, records []extract.ImportRecord, classifier ClassifierFunc) *Result {
	byPackage := make(map[string][]extract.ImportRecord)
	for _, rec := range records {
		byPackage[rec.Package] = append(byPackage[rec.Package], rec)
	}

	result := &Result{Move: []Verdict{}, Keep: []Verdict{}}
	for _, name := range declared {
		v := verdictFor(name, byPackage[name], classifier)
		if v.CanMoveToDev {
			result.Move = append(result.Move, v)
		} else {
			result.Keep = append(result.Keep, v)
		}
	}
	result.MoveCount = len(result.Move)
	result.KeepCount = len(result.Keep)
	return result
}

func verdictFor(name string, records []extract.ImportRecord, classifier ClassifierFunc) Verdict {
	v := Verdict{Package: name, Records: records}

	if len(records) == 0 {
		// Conservative by policy: a package with no static reference
		// may still be a CLI invoked from scripts. Documented
		// false-negative bias, not a safety proof.
		v.Reason = ReasonNotFound
		return v
	}

	var hasRuntimeInProduction, hasTypeOnlyInProduction bool
	v.OnlyTypeOnlyImports = true
	for _, rec := range records {
		c := classifier(rec.File)
		if c.IsProduction {
			v.UsedInProduction = true
			if rec.TypeOnly {
				hasTypeOnlyInProduction = true
			} else {
				hasRuntimeInProduction = true
			}
		}
		if c.IsTest || c.IsConfig || c.IsBuild {
			v.UsedInDev = true
		}
		if !rec.TypeOnly {
			v.OnlyTypeOnlyImports = false
		}
	}

	switch {
	case !v.UsedInProduction:
		v.CanMoveToDev = true
		v.Reason = ReasonDevOnly
	case hasTypeOnlyInProduction && !hasRuntimeInProduction:
		v.CanMoveToDev = true
		v.Reason = ReasonTypeOnly
	case hasRuntimeInProduction:
		v.Reason = ReasonRuntimeProd
	default:
		// Unreachable: the three branches above are exhaustive for a
		// production-referenced package.
		v.Reason = ReasonProd
	}
	return v
}
