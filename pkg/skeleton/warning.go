package skeleton

import "fmt"

// WarningKind classifies the non-fatal conditions a generator can recover
// from during a run.
type WarningKind int

const (
	// WarnPruningExhausted marks a stem that could not satisfy the pruning
	// envelope within the retry bound; the best candidate was kept.
	WarnPruningExhausted WarningKind = iota
	// WarnDegenerateGeometry marks a stem or instance that would produce a
	// zero-area face and was skipped.
	WarnDegenerateGeometry
	// WarnUnknownSymbol marks an unrecognized grammar symbol that the
	// turtle ignored.
	WarnUnknownSymbol
)

func (k WarningKind) String() string {
	switch k {
	case WarnPruningExhausted:
		return "pruning-exhausted"
	case WarnDegenerateGeometry:
		return "degenerate-geometry"
	case WarnUnknownSymbol:
		return "unknown-symbol"
	default:
		return "unknown"
	}
}

// Warning is a recovered, non-fatal generation condition. Warnings are
// aggregated into the generation result; the core never logs directly.
type Warning struct {
	Kind    WarningKind
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("[%s] %s", w.Kind, w.Message)
}

// CountWarnings returns how many warnings have the given kind.
func CountWarnings(warnings []Warning, kind WarningKind) int {
	n := 0
	for _, w := range warnings {
		if w.Kind == kind {
			n++
		}
	}
	return n
}
