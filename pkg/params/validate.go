package params

import (
	"fmt"
	"strings"
)

// ValidationSeverity indicates whether a finding blocks generation or is
// merely advisory.
type ValidationSeverity int

const (
	SeverityError   ValidationSeverity = iota // blocks generation
	SeverityWarning                           // informational
)

func (s ValidationSeverity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("ValidationSeverity(%d)", int(s))
	}
}

// ValidationError describes a single validation finding on a ParameterSet.
type ValidationError struct {
	Field    string
	Message  string
	Severity ValidationSeverity
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("[%s] %s", e.Severity, e.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Severity, e.Field, e.Message)
}

// InvalidParameterError is returned by generators when a ParameterSet
// fails validation. Generation never starts on an invalid set.
type InvalidParameterError struct {
	Findings []ValidationError
}

func (e *InvalidParameterError) Error() string {
	msgs := make([]string, 0, len(e.Findings))
	for _, f := range e.Findings {
		if f.Severity == SeverityError {
			msgs = append(msgs, f.Error())
		}
	}
	return fmt.Sprintf("invalid parameters: %s", strings.Join(msgs, "; "))
}

// HasErrors reports whether any finding is error severity.
func HasErrors(findings []ValidationError) bool {
	for _, f := range findings {
		if f.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Validate runs all range checks on the parameter set and returns the
// findings. An empty slice means the set is valid. The ranges follow the
// original configuration surface; generation fails fast on any error
// finding rather than mid-recursion.
func (p ParameterSet) Validate() []ValidationError {
	var errs []ValidationError

	fail := func(field, format string, args ...interface{}) {
		errs = append(errs, ValidationError{
			Field:    field,
			Message:  fmt.Sprintf(format, args...),
			Severity: SeverityError,
		})
	}
	warn := func(field, format string, args ...interface{}) {
		errs = append(errs, ValidationError{
			Field:    field,
			Message:  fmt.Sprintf(format, args...),
			Severity: SeverityWarning,
		})
	}

	if p.Shape < ShapeConical || p.Shape > ShapeCustom {
		fail("shape", "unknown shape class %d", int(p.Shape))
	}
	if p.GScale <= 0 || p.GScale > 150 {
		fail("g_scale", "must be in (0, 150], got %g", p.GScale)
	}
	if p.GScaleV < 0 || p.GScaleV >= 150 {
		fail("g_scale_v", "must be in [0, 150), got %g", p.GScaleV)
	}
	if p.GScaleV >= p.GScale && p.GScale > 0 {
		warn("g_scale_v", "variance %g is at least the scale %g; lengths may collapse to the floor", p.GScaleV, p.GScale)
	}
	if p.Levels < 1 || p.Levels > MaxLevels {
		fail("levels", "must be in [1, %d], got %d", MaxLevels, p.Levels)
	}
	if p.Ratio <= 0 || p.Ratio > 1 {
		fail("ratio", "must be in (0, 1], got %g", p.Ratio)
	}
	if p.RatioPower < 0 || p.RatioPower > 5 {
		fail("ratio_power", "must be in [0, 5], got %g", p.RatioPower)
	}
	if p.Flare < 0 || p.Flare > 10 {
		fail("flare", "must be in [0, 10], got %g", p.Flare)
	}
	if p.BaseSize < 0 || p.BaseSize >= 1 {
		fail("base_size", "must be in [0, 1), got %g", p.BaseSize)
	}
	if p.FloorSplits < 0 || p.FloorSplits > 500 {
		fail("floor_splits", "must be in [0, 500], got %d", p.FloorSplits)
	}
	if p.BaseSplits < 0 || p.BaseSplits > 10 {
		fail("base_splits", "must be in [0, 10], got %d", p.BaseSplits)
	}

	if p.Prune.Ratio < 0 || p.Prune.Ratio > 1 {
		fail("prune.ratio", "must be in [0, 1], got %g", p.Prune.Ratio)
	}
	if p.Prune.Ratio > 0 {
		if p.Prune.Width <= 0 {
			fail("prune.width", "must be positive when pruning is enabled, got %g", p.Prune.Width)
		}
		if p.Prune.WidthPeak < 0 || p.Prune.WidthPeak >= 1 {
			fail("prune.width_peak", "must be in [0, 1), got %g", p.Prune.WidthPeak)
		}
		if p.Prune.PowerLow <= 0 {
			fail("prune.power_low", "must be positive, got %g", p.Prune.PowerLow)
		}
		if p.Prune.PowerHigh <= 0 {
			fail("prune.power_high", "must be positive, got %g", p.Prune.PowerHigh)
		}
	}

	if len(p.Length) == 0 {
		fail("length", "at least one level entry is required")
	}
	for i, v := range p.Length {
		if v <= 0 {
			fail(fmt.Sprintf("length[%d]", i), "must be positive, got %g", v)
		}
	}
	for i, v := range p.LengthV {
		if v < 0 {
			fail(fmt.Sprintf("length_v[%d]", i), "must be non-negative, got %g", v)
		}
	}
	for i, v := range p.Taper {
		if v < 0 || v > 1 {
			fail(fmt.Sprintf("taper[%d]", i), "must be in [0, 1], got %g", v)
		}
	}
	if len(p.CurveRes) == 0 {
		fail("curve_res", "at least one level entry is required")
	}
	for i, v := range p.CurveRes {
		if v < 1 {
			fail(fmt.Sprintf("curve_res[%d]", i), "must be at least 1, got %d", v)
		}
	}
	for i, v := range p.SegSplits {
		if v < 0 {
			fail(fmt.Sprintf("seg_splits[%d]", i), "must be non-negative, got %g", v)
		}
	}
	for i, v := range p.Branches {
		if v < 0 {
			fail(fmt.Sprintf("branches[%d]", i), "must be non-negative, got %d", v)
		}
	}

	if p.Leaf.Count < 0 || p.Leaf.Count > 3000 {
		fail("leaf.count", "must be in [0, 3000], got %d", p.Leaf.Count)
	}
	if p.Leaf.Shape < LeafOvate || p.Leaf.Shape > LeafTriangle {
		fail("leaf.shape", "unknown leaf shape %d", int(p.Leaf.Shape))
	}
	if p.Leaf.Count > 0 {
		if p.Leaf.Scale <= 0 {
			fail("leaf.scale", "must be positive, got %g", p.Leaf.Scale)
		}
		if p.Leaf.ScaleX <= 0 {
			fail("leaf.scale_x", "must be positive, got %g", p.Leaf.ScaleX)
		}
	}
	if p.Leaf.Bend < 0 || p.Leaf.Bend > 1 {
		fail("leaf.bend", "must be in [0, 1], got %g", p.Leaf.Bend)
	}

	if p.Blossom.Enabled {
		if p.Blossom.Shape < BlossomCherry || p.Blossom.Shape > BlossomMagnolia {
			fail("blossom.shape", "unknown blossom shape %d", int(p.Blossom.Shape))
		}
		if p.Blossom.Scale <= 0 {
			fail("blossom.scale", "must be positive, got %g", p.Blossom.Scale)
		}
	}
	if p.Blossom.Rate < 0 || p.Blossom.Rate > 1 {
		fail("blossom.rate", "must be in [0, 1], got %g", p.Blossom.Rate)
	}

	return errs
}
