package params

import (
	"strings"
	"testing"
)

// hasError reports whether findings contain an error-severity entry whose
// field matches.
func hasError(findings []ValidationError, field string) bool {
	for _, f := range findings {
		if f.Severity == SeverityError && f.Field == field {
			return true
		}
	}
	return false
}

func warningCount(findings []ValidationError) int {
	n := 0
	for _, f := range findings {
		if f.Severity == SeverityWarning {
			n++
		}
	}
	return n
}

func TestDefaultsValidate(t *testing.T) {
	findings := Defaults().Validate()
	if HasErrors(findings) {
		t.Fatalf("defaults should validate cleanly, got %v", findings)
	}
}

func TestValidateRejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ParameterSet)
		field  string
	}{
		{"zero scale", func(p *ParameterSet) { p.GScale = 0 }, "g_scale"},
		{"negative scale", func(p *ParameterSet) { p.GScale = -5 }, "g_scale"},
		{"zero levels", func(p *ParameterSet) { p.Levels = 0 }, "levels"},
		{"too many levels", func(p *ParameterSet) { p.Levels = MaxLevels + 1 }, "levels"},
		{"zero ratio", func(p *ParameterSet) { p.Ratio = 0 }, "ratio"},
		{"negative ratio power", func(p *ParameterSet) { p.RatioPower = -1 }, "ratio_power"},
		{"negative flare", func(p *ParameterSet) { p.Flare = -0.1 }, "flare"},
		{"base size one", func(p *ParameterSet) { p.BaseSize = 1 }, "base_size"},
		{"negative floor splits", func(p *ParameterSet) { p.FloorSplits = -1 }, "floor_splits"},
		{"negative base splits", func(p *ParameterSet) { p.BaseSplits = -1 }, "base_splits"},
		{"taper above one", func(p *ParameterSet) { p.Taper = []float64{1.5} }, "taper"},
		{"zero curve res", func(p *ParameterSet) { p.CurveRes = []int{0} }, "curve_res"},
		{"negative leaf count", func(p *ParameterSet) { p.Leaf.Count = -1 }, "leaf.count"},
		{"leaf bend above one", func(p *ParameterSet) { p.Leaf.Bend = 1.5 }, "leaf.bend"},
		{"blossom rate above one", func(p *ParameterSet) { p.Blossom.Rate = 1.5 }, "blossom.rate"},
		{"prune width zero", func(p *ParameterSet) {
			p.Prune.Ratio = 0.5
			p.Prune.Width = 0
		}, "prune.width"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Defaults()
			tt.mutate(&p)
			findings := p.Validate()
			if !hasError(findings, tt.field) {
				t.Errorf("expected error on field %q, got %v", tt.field, findings)
			}
		})
	}
}

func TestValidatePruneFieldsIgnoredWhenDisabled(t *testing.T) {
	p := Defaults()
	p.Prune.Ratio = 0
	p.Prune.Width = 0 // would be an error with pruning enabled
	if HasErrors(p.Validate()) {
		t.Fatalf("prune fields must not be checked when pruning is disabled, got %v", p.Validate())
	}
}

func TestInvalidParameterErrorMessage(t *testing.T) {
	p := Defaults()
	p.GScale = 0
	p.Levels = 0
	findings := p.Validate()
	err := &InvalidParameterError{Findings: findings}
	msg := err.Error()
	if !strings.Contains(msg, "g_scale") || !strings.Contains(msg, "levels") {
		t.Errorf("error message should name every failing field, got %q", msg)
	}
}

func TestHasErrorsIgnoresWarnings(t *testing.T) {
	findings := []ValidationError{{Field: "x", Message: "m", Severity: SeverityWarning}}
	if HasErrors(findings) {
		t.Error("a warning alone must not count as an error")
	}
	if warningCount(findings) != 1 {
		t.Error("expected one warning")
	}
}
