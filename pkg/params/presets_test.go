package params

import (
	"sort"
	"testing"
)

func TestAllPresetsValidate(t *testing.T) {
	for _, name := range Presets() {
		t.Run(name, func(t *testing.T) {
			p, err := Preset(name)
			if err != nil {
				t.Fatalf("Preset(%q): %v", name, err)
			}
			if findings := p.Validate(); HasErrors(findings) {
				t.Errorf("preset %q fails validation: %v", name, findings)
			}
			if p.Name != name {
				t.Errorf("preset %q carries name %q", name, p.Name)
			}
		})
	}
}

func TestPresetsSorted(t *testing.T) {
	names := Presets()
	if len(names) == 0 {
		t.Fatal("no presets registered")
	}
	if !sort.StringsAreSorted(names) {
		t.Errorf("preset names not sorted: %v", names)
	}
}

func TestUnknownPreset(t *testing.T) {
	if _, err := Preset("giant_sequoia"); err == nil {
		t.Fatal("expected error for unknown preset")
	}
}

func TestPresetReturnsCopy(t *testing.T) {
	a, err := Preset("quaking_aspen")
	if err != nil {
		t.Fatal(err)
	}
	a.Branches[1] = 999
	b, err := Preset("quaking_aspen")
	if err != nil {
		t.Fatal(err)
	}
	if b.Branches[1] == 999 {
		t.Error("mutating a looked-up preset leaked into the catalog")
	}
}
