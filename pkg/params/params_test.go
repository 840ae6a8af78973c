package params

import "testing"

func TestShapeNameRoundTrip(t *testing.T) {
	for s := ShapeConical; s <= ShapeCustom; s++ {
		parsed, err := ShapeFromName(s.String())
		if err != nil {
			t.Fatalf("ShapeFromName(%q): %v", s.String(), err)
		}
		if parsed != s {
			t.Errorf("round trip %q: got %v, want %v", s.String(), parsed, s)
		}
	}
	if _, err := ShapeFromName("pyramid"); err == nil {
		t.Error("expected error for unknown shape name")
	}
}

func TestLeafShapeNameRoundTrip(t *testing.T) {
	for s := LeafOvate; s <= LeafTriangle; s++ {
		parsed, err := LeafShapeFromName(s.String())
		if err != nil {
			t.Fatalf("LeafShapeFromName(%q): %v", s.String(), err)
		}
		if parsed != s {
			t.Errorf("round trip %q: got %v, want %v", s.String(), parsed, s)
		}
	}
}

func TestBlossomShapeNameRoundTrip(t *testing.T) {
	for s := BlossomCherry; s <= BlossomMagnolia; s++ {
		parsed, err := BlossomShapeFromName(s.String())
		if err != nil {
			t.Fatalf("BlossomShapeFromName(%q): %v", s.String(), err)
		}
		if parsed != s {
			t.Errorf("round trip %q: got %v, want %v", s.String(), parsed, s)
		}
	}
}

func TestLevelIndexingClamps(t *testing.T) {
	vals := []float64{1, 2, 3}
	if got := LevelF(vals, 0); got != 1 {
		t.Errorf("LevelF level 0 = %g, want 1", got)
	}
	if got := LevelF(vals, 2); got != 3 {
		t.Errorf("LevelF level 2 = %g, want 3", got)
	}
	if got := LevelF(vals, 7); got != 3 {
		t.Errorf("LevelF past the end = %g, want last element 3", got)
	}
	if got := LevelF(nil, 0); got != 0 {
		t.Errorf("LevelF on empty slice = %g, want 0", got)
	}

	ints := []int{4, 5}
	if got := LevelI(ints, 3); got != 5 {
		t.Errorf("LevelI past the end = %d, want last element 5", got)
	}
	if got := LevelI(nil, 0); got != 0 {
		t.Errorf("LevelI on empty slice = %d, want 0", got)
	}
}
