package parametric

import (
	"math"
	"testing"

	"github.com/chazu/arbor/pkg/params"
)

func TestShapeRatioProfiles(t *testing.T) {
	tests := []struct {
		shape params.Shape
		ratio float64
		want  float64
	}{
		{params.ShapeConical, 0, 0.2},
		{params.ShapeConical, 1, 1},
		{params.ShapeConical, 0.5, 0.6},
		{params.ShapeSpherical, 0.5, 1},
		{params.ShapeHemispherical, 1, 1},
		{params.ShapeCylindrical, 0, 1},
		{params.ShapeCylindrical, 1, 1},
		{params.ShapeTaperedCylindrical, 0, 0.5},
		{params.ShapeTaperedCylindrical, 1, 1},
		{params.ShapeFlame, 0.7, 1},
		{params.ShapeFlame, 1, 0},
		{params.ShapeInverseConical, 0, 1},
		{params.ShapeInverseConical, 1, 0.2},
		{params.ShapeTendFlame, 0.7, 1},
	}
	for _, tt := range tests {
		p := params.Defaults()
		p.Shape = tt.shape
		got := shapeRatio(p, tt.ratio)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("shapeRatio(%v, %g) = %g, want %g", tt.shape, tt.ratio, got, tt.want)
		}
	}
}

func TestShapeRatioClampsInput(t *testing.T) {
	p := params.Defaults()
	p.Shape = params.ShapeConical
	if got := shapeRatio(p, -0.5); got != 0.2 {
		t.Errorf("ratio below 0 should clamp: got %g", got)
	}
	if got := shapeRatio(p, 1.5); got != 1 {
		t.Errorf("ratio above 1 should clamp: got %g", got)
	}
}

func TestEnvelopeRatio(t *testing.T) {
	prune := params.PruneParams{Width: 0.5, WidthPeak: 0.5, PowerLow: 0.5, PowerHigh: 0.5}

	// Widest point sits at the peak boundary.
	if got := envelopeRatio(prune, 0.5); math.Abs(got-1) > 1e-9 {
		t.Errorf("envelope at peak = %g, want 1", got)
	}
	// Outside [0,1] the envelope is closed.
	if envelopeRatio(prune, -0.1) != 0 || envelopeRatio(prune, 1.1) != 0 {
		t.Error("envelope must be zero outside [0, 1]")
	}
	// Endpoints pinch to zero width.
	if envelopeRatio(prune, 0) != 0 {
		t.Error("envelope at 0 should be 0")
	}
	if envelopeRatio(prune, 1) != 0 {
		t.Error("envelope at 1 should be 0")
	}
}

func TestFlareMultiplier(t *testing.T) {
	// Peak at the base: flare*(100^1-1)/100 + 1.
	want := 0.6*0.99 + 1
	if got := flareMultiplier(0.6, 0); math.Abs(got-want) > 1e-9 {
		t.Errorf("flare at base = %g, want %g", got, want)
	}
	// Decayed to 1 past the first eighth of the stem.
	if got := flareMultiplier(0.6, 0.2); math.Abs(got-1) > 1e-9 {
		t.Errorf("flare at t=0.2 = %g, want 1", got)
	}
	if got := flareMultiplier(0, 0); got != 1 {
		t.Errorf("zero flare = %g, want 1", got)
	}
}

func TestRadiusAt(t *testing.T) {
	p := params.Defaults()
	p.Flare = 0
	p.Taper = []float64{1, 1}

	if got := radiusAt(p, 1, 0.1, 0); got != 0.1 {
		t.Errorf("radius at base = %g, want 0.1", got)
	}
	if got := radiusAt(p, 1, 0.1, 1); got != 0 {
		t.Errorf("radius at tip with full taper = %g, want 0", got)
	}
	if got := radiusAt(p, 1, 0.1, 0.5); math.Abs(got-0.05) > 1e-12 {
		t.Errorf("radius at midpoint = %g, want 0.05", got)
	}
}
