package parametric

import (
	"math"

	"github.com/chazu/arbor/pkg/params"
)

// shapeRatio maps a relative position along the trunk (1 at the base of
// the crown, 0 at the tip) to a branch length multiplier, selecting the
// tree silhouette. ShapeCustom delegates to the pruning envelope curve.
func shapeRatio(p params.ParameterSet, ratio float64) float64 {
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	switch p.Shape {
	case params.ShapeConical:
		return 0.2 + 0.8*ratio
	case params.ShapeSpherical:
		return 0.2 + 0.8*math.Sin(math.Pi*ratio)
	case params.ShapeHemispherical:
		return 0.2 + 0.8*math.Sin(0.5*math.Pi*ratio)
	case params.ShapeCylindrical:
		return 1.0
	case params.ShapeTaperedCylindrical:
		return 0.5 + 0.5*ratio
	case params.ShapeFlame:
		if ratio <= 0.7 {
			return ratio / 0.7
		}
		return (1 - ratio) / 0.3
	case params.ShapeInverseConical:
		return 1 - 0.8*ratio
	case params.ShapeTendFlame:
		if ratio <= 0.7 {
			return 0.5 + 0.5*ratio/0.7
		}
		return 0.5 + 0.5*(1-ratio)/0.3
	case params.ShapeCustom:
		return envelopeRatio(p.Prune, ratio)
	default:
		return 1.0
	}
}

// envelopeRatio is the pruning envelope cross-section: the relative crown
// width at relative height ratio (0 at the crown top, 1 at its base).
// WidthPeak places the widest point; PowerLow shapes the curve below it
// and PowerHigh above it (<1 convex, >1 concave).
func envelopeRatio(prune params.PruneParams, ratio float64) float64 {
	if ratio < 0 || ratio > 1 {
		return 0
	}
	span := 1 - prune.WidthPeak
	if span <= 0 {
		span = 1e-6
	}
	if ratio < span {
		return math.Pow(ratio/span, prune.PowerHigh)
	}
	return math.Pow((1-ratio)/span, prune.PowerLow)
}

// flareMultiplier widens the trunk radius near its root. t is the
// relative position along the trunk; the multiplier decays from its peak
// at the base to 1 within the first eighth of the stem.
func flareMultiplier(flare, t float64) float64 {
	if flare <= 0 {
		return 1
	}
	y := 1 - 8*t
	if y < 0 {
		y = 0
	}
	return flare*(math.Pow(100, y)-1)/100 + 1
}

// radiusAt computes the stem radius at relative position t given the base
// radius and the level's taper. The trunk additionally applies flare.
func radiusAt(p params.ParameterSet, level int, baseRadius, t float64) float64 {
	taper := params.LevelF(p.Taper, level)
	r := baseRadius * (1 - taper*t)
	if r < 0 {
		r = 0
	}
	if level == 0 {
		r *= flareMultiplier(p.Flare, t)
	}
	return r
}
