package params

import (
	"fmt"
	"sort"
)

// presetCatalog holds the built-in named parameter bundles. The catalog is
// enumerated in code rather than discovered from a folder scan; callers
// resolve names through Preset and list them through Presets.
var presetCatalog = map[string]ParameterSet{
	"quaking_aspen":  quakingAspen(),
	"black_tupelo":   blackTupelo(),
	"black_oak":      blackOak(),
	"european_larch": europeanLarch(),
	"weeping_willow": weepingWillow(),
}

// Presets returns the sorted names of all built-in parameter bundles.
func Presets() []string {
	names := make([]string, 0, len(presetCatalog))
	for name := range presetCatalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Preset returns a deep copy of the named built-in parameter bundle, so
// callers may adjust it without touching the catalog.
func Preset(name string) (ParameterSet, error) {
	p, ok := presetCatalog[name]
	if !ok {
		return ParameterSet{}, fmt.Errorf("no preset named %q", name)
	}
	return p.Clone(), nil
}

func quakingAspen() ParameterSet {
	p := Defaults()
	p.Name = "quaking_aspen"
	return p
}

func blackTupelo() ParameterSet {
	p := Defaults()
	p.Name = "black_tupelo"
	p.Shape = ShapeTaperedCylindrical
	p.GScale = 23
	p.GScaleV = 5
	p.Levels = 4
	p.Ratio = 0.015
	p.RatioPower = 1.3
	p.Flare = 1
	p.BaseSize = 0.4
	p.Length = []float64{1, 0.3, 0.6, 0.4}
	p.Taper = []float64{1, 1, 1, 1}
	p.CurveRes = []int{10, 10, 10, 1}
	p.Curve = []float64{0, 0, -10, 0}
	p.CurveV = []float64{40, 90, 150, 0}
	p.DownAngle = []float64{0, 60, 30, 45}
	p.DownAngleV = []float64{0, -40, 10, 10}
	p.Rotate = []float64{0, 140, 140, 140}
	p.Branches = []int{0, 50, 25, 12}
	p.Leaf.Count = 60
	p.Leaf.Scale = 0.3
	return p
}

func blackOak() ParameterSet {
	p := Defaults()
	p.Name = "black_oak"
	p.Shape = ShapeHemispherical
	p.GScale = 10
	p.GScaleV = 2
	p.Levels = 3
	p.Ratio = 0.018
	p.RatioPower = 1.3
	p.Flare = 1.2
	p.BaseSize = 0.05
	p.Length = []float64{1, 0.3, 0.4, 0.4}
	p.LengthV = []float64{0, 0.05, 0.1, 0}
	p.Taper = []float64{0.95, 1, 1, 1}
	p.CurveRes = []int{8, 10, 8, 1}
	p.Curve = []float64{0, 40, 0, 0}
	p.CurveV = []float64{90, 150, -30, 0}
	p.CurveBack = []float64{0, -70, 0, 0}
	p.SegSplits = []float64{0.4, 0.2, 0.1, 0}
	p.SplitAngle = []float64{10, 10, 10, 0}
	p.SplitAngleV = []float64{0, 10, 10, 0}
	p.DownAngle = []float64{0, 30, 45, 45}
	p.Rotate = []float64{0, 80, 140, 140}
	p.Branches = []int{0, 40, 30, 0}
	p.BaseSplits = 2
	p.Leaf.Count = 50
	p.Leaf.Shape = LeafRoundedOak
	p.Leaf.Scale = 0.35
	return p
}

func europeanLarch() ParameterSet {
	p := Defaults()
	p.Name = "european_larch"
	p.Shape = ShapeConical
	p.GScale = 15
	p.GScaleV = 7
	p.Levels = 3
	p.Ratio = 0.015
	p.RatioPower = 1.3
	p.Flare = 0.3
	p.BaseSize = 0.25
	p.Length = []float64{1, 0.25, 0.3, 0}
	p.LengthV = []float64{0, 0.1, 0.05, 0}
	p.Taper = []float64{1, 1, 1, 1}
	p.CurveRes = []int{20, 16, 7, 1}
	p.Curve = []float64{0, -20, 0, 0}
	p.CurveV = []float64{20, 120, 0, 0}
	p.CurveBack = []float64{0, 0, -30, 0}
	p.DownAngle = []float64{0, 70, 60, 45}
	p.DownAngleV = []float64{0, 20, 20, 10}
	p.Rotate = []float64{0, 100, 100, 77}
	p.Branches = []int{0, 60, 50, 0}
	p.Leaf.Count = 100
	p.Leaf.Shape = LeafLinear
	p.Leaf.Scale = 0.1
	return p
}

func weepingWillow() ParameterSet {
	p := Defaults()
	p.Name = "weeping_willow"
	p.Shape = ShapeCylindrical
	p.GScale = 15
	p.GScaleV = 5
	p.Levels = 4
	p.Ratio = 0.03
	p.RatioPower = 2
	p.Flare = 0.75
	p.BaseSize = 0.05
	p.Length = []float64{0.8, 0.5, 1.5, 0.1}
	p.LengthV = []float64{0, 0.1, 0, 0}
	p.Taper = []float64{1, 1, 1, 1}
	p.CurveRes = []int{8, 16, 12, 1}
	p.Curve = []float64{0, 40, 0, 0}
	p.CurveV = []float64{120, 90, 0, 0}
	p.CurveBack = []float64{20, 80, 0, 0}
	p.SegSplits = []float64{0.1, 0.2, 0.2, 0}
	p.SplitAngle = []float64{3, 30, 45, 0}
	p.SplitAngleV = []float64{0, 10, 20, 0}
	p.DownAngle = []float64{0, 20, 30, 20}
	p.DownAngleV = []float64{0, 10, 10, 10}
	p.Rotate = []float64{0, -120, -120, 140}
	p.Branches = []int{0, 25, 10, 5}
	p.BaseSplits = 2
	p.Leaf.Count = 70
	p.Leaf.Scale = 0.12
	p.Leaf.Bend = 0.3
	return p
}
