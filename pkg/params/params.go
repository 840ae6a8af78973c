// Package params defines the typed parameter bundles that drive parametric
// tree generation: the shape class, global scale, per-level branching
// parameters, the pruning envelope, and leaf/blossom placement settings.
// A ParameterSet is either looked up from the built-in preset catalog,
// loaded from a YAML file, or assembled ad hoc ("custom"). Once handed to
// a generator it is treated as immutable; generators take a value copy.
package params

import "fmt"

// Shape enumerates the tree silhouette classes. The shape class selects
// the length profile applied to first-level branches along the trunk.
type Shape int

const (
	ShapeConical Shape = iota
	ShapeSpherical
	ShapeHemispherical
	ShapeCylindrical
	ShapeTaperedCylindrical
	ShapeFlame
	ShapeInverseConical
	ShapeTendFlame
	ShapeCustom // silhouette comes from the pruning envelope
)

func (s Shape) String() string {
	switch s {
	case ShapeConical:
		return "conical"
	case ShapeSpherical:
		return "spherical"
	case ShapeHemispherical:
		return "hemispherical"
	case ShapeCylindrical:
		return "cylindrical"
	case ShapeTaperedCylindrical:
		return "tapered-cylindrical"
	case ShapeFlame:
		return "flame"
	case ShapeInverseConical:
		return "inverse-conical"
	case ShapeTendFlame:
		return "tend-flame"
	case ShapeCustom:
		return "custom"
	default:
		return "unknown"
	}
}

// ShapeFromName resolves a shape name as used in YAML files and the DSL.
func ShapeFromName(name string) (Shape, error) {
	for s := ShapeConical; s <= ShapeCustom; s++ {
		if s.String() == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown shape %q", name)
}

// LeafShape enumerates the leaf silhouette outlines.
type LeafShape int

const (
	LeafOvate LeafShape = iota
	LeafLinear
	LeafCordate
	LeafMaple
	LeafPalmate
	LeafSpikyOak
	LeafRoundedOak
	LeafElliptic
	LeafRectangle
	LeafTriangle
)

func (s LeafShape) String() string {
	switch s {
	case LeafOvate:
		return "ovate"
	case LeafLinear:
		return "linear"
	case LeafCordate:
		return "cordate"
	case LeafMaple:
		return "maple"
	case LeafPalmate:
		return "palmate"
	case LeafSpikyOak:
		return "spiky-oak"
	case LeafRoundedOak:
		return "rounded-oak"
	case LeafElliptic:
		return "elliptic"
	case LeafRectangle:
		return "rectangle"
	case LeafTriangle:
		return "triangle"
	default:
		return "unknown"
	}
}

// LeafShapeFromName resolves a leaf shape name.
func LeafShapeFromName(name string) (LeafShape, error) {
	for s := LeafOvate; s <= LeafTriangle; s++ {
		if s.String() == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown leaf shape %q", name)
}

// BlossomShape enumerates the blossom silhouette outlines.
type BlossomShape int

const (
	BlossomCherry BlossomShape = iota
	BlossomOrange
	BlossomMagnolia
)

func (s BlossomShape) String() string {
	switch s {
	case BlossomCherry:
		return "cherry"
	case BlossomOrange:
		return "orange"
	case BlossomMagnolia:
		return "magnolia"
	default:
		return "unknown"
	}
}

// BlossomShapeFromName resolves a blossom shape name.
func BlossomShapeFromName(name string) (BlossomShape, error) {
	for s := BlossomCherry; s <= BlossomMagnolia; s++ {
		if s.String() == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown blossom shape %q", name)
}

// MaxLevels bounds the recursion depth of the parametric generator.
const MaxLevels = 6

// PruneParams parameterizes the pruning envelope: the silhouette bound
// that rejects or reshapes stems extending outside the intended crown.
type PruneParams struct {
	Ratio     float64 `yaml:"ratio"`      // 0 disables pruning, 1 prunes fully to the envelope
	Width     float64 `yaml:"width"`      // envelope width as a fraction of tree scale
	WidthPeak float64 `yaml:"width_peak"` // relative height of the widest point, [0,1)
	PowerLow  float64 `yaml:"power_low"`  // curvature below the peak (<1 convex, >1 concave)
	PowerHigh float64 `yaml:"power_high"` // curvature above the peak
}

// LeafParams controls leaf placement on terminal stems.
type LeafParams struct {
	Count  int       `yaml:"count"` // total leaf+blossom instances across the tree
	Shape  LeafShape `yaml:"shape"`
	Scale  float64   `yaml:"scale"`
	ScaleX float64   `yaml:"scale_x"` // width multiplier relative to Scale
	Bend   float64   `yaml:"bend"`    // 0 follows the stem, 1 fully toward the light
}

// BlossomParams controls blossom placement. When enabled, a Rate-scaled
// subset of leaf instances is replaced with blossoms.
type BlossomParams struct {
	Enabled bool         `yaml:"enabled"`
	Shape   BlossomShape `yaml:"shape"`
	Scale   float64      `yaml:"scale"`
	Rate    float64      `yaml:"rate"` // fraction of instances that become blossoms, [0,1]
}

// ParameterSet is the complete bundle of parametric generation inputs.
// Per-level slices are indexed by branching level (0 = trunk) and clamped
// to their last element when Levels exceeds their length.
type ParameterSet struct {
	Name  string `yaml:"name"`
	Shape Shape  `yaml:"shape"`

	GScale  float64 `yaml:"g_scale"`   // overall tree scale
	GScaleV float64 `yaml:"g_scale_v"` // scale variance
	Levels  int     `yaml:"levels"`    // branching level count, 1..MaxLevels

	Ratio      float64 `yaml:"ratio"`       // trunk radius / trunk length
	RatioPower float64 `yaml:"ratio_power"` // child radius falloff exponent
	Flare      float64 `yaml:"flare"`       // base radius widening at the trunk root
	BaseSize   float64 `yaml:"base_size"`   // bare fraction of the trunk, [0,1)

	FloorSplits         int  `yaml:"floor_splits"` // extra trunks cloned at ground level
	BaseSplits          int  `yaml:"base_splits"`  // trunk splits at the first segment
	BaseSplitsRandomize bool `yaml:"base_splits_randomize"`

	Prune PruneParams `yaml:"prune"`

	// Per-level stem parameters. Angles are in degrees.
	Length      []float64 `yaml:"length"`        // relative stem length
	LengthV     []float64 `yaml:"length_v"`      // length variance
	Taper       []float64 `yaml:"taper"`         // radius falloff along the stem, [0,1]
	CurveRes    []int     `yaml:"curve_res"`     // centerline samples per stem
	Curve       []float64 `yaml:"curve"`         // total curvature over the stem
	CurveV      []float64 `yaml:"curve_v"`       // curvature variance
	CurveBack   []float64 `yaml:"curve_back"`    // opposing curvature for the second half
	SegSplits   []float64 `yaml:"seg_splits"`    // expected splits per segment
	SplitAngle  []float64 `yaml:"split_angle"`   // declination between split clones
	SplitAngleV []float64 `yaml:"split_angle_v"`
	DownAngle   []float64 `yaml:"down_angle"`   // child declination from the parent tangent
	DownAngleV  []float64 `yaml:"down_angle_v"`
	Rotate      []float64 `yaml:"rotate"` // spiral angle between successive children
	RotateV     []float64 `yaml:"rotate_v"`
	Branches    []int     `yaml:"branches"` // child count per level

	Leaf    LeafParams    `yaml:"leaf"`
	Blossom BlossomParams `yaml:"blossom"`
}

// Defaults returns a baseline ParameterSet matching the classic quaking
// aspen defaults. Custom bundles typically start from this and override.
func Defaults() ParameterSet {
	return ParameterSet{
		Name:        "custom",
		Shape:       ShapeTendFlame,
		GScale:      13,
		GScaleV:     3,
		Levels:      3,
		Ratio:       0.015,
		RatioPower:  1.2,
		Flare:       0.6,
		BaseSize:    0.3,
		Length:      []float64{1, 0.3, 0.6, 0.4},
		LengthV:     []float64{0, 0, 0, 0},
		Taper:       []float64{1, 1, 1, 1},
		CurveRes:    []int{5, 5, 3, 1},
		Curve:       []float64{0, -40, -40, 0},
		CurveV:      []float64{20, 50, 75, 0},
		CurveBack:   []float64{0, 0, 0, 0},
		SegSplits:   []float64{0, 0, 0, 0},
		SplitAngle:  []float64{40, 0, 0, 0},
		SplitAngleV: []float64{5, 0, 0, 0},
		DownAngle:   []float64{0, 60, 45, 45},
		DownAngleV:  []float64{0, -50, 10, 10},
		Rotate:      []float64{0, 140, 140, 77},
		RotateV:     []float64{0, 0, 0, 0},
		Branches:    []int{0, 50, 30, 10},
		Prune: PruneParams{
			Ratio:     0,
			Width:     0.5,
			WidthPeak: 0.5,
			PowerLow:  0.5,
			PowerHigh: 0.5,
		},
		Leaf: LeafParams{
			Count:  40,
			Shape:  LeafOvate,
			Scale:  0.17,
			ScaleX: 1,
			Bend:   0.6,
		},
		Blossom: BlossomParams{
			Enabled: false,
			Shape:   BlossomCherry,
			Scale:   1,
			Rate:    0,
		},
	}
}

// Clone returns a deep copy of the parameter set. The per-level slices
// get fresh backing arrays so mutating the copy never leaks into the
// original.
func (p ParameterSet) Clone() ParameterSet {
	out := p
	out.Length = append([]float64(nil), p.Length...)
	out.LengthV = append([]float64(nil), p.LengthV...)
	out.Taper = append([]float64(nil), p.Taper...)
	out.CurveRes = append([]int(nil), p.CurveRes...)
	out.Curve = append([]float64(nil), p.Curve...)
	out.CurveV = append([]float64(nil), p.CurveV...)
	out.CurveBack = append([]float64(nil), p.CurveBack...)
	out.SegSplits = append([]float64(nil), p.SegSplits...)
	out.SplitAngle = append([]float64(nil), p.SplitAngle...)
	out.SplitAngleV = append([]float64(nil), p.SplitAngleV...)
	out.DownAngle = append([]float64(nil), p.DownAngle...)
	out.DownAngleV = append([]float64(nil), p.DownAngleV...)
	out.Rotate = append([]float64(nil), p.Rotate...)
	out.RotateV = append([]float64(nil), p.RotateV...)
	out.Branches = append([]int(nil), p.Branches...)
	return out
}

// LevelF indexes a per-level float slice, clamping to the last element.
func LevelF(vals []float64, level int) float64 {
	if len(vals) == 0 {
		return 0
	}
	if level >= len(vals) {
		level = len(vals) - 1
	}
	return vals[level]
}

// LevelI indexes a per-level int slice, clamping to the last element.
func LevelI(vals []int, level int) int {
	if len(vals) == 0 {
		return 0
	}
	if level >= len(vals) {
		level = len(vals) - 1
	}
	return vals[level]
}
