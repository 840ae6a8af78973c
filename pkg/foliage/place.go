package foliage

import (
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/arbor/pkg/params"
	"github.com/chazu/arbor/pkg/prng"
	"github.com/chazu/arbor/pkg/skeleton"
)

// Kind distinguishes leaf instances from blossom instances.
type Kind int

const (
	KindLeaf Kind = iota
	KindBlossom
)

// Instance is one placed leaf or blossom: an anchor position, a blade
// frame (Heading along the blade, Right across it), per-axis scale, and
// the outline polygon to extrude into triangles.
type Instance struct {
	Kind    Kind
	Pos     v3.Vec
	Frame   skeleton.Frame
	Scale   float64
	ScaleX  float64
	Outline []Point2
}

// Place distributes leaf.Count instances across the skeleton's terminal
// stems, weighted by stem length. The total instance count is exactly
// leaf.Count whenever at least one terminal stem exists; apportionment
// carries fractional remainders so no instance is lost to rounding.
// When blossoms are enabled, each instance is independently replaced with
// a blossom with probability blossom.Rate.
func Place(skel *skeleton.Skeleton, leaf params.LeafParams, blossom params.BlossomParams, rng *prng.Source) []Instance {
	if leaf.Count <= 0 {
		return nil
	}
	terminals := skel.TerminalStems()
	if len(terminals) == 0 {
		return nil
	}

	total := 0.0
	for _, st := range terminals {
		total += st.Length()
	}
	if total <= 0 {
		return nil
	}

	out := make([]Instance, 0, leaf.Count)
	cum := 0.0
	assigned := 0
	for _, st := range terminals {
		cum += float64(leaf.Count) * st.Length() / total
		n := int(math.Round(cum)) - assigned
		assigned += n
		for i := 0; i < n; i++ {
			t := (float64(i) + 0.5) / float64(n)
			out = append(out, place(st, t, leaf, blossom, rng))
		}
	}
	return out
}

// place builds one instance anchored at arc-length fraction t along the
// stem. The blade heading blends the stem tangent toward the vertical by
// the bend factor; the blade is then rolled randomly about its heading so
// foliage does not align in sheets.
func place(st *skeleton.Stem, t float64, leaf params.LeafParams, blossom params.BlossomParams, rng *prng.Source) Instance {
	pos := st.PointAt(t)
	tangent := st.TangentAt(t)

	up := v3.Vec{Z: 1}
	heading := tangent.MulScalar(1 - leaf.Bend).Add(up.MulScalar(leaf.Bend))
	if heading.Length() < 1e-9 {
		heading = up
	}

	f := skeleton.FrameFor(heading).Roll(rng.Uniform(0, 360))

	inst := Instance{
		Kind:    KindLeaf,
		Pos:     pos,
		Frame:   f,
		Scale:   leaf.Scale,
		ScaleX:  leaf.ScaleX,
		Outline: LeafOutline(leaf.Shape),
	}
	if blossom.Enabled && rng.Chance(blossom.Rate) {
		inst.Kind = KindBlossom
		inst.Scale = blossom.Scale
		inst.ScaleX = 1
		inst.Outline = BlossomOutline(blossom.Shape)
	}
	return inst
}
