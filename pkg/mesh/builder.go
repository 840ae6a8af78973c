package mesh

import (
	"fmt"
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/arbor/pkg/foliage"
	"github.com/chazu/arbor/pkg/skeleton"
)

// apexRadius is the radius below which a stem tip collapses to a single
// apex vertex instead of a final ring.
const apexRadius = 1e-9

// Build emits the triangle mesh for a skeleton and its foliage instances.
// Each stem becomes a lofted tube in its own group; degenerate stems are
// skipped with a warning rather than emitted as zero-area geometry.
func Build(skel *skeleton.Skeleton, instances []foliage.Instance) (*Mesh, []skeleton.Warning) {
	m := New()
	var warnings []skeleton.Warning

	for _, st := range skel.Stems {
		if len(st.Points) < 2 || st.Length() == 0 {
			warnings = append(warnings, skeleton.Warning{
				Kind:    skeleton.WarnDegenerateGeometry,
				Message: fmt.Sprintf("stem %d has no extent; skipped", st.ID),
			})
			continue
		}
		buildStem(m, st)
	}

	for _, inst := range instances {
		buildInstance(m, inst)
	}

	return m, warnings
}

// segmentsForLevel picks the ring vertex count for a stem. Trunks get the
// most, deeper levels fewer, never below a triangle.
func segmentsForLevel(level int) int {
	n := 8 - 2*level
	if n < 3 {
		n = 3
	}
	return n
}

// buildStem lofts ring cross-sections along the stem centerline using a
// parallel-transported frame, caps the base with a fan, and closes the tip
// with either a final ring cap or a single apex vertex when the tip radius
// has tapered to nothing.
func buildStem(m *Mesh, st *skeleton.Stem) {
	group := fmt.Sprintf("stem_%d_%d", st.Level, st.ID)
	segs := segmentsForLevel(st.Level)

	tangents := pointTangents(st)
	frame := skeleton.FrameFor(tangents[0])

	last := len(st.Points) - 1
	apex := st.Points[last].Radius < apexRadius

	var prev []int
	for i, pt := range st.Points {
		if i > 0 {
			frame = transport(frame, tangents[i-1], tangents[i])
		}
		if apex && i == last {
			tip := m.AddVertex(pt.Pos)
			for k := 0; k < segs; k++ {
				m.AddFace(group, prev[k], prev[(k+1)%segs], tip)
			}
			return
		}

		ring := addRing(m, pt.Pos, frame, pt.Radius, segs)
		if i == 0 {
			// Base cap, wound to face downward.
			center := m.AddVertex(pt.Pos)
			for k := 0; k < segs; k++ {
				m.AddFace(group, center, ring[(k+1)%segs], ring[k])
			}
		} else {
			for k := 0; k < segs; k++ {
				m.AddFace(group, prev[k], prev[(k+1)%segs], ring[(k+1)%segs], ring[k])
			}
		}
		prev = ring
	}

	// Tip cap for blunt stems.
	center := m.AddVertex(st.Points[last].Pos)
	for k := 0; k < segs; k++ {
		m.AddFace(group, prev[k], prev[(k+1)%segs], center)
	}
}

// pointTangents computes a unit tangent per centerline point: segment
// directions averaged at interior points, one-sided at the ends.
func pointTangents(st *skeleton.Stem) []v3.Vec {
	n := len(st.Points)
	dirs := make([]v3.Vec, n-1)
	for i := 0; i < n-1; i++ {
		d := st.Points[i+1].Pos.Sub(st.Points[i].Pos)
		if d.Length() == 0 {
			d = v3.Vec{Z: 1}
		}
		dirs[i] = d.Normalize()
	}
	tans := make([]v3.Vec, n)
	tans[0] = dirs[0]
	tans[n-1] = dirs[n-2]
	for i := 1; i < n-1; i++ {
		sum := dirs[i-1].Add(dirs[i])
		if sum.Length() < 1e-9 {
			tans[i] = dirs[i]
			continue
		}
		tans[i] = sum.Normalize()
	}
	return tans
}

// transport rotates a frame by the minimal rotation carrying one tangent
// onto the next. Keeping the twist minimal stops ring seams from spiraling
// around curved stems.
func transport(f skeleton.Frame, from, to v3.Vec) skeleton.Frame {
	axis := from.Cross(to)
	if axis.Length() < 1e-12 {
		return f
	}
	dot := from.Dot(to)
	if dot > 1 {
		dot = 1
	}
	if dot < -1 {
		dot = -1
	}
	return f.RotateAbout(axis, math.Acos(dot)*180/math.Pi)
}

// addRing emits one circular cross-section of segs vertices around pos in
// the plane spanned by the frame's Right and Up axes.
func addRing(m *Mesh, pos v3.Vec, f skeleton.Frame, radius float64, segs int) []int {
	ring := make([]int, segs)
	for k := 0; k < segs; k++ {
		theta := 2 * math.Pi * float64(k) / float64(segs)
		offset := f.Right.MulScalar(radius * math.Cos(theta)).Add(f.Up.MulScalar(radius * math.Sin(theta)))
		ring[k] = m.AddVertex(pos.Add(offset))
	}
	return ring
}

// buildInstance fans a leaf or blossom outline into triangles around its
// centroid. The outline's Y axis maps to the instance heading and X to its
// Right axis, scaled per instance.
func buildInstance(m *Mesh, inst foliage.Instance) {
	group := "leaves"
	if inst.Kind == foliage.KindBlossom {
		group = "blossoms"
	}

	var cx, cy float64
	for _, p := range inst.Outline {
		cx += p.X
		cy += p.Y
	}
	n := float64(len(inst.Outline))
	cx /= n
	cy /= n

	toWorld := func(p foliage.Point2) v3.Vec {
		return inst.Pos.
			Add(inst.Frame.Right.MulScalar(p.X * inst.Scale * inst.ScaleX)).
			Add(inst.Frame.Heading.MulScalar(p.Y * inst.Scale))
	}

	center := m.AddVertex(toWorld(foliage.Point2{X: cx, Y: cy}))
	ring := make([]int, len(inst.Outline))
	for i, p := range inst.Outline {
		ring[i] = m.AddVertex(toWorld(p))
	}
	for i := range ring {
		m.AddFace(group, center, ring[i], ring[(i+1)%len(ring)])
	}
}
