package skeleton

import (
	"math"

	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Frame is an orthonormal orientation triad carried by the turtle and by
// the parametric generator while sweeping a stem. Heading is the growth
// direction; Right and Up complete a right-handed basis.
type Frame struct {
	Heading v3.Vec
	Right   v3.Vec
	Up      v3.Vec
}

// Upright returns the canonical starting frame: heading along +Z with
// Right along +X and Up along +Y.
func Upright() Frame {
	return Frame{
		Heading: v3.Vec{Z: 1},
		Right:   v3.Vec{X: 1},
		Up:      v3.Vec{Y: 1},
	}
}

// FrameFor builds an orthonormal frame whose heading follows the given
// direction. The remaining axes are chosen deterministically from a world
// reference so repeated calls with the same tangent agree.
func FrameFor(heading v3.Vec) Frame {
	h := heading.Normalize()
	ref := v3.Vec{Z: 1}
	if math.Abs(h.Dot(ref)) > 0.999 {
		ref = v3.Vec{X: 1}
	}
	right := h.Cross(ref).Normalize()
	up := right.Cross(h)
	return Frame{Heading: h, Right: right, Up: up}
}

// rotate applies an axis/angle rotation to all three frame vectors.
func (f Frame) rotate(axis v3.Vec, degrees float64) Frame {
	if degrees == 0 {
		return f
	}
	m := sdf.Rotate3d(axis.Normalize(), degrees*math.Pi/180)
	return Frame{
		Heading: m.MulPosition(f.Heading),
		Right:   m.MulPosition(f.Right),
		Up:      m.MulPosition(f.Up),
	}
}

// Turn rotates the frame about its Up axis (yaw). Positive turns left.
func (f Frame) Turn(degrees float64) Frame {
	return f.rotate(f.Up, degrees)
}

// Pitch rotates the frame about its Right axis. Positive pitches down.
func (f Frame) Pitch(degrees float64) Frame {
	return f.rotate(f.Right, degrees)
}

// Roll rotates the frame about its Heading axis.
func (f Frame) Roll(degrees float64) Frame {
	return f.rotate(f.Heading, degrees)
}

// RotateAbout rotates the frame about an arbitrary world axis.
func (f Frame) RotateAbout(axis v3.Vec, degrees float64) Frame {
	if axis.Length() == 0 {
		return f
	}
	return f.rotate(axis, degrees)
}
