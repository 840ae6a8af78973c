// Package skeleton defines the branch skeleton shared by both generators:
// a flat arena of stems linked by integer IDs (never embedded pointers),
// forming a single-rooted tree. The mesh builder consumes a Skeleton and
// discards it after emission.
package skeleton

import (
	"fmt"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// StemID indexes a stem within a Skeleton's arena.
type StemID int

// NoStem is the parent ID of the root stem.
const NoStem StemID = -1

// Point is one centerline sample of a stem: a position with the branch
// radius at that position.
type Point struct {
	Pos    v3.Vec
	Radius float64
}

// Stem is one contiguous curved branch segment at a branching level
// (0 = trunk). Its points form a time-ordered polyline with no degenerate
// segments; radius is non-increasing along the stem except where a flare
// override applies at the trunk base.
type Stem struct {
	ID       StemID
	Level    int
	Parent   StemID
	Children []StemID
	Points   []Point
}

// Length returns the polyline arc length of the stem.
func (s *Stem) Length() float64 {
	total := 0.0
	for i := 1; i < len(s.Points); i++ {
		total += s.Points[i].Pos.Sub(s.Points[i-1].Pos).Length()
	}
	return total
}

// PointAt returns the interpolated position at arc-length fraction t in
// [0, 1] along the stem.
func (s *Stem) PointAt(t float64) v3.Vec {
	pos, _ := s.sampleAt(t)
	return pos
}

// TangentAt returns the unit direction of the stem at arc-length
// fraction t in [0, 1].
func (s *Stem) TangentAt(t float64) v3.Vec {
	_, tan := s.sampleAt(t)
	return tan
}

func (s *Stem) sampleAt(t float64) (v3.Vec, v3.Vec) {
	if len(s.Points) == 0 {
		return v3.Vec{}, v3.Vec{Z: 1}
	}
	if len(s.Points) == 1 {
		return s.Points[0].Pos, v3.Vec{Z: 1}
	}
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	target := t * s.Length()
	walked := 0.0
	for i := 1; i < len(s.Points); i++ {
		seg := s.Points[i].Pos.Sub(s.Points[i-1].Pos)
		segLen := seg.Length()
		if walked+segLen >= target && segLen > 0 {
			frac := (target - walked) / segLen
			pos := s.Points[i-1].Pos.Add(seg.MulScalar(frac))
			return pos, seg.Normalize()
		}
		walked += segLen
	}
	last := s.Points[len(s.Points)-1].Pos
	tan := last.Sub(s.Points[len(s.Points)-2].Pos)
	if tan.Length() == 0 {
		return last, v3.Vec{Z: 1}
	}
	return last, tan.Normalize()
}

// Skeleton is the full parent-linked tree of stems for one generated tree.
type Skeleton struct {
	Stems []*Stem
}

// New creates an empty Skeleton.
func New() *Skeleton {
	return &Skeleton{}
}

// NewStem appends a stem to the arena and wires the parent's child link.
// Parent must be NoStem (root) or an existing stem ID.
func (sk *Skeleton) NewStem(level int, parent StemID) *Stem {
	st := &Stem{
		ID:     StemID(len(sk.Stems)),
		Level:  level,
		Parent: parent,
	}
	sk.Stems = append(sk.Stems, st)
	if parent != NoStem {
		p := sk.Get(parent)
		p.Children = append(p.Children, st.ID)
	}
	return st
}

// Get returns the stem with the given ID, or nil.
func (sk *Skeleton) Get(id StemID) *Stem {
	if id < 0 || int(id) >= len(sk.Stems) {
		return nil
	}
	return sk.Stems[id]
}

// Root returns the root stem, or nil for an empty skeleton.
func (sk *Skeleton) Root() *Stem {
	for _, st := range sk.Stems {
		if st.Parent == NoStem {
			return st
		}
	}
	return nil
}

// LevelCount returns the number of distinct stem levels (max level + 1).
func (sk *Skeleton) LevelCount() int {
	max := -1
	for _, st := range sk.Stems {
		if st.Level > max {
			max = st.Level
		}
	}
	return max + 1
}

// TerminalStems returns the stems at the deepest branching level. These
// are the foliage anchors for leaf/blossom placement.
func (sk *Skeleton) TerminalStems() []*Stem {
	depth := sk.LevelCount() - 1
	var out []*Stem
	for _, st := range sk.Stems {
		if st.Level == depth && len(st.Points) >= 2 {
			out = append(out, st)
		}
	}
	return out
}

// Validate checks the structural invariants: exactly one root, valid
// parent references forming no cycles, and no degenerate (zero-length)
// polyline segments.
func (sk *Skeleton) Validate() error {
	roots := 0
	for _, st := range sk.Stems {
		if st.Parent == NoStem {
			roots++
			continue
		}
		if sk.Get(st.Parent) == nil {
			return fmt.Errorf("stem %d: parent %d does not exist", st.ID, st.Parent)
		}
		// Arena order guarantees acyclicity: a stem is always appended
		// after its parent.
		if st.Parent >= st.ID {
			return fmt.Errorf("stem %d: parent %d is not an ancestor", st.ID, st.Parent)
		}
	}
	if len(sk.Stems) > 0 && roots != 1 {
		return fmt.Errorf("skeleton has %d roots, want 1", roots)
	}
	for _, st := range sk.Stems {
		for i := 1; i < len(st.Points); i++ {
			if st.Points[i].Pos.Sub(st.Points[i-1].Pos).Length() == 0 {
				return fmt.Errorf("stem %d: degenerate segment at point %d", st.ID, i)
			}
		}
	}
	return nil
}
