// Package mesh converts a branch skeleton plus foliage instances into an
// indexed triangle/quad mesh: ring cross-sections lofted along each stem
// centerline, capped at base and tip, with leaf and blossom outlines fanned
// into planar polygons. Faces are grouped by origin so consumers can
// address bark, leaves, and blossoms separately.
package mesh

import (
	"errors"
	"fmt"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Face is an indexed polygon with at least three vertices, wound
// counter-clockwise when seen from outside.
type Face []int

// Mesh is an indexed polygon mesh. Groups maps a group name to the indices
// of its faces within Faces; every face belongs to exactly one group.
type Mesh struct {
	Vertices []v3.Vec
	Faces    []Face
	Groups   map[string][]int
}

// New creates an empty mesh.
func New() *Mesh {
	return &Mesh{Groups: make(map[string][]int)}
}

// AddVertex appends a vertex and returns its index.
func (m *Mesh) AddVertex(v v3.Vec) int {
	m.Vertices = append(m.Vertices, v)
	return len(m.Vertices) - 1
}

// AddFace appends a face to the named group and returns its index.
func (m *Mesh) AddFace(group string, idx ...int) int {
	f := Face(idx)
	m.Faces = append(m.Faces, f)
	fi := len(m.Faces) - 1
	m.Groups[group] = append(m.Groups[group], fi)
	return fi
}

// Validate checks structural soundness: every face has at least three
// vertices, all indices are in bounds, no face repeats a vertex, and every
// group face index exists. All findings are joined into one error.
func (m *Mesh) Validate() error {
	var errs []error
	for fi, f := range m.Faces {
		if len(f) < 3 {
			errs = append(errs, fmt.Errorf("face %d: %d vertices, want at least 3", fi, len(f)))
			continue
		}
		seen := make(map[int]bool, len(f))
		for _, vi := range f {
			if vi < 0 || vi >= len(m.Vertices) {
				errs = append(errs, fmt.Errorf("face %d: vertex index %d out of range [0, %d)", fi, vi, len(m.Vertices)))
				continue
			}
			if seen[vi] {
				errs = append(errs, fmt.Errorf("face %d: vertex %d repeated", fi, vi))
			}
			seen[vi] = true
		}
	}
	for name, faces := range m.Groups {
		for _, fi := range faces {
			if fi < 0 || fi >= len(m.Faces) {
				errs = append(errs, fmt.Errorf("group %q: face index %d out of range [0, %d)", name, fi, len(m.Faces)))
			}
		}
	}
	return errors.Join(errs...)
}

// TriangleBuffers flattens the mesh into GPU-style buffers: interleaved
// xyz positions as float32 and fan-triangulated indices as uint32.
func (m *Mesh) TriangleBuffers() ([]float32, []uint32) {
	pos := make([]float32, 0, len(m.Vertices)*3)
	for _, v := range m.Vertices {
		pos = append(pos, float32(v.X), float32(v.Y), float32(v.Z))
	}
	var idx []uint32
	for _, f := range m.Faces {
		for i := 2; i < len(f); i++ {
			idx = append(idx, uint32(f[0]), uint32(f[i-1]), uint32(f[i]))
		}
	}
	return pos, idx
}
