package mesh

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
)

// WriteOBJ serializes the mesh as Wavefront OBJ. Output is deterministic:
// vertices in insertion order, groups sorted by name, faces in insertion
// order within each group. Indices are 1-based per the format.
func WriteOBJ(w io.Writer, m *Mesh) error {
	bw := bufio.NewWriter(w)

	for _, v := range m.Vertices {
		if _, err := fmt.Fprintf(bw, "v %g %g %g\n", v.X, v.Y, v.Z); err != nil {
			return fmt.Errorf("writing vertex: %w", err)
		}
	}

	names := make([]string, 0, len(m.Groups))
	for name := range m.Groups {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if _, err := fmt.Fprintf(bw, "g %s\n", name); err != nil {
			return fmt.Errorf("writing group %q: %w", name, err)
		}
		for _, fi := range m.Groups[name] {
			if _, err := bw.WriteString("f"); err != nil {
				return fmt.Errorf("writing face: %w", err)
			}
			for _, vi := range m.Faces[fi] {
				if _, err := fmt.Fprintf(bw, " %d", vi+1); err != nil {
					return fmt.Errorf("writing face: %w", err)
				}
			}
			if err := bw.WriteByte('\n'); err != nil {
				return fmt.Errorf("writing face: %w", err)
			}
		}
	}

	return bw.Flush()
}

// WriteOBJFile writes the mesh to a file, replacing any existing content.
func WriteOBJFile(path string, m *Mesh) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := WriteOBJ(f, m); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}
