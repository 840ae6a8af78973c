package mesh

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

func TestWriteOBJ(t *testing.T) {
	m := New()
	a := m.AddVertex(v3.Vec{})
	b := m.AddVertex(v3.Vec{X: 1})
	c := m.AddVertex(v3.Vec{Y: 1})
	d := m.AddVertex(v3.Vec{Z: 1})
	m.AddFace("zeta", a, b, c)
	m.AddFace("alpha", a, c, d)

	var buf bytes.Buffer
	if err := WriteOBJ(&buf, m); err != nil {
		t.Fatalf("WriteOBJ: %v", err)
	}

	want := "v 0 0 0\n" +
		"v 1 0 0\n" +
		"v 0 1 0\n" +
		"v 0 0 1\n" +
		"g alpha\n" +
		"f 1 3 4\n" +
		"g zeta\n" +
		"f 1 2 3\n"
	if buf.String() != want {
		t.Errorf("output mismatch:\ngot:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestWriteOBJGroupsSorted(t *testing.T) {
	m := New()
	a := m.AddVertex(v3.Vec{})
	b := m.AddVertex(v3.Vec{X: 1})
	c := m.AddVertex(v3.Vec{Y: 1})
	m.AddFace("stem_0_0", a, b, c)
	m.AddFace("blossoms", a, c, b)
	m.AddFace("leaves", b, a, c)

	var buf bytes.Buffer
	if err := WriteOBJ(&buf, m); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	first := strings.Index(out, "g blossoms")
	second := strings.Index(out, "g leaves")
	third := strings.Index(out, "g stem_0_0")
	if first == -1 || second == -1 || third == -1 || !(first < second && second < third) {
		t.Errorf("groups not sorted by name:\n%s", out)
	}
}

func TestWriteOBJFile(t *testing.T) {
	m := New()
	a := m.AddVertex(v3.Vec{})
	b := m.AddVertex(v3.Vec{X: 1})
	c := m.AddVertex(v3.Vec{Y: 1})
	m.AddFace("stem_0_0", a, b, c)

	path := filepath.Join(t.TempDir(), "tree.obj")
	if err := WriteOBJFile(path, m); err != nil {
		t.Fatalf("WriteOBJFile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "v 0 0 0\n") {
		t.Errorf("unexpected file contents:\n%s", data)
	}
}
