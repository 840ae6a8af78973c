package skeleton

import (
	"math"
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

func line(sk *Skeleton, level int, parent StemID, from, to v3.Vec, r float64) *Stem {
	st := sk.NewStem(level, parent)
	st.Points = []Point{{Pos: from, Radius: r}, {Pos: to, Radius: r}}
	return st
}

func TestNewStemWiresParent(t *testing.T) {
	sk := New()
	root := line(sk, 0, NoStem, v3.Vec{}, v3.Vec{Z: 1}, 0.1)
	child := line(sk, 1, root.ID, v3.Vec{Z: 0.5}, v3.Vec{X: 0.5, Z: 0.5}, 0.05)

	if child.Parent != root.ID {
		t.Errorf("child parent = %d, want %d", child.Parent, root.ID)
	}
	if len(root.Children) != 1 || root.Children[0] != child.ID {
		t.Errorf("root children = %v, want [%d]", root.Children, child.ID)
	}
	if sk.Root() != root {
		t.Error("Root() did not return the parentless stem")
	}
}

func TestGetOutOfRange(t *testing.T) {
	sk := New()
	if sk.Get(0) != nil {
		t.Error("Get on empty skeleton should return nil")
	}
	if sk.Get(-1) != nil {
		t.Error("Get(-1) should return nil")
	}
}

func TestValidate(t *testing.T) {
	t.Run("valid tree", func(t *testing.T) {
		sk := New()
		root := line(sk, 0, NoStem, v3.Vec{}, v3.Vec{Z: 2}, 0.1)
		line(sk, 1, root.ID, v3.Vec{Z: 1}, v3.Vec{X: 1, Z: 1}, 0.05)
		if err := sk.Validate(); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("two roots", func(t *testing.T) {
		sk := New()
		line(sk, 0, NoStem, v3.Vec{}, v3.Vec{Z: 1}, 0.1)
		line(sk, 0, NoStem, v3.Vec{X: 1}, v3.Vec{X: 1, Z: 1}, 0.1)
		if err := sk.Validate(); err == nil {
			t.Error("expected error for two roots")
		}
	})

	t.Run("degenerate segment", func(t *testing.T) {
		sk := New()
		st := sk.NewStem(0, NoStem)
		st.Points = []Point{{Pos: v3.Vec{}, Radius: 0.1}, {Pos: v3.Vec{}, Radius: 0.1}}
		if err := sk.Validate(); err == nil {
			t.Error("expected error for zero-length segment")
		}
	})
}

func TestLengthAndSampling(t *testing.T) {
	sk := New()
	st := sk.NewStem(0, NoStem)
	st.Points = []Point{
		{Pos: v3.Vec{}, Radius: 0.1},
		{Pos: v3.Vec{Z: 1}, Radius: 0.08},
		{Pos: v3.Vec{Z: 2}, Radius: 0.05},
	}

	if got := st.Length(); math.Abs(got-2) > 1e-12 {
		t.Errorf("Length = %g, want 2", got)
	}

	mid := st.PointAt(0.5)
	if math.Abs(mid.Z-1) > 1e-12 || mid.X != 0 || mid.Y != 0 {
		t.Errorf("PointAt(0.5) = %v, want (0,0,1)", mid)
	}

	tan := st.TangentAt(0.25)
	if math.Abs(tan.Z-1) > 1e-12 {
		t.Errorf("TangentAt(0.25) = %v, want +Z", tan)
	}

	// Clamping.
	if end := st.PointAt(2); math.Abs(end.Z-2) > 1e-12 {
		t.Errorf("PointAt(2) = %v, want stem end", end)
	}
	if start := st.PointAt(-1); start.Z != 0 {
		t.Errorf("PointAt(-1) = %v, want stem start", start)
	}
}

func TestLevelCountAndTerminals(t *testing.T) {
	sk := New()
	root := line(sk, 0, NoStem, v3.Vec{}, v3.Vec{Z: 2}, 0.1)
	b1 := line(sk, 1, root.ID, v3.Vec{Z: 1}, v3.Vec{X: 1, Z: 1}, 0.05)
	line(sk, 2, b1.ID, v3.Vec{X: 0.5, Z: 1}, v3.Vec{X: 0.5, Y: 0.5, Z: 1}, 0.02)
	line(sk, 2, b1.ID, v3.Vec{X: 0.8, Z: 1}, v3.Vec{X: 0.8, Y: -0.5, Z: 1}, 0.02)

	if got := sk.LevelCount(); got != 3 {
		t.Errorf("LevelCount = %d, want 3", got)
	}
	terminals := sk.TerminalStems()
	if len(terminals) != 2 {
		t.Fatalf("TerminalStems = %d stems, want 2", len(terminals))
	}
	for _, st := range terminals {
		if st.Level != 2 {
			t.Errorf("terminal stem %d at level %d, want 2", st.ID, st.Level)
		}
	}
}
