package prng

import "testing"

func TestSameSeedSameSequence(t *testing.T) {
	a := New(42)
	b := New(42)
	for i := 0; i < 100; i++ {
		if a.Float() != b.Float() {
			t.Fatalf("draw %d diverged between identically seeded sources", i)
		}
	}
}

func TestDifferentSeedsDiverge(t *testing.T) {
	a := New(1)
	b := New(2)
	same := true
	for i := 0; i < 10; i++ {
		if a.Float() != b.Float() {
			same = false
		}
	}
	if same {
		t.Fatal("expected differently seeded sources to diverge")
	}
}

func TestUniformBounds(t *testing.T) {
	src := New(7)
	for i := 0; i < 1000; i++ {
		v := src.Uniform(-3, 5)
		if v < -3 || v >= 5 {
			t.Fatalf("Uniform(-3, 5) = %g out of range", v)
		}
	}
}

func TestVaryZeroIsZero(t *testing.T) {
	src := New(9)
	for i := 0; i < 10; i++ {
		if v := src.Vary(0); v != 0 {
			t.Fatalf("Vary(0) = %g, want 0", v)
		}
	}
}

func TestVaryBounds(t *testing.T) {
	src := New(11)
	for i := 0; i < 1000; i++ {
		v := src.Vary(2.5)
		if v < -2.5 || v >= 2.5 {
			t.Fatalf("Vary(2.5) = %g out of range", v)
		}
	}
}

func TestChanceExtremes(t *testing.T) {
	src := New(3)
	for i := 0; i < 100; i++ {
		if src.Chance(0) {
			t.Fatal("Chance(0) fired")
		}
		if !src.Chance(1) {
			t.Fatal("Chance(1) did not fire")
		}
	}
}
