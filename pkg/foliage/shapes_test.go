package foliage

import (
	"testing"

	"github.com/chazu/arbor/pkg/params"
)

func TestLeafOutlinesUsable(t *testing.T) {
	for s := params.LeafOvate; s <= params.LeafTriangle; s++ {
		outline := LeafOutline(s)
		if len(outline) < 3 {
			t.Errorf("leaf shape %v: %d outline points, want at least 3", s, len(outline))
		}
	}
}

func TestBlossomOutlinesUsable(t *testing.T) {
	for s := params.BlossomCherry; s <= params.BlossomMagnolia; s++ {
		outline := BlossomOutline(s)
		if len(outline) < 3 {
			t.Errorf("blossom shape %v: %d outline points, want at least 3", s, len(outline))
		}
	}
}

func TestUnknownShapeFallsBack(t *testing.T) {
	if got := LeafOutline(params.LeafShape(99)); len(got) < 3 {
		t.Error("unknown leaf shape must fall back to a usable outline")
	}
	if got := BlossomOutline(params.BlossomShape(99)); len(got) < 3 {
		t.Error("unknown blossom shape must fall back to a usable outline")
	}
}
