// Package foliage places leaf and blossom instances on the terminal stems
// of a skeleton. Placement apportions the configured leaf count across
// terminal stems by length, orients each blade relative to the local stem
// tangent, and optionally replaces a rate-scaled subset with blossoms.
package foliage

import (
	"github.com/chazu/arbor/pkg/params"
)

// Point2 is a 2-D outline vertex in blade space: X across the blade,
// Y along it from petiole (0) to tip.
type Point2 struct {
	X, Y float64
}

// Leaf outlines are unit-height polygons in counter-clockwise order,
// starting at the petiole. The mesh builder fans them from their centroid,
// so outlines stay star-shaped around it.
var leafOutlines = map[params.LeafShape][]Point2{
	params.LeafOvate: {
		{0, 0}, {0.28, 0.2}, {0.35, 0.5}, {0.2, 0.85}, {0, 1},
		{-0.2, 0.85}, {-0.35, 0.5}, {-0.28, 0.2},
	},
	params.LeafLinear: {
		{0, 0}, {0.06, 0.1}, {0.08, 0.6}, {0.04, 0.95}, {0, 1},
		{-0.04, 0.95}, {-0.08, 0.6}, {-0.06, 0.1},
	},
	params.LeafCordate: {
		{0, 0.05}, {0.3, 0.3}, {0.35, 0.6}, {0.2, 0.85}, {0, 1},
		{-0.2, 0.85}, {-0.35, 0.6}, {-0.3, 0.3},
	},
	params.LeafMaple: {
		{0, 0}, {0.25, 0.2}, {0.45, 0.25}, {0.35, 0.55}, {0.5, 0.6},
		{0.2, 0.8}, {0, 1}, {-0.2, 0.8}, {-0.5, 0.6}, {-0.35, 0.55},
		{-0.45, 0.25}, {-0.25, 0.2},
	},
	params.LeafPalmate: {
		{0, 0}, {0.3, 0.25}, {0.5, 0.45}, {0.25, 0.6}, {0.15, 0.85},
		{0, 1}, {-0.15, 0.85}, {-0.25, 0.6}, {-0.5, 0.45}, {-0.3, 0.25},
	},
	params.LeafSpikyOak: {
		{0, 0}, {0.2, 0.15}, {0.35, 0.3}, {0.25, 0.45}, {0.4, 0.6},
		{0.2, 0.75}, {0, 1}, {-0.2, 0.75}, {-0.4, 0.6}, {-0.25, 0.45},
		{-0.35, 0.3}, {-0.2, 0.15},
	},
	params.LeafRoundedOak: {
		{0, 0}, {0.2, 0.12}, {0.3, 0.35}, {0.22, 0.5}, {0.32, 0.7},
		{0.15, 0.9}, {0, 1}, {-0.15, 0.9}, {-0.32, 0.7}, {-0.22, 0.5},
		{-0.3, 0.35}, {-0.2, 0.12},
	},
	params.LeafElliptic: {
		{0, 0}, {0.25, 0.25}, {0.3, 0.5}, {0.25, 0.75}, {0, 1},
		{-0.25, 0.75}, {-0.3, 0.5}, {-0.25, 0.25},
	},
	params.LeafRectangle: {
		{0.25, 0}, {0.25, 1}, {-0.25, 1}, {-0.25, 0},
	},
	params.LeafTriangle: {
		{0.3, 0}, {0, 1}, {-0.3, 0},
	},
}

// Blossom outlines are flat petal rosettes, also fanned from the centroid.
var blossomOutlines = map[params.BlossomShape][]Point2{
	params.BlossomCherry: {
		{0, 0.5}, {0.2, 0.45}, {0.45, 0.2}, {0.45, -0.2}, {0.2, -0.45},
		{0, -0.5}, {-0.2, -0.45}, {-0.45, -0.2}, {-0.45, 0.2}, {-0.2, 0.45},
	},
	params.BlossomOrange: {
		{0, 0.6}, {0.35, 0.3}, {0.55, 0}, {0.35, -0.3}, {0, -0.6},
		{-0.35, -0.3}, {-0.55, 0}, {-0.35, 0.3},
	},
	params.BlossomMagnolia: {
		{0, 0.7}, {0.25, 0.4}, {0.6, 0.2}, {0.4, -0.15}, {0.15, -0.55},
		{0, -0.35}, {-0.15, -0.55}, {-0.4, -0.15}, {-0.6, 0.2}, {-0.25, 0.4},
	},
}

// LeafOutline returns the unit outline polygon for a leaf shape.
func LeafOutline(s params.LeafShape) []Point2 {
	if o, ok := leafOutlines[s]; ok {
		return o
	}
	return leafOutlines[params.LeafOvate]
}

// BlossomOutline returns the unit outline polygon for a blossom shape.
func BlossomOutline(s params.BlossomShape) []Point2 {
	if o, ok := blossomOutlines[s]; ok {
		return o
	}
	return blossomOutlines[params.BlossomCherry]
}
