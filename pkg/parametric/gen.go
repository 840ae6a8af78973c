// Package parametric implements the Weber–Penn style botanical generator:
// a recursive synthesis of tapered, curved stems with splitting, per-level
// declination, and an optional pruning envelope. Output is a Skeleton of
// radius-tagged path segments; all randomness comes from the seeded
// request-scoped source, never wall-clock entropy.
package parametric

import (
	"fmt"
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/arbor/pkg/params"
	"github.com/chazu/arbor/pkg/prng"
	"github.com/chazu/arbor/pkg/skeleton"
)

const (
	// maxPruneRetries bounds envelope regeneration before the best
	// candidate is accepted with a warning. No silent infinite loop.
	maxPruneRetries = 8

	// pruneShrink is the length factor applied on each pruning retry.
	pruneShrink = 0.9

	// minStemLength is the floor below which a candidate stem is dropped
	// rather than emitted as degenerate geometry.
	minStemLength = 1e-6
)

type generator struct {
	p        params.ParameterSet
	rng      *prng.Source
	skel     *skeleton.Skeleton
	warnings []skeleton.Warning
	scale    float64 // realized tree scale: gScale + draw(gScaleV)
}

// Generate synthesizes a branch skeleton from the parameter set and seed.
// Validation failures abort before any stem is built; recovered conditions
// (pruning exhaustion) are returned as warnings alongside the skeleton.
func Generate(p params.ParameterSet, seed int64) (*skeleton.Skeleton, []skeleton.Warning, error) {
	if findings := p.Validate(); params.HasErrors(findings) {
		return nil, nil, &params.InvalidParameterError{Findings: findings}
	}

	g := &generator{
		p:    p,
		rng:  prng.New(seed),
		skel: skeleton.New(),
	}
	g.scale = p.GScale + g.rng.Vary(p.GScaleV)
	if g.scale < minStemLength {
		g.scale = minStemLength
	}

	g.buildTrunk()
	return g.skel, g.warnings, nil
}

func (g *generator) buildTrunk() {
	length := g.scale * (params.LevelF(g.p.Length, 0) + g.rng.Vary(params.LevelF(g.p.LengthV, 0)))
	if length < minStemLength {
		length = minStemLength
	}
	radius := length * g.p.Ratio

	trunk := g.buildStem(0, skeleton.NoStem, v3.Vec{}, skeleton.Upright().Roll(g.rng.Uniform(0, 360)), length, radius)

	// Floor splits clone the trunk at ground level, fanned around the
	// vertical axis. They parent to the trunk so the skeleton stays
	// single-rooted.
	for i := 0; i < g.p.FloorSplits; i++ {
		decl := params.LevelF(g.p.SplitAngle, 0) + g.rng.Vary(params.LevelF(g.p.SplitAngleV, 0))
		spread := 360*float64(i+1)/float64(g.p.FloorSplits+1) + g.rng.Vary(20)
		f := skeleton.Upright().Roll(spread).Pitch(decl)
		g.buildStem(0, trunk.ID, v3.Vec{}, f, length, radius)
	}
}

// buildStem samples one stem's curved centerline, spawns split clones at
// segment boundaries, and recurses into child stems for the next level.
func (g *generator) buildStem(level int, parent skeleton.StemID, pos v3.Vec, f skeleton.Frame, length, radius float64) *skeleton.Stem {
	return g.growStem(level, parent, pos, f, length, radius, 0)
}

// growStem draws a stem's segments from boundary startSeg onward. Split
// clones are continuations of their parent: they keep the parent's full
// length, radius profile, and segment counter, so a clone forked at
// segment k draws only segments k+1..res, its base radius matches the
// parent at the fork, and baseSplits fires exactly once per trunk (the
// clone's loop never revisits segment 1).
func (g *generator) growStem(level int, parent skeleton.StemID, pos v3.Vec, f skeleton.Frame, length, radius float64, startSeg int) *skeleton.Stem {
	st := g.skel.NewStem(level, parent)

	res := params.LevelI(g.p.CurveRes, level)
	if res < 1 {
		res = 1
	}
	segLen := length / float64(res)
	t0 := float64(startSeg) / float64(res)

	st.Points = append(st.Points, skeleton.Point{Pos: pos, Radius: radiusAt(g.p, level, radius, t0)})

	splitError := 0.0
	for seg := startSeg + 1; seg <= res; seg++ {
		f = f.Pitch(g.segmentPitch(level, seg, res))
		pos = pos.Add(f.Heading.MulScalar(segLen))
		t := float64(seg) / float64(res)
		st.Points = append(st.Points, skeleton.Point{Pos: pos, Radius: radiusAt(g.p, level, radius, t)})

		if seg == res {
			break
		}
		splits := g.splitCount(level, seg, &splitError)
		for j := 0; j < splits; j++ {
			decl := params.LevelF(g.p.SplitAngle, level) + g.rng.Vary(params.LevelF(g.p.SplitAngleV, level))
			spread := 360*float64(j+1)/float64(splits+1) + g.rng.Vary(30)
			cf := f.Roll(spread).Pitch(decl)
			if length*(1-t) > minStemLength {
				g.growStem(level, st.ID, pos, cf, length, radius, seg)
			}
		}
	}

	g.attachChildren(st, length, radius, t0)
	return st
}

// segmentPitch returns the per-segment curvature rotation in degrees.
// When curveBack is set, the stem bends one way for the first half and
// back the other way for the second (S-shaped stems).
func (g *generator) segmentPitch(level, seg, res int) float64 {
	curve := params.LevelF(g.p.Curve, level)
	back := params.LevelF(g.p.CurveBack, level)
	cv := params.LevelF(g.p.CurveV, level)

	var base float64
	if back == 0 {
		base = curve / float64(res)
	} else {
		half := float64((res + 1) / 2)
		if seg <= (res+1)/2 {
			base = curve / half
		} else {
			base = back / half
		}
	}
	return base + g.rng.Vary(cv)/float64(res)
}

// splitCount decides how many clones fork off at a segment boundary.
// The trunk's first segment uses baseSplits; elsewhere the fractional
// segSplits rate is carried through an error-diffusion accumulator so the
// realized split density converges on the configured rate.
func (g *generator) splitCount(level, seg int, errAcc *float64) int {
	if level == 0 && seg == 1 && g.p.BaseSplits > 0 {
		return g.effectiveBaseSplits()
	}
	ss := params.LevelF(g.p.SegSplits, level)
	if ss <= 0 {
		return 0
	}
	n := int(math.Round(ss + *errAcc))
	*errAcc -= float64(n) - ss
	if n < 0 {
		n = 0
	}
	return n
}

// effectiveBaseSplits applies the randomize flag: the configured count is
// scaled by a draw in [0, 2), so a factor of exactly 1 is a no-op and a
// result of zero is a valid unsplit outcome.
func (g *generator) effectiveBaseSplits() int {
	n := g.p.BaseSplits
	if g.p.BaseSplitsRandomize {
		n = int(math.Round(float64(n) * g.rng.Uniform(0, 2)))
		if n < 0 {
			n = 0
		}
	}
	return n
}

// attachChildren spawns the next level's stems along st, spiraling around
// the parent axis and declining away from its tangent. t0 is the stem's
// starting position on its radius profile: a split clone beginning
// mid-trunk maps the global base size onto its own arc and samples parent
// radii at the matching global position.
func (g *generator) attachChildren(st *skeleton.Stem, length, radius, t0 float64) {
	childLevel := st.Level + 1
	if childLevel >= g.p.Levels {
		return
	}
	n := params.LevelI(g.p.Branches, childLevel)
	if n <= 0 {
		return
	}

	baseFrac := 0.0
	if st.Level == 0 && g.p.BaseSize > t0 {
		baseFrac = (g.p.BaseSize - t0) / (1 - t0)
	}
	arcLen := length * (1 - t0)

	rot := g.rng.Uniform(0, 360)
	for i := 0; i < n; i++ {
		tRel := (float64(i) + 0.5) / float64(n)
		t := baseFrac + (1-baseFrac)*tRel
		anchor := st.PointAt(t)
		tangent := st.TangentAt(t)

		rot += params.LevelF(g.p.Rotate, childLevel) + g.rng.Vary(params.LevelF(g.p.RotateV, childLevel))
		cf := skeleton.FrameFor(tangent).Roll(rot).Pitch(g.downAngle(childLevel, tRel))

		childLen := g.childLength(childLevel, arcLen, tRel)
		if childLen < minStemLength {
			continue
		}

		if g.p.Prune.Ratio > 0 {
			fitted, ok := g.pruneLength(anchor, cf.Heading, childLen)
			if !ok {
				g.warnings = append(g.warnings, skeleton.Warning{
					Kind: skeleton.WarnPruningExhausted,
					Message: fmt.Sprintf("level %d stem at offset %.2f left the envelope after %d retries; best candidate kept",
						childLevel, t, maxPruneRetries),
				})
			}
			childLen = fitted
			if childLen < minStemLength {
				continue
			}
		}

		parentR := radiusAt(g.p, st.Level, radius, t0+(1-t0)*t)
		childRadius := parentR * math.Pow(childLen/arcLen, g.p.RatioPower)
		if childRadius > parentR {
			childRadius = parentR
		}

		g.buildStem(childLevel, st.ID, anchor, cf, childLen, childRadius)
	}
}

// childLength derives a child stem's length. First-level branches follow
// the tree silhouette via the shape ratio; deeper levels shorten toward
// the parent's tip.
func (g *generator) childLength(childLevel int, parentLen, tRel float64) float64 {
	lc := params.LevelF(g.p.Length, childLevel) + g.rng.Vary(params.LevelF(g.p.LengthV, childLevel))
	if lc <= 0 {
		return 0
	}
	if childLevel == 1 {
		return parentLen * lc * shapeRatio(g.p, 1-tRel)
	}
	return lc * parentLen * (1 - 0.6*tRel)
}

// downAngle returns the child declination from the parent tangent. A
// negative variance distributes the angle along the parent stem instead
// of drawing it randomly, giving flatter branches near the base.
func (g *generator) downAngle(childLevel int, tRel float64) float64 {
	da := params.LevelF(g.p.DownAngle, childLevel)
	dav := params.LevelF(g.p.DownAngleV, childLevel)
	if dav >= 0 {
		return da + g.rng.Vary(dav)
	}
	conical := 0.2 + 0.8*(1-tRel)
	return da + dav*(1-2*conical)
}

// pruneLength fits a candidate length to the pruning envelope: the
// projected endpoint is tested and the length shrunk until it falls
// inside, up to maxPruneRetries. The fitted length is then blended with
// the original by prune.Ratio (0 = keep original, 1 = fully pruned).
// Returns false when the retry budget ran out and the best candidate was
// accepted anyway.
func (g *generator) pruneLength(pos, heading v3.Vec, length float64) (float64, bool) {
	pr := g.p.Prune.Ratio
	fitted := length
	for try := 0; try <= maxPruneRetries; try++ {
		end := pos.Add(heading.MulScalar(fitted))
		if g.insideEnvelope(end) {
			return length*(1-pr) + fitted*pr, true
		}
		fitted *= pruneShrink
	}
	return length*(1-pr) + fitted*pr, false
}

// insideEnvelope tests a point against the crown silhouette bound.
func (g *generator) insideEnvelope(p v3.Vec) bool {
	horiz := math.Sqrt(p.X*p.X + p.Y*p.Y)
	ratio := (g.scale - p.Z) / (g.scale * (1 - g.p.BaseSize))
	return horiz/g.scale < g.p.Prune.Width*envelopeRatio(g.p.Prune, ratio)
}
