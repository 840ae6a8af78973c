// Package treegen is the top-level generation facade: it accepts a
// Request naming one of the two generators (parametric or grammar),
// runs skeleton synthesis, foliage placement, and mesh emission, and
// returns a complete Result. Generation is synchronous by default;
// Submit runs a request on a background goroutine and hands back a Task
// the caller waits on.
package treegen

import (
	"context"
	"fmt"
	"time"

	"github.com/chazu/arbor/pkg/foliage"
	"github.com/chazu/arbor/pkg/lsystem"
	"github.com/chazu/arbor/pkg/mesh"
	"github.com/chazu/arbor/pkg/parametric"
	"github.com/chazu/arbor/pkg/params"
	"github.com/chazu/arbor/pkg/prng"
	"github.com/chazu/arbor/pkg/skeleton"
)

// Mode selects the skeleton generator.
type Mode int

const (
	// ModeParametric synthesizes the skeleton from a ParameterSet.
	ModeParametric Mode = iota
	// ModeGrammar expands and interprets an L-system grammar.
	ModeGrammar
)

func (m Mode) String() string {
	switch m {
	case ModeParametric:
		return "parametric"
	case ModeGrammar:
		return "grammar"
	default:
		return "unknown"
	}
}

// Simplifier post-processes a finished mesh within a time budget. It is
// an optional collaborator: a failure keeps the original mesh and is
// reported on the Result rather than failing the request.
type Simplifier func(m *mesh.Mesh, budget time.Duration) (*mesh.Mesh, error)

// DefaultSimplifyBudget bounds simplifier runtime when the request does
// not set one.
const DefaultSimplifyBudget = 2 * time.Second

// Request describes one tree to generate. Params supplies foliage
// settings in both modes; Grammar and Iterations apply only to
// ModeGrammar.
type Request struct {
	Name       string
	Mode       Mode
	Params     params.ParameterSet
	Grammar    *lsystem.Grammar
	Iterations int // 0 uses the grammar's own default
	Seed       int64

	Simplifier     Simplifier
	SimplifyBudget time.Duration
}

// Result is a completed generation: the mesh plus every warning raised
// along the way. Meshes are complete or absent, never partial.
type Result struct {
	Mesh     *mesh.Mesh
	Warnings []skeleton.Warning

	// SimplifierErr records a failed simplifier pass. The mesh is the
	// unsimplified original in that case.
	SimplifierErr error
}

// Generate runs a request to completion. The same request always yields
// a byte-identical mesh: all randomness flows from the seed.
func Generate(req Request) (*Result, error) {
	skel, warnings, err := buildSkeleton(req)
	if err != nil {
		return nil, err
	}
	if err := skel.Validate(); err != nil {
		return nil, fmt.Errorf("skeleton invariant violated: %w", err)
	}

	// Foliage draws from its own stream so toggling leaves never
	// perturbs branch geometry for the same seed.
	instances := foliage.Place(skel, req.Params.Leaf, req.Params.Blossom, prng.New(req.Seed+1))

	m, meshWarnings := mesh.Build(skel, instances)
	warnings = append(warnings, meshWarnings...)
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("mesh invariant violated: %w", err)
	}

	res := &Result{Mesh: m, Warnings: warnings}
	if req.Simplifier != nil {
		budget := req.SimplifyBudget
		if budget <= 0 {
			budget = DefaultSimplifyBudget
		}
		simplified, err := req.Simplifier(m, budget)
		if err != nil || simplified == nil {
			res.SimplifierErr = err
		} else if err := simplified.Validate(); err != nil {
			res.SimplifierErr = fmt.Errorf("simplifier produced invalid mesh: %w", err)
		} else {
			res.Mesh = simplified
		}
	}
	return res, nil
}

func buildSkeleton(req Request) (*skeleton.Skeleton, []skeleton.Warning, error) {
	switch req.Mode {
	case ModeParametric:
		return parametric.Generate(req.Params, req.Seed)
	case ModeGrammar:
		if req.Grammar == nil {
			return nil, nil, fmt.Errorf("grammar mode requires a grammar")
		}
		iters := req.Iterations
		if iters == 0 {
			iters = req.Grammar.Iterations
		}
		return lsystem.Generate(req.Grammar, iters)
	default:
		return nil, nil, fmt.Errorf("unknown generation mode %d", req.Mode)
	}
}

// Task is a generation in flight. Wait blocks until the result is ready
// or the context is cancelled; it may be called from multiple goroutines.
type Task struct {
	done chan struct{}
	res  *Result
	err  error
}

// Submit starts a request on a background goroutine. The caller owns the
// returned Task and must Wait on it to observe the outcome; results are
// never dropped silently.
func Submit(req Request) *Task {
	t := &Task{done: make(chan struct{})}
	go func() {
		defer close(t.done)
		defer func() {
			if r := recover(); r != nil {
				t.err = fmt.Errorf("panic during generation: %v", r)
			}
		}()
		t.res, t.err = Generate(req)
	}()
	return t
}

// Wait blocks until the task completes or ctx is done. Cancellation
// abandons the wait, not the generation; a later Wait still observes the
// result.
func (t *Task) Wait(ctx context.Context) (*Result, error) {
	select {
	case <-t.done:
		return t.res, t.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
