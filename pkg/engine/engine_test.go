package engine

import (
	"strings"
	"sync"
	"testing"

	"github.com/chazu/arbor/pkg/treegen"
)

func TestEvaluateEmptyString(t *testing.T) {
	eng := NewEngine()

	reqs, evalErrs, err := eng.Evaluate("")
	if err != nil {
		t.Fatalf("unexpected fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("unexpected eval errors: %v", evalErrs)
	}
	if len(reqs) != 0 {
		t.Errorf("expected no requests, got %d", len(reqs))
	}
}

func TestEvaluateWhitespaceOnly(t *testing.T) {
	eng := NewEngine()

	reqs, evalErrs, err := eng.Evaluate("   \n\t  \n  ")
	if err != nil {
		t.Fatalf("unexpected fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("unexpected eval errors: %v", evalErrs)
	}
	if len(reqs) != 0 {
		t.Errorf("expected no requests, got %d", len(reqs))
	}
}

func TestEvaluateValidExpression(t *testing.T) {
	eng := NewEngine()

	// Plain Lisp that declares no trees.
	reqs, evalErrs, err := eng.Evaluate("(+ 1 2)")
	if err != nil {
		t.Fatalf("unexpected fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("unexpected eval errors: %v", evalErrs)
	}
	if len(reqs) != 0 {
		t.Errorf("expected no requests, got %d", len(reqs))
	}
}

func TestEvaluateSyntaxError(t *testing.T) {
	eng := NewEngine()

	reqs, evalErrs, err := eng.Evaluate("(tree :seed 1")
	if err != nil {
		t.Fatalf("expected non-fatal eval error, got fatal: %v", err)
	}
	if reqs != nil {
		t.Fatal("expected nil requests on syntax error")
	}
	if len(evalErrs) == 0 {
		t.Fatal("expected at least one eval error for syntax error")
	}
	if evalErrs[0].Message == "" {
		t.Error("eval error message should not be empty")
	}
}

func TestEvaluateUndefinedSymbol(t *testing.T) {
	eng := NewEngine()

	reqs, evalErrs, err := eng.Evaluate("(+ 1 undefined-symbol)")
	if err != nil {
		t.Fatalf("expected non-fatal eval error, got fatal: %v", err)
	}
	if reqs != nil {
		t.Fatal("expected nil requests on eval error")
	}
	if len(evalErrs) == 0 {
		t.Fatal("expected at least one eval error for undefined symbol")
	}
}

func TestEvaluateSingleTree(t *testing.T) {
	eng := NewEngine()

	reqs, evalErrs, err := eng.Evaluate(`(tree :name "default" :seed 42)`)
	if err != nil {
		t.Fatalf("unexpected fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("unexpected eval errors: %v", evalErrs)
	}
	if len(reqs) != 1 {
		t.Fatalf("expected 1 request, got %d", len(reqs))
	}
	req := reqs[0]
	if req.Name != "default" || req.Seed != 42 {
		t.Errorf("request = %q seed %d, want default/42", req.Name, req.Seed)
	}
	if req.Mode != treegen.ModeParametric {
		t.Errorf("mode = %v, want parametric", req.Mode)
	}
}

func TestEvaluateBatchScript(t *testing.T) {
	eng := NewEngine()

	source := `
; a small grove
(def oak (preset "black_oak"))
(tree :name "oak-1" :params oak :seed 1)
(tree :name "oak-2" :params (params oak :g-scale 12) :seed 2)
(tree :name "fern"
      :grammar (lsys-preset "wild_fern")
      :iterations 4
      :seed 3)
`
	reqs, evalErrs, err := eng.Evaluate(source)
	if err != nil {
		t.Fatalf("unexpected fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("unexpected eval errors: %v", evalErrs)
	}
	if len(reqs) != 3 {
		t.Fatalf("expected 3 requests, got %d", len(reqs))
	}
	if reqs[0].Params.Name != "black_oak" {
		t.Errorf("first request params = %q, want black_oak", reqs[0].Params.Name)
	}
	if reqs[1].Params.GScale != 12 {
		t.Errorf("overlay g-scale = %g, want 12", reqs[1].Params.GScale)
	}
	if reqs[2].Mode != treegen.ModeGrammar || reqs[2].Grammar == nil {
		t.Error("third request should be grammar mode")
	}
	if reqs[2].Iterations != 4 {
		t.Errorf("iterations = %d, want 4", reqs[2].Iterations)
	}
}

func TestEvaluateRejectsInvalidTree(t *testing.T) {
	eng := NewEngine()

	_, evalErrs, err := eng.Evaluate(`(tree :params (params :levels 0))`)
	if err != nil {
		t.Fatalf("expected non-fatal eval error, got fatal: %v", err)
	}
	if len(evalErrs) == 0 {
		t.Fatal("expected eval error for invalid parameters")
	}
	if !strings.Contains(evalErrs[0].Message, "levels") {
		t.Errorf("error %q should mention the failing field", evalErrs[0].Message)
	}
}

func TestEvaluateConcurrent(t *testing.T) {
	eng := NewEngine()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			// Fresh sandboxes per call; no shared state to race on.
			_, _, _ = eng.Evaluate(`(tree :seed 1)`)
		}()
	}
	wg.Wait()
}
