// Package lsystem implements the grammar-based generator: a bracketed
// L-system whose production rules are expanded synchronously for a fixed
// iteration depth, then interpreted by a turtle that emits branch
// segments into a Skeleton. Expansion and interpretation are purely
// deterministic functions of the grammar.
package lsystem

import (
	"fmt"
	"strings"
)

// Grammar is an axiom plus production rules with the global turtle
// constants (step size, turn angle, pen width) fixed at definition time.
type Grammar struct {
	Name       string
	Axiom      string
	Rules      map[rune]string
	Angle      float64 // degrees per turn/pitch/roll symbol
	Step       float64 // distance per move symbol
	Width      float64 // initial pen width
	WidthScale float64 // pen width multiplier applied by '!'
	Iterations int     // default expansion depth for presets
}

// MalformedGrammarError reports an unusable grammar: an unmatched
// bracket, an empty axiom, or an invalid constant.
type MalformedGrammarError struct {
	Pos     int // byte offset in the offending string, -1 if not positional
	Message string
}

func (e *MalformedGrammarError) Error() string {
	if e.Pos >= 0 {
		return fmt.Sprintf("malformed grammar at offset %d: %s", e.Pos, e.Message)
	}
	return fmt.Sprintf("malformed grammar: %s", e.Message)
}

// checkBalance verifies bracket nesting in a symbol string. An unmatched
// closing bracket or a leftover opening bracket is a hard error.
func checkBalance(s string) error {
	depth := 0
	for i, r := range s {
		switch r {
		case '[':
			depth++
		case ']':
			depth--
			if depth < 0 {
				return &MalformedGrammarError{Pos: i, Message: "unmatched closing bracket"}
			}
		}
	}
	if depth != 0 {
		return &MalformedGrammarError{Pos: -1, Message: fmt.Sprintf("%d unclosed brackets", depth)}
	}
	return nil
}

// Validate checks the grammar's structural well-formedness: non-empty
// axiom, positive step and width, and balanced brackets in the axiom and
// every production. Balanced productions guarantee every expansion stays
// balanced.
func (g *Grammar) Validate() error {
	if strings.TrimSpace(g.Axiom) == "" {
		return &MalformedGrammarError{Pos: -1, Message: "empty axiom"}
	}
	if g.Step <= 0 {
		return &MalformedGrammarError{Pos: -1, Message: fmt.Sprintf("step must be positive, got %g", g.Step)}
	}
	if g.Width <= 0 {
		return &MalformedGrammarError{Pos: -1, Message: fmt.Sprintf("width must be positive, got %g", g.Width)}
	}
	if g.WidthScale <= 0 || g.WidthScale > 1 {
		return &MalformedGrammarError{Pos: -1, Message: fmt.Sprintf("width scale must be in (0, 1], got %g", g.WidthScale)}
	}
	if err := checkBalance(g.Axiom); err != nil {
		return fmt.Errorf("axiom: %w", err)
	}
	for sym, repl := range g.Rules {
		if err := checkBalance(repl); err != nil {
			return fmt.Errorf("rule %q: %w", string(sym), err)
		}
	}
	return nil
}

// Expand rewrites the axiom for the given number of iterations. Every
// production is applied synchronously once per iteration; symbols without
// a production pass through unchanged. Expansion is a pure function of
// (axiom, rules, iterations).
func (g *Grammar) Expand(iterations int) (string, error) {
	if err := g.Validate(); err != nil {
		return "", err
	}
	if iterations < 0 {
		return "", &MalformedGrammarError{Pos: -1, Message: fmt.Sprintf("negative iteration count %d", iterations)}
	}

	current := g.Axiom
	for i := 0; i < iterations; i++ {
		var next strings.Builder
		next.Grow(len(current) * 2)
		for _, sym := range current {
			if repl, ok := g.Rules[sym]; ok {
				next.WriteString(repl)
			} else {
				next.WriteRune(sym)
			}
		}
		current = next.String()
	}
	return current, nil
}
