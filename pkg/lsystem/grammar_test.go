package lsystem

import (
	"errors"
	"strings"
	"testing"
)

func testGrammar(axiom string, rules map[rune]string) *Grammar {
	return &Grammar{
		Axiom:      axiom,
		Rules:      rules,
		Angle:      25,
		Step:       1,
		Width:      0.1,
		WidthScale: 0.8,
	}
}

func TestExpandHandComputed(t *testing.T) {
	g := testGrammar("F", map[rune]string{'F': "F[+F]F[-F]F"})

	got, err := g.Expand(1)
	if err != nil {
		t.Fatalf("Expand(1): %v", err)
	}
	if got != "F[+F]F[-F]F" {
		t.Errorf("one iteration = %q, want %q", got, "F[+F]F[-F]F")
	}

	// Second iteration replaces each of the five Fs with the production.
	one := "F[+F]F[-F]F"
	want := strings.ReplaceAll(one, "F", one)
	got, err = g.Expand(2)
	if err != nil {
		t.Fatalf("Expand(2): %v", err)
	}
	if got != want {
		t.Errorf("two iterations = %q, want %q", got, want)
	}
}

func TestExpandZeroIterationsIsAxiom(t *testing.T) {
	g := testGrammar("F+F", nil)
	got, err := g.Expand(0)
	if err != nil {
		t.Fatal(err)
	}
	if got != "F+F" {
		t.Errorf("zero iterations = %q, want the axiom", got)
	}
}

func TestExpandPassesUnknownSymbolsThrough(t *testing.T) {
	g := testGrammar("XFX", map[rune]string{'F': "FF"})
	got, err := g.Expand(1)
	if err != nil {
		t.Fatal(err)
	}
	if got != "XFFX" {
		t.Errorf("got %q, want %q", got, "XFFX")
	}
}

func TestExpandNegativeIterations(t *testing.T) {
	g := testGrammar("F", nil)
	if _, err := g.Expand(-1); err == nil {
		t.Fatal("expected error for negative iterations")
	}
}

func TestValidateRejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Grammar)
	}{
		{"empty axiom", func(g *Grammar) { g.Axiom = "  " }},
		{"zero step", func(g *Grammar) { g.Step = 0 }},
		{"negative width", func(g *Grammar) { g.Width = -1 }},
		{"width scale above one", func(g *Grammar) { g.WidthScale = 1.5 }},
		{"unclosed bracket in axiom", func(g *Grammar) { g.Axiom = "F[+F" }},
		{"unmatched close in axiom", func(g *Grammar) { g.Axiom = "F]F" }},
		{"unbalanced rule", func(g *Grammar) { g.Rules = map[rune]string{'F': "F[[F]"} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := testGrammar("F", map[rune]string{'F': "FF"})
			tt.mutate(g)
			err := g.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			var mge *MalformedGrammarError
			if !errors.As(err, &mge) {
				t.Errorf("expected MalformedGrammarError, got %T: %v", err, err)
			}
		})
	}
}

func TestUnmatchedCloseReportsPosition(t *testing.T) {
	err := checkBalance("FF]F")
	var mge *MalformedGrammarError
	if !errors.As(err, &mge) {
		t.Fatalf("expected MalformedGrammarError, got %T", err)
	}
	if mge.Pos != 2 {
		t.Errorf("Pos = %d, want 2", mge.Pos)
	}
}
