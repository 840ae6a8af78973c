package lsystem

import (
	"fmt"
	"sort"
)

// grammarCatalog holds the built-in grammars. Nonterminals (X, Y) carry
// structure only; the turtle skips them because they have productions.
var grammarCatalog = map[string]Grammar{
	"fractal_plant": {
		Name:  "fractal_plant",
		Axiom: "X",
		Rules: map[rune]string{
			'X': "F-[[X]+X]+F[+FX]-X",
			'F': "FF",
		},
		Angle:      25,
		Step:       0.35,
		Width:      0.12,
		WidthScale: 0.85,
		Iterations: 5,
	},
	"wild_fern": {
		Name:  "wild_fern",
		Axiom: "X",
		Rules: map[rune]string{
			'X': "F[+X][-X]FX",
			'F': "FF",
		},
		Angle:      22.5,
		Step:       0.3,
		Width:      0.08,
		WidthScale: 0.8,
		Iterations: 6,
	},
	"bushy_shrub": {
		Name:  "bushy_shrub",
		Axiom: "F",
		Rules: map[rune]string{
			'F': "FF+[+F-F-F]-[-F+F+F]",
		},
		Angle:      22.5,
		Step:       0.4,
		Width:      0.15,
		WidthScale: 0.8,
		Iterations: 4,
	},
	"candelabra": {
		Name:  "candelabra",
		Axiom: "F",
		Rules: map[rune]string{
			'F': "F[&!F][^!F]/F",
		},
		Angle:      28,
		Step:       0.5,
		Width:      0.2,
		WidthScale: 0.75,
		Iterations: 5,
	},
	"sparse_twig": {
		Name:  "sparse_twig",
		Axiom: "F",
		Rules: map[rune]string{
			'F': "F[+F]F[-F]F",
		},
		Angle:      25.7,
		Step:       0.25,
		Width:      0.06,
		WidthScale: 0.9,
		Iterations: 3,
	},
}

// Grammars returns the built-in grammar names, sorted.
func Grammars() []string {
	names := make([]string, 0, len(grammarCatalog))
	for name := range grammarCatalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ByName looks up a built-in grammar. The returned value is a copy with a
// fresh rule map, so callers may modify it freely.
func ByName(name string) (Grammar, error) {
	g, ok := grammarCatalog[name]
	if !ok {
		return Grammar{}, fmt.Errorf("unknown grammar %q (available: %v)", name, Grammars())
	}
	rules := make(map[rune]string, len(g.Rules))
	for sym, repl := range g.Rules {
		rules[sym] = repl
	}
	g.Rules = rules
	return g, nil
}
