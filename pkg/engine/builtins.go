package engine

import (
	"fmt"
	"strings"
	"unicode/utf8"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/chazu/arbor/pkg/lsystem"
	"github.com/chazu/arbor/pkg/params"
	"github.com/chazu/arbor/pkg/treegen"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// preprocessSource transforms arbor Lisp source code before passing it to
// zygomys. It performs two transformations:
//
//  1. Keyword conversion: :keyword -> "__kw_keyword" (string literal)
//     This avoids the need to register keyword symbols as globals, which
//     would conflict with user-defined variables of the same name.
//
//  2. Kebab-case to underscore: lsys-preset -> lsys_preset
//     zygomys does not allow hyphens in identifiers (it interprets them
//     as the subtraction operator). This converts kebab-case identifiers
//     to underscore form outside of strings and comments.
//
// Both transformations respect string literal boundaries and line comments.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		// Skip double-quoted string literals.
		if b[i] == '"' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					result = append(result, b[i], b[i+1])
					i += 2
					continue
				}
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Skip backtick-quoted string literals.
		if b[i] == '`' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '`' {
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Convert ; line comments to // comments for zygomys.
		// zygomys uses // for line comments, not the traditional Lisp ;.
		if b[i] == ';' {
			result = append(result, '/', '/')
			i++
			// Skip additional ; characters (;; style).
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Transform :keyword to "__kw_keyword".
		if b[i] == ':' && i+1 < len(b) {
			// Preserve := (assignment operator).
			if b[i+1] == '=' {
				result = append(result, b[i], b[i+1])
				i += 2
				continue
			}
			// Check for keyword: colon followed by a letter.
			if isLetter(b[i+1]) {
				j := i + 1
				for j < len(b) && isKWChar(b[j]) {
					j++
				}
				kwName := string(b[i+1 : j])
				result = append(result, '"')
				result = append(result, []byte(kwPrefix)...)
				result = append(result, []byte(kwName)...)
				result = append(result, '"')
				i = j
				continue
			}
		}
		// Transform kebab-case identifiers: alpha-alpha -> alpha_alpha.
		// Only when hyphen sits between identifier characters (not a minus
		// operator).
		if b[i] == '-' && i > 0 && i+1 < len(b) &&
			isIdentChar(b[i-1]) && isIdentStartChar(b[i+1]) {
			result = append(result, '_')
			i++
			continue
		}
		result = append(result, b[i])
		i++
	}
	return string(result)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

func isIdentStartChar(c byte) bool {
	return isLetter(c)
}

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpParams wraps a params.ParameterSet so it can be passed between
// builtins.
type sexpParams struct {
	set params.ParameterSet
}

func (p *sexpParams) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(params %q :shape %s :levels %d)", p.set.Name, p.set.Shape, p.set.Levels)
}
func (p *sexpParams) Type() *zygo.RegisteredType { return nil }

// sexpRule wraps one L-system production.
type sexpRule struct {
	sym  rune
	repl string
}

func (r *sexpRule) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(rule %q %q)", string(r.sym), r.repl)
}
func (r *sexpRule) Type() *zygo.RegisteredType { return nil }

// sexpGrammar wraps a validated lsystem.Grammar.
type sexpGrammar struct {
	g lsystem.Grammar
}

func (g *sexpGrammar) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(grammar %q :axiom %q :rules %d)", g.g.Name, g.g.Axiom, len(g.g.Rules))
}
func (g *sexpGrammar) Type() *zygo.RegisteredType { return nil }

// sexpTreeRef is the handle returned by the tree builtin: the index of the
// collected request.
type sexpTreeRef struct {
	index int
	name  string
}

func (t *sexpTreeRef) SexpString(ps *zygo.PrintState) string {
	if t.name != "" {
		return fmt.Sprintf("(tree %q)", t.name)
	}
	return fmt.Sprintf("(tree #%d)", t.index)
}
func (t *sexpTreeRef) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// isKW checks if a Sexp is a preprocessed keyword string.
// Returns the keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword argument
// list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	kwOrder    []string
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
// Keywords are identified by the __kw_ prefix added during preprocessing.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if ok {
			if _, seen := result.kw[name]; !seen {
				result.kwOrder = append(result.kwOrder, name)
			}
			if i+1 < len(args) {
				result.kw[name] = args[i+1]
				i += 2
			} else {
				// Keyword at end with no value — treat as flag with nil.
				result.kw[name] = zygo.SexpNull
				i++
			}
		} else {
			result.positional = append(result.positional, args[i])
			i++
		}
	}
	return result
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toInt extracts an int from a Sexp.
func toInt(s zygo.Sexp) (int, error) {
	if v, ok := s.(*zygo.SexpInt); ok {
		return int(v.Val), nil
	}
	return 0, fmt.Errorf("expected integer, got %T (%s)", s, s.SexpString(nil))
}

// toBool extracts a bool from a Sexp.
func toBool(s zygo.Sexp) (bool, error) {
	if v, ok := s.(*zygo.SexpBool); ok {
		return v.Val, nil
	}
	return false, fmt.Errorf("expected bool, got %T (%s)", s, s.SexpString(nil))
}

// toString extracts a string from a Sexp.
func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

// toKeywordString extracts a keyword name or plain string from a Sexp.
// Handles both preprocessed keywords (__kw_conical) and plain strings
// ("conical").
func toKeywordString(s zygo.Sexp) (string, error) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", fmt.Errorf("expected keyword or string, got %T (%s)", s, s.SexpString(nil))
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], nil
	}
	return str.S, nil
}

// sexpListToSlice converts a SexpPair (Lisp list) or SexpArray to a Go
// slice.
func sexpListToSlice(s zygo.Sexp) ([]zygo.Sexp, error) {
	switch v := s.(type) {
	case *zygo.SexpPair:
		return zygo.ListToArray(v)
	case *zygo.SexpArray:
		return v.Val, nil
	case *zygo.SexpSentinel:
		if v == zygo.SexpNull {
			return nil, nil
		}
	}
	return nil, fmt.Errorf("expected list or array, got %T", s)
}

// toFloatSlice converts a Lisp list of numbers to []float64.
func toFloatSlice(s zygo.Sexp) ([]float64, error) {
	items, err := sexpListToSlice(s)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(items))
	for i, item := range items {
		f, err := toFloat64(item)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out[i] = f
	}
	return out, nil
}

// toIntSlice converts a Lisp list of integers to []int.
func toIntSlice(s zygo.Sexp) ([]int, error) {
	items, err := sexpListToSlice(s)
	if err != nil {
		return nil, err
	}
	out := make([]int, len(items))
	for i, item := range items {
		n, err := toInt(item)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out[i] = n
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Parameter keyword application
// ---------------------------------------------------------------------------

// applyParamKw overlays keyword arguments onto a ParameterSet. Unknown
// keywords are hard errors so typos never silently produce default trees.
func applyParamKw(set *params.ParameterSet, pa kwArgs) error {
	for _, name := range pa.kwOrder {
		v := pa.kw[name]
		var err error
		switch name {
		case "name":
			set.Name, err = toString(v)
		case "shape":
			var s string
			if s, err = toKeywordString(v); err == nil {
				set.Shape, err = params.ShapeFromName(s)
			}
		case "g-scale":
			set.GScale, err = toFloat64(v)
		case "g-scale-v":
			set.GScaleV, err = toFloat64(v)
		case "levels":
			set.Levels, err = toInt(v)
		case "ratio":
			set.Ratio, err = toFloat64(v)
		case "ratio-power":
			set.RatioPower, err = toFloat64(v)
		case "flare":
			set.Flare, err = toFloat64(v)
		case "base-size":
			set.BaseSize, err = toFloat64(v)
		case "floor-splits":
			set.FloorSplits, err = toInt(v)
		case "base-splits":
			set.BaseSplits, err = toInt(v)
		case "base-splits-randomize":
			set.BaseSplitsRandomize, err = toBool(v)
		case "length":
			set.Length, err = toFloatSlice(v)
		case "length-v":
			set.LengthV, err = toFloatSlice(v)
		case "taper":
			set.Taper, err = toFloatSlice(v)
		case "curve-res":
			set.CurveRes, err = toIntSlice(v)
		case "curve":
			set.Curve, err = toFloatSlice(v)
		case "curve-v":
			set.CurveV, err = toFloatSlice(v)
		case "curve-back":
			set.CurveBack, err = toFloatSlice(v)
		case "seg-splits":
			set.SegSplits, err = toFloatSlice(v)
		case "split-angle":
			set.SplitAngle, err = toFloatSlice(v)
		case "split-angle-v":
			set.SplitAngleV, err = toFloatSlice(v)
		case "down-angle":
			set.DownAngle, err = toFloatSlice(v)
		case "down-angle-v":
			set.DownAngleV, err = toFloatSlice(v)
		case "rotate":
			set.Rotate, err = toFloatSlice(v)
		case "rotate-v":
			set.RotateV, err = toFloatSlice(v)
		case "branches":
			set.Branches, err = toIntSlice(v)
		case "prune-ratio":
			set.Prune.Ratio, err = toFloat64(v)
		case "prune-width":
			set.Prune.Width, err = toFloat64(v)
		case "prune-width-peak":
			set.Prune.WidthPeak, err = toFloat64(v)
		case "prune-power-low":
			set.Prune.PowerLow, err = toFloat64(v)
		case "prune-power-high":
			set.Prune.PowerHigh, err = toFloat64(v)
		case "leaf-count":
			set.Leaf.Count, err = toInt(v)
		case "leaf-shape":
			var s string
			if s, err = toKeywordString(v); err == nil {
				set.Leaf.Shape, err = params.LeafShapeFromName(s)
			}
		case "leaf-scale":
			set.Leaf.Scale, err = toFloat64(v)
		case "leaf-scale-x":
			set.Leaf.ScaleX, err = toFloat64(v)
		case "leaf-bend":
			set.Leaf.Bend, err = toFloat64(v)
		case "blossom":
			set.Blossom.Enabled, err = toBool(v)
		case "blossom-shape":
			var s string
			if s, err = toKeywordString(v); err == nil {
				set.Blossom.Shape, err = params.BlossomShapeFromName(s)
			}
		case "blossom-scale":
			set.Blossom.Scale, err = toFloat64(v)
		case "blossom-rate":
			set.Blossom.Rate, err = toFloat64(v)
		default:
			return fmt.Errorf("unknown parameter %q", name)
		}
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs the arbor DSL builtins into a zygomys
// environment. The tree builtin appends finished requests to the
// provided collector during evaluation.
//
// Source code must be preprocessed with preprocessSource() before
// evaluation so that :keyword tokens are converted to recognizable
// string literals.
func registerBuiltins(env *zygo.Zlisp, requests *[]*treegen.Request) {

	// -----------------------------------------------------------------------
	// (params :shape :conical :g-scale 13 :levels 3 :leaf-count 40)
	// (params base :g-scale 20)    ; overlay on another bundle
	// -----------------------------------------------------------------------
	env.AddFunction("params", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		set := params.Defaults()
		if len(pa.positional) > 0 {
			base, ok := pa.positional[0].(*sexpParams)
			if !ok {
				return zygo.SexpNull, fmt.Errorf("params: expected parameter bundle, got %T", pa.positional[0])
			}
			set = base.set.Clone()
		}
		if err := applyParamKw(&set, pa); err != nil {
			return zygo.SexpNull, fmt.Errorf("params: %w", err)
		}
		return &sexpParams{set: set}, nil
	})

	// -----------------------------------------------------------------------
	// (preset "black_oak")
	// -----------------------------------------------------------------------
	env.AddFunction("preset", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) < 1 {
			return zygo.SexpNull, fmt.Errorf("preset requires a name argument")
		}
		presetName, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("preset: name: %w", err)
		}
		set, err := params.Preset(presetName)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("preset: %w", err)
		}
		return &sexpParams{set: set}, nil
	})

	// -----------------------------------------------------------------------
	// (rule "X" "F[+X][-X]FX")
	// -----------------------------------------------------------------------
	env.AddFunction("rule", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("rule requires a symbol and a replacement, got %d arguments", len(args))
		}
		symStr, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("rule: symbol: %w", err)
		}
		if utf8.RuneCountInString(symStr) != 1 {
			return zygo.SexpNull, fmt.Errorf("rule: symbol must be a single character, got %q", symStr)
		}
		repl, err := toString(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("rule: replacement: %w", err)
		}
		sym, _ := utf8.DecodeRuneInString(symStr)
		return &sexpRule{sym: sym, repl: repl}, nil
	})

	// -----------------------------------------------------------------------
	// (grammar :axiom "X" :angle 25 :step 0.3 :width 0.1 :width-scale 0.8
	//          :iterations 5 (rule "X" "F[+X][-X]FX") (rule "F" "FF"))
	// -----------------------------------------------------------------------
	env.AddFunction("grammar", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		g := lsystem.Grammar{
			Rules:      make(map[rune]string),
			Angle:      25,
			Step:       0.3,
			Width:      0.1,
			WidthScale: 0.8,
			Iterations: 4,
		}

		var err error
		for _, kwName := range pa.kwOrder {
			v := pa.kw[kwName]
			switch kwName {
			case "name":
				g.Name, err = toString(v)
			case "axiom":
				g.Axiom, err = toString(v)
			case "angle":
				g.Angle, err = toFloat64(v)
			case "step":
				g.Step, err = toFloat64(v)
			case "width":
				g.Width, err = toFloat64(v)
			case "width-scale":
				g.WidthScale, err = toFloat64(v)
			case "iterations":
				g.Iterations, err = toInt(v)
			default:
				return zygo.SexpNull, fmt.Errorf("grammar: unknown option %q", kwName)
			}
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("grammar: %s: %w", kwName, err)
			}
		}

		for i, arg := range pa.positional {
			r, ok := arg.(*sexpRule)
			if !ok {
				return zygo.SexpNull, fmt.Errorf("grammar: argument %d: expected rule, got %T (%s)",
					i, arg, arg.SexpString(nil))
			}
			g.Rules[r.sym] = r.repl
		}

		if err := g.Validate(); err != nil {
			return zygo.SexpNull, fmt.Errorf("grammar: %w", err)
		}
		return &sexpGrammar{g: g}, nil
	})

	// -----------------------------------------------------------------------
	// (lsys-preset "fractal_plant")
	//
	// Registered as "lsys_preset" because zygomys does not support hyphens
	// in identifiers. The preprocessor converts lsys-preset in the source.
	// -----------------------------------------------------------------------
	env.AddFunction("lsys_preset", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) < 1 {
			return zygo.SexpNull, fmt.Errorf("lsys-preset requires a name argument")
		}
		grammarName, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("lsys-preset: name: %w", err)
		}
		g, err := lsystem.ByName(grammarName)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("lsys-preset: %w", err)
		}
		return &sexpGrammar{g: g}, nil
	})

	// -----------------------------------------------------------------------
	// (tree :name "oak" :params (preset "black_oak") :seed 42)
	// (tree :name "bare" :params (preset "black_oak") :leaves false)
	// (tree :name "fern" :grammar (lsys-preset "wild_fern") :iterations 5)
	// -----------------------------------------------------------------------
	env.AddFunction("tree", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		req := &treegen.Request{Params: params.Defaults()}

		// Foliage toggles are applied after the loop so they win
		// regardless of where :params appears in the call.
		var (
			leavesSet, leavesOn     bool
			blossomsSet, blossomsOn bool
		)

		var err error
		for _, kwName := range pa.kwOrder {
			v := pa.kw[kwName]
			switch kwName {
			case "name":
				req.Name, err = toString(v)
			case "seed":
				var n int
				if n, err = toInt(v); err == nil {
					req.Seed = int64(n)
				}
			case "iterations":
				req.Iterations, err = toInt(v)
			case "leaves":
				leavesOn, err = toBool(v)
				leavesSet = true
			case "blossoms":
				blossomsOn, err = toBool(v)
				blossomsSet = true
			case "params":
				p, ok := v.(*sexpParams)
				if !ok {
					return zygo.SexpNull, fmt.Errorf("tree: params: expected parameter bundle, got %T", v)
				}
				req.Params = p.set
			case "grammar":
				g, ok := v.(*sexpGrammar)
				if !ok {
					return zygo.SexpNull, fmt.Errorf("tree: grammar: expected grammar, got %T", v)
				}
				grammar := g.g
				req.Grammar = &grammar
				req.Mode = treegen.ModeGrammar
			default:
				return zygo.SexpNull, fmt.Errorf("tree: unknown option %q", kwName)
			}
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("tree: %s: %w", kwName, err)
			}
		}

		if leavesSet {
			if !leavesOn {
				req.Params.Leaf.Count = 0
			} else if req.Params.Leaf.Count == 0 {
				req.Params.Leaf.Count = params.Defaults().Leaf.Count
			}
		}
		if blossomsSet {
			req.Params.Blossom.Enabled = blossomsOn
		}

		if req.Mode == treegen.ModeParametric {
			if findings := req.Params.Validate(); params.HasErrors(findings) {
				return zygo.SexpNull, fmt.Errorf("tree: %w", &params.InvalidParameterError{Findings: findings})
			}
		}

		*requests = append(*requests, req)
		return &sexpTreeRef{index: len(*requests) - 1, name: req.Name}, nil
	})
}
