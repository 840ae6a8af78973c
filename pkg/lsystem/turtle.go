package lsystem

import (
	"fmt"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/arbor/pkg/skeleton"
)

// turtleState is one saved cursor: position, orientation frame, pen
// width, the stem being drawn, and the stem new branches parent to.
// The push/pop stack holds these by value so a pop restores exactly the
// frame its matching push saved.
type turtleState struct {
	pos    v3.Vec
	frame  skeleton.Frame
	width  float64
	stem   skeleton.StemID // stem being extended, NoStem when the pen is up
	parent skeleton.StemID // parent for the next stem started
	level  int             // bracket nesting depth
}

// Generate expands the grammar for the given iteration count and walks
// the result with a turtle, emitting a Skeleton whose parent/child stem
// relationships mirror the bracket nesting.
func Generate(g *Grammar, iterations int) (*skeleton.Skeleton, []skeleton.Warning, error) {
	expanded, err := g.Expand(iterations)
	if err != nil {
		return nil, nil, err
	}
	return interpret(g, expanded)
}

// interpret walks an expanded symbol string left to right.
//
// Recognized symbols:
//
//	F   move and draw        f   move without drawing
//	+ - turn left/right      & ^ pitch down/up
//	/ \ roll                 !   scale pen width
//	[   push state           ]   pop state
//	$   begin a new stem at the current position
//
// Symbols with a production in the grammar are structural nonterminals
// and are skipped silently; anything else is skipped with one aggregated
// warning per distinct symbol.
func interpret(g *Grammar, symbols string) (*skeleton.Skeleton, []skeleton.Warning, error) {
	skel := skeleton.New()
	var warnings []skeleton.Warning

	cur := turtleState{
		frame:  skeleton.Upright(),
		width:  g.Width,
		stem:   skeleton.NoStem,
		parent: skeleton.NoStem,
	}
	var stack []turtleState

	var unknownOrder []rune
	unknownSeen := make(map[rune]bool)

	for i, sym := range symbols {
		switch sym {
		case 'F':
			if cur.stem == skeleton.NoStem {
				cur.stem = startStem(skel, &cur)
			}
			cur.pos = cur.pos.Add(cur.frame.Heading.MulScalar(g.Step))
			st := skel.Get(cur.stem)
			st.Points = append(st.Points, skeleton.Point{Pos: cur.pos, Radius: cur.width / 2})

		case 'f':
			cur.pos = cur.pos.Add(cur.frame.Heading.MulScalar(g.Step))
			if cur.stem != skeleton.NoStem {
				cur.parent = cur.stem
				cur.stem = skeleton.NoStem
			}

		case '+':
			cur.frame = cur.frame.Turn(g.Angle)
		case '-':
			cur.frame = cur.frame.Turn(-g.Angle)
		case '&':
			cur.frame = cur.frame.Pitch(g.Angle)
		case '^':
			cur.frame = cur.frame.Pitch(-g.Angle)
		case '/':
			cur.frame = cur.frame.Roll(g.Angle)
		case '\\':
			cur.frame = cur.frame.Roll(-g.Angle)

		case '!':
			cur.width *= g.WidthScale

		case '$':
			if cur.stem != skeleton.NoStem {
				cur.parent = cur.stem
				cur.stem = skeleton.NoStem
			}

		case '[':
			stack = append(stack, cur)
			if cur.stem != skeleton.NoStem {
				cur.parent = cur.stem
			}
			cur.stem = skeleton.NoStem
			cur.level++

		case ']':
			if len(stack) == 0 {
				return nil, nil, &MalformedGrammarError{Pos: i, Message: "unmatched closing bracket"}
			}
			cur = stack[len(stack)-1]
			stack = stack[:len(stack)-1]

		default:
			if _, structural := g.Rules[sym]; structural {
				continue
			}
			if !unknownSeen[sym] {
				unknownSeen[sym] = true
				unknownOrder = append(unknownOrder, sym)
			}
		}
	}

	if len(stack) != 0 {
		return nil, nil, &MalformedGrammarError{Pos: -1, Message: fmt.Sprintf("%d unclosed brackets", len(stack))}
	}

	for _, sym := range unknownOrder {
		warnings = append(warnings, skeleton.Warning{
			Kind:    skeleton.WarnUnknownSymbol,
			Message: fmt.Sprintf("symbol %q not recognized; ignored", string(sym)),
		})
	}

	return skel, warnings, nil
}

// startStem opens a new stem at the turtle's position. The first stem of
// the walk becomes the root; any later stem without an explicit parent
// attaches to the root so the skeleton stays single-rooted.
func startStem(skel *skeleton.Skeleton, cur *turtleState) skeleton.StemID {
	parent := cur.parent
	if parent == skeleton.NoStem && len(skel.Stems) > 0 {
		parent = skel.Stems[0].ID
	}
	st := skel.NewStem(cur.level, parent)
	st.Points = append(st.Points, skeleton.Point{Pos: cur.pos, Radius: cur.width / 2})
	return st.ID
}
