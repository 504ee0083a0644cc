package engine

import (
	"fmt"

	v2 "github.com/deadsy/sdfx/vec/v2"
	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/calley/roadline/pkg/doc"
	"github.com/calley/roadline/pkg/template"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// preprocessSource transforms script source before passing it to zygomys:
//
//  1. Keyword conversion: :keyword -> "__kw_keyword" (string literal), so
//     keyword arguments need no registered symbols.
//  2. ; line comments become // comments, which is what zygomys parses.
//
// Both transformations respect double-quoted string literal boundaries.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		// Copy double-quoted string literals untouched.
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
		// Convert ; line comments to // comments.
		if b[i] == ';' {
			result = append(result, '/', '/')
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Transform :keyword to "__kw_keyword", preserving := assignment.
		if b[i] == ':' && i+1 < len(b) && b[i+1] != '=' && isLetter(b[i+1]) {
			j := i + 1
			for j < len(b) && isKWChar(b[j]) {
				j++
			}
			result = append(result, '"')
			result = append(result, []byte(kwPrefix)...)
			result = append(result, b[i+1:j]...)
			result = append(result, '"')
			i = j
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
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

// ---------------------------------------------------------------------------
// Custom Sexp types
// ---------------------------------------------------------------------------

// sexpNodeRef wraps a node id so it can be passed from `node` into `road`.
type sexpNodeRef struct {
	id doc.NodeID
}

func (n *sexpNodeRef) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(noderef %s)", n.id.Short())
}
func (n *sexpNodeRef) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// isKW checks if a Sexp is a preprocessed keyword string, returning the
// keyword name without its prefix.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if len(str.S) > len(kwPrefix) && str.S[:len(kwPrefix)] == kwPrefix {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword argument
// list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if ok {
			if i+1 < len(args) {
				result.kw[name] = args[i+1]
				i += 2
			} else {
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

// toKind converts a keyword or string argument to a doc.NodeKind.
func toKind(s zygo.Sexp) (doc.NodeKind, error) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return 0, fmt.Errorf("expected node type keyword, got %T (%s)", s, s.SexpString(nil))
	}
	name := str.S
	if kw, isKeyword := isKW(s); isKeyword {
		name = kw
	}
	return doc.ParseNodeKind(name)
}

// toNodeRef extracts a node id from a sexpNodeRef.
func toNodeRef(s zygo.Sexp) (doc.NodeID, error) {
	if ref, ok := s.(*sexpNodeRef); ok {
		return ref.id, nil
	}
	return "", fmt.Errorf("expected node reference, got %T (%s)", s, s.SexpString(nil))
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs the drawing command builtins into a zygomys
// environment. The builtins populate frag during evaluation; the editor
// appends the finished fragment as one undoable step.
//
// Source must pass through preprocessSource() first so that :keyword
// tokens arrive as recognizable string literals.
func registerBuiltins(env *zygo.Zlisp, frag *doc.Fragment) {

	// -----------------------------------------------------------------------
	// (node x y [:type intersection]) -> node reference
	// -----------------------------------------------------------------------
	env.AddFunction("node", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) != 2 {
			return zygo.SexpNull, fmt.Errorf("node: want (node x y), got %d positional args", len(pa.positional))
		}
		x, err := toFloat64(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("node: x: %w", err)
		}
		y, err := toFloat64(pa.positional[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("node: y: %w", err)
		}

		kind := doc.KindIntersection
		if v, ok := pa.kw["type"]; ok {
			kind, err = toKind(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("node: type: %w", err)
			}
		}

		n := &doc.Node{ID: doc.NewNodeID(), X: x, Y: y, Kind: kind}
		frag.Nodes = append(frag.Nodes, n)
		return &sexpNodeRef{id: n.ID}, nil
	})

	// -----------------------------------------------------------------------
	// (road ref ref ... [:width 12] [:lanes 1])
	// -----------------------------------------------------------------------
	env.AddFunction("road", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) < 2 {
			return zygo.SexpNull, fmt.Errorf("road: want at least 2 node references, got %d", len(pa.positional))
		}

		points := make([]doc.NodeID, 0, len(pa.positional))
		for i, arg := range pa.positional {
			id, err := toNodeRef(arg)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("road: point %d: %w", i, err)
			}
			// Consecutive duplicates would form zero-length segments.
			if len(points) > 0 && points[len(points)-1] == id {
				continue
			}
			points = append(points, id)
		}
		if len(points) < 2 {
			return zygo.SexpNull, fmt.Errorf("road: need 2 distinct consecutive points")
		}

		road := &doc.Road{
			ID:     doc.NewRoadID(),
			Points: points,
			Width:  doc.DefaultRoadWidth,
			Lanes:  doc.DefaultLaneCount,
		}
		if v, ok := pa.kw["width"]; ok {
			w, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("road: width: %w", err)
			}
			if w > 0 {
				road.Width = w
			}
		}
		if v, ok := pa.kw["lanes"]; ok {
			lanes, err := toInt(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("road: lanes: %w", err)
			}
			if lanes >= 1 {
				road.Lanes = lanes
			}
		}

		frag.Roads = append(frag.Roads, road)
		return zygo.SexpNull, nil
	})

	// -----------------------------------------------------------------------
	// (diamond cx cy spacing)
	// -----------------------------------------------------------------------
	env.AddFunction("diamond", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		center, params, err := centerAndParams("diamond", args, 1)
		if err != nil {
			return zygo.SexpNull, err
		}
		appendFragment(frag, template.Diamond(center, params[0]))
		return zygo.SexpNull, nil
	})

	// -----------------------------------------------------------------------
	// (tee cx cy spacing)
	// -----------------------------------------------------------------------
	env.AddFunction("tee", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		center, params, err := centerAndParams("tee", args, 1)
		if err != nil {
			return zygo.SexpNull, err
		}
		appendFragment(frag, template.Tee(center, params[0]))
		return zygo.SexpNull, nil
	})

	// -----------------------------------------------------------------------
	// (roundabout cx cy radius [:arms 4])
	// -----------------------------------------------------------------------
	env.AddFunction("roundabout", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		center, params, err := centerAndParams("roundabout", pa.positional, 1)
		if err != nil {
			return zygo.SexpNull, err
		}
		arms := 4
		if v, ok := pa.kw["arms"]; ok {
			arms, err = toInt(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("roundabout: arms: %w", err)
			}
		}
		appendFragment(frag, template.Roundabout(center, params[0], arms))
		return zygo.SexpNull, nil
	})
}

// centerAndParams parses a center point followed by extra numeric
// parameters from positional args.
func centerAndParams(fn string, args []zygo.Sexp, extra int) (v2.Vec, []float64, error) {
	pa := parseArgs(args)
	want := 2 + extra
	if len(pa.positional) != want {
		return v2.Vec{}, nil, fmt.Errorf("%s: want %d positional args, got %d", fn, want, len(pa.positional))
	}
	values := make([]float64, want)
	for i, arg := range pa.positional {
		f, err := toFloat64(arg)
		if err != nil {
			return v2.Vec{}, nil, fmt.Errorf("%s: arg %d: %w", fn, i, err)
		}
		values[i] = f
	}
	return v2.Vec{X: values[0], Y: values[1]}, values[2:], nil
}

// appendFragment merges src into dst.
func appendFragment(dst, src *doc.Fragment) {
	dst.Nodes = append(dst.Nodes, src.Nodes...)
	dst.Roads = append(dst.Roads, src.Roads...)
}
