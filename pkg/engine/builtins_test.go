package engine

import (
	"strings"
	"testing"

	"github.com/calley/roadline/pkg/doc"
)

// evalOK evaluates source and fails the test on any error.
func evalOK(t *testing.T, source string) *doc.Fragment {
	t.Helper()
	eng := NewEngine()
	frag, evalErrs, err := eng.Evaluate(source)
	if err != nil {
		t.Fatalf("fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("eval errors: %v", evalErrs)
	}
	return frag
}

// evalErr evaluates source and returns the first eval error message.
func evalErr(t *testing.T, source string) string {
	t.Helper()
	eng := NewEngine()
	_, evalErrs, err := eng.Evaluate(source)
	if err != nil {
		t.Fatalf("fatal error: %v", err)
	}
	if len(evalErrs) == 0 {
		t.Fatal("expected eval errors")
	}
	return evalErrs[0].Message
}

func TestNodeBuiltin(t *testing.T) {
	frag := evalOK(t, "(node 100 200)")
	if len(frag.Nodes) != 1 {
		t.Fatalf("fragment has %d nodes, want 1", len(frag.Nodes))
	}
	n := frag.Nodes[0]
	if n.X != 100 || n.Y != 200 {
		t.Errorf("node at (%f,%f), want (100,200)", n.X, n.Y)
	}
	if n.Kind != doc.KindIntersection {
		t.Errorf("default kind = %v, want intersection", n.Kind)
	}
	if n.ID == "" {
		t.Error("node should get a fresh id")
	}
}

func TestNodeBuiltinTypeKeyword(t *testing.T) {
	frag := evalOK(t, "(node 0 0 :type :exit)")
	if frag.Nodes[0].Kind != doc.KindExit {
		t.Errorf("kind = %v, want exit", frag.Nodes[0].Kind)
	}

	msg := evalErr(t, "(node 0 0 :type :motorway)")
	if !strings.Contains(msg, "invalid node type") {
		t.Errorf("error = %q, want invalid node type", msg)
	}
}

func TestRoadBuiltin(t *testing.T) {
	frag := evalOK(t, `
		(def a (node 0 0))
		(def b (node 100 0))
		(road a b :width 20 :lanes 2)
	`)
	if len(frag.Roads) != 1 {
		t.Fatalf("fragment has %d roads, want 1", len(frag.Roads))
	}
	r := frag.Roads[0]
	if len(r.Points) != 2 {
		t.Errorf("road has %d points, want 2", len(r.Points))
	}
	if r.Width != 20 || r.Lanes != 2 {
		t.Errorf("road width/lanes = %f/%d, want 20/2", r.Width, r.Lanes)
	}
	if r.Points[0] != frag.Nodes[0].ID || r.Points[1] != frag.Nodes[1].ID {
		t.Error("road points do not reference the created nodes in order")
	}
}

func TestRoadBuiltinDefaults(t *testing.T) {
	frag := evalOK(t, `
		(def a (node 0 0))
		(def b (node 100 0))
		(road a b)
	`)
	r := frag.Roads[0]
	if r.Width != doc.DefaultRoadWidth || r.Lanes != doc.DefaultLaneCount {
		t.Errorf("road defaults = %f/%d", r.Width, r.Lanes)
	}
}

func TestRoadBuiltinDedupsConsecutivePoints(t *testing.T) {
	frag := evalOK(t, `
		(def a (node 0 0))
		(def b (node 100 0))
		(road a a b)
	`)
	if got := len(frag.Roads[0].Points); got != 2 {
		t.Errorf("road has %d points, want 2 (consecutive duplicate dropped)", got)
	}
}

func TestRoadBuiltinTooFewPoints(t *testing.T) {
	msg := evalErr(t, `
		(def a (node 0 0))
		(road a)
	`)
	if !strings.Contains(msg, "at least 2") {
		t.Errorf("error = %q, want arity complaint", msg)
	}
}

func TestDiamondBuiltin(t *testing.T) {
	frag := evalOK(t, "(diamond 300 200 120)")
	if len(frag.Nodes) != 5 || len(frag.Roads) != 6 {
		t.Errorf("diamond: %d nodes / %d roads, want 5/6", len(frag.Nodes), len(frag.Roads))
	}
}

func TestTeeBuiltin(t *testing.T) {
	frag := evalOK(t, "(tee 100 100 80)")
	if len(frag.Nodes) != 4 || len(frag.Roads) != 2 {
		t.Errorf("tee: %d nodes / %d roads, want 4/2", len(frag.Nodes), len(frag.Roads))
	}
}

func TestRoundaboutBuiltin(t *testing.T) {
	frag := evalOK(t, "(roundabout 0 0 60 :arms 4)")
	if len(frag.Nodes) != 17 || len(frag.Roads) != 5 {
		t.Errorf("roundabout: %d nodes / %d roads, want 17/5", len(frag.Nodes), len(frag.Roads))
	}

	frag = evalOK(t, "(roundabout 0 0 60)")
	if len(frag.Nodes) != 17 {
		t.Errorf("default arms should be 4, got %d nodes", len(frag.Nodes))
	}
}

func TestCommentsAndKeywordPreprocessing(t *testing.T) {
	frag := evalOK(t, `
		; a full-line comment
		(node 10 20) ; trailing comment
	`)
	if len(frag.Nodes) != 1 {
		t.Errorf("fragment has %d nodes, want 1", len(frag.Nodes))
	}
}

func TestPreprocessSourceKeepsStrings(t *testing.T) {
	src := `(print "a ; not a comment :nor-a-keyword")`
	got := preprocessSource(src)
	if got != src {
		t.Errorf("string literal altered:\n in: %s\nout: %s", src, got)
	}
}

func TestPreprocessSourceConvertsKeywords(t *testing.T) {
	got := preprocessSource("(node 0 0 :type :exit)")
	want := `(node 0 0 "__kw_type" "__kw_exit")`
	if got != want {
		t.Errorf("preprocess = %s, want %s", got, want)
	}
}
