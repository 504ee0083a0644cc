// Package render turns a document into an ordered list of drawable
// primitives for the view layer, and serializes documents to JSON and SVG.
package render

import (
	"github.com/calley/roadline/pkg/doc"
	"github.com/calley/roadline/pkg/editor"
)

// Node circle radii in canvas units; selected nodes are enlarged.
const (
	NodeRadius         = 6
	SelectedNodeRadius = 9
)

// Options controls scene construction.
type Options struct {
	Width    int     // canvas width
	Height   int     // canvas height
	GridSize float64 // grid line spacing; non-positive disables the grid
}

// Line is a straight drawable segment (grid lines).
type Line struct {
	X1, Y1, X2, Y2 float64
}

// Point is a resolved polyline vertex.
type Point struct {
	X, Y float64
}

// RoadShape is a drawable road: a polyline with a width and a dashed
// centerline overlay.
type RoadShape struct {
	ID       doc.RoadID
	Points   []Point
	Width    float64
	Lanes    int
	Selected bool
}

// NodeShape is a drawable node circle.
type NodeShape struct {
	ID       doc.NodeID
	X, Y     float64
	Radius   float64
	Kind     doc.NodeKind
	Selected bool
}

// Scene is the full ordered drawable list: grid first, then roads, then
// nodes on top.
type Scene struct {
	Width  int
	Height int
	Grid   []Line
	Roads  []RoadShape
	Nodes  []NodeShape
}

// Build constructs a scene from the document and current selection. Roads
// whose resolved polyline has fewer than two points are silently skipped;
// that covers both unfinalized fragments and roads degraded by deletions.
func Build(d *doc.Document, sel editor.Selection, opts Options) *Scene {
	s := &Scene{Width: opts.Width, Height: opts.Height}

	if opts.GridSize > 0 {
		g := opts.GridSize
		for x := 0.0; x <= float64(opts.Width); x += g {
			s.Grid = append(s.Grid, Line{X1: x, Y1: 0, X2: x, Y2: float64(opts.Height)})
		}
		for y := 0.0; y <= float64(opts.Height); y += g {
			s.Grid = append(s.Grid, Line{X1: 0, Y1: y, X2: float64(opts.Width), Y2: y})
		}
	}

	for _, r := range d.Roads {
		resolved := d.ResolvePoints(r)
		if len(resolved) < 2 {
			continue
		}
		shape := RoadShape{
			ID:       r.ID,
			Points:   make([]Point, len(resolved)),
			Width:    r.Width,
			Lanes:    r.Lanes,
			Selected: sel.Kind == editor.SelRoad && sel.Road == r.ID,
		}
		for i, p := range resolved {
			shape.Points[i] = Point{X: p.X, Y: p.Y}
		}
		s.Roads = append(s.Roads, shape)
	}

	for _, n := range d.Nodes {
		selected := sel.Kind == editor.SelNode && sel.Node == n.ID
		radius := float64(NodeRadius)
		if selected {
			radius = SelectedNodeRadius
		}
		s.Nodes = append(s.Nodes, NodeShape{
			ID:       n.ID,
			X:        n.X,
			Y:        n.Y,
			Radius:   radius,
			Kind:     n.Kind,
			Selected: selected,
		})
	}

	return s
}
