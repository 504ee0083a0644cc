// Package doc defines the road-network document model: nodes, roads, and
// the flat in-memory document the editor mutates. Roads store node ids, not
// coordinates; their geometry is always derived from node positions, so a
// moved node reshapes every road that references it.
package doc

import (
	v2 "github.com/deadsy/sdfx/vec/v2"
)

// Default values applied when a property field is missing or unparsable.
const (
	DefaultRoadWidth = 12.0
	DefaultLaneCount = 1
	DefaultGridSize  = 10.0
)

// Node is a point entity in the road graph.
type Node struct {
	ID   NodeID   `json:"id"`
	X    float64  `json:"x"`
	Y    float64  `json:"y"`
	Kind NodeKind `json:"type"`
}

// Pos returns the node position as a vector.
func (n *Node) Pos() v2.Vec {
	return v2.Vec{X: n.X, Y: n.Y}
}

// Road is an ordered polyline over node ids. A finalized road has at least
// two points; roads degraded below that by deletions are removed by the
// deletion cascade.
type Road struct {
	ID     RoadID   `json:"id"`
	Points []NodeID `json:"points"`
	Width  float64  `json:"width"`
	Lanes  int      `json:"laneCount"`
}

// Document is the whole editable state: flat node and road collections.
// Both are slices because insertion order is part of the model; hit-testing
// iterates in insertion order and first match wins.
type Document struct {
	Nodes []*Node `json:"nodes"`
	Roads []*Road `json:"roads"`
}

// New creates an empty document.
func New() *Document {
	return &Document{
		Nodes: []*Node{},
		Roads: []*Road{},
	}
}

// AddNode appends a node to the document.
func (d *Document) AddNode(n *Node) {
	d.Nodes = append(d.Nodes, n)
}

// AddRoad appends a road to the document.
func (d *Document) AddRoad(r *Road) {
	d.Roads = append(d.Roads, r)
}

// Node returns the node with the given id, or nil.
func (d *Document) Node(id NodeID) *Node {
	for _, n := range d.Nodes {
		if n.ID == id {
			return n
		}
	}
	return nil
}

// Road returns the road with the given id, or nil.
func (d *Document) Road(id RoadID) *Road {
	for _, r := range d.Roads {
		if r.ID == id {
			return r
		}
	}
	return nil
}

// NodeCount returns the number of nodes.
func (d *Document) NodeCount() int { return len(d.Nodes) }

// RoadCount returns the number of roads.
func (d *Document) RoadCount() int { return len(d.Roads) }

// DeleteRoad removes the road with the given id. Unknown ids are a no-op.
func (d *Document) DeleteRoad(id RoadID) {
	roads := d.Roads[:0]
	for _, r := range d.Roads {
		if r.ID != id {
			roads = append(roads, r)
		}
	}
	d.Roads = roads
}

// DeleteNode removes the node with the given id and cascades: the id is
// stripped from every road's point sequence, and any road left with fewer
// than two points is removed entirely (a road needs two resolvable points
// to render).
func (d *Document) DeleteNode(id NodeID) {
	nodes := d.Nodes[:0]
	for _, n := range d.Nodes {
		if n.ID != id {
			nodes = append(nodes, n)
		}
	}
	d.Nodes = nodes

	roads := d.Roads[:0]
	for _, r := range d.Roads {
		points := r.Points[:0]
		for _, p := range r.Points {
			if p != id {
				points = append(points, p)
			}
		}
		r.Points = points
		if len(r.Points) >= 2 {
			roads = append(roads, r)
		}
	}
	d.Roads = roads
}

// Clear empties both collections.
func (d *Document) Clear() {
	d.Nodes = []*Node{}
	d.Roads = []*Road{}
}

// Clone returns a deep copy of the document. Undo snapshots are built from
// clones, so the copy must share no mutable state with the original.
func (d *Document) Clone() *Document {
	c := &Document{
		Nodes: make([]*Node, len(d.Nodes)),
		Roads: make([]*Road, len(d.Roads)),
	}
	for i, n := range d.Nodes {
		dup := *n
		c.Nodes[i] = &dup
	}
	for i, r := range d.Roads {
		dup := *r
		dup.Points = append([]NodeID(nil), r.Points...)
		c.Roads[i] = &dup
	}
	return c
}

// ResolvePoints maps a road's node ids to positions in order. Dangling
// references (ids deleted from the document) are skipped rather than
// treated as an error; rendering and hit-testing tolerate them.
func (d *Document) ResolvePoints(r *Road) []v2.Vec {
	points := make([]v2.Vec, 0, len(r.Points))
	for _, id := range r.Points {
		if n := d.Node(id); n != nil {
			points = append(points, n.Pos())
		}
	}
	return points
}

// Fragment is a batch of nodes and roads produced by a template generator
// or a script evaluation, appended to a document in one step.
type Fragment struct {
	Nodes []*Node
	Roads []*Road
}

// Append adds all of a fragment's nodes and roads to the document.
func (d *Document) Append(f *Fragment) {
	d.Nodes = append(d.Nodes, f.Nodes...)
	d.Roads = append(d.Roads, f.Roads...)
}
