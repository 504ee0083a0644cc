// Package template provides parametric generators for common road
// topologies. Each generator is a pure function of a center point and
// spacing/radius parameters, producing a fresh fragment of nodes and roads;
// it never references or merges with existing geometry. The editor pushes
// the undo snapshot and appends the fragment.
package template

import (
	"math"

	v2 "github.com/deadsy/sdfx/vec/v2"

	"github.com/calley/roadline/pkg/doc"
	"github.com/calley/roadline/pkg/geom"
)

// RingNodeCount is the fixed number of nodes placed on a roundabout circle.
const RingNodeCount = 12

func newNode(p v2.Vec, kind doc.NodeKind) *doc.Node {
	return &doc.Node{ID: doc.NewNodeID(), X: p.X, Y: p.Y, Kind: kind}
}

func newRoad(points ...doc.NodeID) *doc.Road {
	return &doc.Road{
		ID:     doc.NewRoadID(),
		Points: points,
		Width:  doc.DefaultRoadWidth,
		Lanes:  doc.DefaultLaneCount,
	}
}

// Diamond generates a diamond interchange: one center junction plus four
// exits at ±spacing along each axis, connected by two straight cross roads
// (W–E, N–S) and four 3-point ramp roads through the center, linking
// adjacent exits in rotation (N→E, E→S, S→W, W→N). 5 nodes, 6 roads.
func Diamond(center v2.Vec, spacing float64) *doc.Fragment {
	c := newNode(center, doc.KindJunction)
	n := newNode(v2.Vec{X: center.X, Y: center.Y - spacing}, doc.KindExit)
	e := newNode(v2.Vec{X: center.X + spacing, Y: center.Y}, doc.KindExit)
	s := newNode(v2.Vec{X: center.X, Y: center.Y + spacing}, doc.KindExit)
	w := newNode(v2.Vec{X: center.X - spacing, Y: center.Y}, doc.KindExit)

	return &doc.Fragment{
		Nodes: []*doc.Node{c, n, e, s, w},
		Roads: []*doc.Road{
			newRoad(w.ID, e.ID),
			newRoad(n.ID, s.ID),
			newRoad(n.ID, c.ID, e.ID),
			newRoad(e.ID, c.ID, s.ID),
			newRoad(s.ID, c.ID, w.ID),
			newRoad(w.ID, c.ID, n.ID),
		},
	}
}

// Tee generates a T-intersection: two exits on a horizontal line, an
// intersection node above their midpoint, and a junction at the midpoint
// itself, with a horizontal road between the exits and a vertical stub
// from the intersection down to the junction. 4 nodes, 2 roads.
func Tee(center v2.Vec, spacing float64) *doc.Fragment {
	left := newNode(v2.Vec{X: center.X - spacing, Y: center.Y}, doc.KindExit)
	right := newNode(v2.Vec{X: center.X + spacing, Y: center.Y}, doc.KindExit)
	top := newNode(v2.Vec{X: center.X, Y: center.Y - spacing}, doc.KindIntersection)
	mid := newNode(center, doc.KindJunction)

	return &doc.Fragment{
		Nodes: []*doc.Node{left, right, top, mid},
		Roads: []*doc.Road{
			newRoad(left.ID, right.ID),
			newRoad(top.ID, mid.ID),
		},
	}
}

// Roundabout generates a roundabout: a center marker, `arms` exit nodes on
// a circle of twice the radius at even angular spacing, and a ring of 12
// nodes on the roundabout circle connected in angular order into one ring
// road. Each exit gets a connector road to its nearest ring node (ties to
// the first encountered). 1 + 12 + arms nodes, 1 + arms roads.
func Roundabout(center v2.Vec, radius float64, arms int) *doc.Fragment {
	if arms < 1 {
		arms = 1
	}

	frag := &doc.Fragment{}

	c := newNode(center, doc.KindRoundabout)
	frag.Nodes = append(frag.Nodes, c)

	ring := make([]*doc.Node, RingNodeCount)
	ringIDs := make([]doc.NodeID, RingNodeCount)
	for i := range ring {
		angle := 2 * math.Pi * float64(i) / RingNodeCount
		p := v2.Vec{
			X: center.X + radius*math.Cos(angle),
			Y: center.Y + radius*math.Sin(angle),
		}
		ring[i] = newNode(p, doc.KindRound)
		ringIDs[i] = ring[i].ID
		frag.Nodes = append(frag.Nodes, ring[i])
	}
	frag.Roads = append(frag.Roads, newRoad(ringIDs...))

	for i := 0; i < arms; i++ {
		angle := 2 * math.Pi * float64(i) / float64(arms)
		p := v2.Vec{
			X: center.X + 2*radius*math.Cos(angle),
			Y: center.Y + 2*radius*math.Sin(angle),
		}
		exit := newNode(p, doc.KindExit)
		frag.Nodes = append(frag.Nodes, exit)

		nearest := ring[0]
		nearestDist := geom.Distance(exit.Pos(), ring[0].Pos())
		for _, rn := range ring[1:] {
			if d := geom.Distance(exit.Pos(), rn.Pos()); d < nearestDist {
				nearest = rn
				nearestDist = d
			}
		}
		frag.Roads = append(frag.Roads, newRoad(exit.ID, nearest.ID))
	}

	return frag
}
