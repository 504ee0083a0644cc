package doc

import (
	v2 "github.com/deadsy/sdfx/vec/v2"

	"github.com/calley/roadline/pkg/geom"
)

// NearestNode returns the node with minimum distance to p if that distance
// is within radius, or nil. The comparison is strict <, so ties go to the
// first node in insertion order.
func (d *Document) NearestNode(p v2.Vec, radius float64) *Node {
	var best *Node
	bestDist := 0.0
	for _, n := range d.Nodes {
		dist := geom.Distance(p, n.Pos())
		if dist > radius {
			continue
		}
		if best == nil || dist < bestDist {
			best = n
			bestDist = dist
		}
	}
	return best
}

// FirstRoadWithin returns the first road, in insertion order, with any
// segment closer to p than threshold. First match wins; the search does
// not continue looking for a closer road. Dangling point references are
// skipped before segments are formed.
func (d *Document) FirstRoadWithin(p v2.Vec, threshold float64) *Road {
	for _, r := range d.Roads {
		points := d.ResolvePoints(r)
		for i := 0; i+1 < len(points); i++ {
			if geom.PointToSegment(p, points[i], points[i+1]) < threshold {
				return r
			}
		}
	}
	return nil
}
