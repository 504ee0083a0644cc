// Package geom provides the 2D geometric primitives used by the editor:
// Euclidean distance and point-to-segment distance on canvas coordinates.
package geom

import (
	v2 "github.com/deadsy/sdfx/vec/v2"
)

// Distance returns the Euclidean distance between two points.
func Distance(a, b v2.Vec) float64 {
	return a.Sub(b).Length()
}

// PointToSegment returns the shortest distance from point p to the line
// segment [v,w]. For a degenerate segment (v == w) this is Distance(p, v).
// Otherwise p is projected onto the infinite line through v and w, the
// projection parameter is clamped to [0,1], and the distance to the clamped
// projection point is returned.
func PointToSegment(p, v, w v2.Vec) float64 {
	d := w.Sub(v)
	l2 := d.Dot(d)
	if l2 == 0 {
		return Distance(p, v)
	}
	t := p.Sub(v).Dot(d) / l2
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return Distance(p, v.Add(d.MulScalar(t)))
}
