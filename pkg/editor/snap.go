package editor

import (
	"math"

	v2 "github.com/deadsy/sdfx/vec/v2"

	"github.com/calley/roadline/pkg/doc"
)

// NodeCaptureRadius is how close (in canvas units) a grid-rounded point
// must be to an existing node for snapping to capture that node.
const NodeCaptureRadius = 14.0

// SnapConfig controls the snapping engine.
type SnapConfig struct {
	Enabled  bool
	GridSize float64
}

// SnapResult is a snapped pointer position. When Node is non-empty the
// point refers to an existing node at exactly Pos; callers must reuse that
// node instead of creating a duplicate.
type SnapResult struct {
	Pos  v2.Vec
	Node doc.NodeID
}

// Snap maps a raw pointer position to a grid-aligned or node-aligned
// position. With snapping disabled it is the identity. Otherwise both
// coordinates are rounded to the nearest GridSize multiple, and if an
// existing node lies within NodeCaptureRadius of the rounded point the
// result is that node's exact position annotated with its id.
func Snap(raw v2.Vec, d *doc.Document, cfg SnapConfig) SnapResult {
	if !cfg.Enabled {
		return SnapResult{Pos: raw}
	}

	grid := cfg.GridSize
	if grid <= 0 {
		grid = doc.DefaultGridSize
	}
	rounded := v2.Vec{
		X: math.Round(raw.X/grid) * grid,
		Y: math.Round(raw.Y/grid) * grid,
	}

	if n := d.NearestNode(rounded, NodeCaptureRadius); n != nil {
		return SnapResult{Pos: n.Pos(), Node: n.ID}
	}
	return SnapResult{Pos: rounded}
}
