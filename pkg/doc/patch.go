package doc

// NodePatch is a partial update for a node's editable fields. Nil fields
// are left unchanged. Property panels build these instead of merging
// dynamic objects.
type NodePatch struct {
	Kind *NodeKind
	X    *float64
	Y    *float64
}

// Apply writes the patch's non-nil fields onto the node.
func (p NodePatch) Apply(n *Node) {
	if p.Kind != nil {
		n.Kind = *p.Kind
	}
	if p.X != nil {
		n.X = *p.X
	}
	if p.Y != nil {
		n.Y = *p.Y
	}
}

// RoadPatch is a partial update for a road's editable fields. Out-of-range
// values fall back to the documented defaults rather than failing.
type RoadPatch struct {
	Width *float64
	Lanes *int
}

// Apply writes the patch's non-nil fields onto the road. A non-positive
// width falls back to DefaultRoadWidth; a lane count below one falls back
// to DefaultLaneCount.
func (p RoadPatch) Apply(r *Road) {
	if p.Width != nil {
		w := *p.Width
		if w <= 0 {
			w = DefaultRoadWidth
		}
		r.Width = w
	}
	if p.Lanes != nil {
		lanes := *p.Lanes
		if lanes < 1 {
			lanes = DefaultLaneCount
		}
		r.Lanes = lanes
	}
}
