package doc

import (
	"github.com/google/uuid"
)

// NodeID is the opaque identifier of a node.
type NodeID string

// RoadID is the opaque identifier of a road.
type RoadID string

// NewNodeID generates a fresh node id.
func NewNodeID() NodeID {
	return NodeID(uuid.NewString())
}

// NewRoadID generates a fresh road id.
func NewRoadID() RoadID {
	return RoadID(uuid.NewString())
}

// Short returns a truncated form of the id for logs and error messages.
func (id NodeID) Short() string {
	return shorten(string(id))
}

// Short returns a truncated form of the id for logs and error messages.
func (id RoadID) Short() string {
	return shorten(string(id))
}

func shorten(s string) string {
	if len(s) <= 8 {
		return s
	}
	return s[:8]
}
