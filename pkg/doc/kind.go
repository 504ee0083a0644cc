package doc

import (
	"encoding/json"
	"fmt"
)

// NodeKind enumerates the closed set of node types. It serializes to a
// lowercase string form, so exported documents stay readable.
type NodeKind int

const (
	KindIntersection NodeKind = iota // default for new nodes
	KindExit
	KindJunction
	KindRoundabout // roundabout center marker
	KindRound      // ring node on a roundabout circle
)

func (k NodeKind) String() string {
	switch k {
	case KindIntersection:
		return "intersection"
	case KindExit:
		return "exit"
	case KindJunction:
		return "junction"
	case KindRoundabout:
		return "roundabout"
	case KindRound:
		return "round"
	default:
		return "unknown"
	}
}

// ParseNodeKind converts the string form back to a NodeKind.
func ParseNodeKind(s string) (NodeKind, error) {
	switch s {
	case "intersection":
		return KindIntersection, nil
	case "exit":
		return KindExit, nil
	case "junction":
		return KindJunction, nil
	case "roundabout":
		return KindRoundabout, nil
	case "round":
		return KindRound, nil
	}
	return 0, fmt.Errorf("invalid node type %q", s)
}

// MarshalJSON encodes the kind as its string form.
func (k NodeKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// UnmarshalJSON decodes the string form.
func (k *NodeKind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseNodeKind(s)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
