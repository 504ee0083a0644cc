package editor

import "fmt"

// Tool enumerates the interaction modes governing click semantics. The
// active tool is explicit and user-selected; it persists until changed,
// except that Escape and road finalization reset it to ToolSelect.
type Tool int

const (
	ToolSelect Tool = iota
	ToolAddNode
	ToolAddRoad
	ToolMove
	ToolDelete
)

func (t Tool) String() string {
	switch t {
	case ToolSelect:
		return "select"
	case ToolAddNode:
		return "add-node"
	case ToolAddRoad:
		return "add-road"
	case ToolMove:
		return "move"
	case ToolDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// ParseTool converts the string form back to a Tool.
func ParseTool(s string) (Tool, error) {
	switch s {
	case "select":
		return ToolSelect, nil
	case "add-node":
		return ToolAddNode, nil
	case "add-road":
		return ToolAddRoad, nil
	case "move":
		return ToolMove, nil
	case "delete":
		return ToolDelete, nil
	}
	return 0, fmt.Errorf("invalid tool %q", s)
}
