// Package editor implements the interactive editing model: the pointer
// interaction state machine (tool modes), snapping, selection, and the
// bounded undo stack, all operating on a single in-memory document. All
// mutations happen synchronously inside event handlers; the editor itself
// is not safe for concurrent use.
package editor

import (
	v2 "github.com/deadsy/sdfx/vec/v2"

	"github.com/calley/roadline/pkg/doc"
	"github.com/calley/roadline/pkg/template"
)

// Hit-test thresholds for click dispatch, in canvas units.
const (
	NodeHitRadius    = 10.0
	RoadHitThreshold = 8.0
)

// SelectionKind says what, if anything, is selected.
type SelectionKind int

const (
	SelNone SelectionKind = iota
	SelNode
	SelRoad
)

// Selection is the at-most-one selected entity. A selection referring to a
// deleted entity is stale and reads as SelNone.
type Selection struct {
	Kind SelectionKind
	Node doc.NodeID
	Road doc.RoadID
}

// dragSession is the transient state of one move gesture, alive between
// mouse-down and mouse-up.
type dragSession struct {
	node   doc.NodeID
	offset v2.Vec        // press offset from the node position
	before *doc.Document // pre-drag snapshot, pushed once at mouse-up
}

// Editor owns the document and all interaction state. Handlers mutate the
// document exclusively through it; there are no ambient globals.
type Editor struct {
	doc     *doc.Document
	tool    Tool
	sel     Selection
	draft   *doc.Road // in-progress road being built by add-road clicks
	drag    *dragSession
	history *History
	snap    SnapConfig
}

// New creates an editor over an empty document with default snapping and
// history depth.
func New() *Editor {
	return &Editor{
		doc:     doc.New(),
		tool:    ToolSelect,
		history: NewHistory(DefaultHistoryDepth),
		snap:    SnapConfig{Enabled: true, GridSize: doc.DefaultGridSize},
	}
}

// NewWithHistory creates an editor with a custom undo depth.
func NewWithHistory(depth int) *Editor {
	e := New()
	e.history = NewHistory(depth)
	return e
}

// Doc returns the live document.
func (e *Editor) Doc() *doc.Document { return e.doc }

// Tool returns the active tool.
func (e *Editor) Tool() Tool { return e.tool }

// SetTool switches the active tool. Any in-progress road is discarded; a
// tool change abandons the gesture that was building it.
func (e *Editor) SetTool(t Tool) {
	e.tool = t
	e.draft = nil
}

// SnapState returns the current snap configuration.
func (e *Editor) SnapState() SnapConfig { return e.snap }

// SetSnap updates the snap configuration. A non-positive grid size falls
// back to the default.
func (e *Editor) SetSnap(enabled bool, gridSize float64) {
	if gridSize <= 0 {
		gridSize = doc.DefaultGridSize
	}
	e.snap = SnapConfig{Enabled: enabled, GridSize: gridSize}
}

// Selection returns the current selection, normalized: if the referenced
// entity no longer exists the result is SelNone.
func (e *Editor) Selection() Selection {
	switch e.sel.Kind {
	case SelNode:
		if e.doc.Node(e.sel.Node) == nil {
			return Selection{}
		}
	case SelRoad:
		if e.doc.Road(e.sel.Road) == nil {
			return Selection{}
		}
	}
	return e.sel
}

// Draft returns the in-progress road, or nil.
func (e *Editor) Draft() *doc.Road { return e.draft }

// History exposes the undo stack (read-mostly; tests inspect depth).
func (e *Editor) History() *History { return e.history }

// checkpoint pushes a deep copy of the document, labeled by the operation
// about to run.
func (e *Editor) checkpoint(label string) {
	e.history.Push(label, e.doc.Clone())
}

// Click handles a primary click at raw canvas coordinates, dispatching on
// the active tool.
func (e *Editor) Click(x, y float64) {
	snapped := Snap(v2.Vec{X: x, Y: y}, e.doc, e.snap)

	switch e.tool {
	case ToolAddNode:
		e.clickAddNode(snapped)
	case ToolAddRoad:
		e.clickAddRoad(snapped)
	case ToolSelect:
		e.clickSelect(snapped.Pos)
	case ToolDelete:
		e.clickDelete(snapped.Pos)
	case ToolMove:
		// Moving happens through mouse-down/move/up, not clicks.
	}
}

func (e *Editor) clickAddNode(s SnapResult) {
	// The snap contract: a matched id refers to an existing node, which
	// must not be duplicated. Select it instead.
	if s.Node != "" {
		e.sel = Selection{Kind: SelNode, Node: s.Node}
		return
	}
	e.checkpoint("add node")
	n := &doc.Node{ID: doc.NewNodeID(), X: s.Pos.X, Y: s.Pos.Y, Kind: doc.KindIntersection}
	e.doc.AddNode(n)
	e.sel = Selection{Kind: SelNode, Node: n.ID}
}

func (e *Editor) clickAddRoad(s SnapResult) {
	e.checkpoint("add road point")

	id := s.Node
	if id == "" {
		n := &doc.Node{ID: doc.NewNodeID(), X: s.Pos.X, Y: s.Pos.Y, Kind: doc.KindIntersection}
		e.doc.AddNode(n)
		id = n.ID
	}

	if e.draft == nil {
		e.draft = &doc.Road{
			Points: []doc.NodeID{id},
			Width:  doc.DefaultRoadWidth,
			Lanes:  doc.DefaultLaneCount,
		}
		return
	}
	// Re-clicking the last node is a no-op, not a zero-length segment.
	if e.draft.Points[len(e.draft.Points)-1] == id {
		return
	}
	e.draft.Points = append(e.draft.Points, id)
}

func (e *Editor) clickSelect(p v2.Vec) {
	if n := e.doc.NearestNode(p, NodeHitRadius); n != nil {
		e.sel = Selection{Kind: SelNode, Node: n.ID}
		return
	}
	if r := e.doc.FirstRoadWithin(p, RoadHitThreshold); r != nil {
		e.sel = Selection{Kind: SelRoad, Road: r.ID}
		return
	}
	e.sel = Selection{}
}

func (e *Editor) clickDelete(p v2.Vec) {
	if n := e.doc.NearestNode(p, NodeHitRadius); n != nil {
		e.checkpoint("delete node")
		e.doc.DeleteNode(n.ID)
		return
	}
	if r := e.doc.FirstRoadWithin(p, RoadHitThreshold); r != nil {
		e.checkpoint("delete road")
		e.doc.DeleteRoad(r.ID)
	}
}

// DoubleClick finalizes an in-progress road while the add-road tool is
// active. The draft becomes a real road only with two or more points; a
// shorter draft is discarded, never stored as an unrenderable road. The
// tool resets to select after finalization.
func (e *Editor) DoubleClick(x, y float64) {
	if e.tool != ToolAddRoad || e.draft == nil {
		return
	}
	if len(e.draft.Points) >= 2 {
		road := &doc.Road{
			ID:     doc.NewRoadID(),
			Points: append([]doc.NodeID(nil), e.draft.Points...),
			Width:  e.draft.Width,
			Lanes:  e.draft.Lanes,
		}
		e.doc.AddRoad(road)
		e.sel = Selection{Kind: SelRoad, Road: road.ID}
	}
	e.draft = nil
	e.tool = ToolSelect
}

// MouseDown begins a move drag session when the move tool is active and a
// node is selected. The pre-drag document is cloned now and pushed as the
// single undo entry at mouse-up, so undo reverts the whole gesture.
func (e *Editor) MouseDown(x, y float64) {
	if e.tool != ToolMove {
		return
	}
	sel := e.Selection()
	if sel.Kind != SelNode {
		return
	}
	n := e.doc.Node(sel.Node)
	press := Snap(v2.Vec{X: x, Y: y}, e.doc, e.snap).Pos
	e.drag = &dragSession{
		node:   n.ID,
		offset: n.Pos().Sub(press),
		before: e.doc.Clone(),
	}
}

// MouseMove relocates the dragged node to the snapped pointer position.
// Without an active drag it is a no-op.
func (e *Editor) MouseMove(x, y float64) {
	if e.drag == nil {
		return
	}
	n := e.doc.Node(e.drag.node)
	if n == nil {
		e.drag = nil
		return
	}
	pos := Snap(v2.Vec{X: x, Y: y}, e.doc, e.snap).Pos
	n.X = pos.X
	n.Y = pos.Y
}

// MouseUp ends the drag session, pushing the pre-drag snapshot as one undo
// entry. Intermediate positions are not individually undoable.
func (e *Editor) MouseUp(x, y float64) {
	if e.drag == nil {
		return
	}
	e.history.Push("move node", e.drag.before)
	e.drag = nil
}

// Escape abandons any in-progress road and reverts the tool to select.
func (e *Editor) Escape() {
	e.draft = nil
	e.tool = ToolSelect
}

// Undo pops the most recent snapshot and replaces the live document
// wholesale. An empty stack is a silent no-op.
func (e *Editor) Undo() {
	s, ok := e.history.Pop()
	if !ok {
		return
	}
	e.doc = s.Doc
	e.drag = nil
}

// Clear resets both collections to empty after pushing an undo snapshot.
func (e *Editor) Clear() {
	e.checkpoint("clear")
	e.doc.Clear()
	e.sel = Selection{}
	e.draft = nil
}

// UpdateSelectedNode applies a property patch to the selected node, pushing
// an undo snapshot first. Without a node selection it is a no-op.
func (e *Editor) UpdateSelectedNode(p doc.NodePatch) {
	sel := e.Selection()
	if sel.Kind != SelNode {
		return
	}
	e.checkpoint("edit node")
	p.Apply(e.doc.Node(sel.Node))
}

// UpdateSelectedRoad applies a property patch to the selected road, pushing
// an undo snapshot first. Without a road selection it is a no-op.
func (e *Editor) UpdateSelectedRoad(p doc.RoadPatch) {
	sel := e.Selection()
	if sel.Kind != SelRoad {
		return
	}
	e.checkpoint("edit road")
	p.Apply(e.doc.Road(sel.Road))
}

// RunFragment appends a generated fragment to the document after pushing
// an undo snapshot. Template insertion and script evaluation both land
// here.
func (e *Editor) RunFragment(f *doc.Fragment, label string) {
	e.checkpoint(label)
	e.doc.Append(f)
}

// InsertDiamond inserts a diamond interchange template at the center point.
func (e *Editor) InsertDiamond(cx, cy, spacing float64) {
	e.RunFragment(template.Diamond(v2.Vec{X: cx, Y: cy}, spacing), "insert diamond")
}

// InsertTee inserts a T-intersection template at the center point.
func (e *Editor) InsertTee(cx, cy, spacing float64) {
	e.RunFragment(template.Tee(v2.Vec{X: cx, Y: cy}, spacing), "insert tee")
}

// InsertRoundabout inserts a roundabout template at the center point.
func (e *Editor) InsertRoundabout(cx, cy, radius float64, arms int) {
	e.RunFragment(template.Roundabout(v2.Vec{X: cx, Y: cy}, radius, arms), "insert roundabout")
}
