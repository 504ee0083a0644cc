package main

import (
	"context"
	"log"
	"os"
	"sync"

	"github.com/wailsapp/wails/v2/pkg/runtime"

	"github.com/calley/roadline/pkg/doc"
	"github.com/calley/roadline/pkg/editor"
	"github.com/calley/roadline/pkg/engine"
	"github.com/calley/roadline/pkg/render"
)

// App is the Wails backend. It exposes the editing operations to the
// frontend via bindings: the canvas forwards pointer events (click,
// double-click, mouse-down/move/up in canvas-local coordinates), the
// toolbar switches tools, the property panel sends patches, and the
// keyboard handlers call Escape and Undo. Every mutating binding returns
// the fresh scene so the frontend re-renders from it.
//
// Wails may invoke bindings from its own goroutines, so one mutex
// serializes access to the editor.
type App struct {
	ctx context.Context
	cfg Config

	mu     sync.Mutex
	editor *editor.Editor
	engine *engine.Engine
}

// NewApp creates a new App with an editor configured from cfg.
func NewApp(cfg Config) *App {
	ed := editor.NewWithHistory(cfg.UndoDepth)
	ed.SetSnap(cfg.SnapEnabled, cfg.GridSize)
	return &App{
		cfg:    cfg,
		editor: ed,
		engine: engine.NewEngine(),
	}
}

// startup is called by Wails on app startup. The context is saved for the
// runtime dialog calls.
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx
}

// ---------------------------------------------------------------------------
// JSON-serializable DTOs for the frontend
// ---------------------------------------------------------------------------

// LineData is a drawable grid line.
type LineData struct {
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
}

// PointData is a resolved polyline vertex.
type PointData struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// RoadData is a drawable road polyline.
type RoadData struct {
	ID        string      `json:"id"`
	Points    []PointData `json:"points"`
	Width     float64     `json:"width"`
	LaneCount int         `json:"laneCount"`
	Selected  bool        `json:"selected"`
}

// NodeData is a drawable node circle.
type NodeData struct {
	ID       string  `json:"id"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Type     string  `json:"type"`
	Radius   float64 `json:"radius"`
	Selected bool    `json:"selected"`
}

// SceneData is the full drawable state plus the interaction state the
// frontend reflects (active tool, selection, in-progress road length).
type SceneData struct {
	Width       int        `json:"width"`
	Height      int        `json:"height"`
	Grid        []LineData `json:"grid"`
	Roads       []RoadData `json:"roads"`
	Nodes       []NodeData `json:"nodes"`
	Tool        string     `json:"tool"`
	Selection   string     `json:"selection"`   // "node", "road" or ""
	SelectionID string     `json:"selectionId"` // id of the selected entity
	DraftPoints int        `json:"draftPoints"` // points in the in-progress road
}

// NodePatchData is a partial node update from the property panel. Nil
// fields are left unchanged.
type NodePatchData struct {
	Type *string  `json:"type"`
	X    *float64 `json:"x"`
	Y    *float64 `json:"y"`
}

// RoadPatchData is a partial road update from the property panel.
type RoadPatchData struct {
	Width     *float64 `json:"width"`
	LaneCount *int     `json:"laneCount"`
}

// ScriptErrorData is a JSON-serializable eval error for the console.
type ScriptErrorData struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Message string `json:"message"`
}

// ScriptResult is the outcome of a console evaluation.
type ScriptResult struct {
	Errors []ScriptErrorData `json:"errors"`
	Scene  SceneData         `json:"scene"`
}

// ---------------------------------------------------------------------------
// Scene building
// ---------------------------------------------------------------------------

// sceneLocked builds the current SceneData. Caller holds a.mu.
func (a *App) sceneLocked() SceneData {
	sel := a.editor.Selection()
	snap := a.editor.SnapState()
	s := render.Build(a.editor.Doc(), sel, render.Options{
		Width:    a.cfg.CanvasWidth,
		Height:   a.cfg.CanvasHeight,
		GridSize: snap.GridSize,
	})

	out := SceneData{
		Width:  s.Width,
		Height: s.Height,
		Grid:   make([]LineData, len(s.Grid)),
		Roads:  make([]RoadData, len(s.Roads)),
		Nodes:  make([]NodeData, len(s.Nodes)),
		Tool:   a.editor.Tool().String(),
	}
	for i, l := range s.Grid {
		out.Grid[i] = LineData{X1: l.X1, Y1: l.Y1, X2: l.X2, Y2: l.Y2}
	}
	for i, r := range s.Roads {
		rd := RoadData{
			ID:        string(r.ID),
			Points:    make([]PointData, len(r.Points)),
			Width:     r.Width,
			LaneCount: r.Lanes,
			Selected:  r.Selected,
		}
		for j, p := range r.Points {
			rd.Points[j] = PointData{X: p.X, Y: p.Y}
		}
		out.Roads[i] = rd
	}
	for i, n := range s.Nodes {
		out.Nodes[i] = NodeData{
			ID:       string(n.ID),
			X:        n.X,
			Y:        n.Y,
			Type:     n.Kind.String(),
			Radius:   n.Radius,
			Selected: n.Selected,
		}
	}

	switch sel.Kind {
	case editor.SelNode:
		out.Selection = "node"
		out.SelectionID = string(sel.Node)
	case editor.SelRoad:
		out.Selection = "road"
		out.SelectionID = string(sel.Road)
	}
	if draft := a.editor.Draft(); draft != nil {
		out.DraftPoints = len(draft.Points)
	}
	return out
}

// Scene returns the current drawable state.
func (a *App) Scene() SceneData {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.sceneLocked()
}

// ---------------------------------------------------------------------------
// Tool and pointer bindings
// ---------------------------------------------------------------------------

// SetTool switches the active tool by its string name.
func (a *App) SetTool(name string) (SceneData, error) {
	tool, err := editor.ParseTool(name)
	if err != nil {
		return SceneData{}, err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.editor.SetTool(tool)
	return a.sceneLocked(), nil
}

// Click handles a primary click at canvas-local coordinates.
func (a *App) Click(x, y float64) SceneData {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.editor.Click(x, y)
	return a.sceneLocked()
}

// DoubleClick finalizes an in-progress road.
func (a *App) DoubleClick(x, y float64) SceneData {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.editor.DoubleClick(x, y)
	return a.sceneLocked()
}

// MouseDown begins a move drag session.
func (a *App) MouseDown(x, y float64) SceneData {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.editor.MouseDown(x, y)
	return a.sceneLocked()
}

// MouseMove continues a move drag session.
func (a *App) MouseMove(x, y float64) SceneData {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.editor.MouseMove(x, y)
	return a.sceneLocked()
}

// MouseUp ends a move drag session.
func (a *App) MouseUp(x, y float64) SceneData {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.editor.MouseUp(x, y)
	return a.sceneLocked()
}

// Escape abandons the in-progress road and resets the tool to select.
// Bound to the Escape key by the frontend.
func (a *App) Escape() SceneData {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.editor.Escape()
	return a.sceneLocked()
}

// Undo pops the most recent snapshot. Bound to Ctrl/Cmd+Z by the frontend;
// an empty stack is a silent no-op.
func (a *App) Undo() SceneData {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.editor.Undo()
	return a.sceneLocked()
}

// ClearAll empties the document (undoable).
func (a *App) ClearAll() SceneData {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.editor.Clear()
	return a.sceneLocked()
}

// SetSnap updates the snapping configuration.
func (a *App) SetSnap(enabled bool, gridSize float64) SceneData {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.editor.SetSnap(enabled, gridSize)
	return a.sceneLocked()
}

// ---------------------------------------------------------------------------
// Template bindings
// ---------------------------------------------------------------------------

// InsertDiamond inserts a diamond interchange at the center point.
func (a *App) InsertDiamond(cx, cy, spacing float64) SceneData {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.editor.InsertDiamond(cx, cy, spacing)
	return a.sceneLocked()
}

// InsertTee inserts a T-intersection at the center point.
func (a *App) InsertTee(cx, cy, spacing float64) SceneData {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.editor.InsertTee(cx, cy, spacing)
	return a.sceneLocked()
}

// InsertRoundabout inserts a roundabout at the center point.
func (a *App) InsertRoundabout(cx, cy, radius float64, arms int) SceneData {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.editor.InsertRoundabout(cx, cy, radius, arms)
	return a.sceneLocked()
}

// ---------------------------------------------------------------------------
// Property panel bindings
// ---------------------------------------------------------------------------

// UpdateNode applies a partial update to the selected node.
func (a *App) UpdateNode(patch NodePatchData) (SceneData, error) {
	p := doc.NodePatch{X: patch.X, Y: patch.Y}
	if patch.Type != nil {
		kind, err := doc.ParseNodeKind(*patch.Type)
		if err != nil {
			return SceneData{}, err
		}
		p.Kind = &kind
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.editor.UpdateSelectedNode(p)
	return a.sceneLocked(), nil
}

// UpdateRoad applies a partial update to the selected road. Out-of-range
// numbers fall back to the documented defaults.
func (a *App) UpdateRoad(patch RoadPatchData) SceneData {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.editor.UpdateSelectedRoad(doc.RoadPatch{Width: patch.Width, Lanes: patch.LaneCount})
	return a.sceneLocked()
}

// ---------------------------------------------------------------------------
// Export bindings
// ---------------------------------------------------------------------------

// ExportJSON returns the {nodes, roads} document as JSON text.
func (a *App) ExportJSON() (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	data, err := render.ExportJSON(a.editor.Doc())
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ExportSVG returns the current rendition as standalone SVG markup.
func (a *App) ExportSVG() (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	data, err := a.exportSVGLocked()
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (a *App) exportSVGLocked() ([]byte, error) {
	snap := a.editor.SnapState()
	return render.ExportSVG(a.editor.Doc(), a.editor.Selection(), render.Options{
		Width:    a.cfg.CanvasWidth,
		Height:   a.cfg.CanvasHeight,
		GridSize: snap.GridSize,
	})
}

// SaveJSON writes the JSON export through a save dialog. A cancelled
// dialog is not an error.
func (a *App) SaveJSON() error {
	a.mu.Lock()
	data, err := render.ExportJSON(a.editor.Doc())
	a.mu.Unlock()
	if err != nil {
		return err
	}
	return a.saveThroughDialog(render.JSONFilename, data)
}

// SaveSVG writes the SVG export through a save dialog.
func (a *App) SaveSVG() error {
	a.mu.Lock()
	data, err := a.exportSVGLocked()
	a.mu.Unlock()
	if err != nil {
		return err
	}
	return a.saveThroughDialog(render.SVGFilename, data)
}

func (a *App) saveThroughDialog(filename string, data []byte) error {
	path, err := runtime.SaveFileDialog(a.ctx, runtime.SaveDialogOptions{
		Title:           "Export",
		DefaultFilename: filename,
	})
	if err != nil {
		return err
	}
	if path == "" {
		// Dialog cancelled.
		return nil
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		log.Printf("export write failed: %v", err)
		return err
	}
	return nil
}

// ---------------------------------------------------------------------------
// Scripting console binding
// ---------------------------------------------------------------------------

// RunScript evaluates drawing commands and appends the resulting fragment
// to the document as one undoable step. Evaluation failures leave the
// document untouched.
func (a *App) RunScript(source string) ScriptResult {
	result := ScriptResult{Errors: []ScriptErrorData{}}

	frag, evalErrs, err := a.engine.Evaluate(source)
	if err != nil {
		// Fatal error (panic, timeout, superseded).
		log.Printf("script fatal error: %v", err)
		result.Errors = append(result.Errors, ScriptErrorData{Message: err.Error()})
	}
	for _, e := range evalErrs {
		result.Errors = append(result.Errors, ScriptErrorData{
			Line:    e.Line,
			Col:     e.Col,
			Message: e.Message,
		})
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if len(result.Errors) == 0 && frag != nil && (len(frag.Nodes) > 0 || len(frag.Roads) > 0) {
		a.editor.RunFragment(frag, "run script")
	}
	result.Scene = a.sceneLocked()
	return result
}
