package main

import (
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// 1. Empty document: the scene is well-formed and slices are non-nil so
//    JSON serializes as [] rather than null.
// ---------------------------------------------------------------------------

func TestEmptyScene(t *testing.T) {
	app := NewApp(testConfig())
	scene := app.Scene()

	if len(scene.Nodes) != 0 || len(scene.Roads) != 0 {
		t.Errorf("empty document scene has %d nodes / %d roads", len(scene.Nodes), len(scene.Roads))
	}
	if scene.Nodes == nil {
		t.Error("Nodes should be non-nil empty slice, got nil")
	}
	if scene.Roads == nil {
		t.Error("Roads should be non-nil empty slice, got nil")
	}
	if scene.Grid == nil {
		t.Error("Grid should be non-nil (grid lines at default spacing)")
	}
	if scene.Tool != "select" {
		t.Errorf("initial tool = %q, want select", scene.Tool)
	}
	if scene.Selection != "" {
		t.Errorf("initial selection = %q, want empty", scene.Selection)
	}
}

// ---------------------------------------------------------------------------
// 2. Script errors: syntax and runtime failures surface as structured
//    errors and leave the document untouched.
// ---------------------------------------------------------------------------

func TestRunScriptSyntaxError(t *testing.T) {
	app := NewApp(testConfig())

	result := app.RunScript("(node 1")
	if len(result.Errors) == 0 {
		t.Fatal("expected script errors")
	}
	if len(result.Scene.Nodes) != 0 {
		t.Error("failed script must not mutate the document")
	}
}

func TestRunScriptRuntimeError(t *testing.T) {
	app := NewApp(testConfig())

	result := app.RunScript(`(road "x" "y")`)
	if len(result.Errors) == 0 {
		t.Fatal("expected script errors")
	}
	if !strings.Contains(result.Errors[0].Message, "node reference") {
		t.Errorf("error = %q, want node reference complaint", result.Errors[0].Message)
	}
}

func TestRunScriptEmptySourceIsNoOp(t *testing.T) {
	app := NewApp(testConfig())

	result := app.RunScript("")
	if len(result.Errors) != 0 {
		t.Errorf("empty source produced errors: %v", result.Errors)
	}
	// An empty fragment pushes no undo entry.
	scene := app.Undo()
	if len(scene.Nodes) != 0 {
		t.Error("nothing to undo after an empty script")
	}
}

// ---------------------------------------------------------------------------
// 3. Binding-level edge cases.
// ---------------------------------------------------------------------------

func TestSetToolRejectsUnknownName(t *testing.T) {
	app := NewApp(testConfig())
	if _, err := app.SetTool("lasso"); err == nil {
		t.Error("expected error for unknown tool name")
	}
}

func TestUpdateNodeRejectsUnknownType(t *testing.T) {
	app := NewApp(testConfig())
	app.SetTool("add-node")
	app.Click(100, 100)

	bad := "motorway"
	if _, err := app.UpdateNode(NodePatchData{Type: &bad}); err == nil {
		t.Error("expected error for unknown node type")
	}
}

func TestUpdateNodeMovesSelected(t *testing.T) {
	app := NewApp(testConfig())
	app.SetTool("add-node")
	app.Click(100, 100)

	x := 250.0
	kind := "exit"
	scene, err := app.UpdateNode(NodePatchData{Type: &kind, X: &x})
	if err != nil {
		t.Fatalf("UpdateNode: %v", err)
	}
	n := scene.Nodes[0]
	if n.X != 250 || n.Y != 100 || n.Type != "exit" {
		t.Errorf("patched node = %+v", n)
	}
}

func TestUndoOnEmptyStackKeepsScene(t *testing.T) {
	app := NewApp(testConfig())
	scene := app.Undo()
	if len(scene.Nodes) != 0 {
		t.Error("undo on empty stack must be a no-op")
	}
}

func TestEscapeAbandonsDraft(t *testing.T) {
	app := NewApp(testConfig())
	app.SetTool("add-road")
	app.Click(0, 0)
	app.Click(100, 0)

	scene := app.Escape()
	if scene.DraftPoints != 0 {
		t.Error("escape should abandon the draft")
	}
	if scene.Tool != "select" {
		t.Errorf("tool after escape = %q, want select", scene.Tool)
	}
	// The nodes created while drafting remain; only the road is gone.
	if len(scene.Nodes) != 2 || len(scene.Roads) != 0 {
		t.Errorf("after escape: %d nodes / %d roads, want 2/0", len(scene.Nodes), len(scene.Roads))
	}
}

func TestClearAllIsUndoable(t *testing.T) {
	app := NewApp(testConfig())
	app.InsertDiamond(300, 200, 120)

	scene := app.ClearAll()
	if len(scene.Nodes) != 0 {
		t.Error("clear should empty the document")
	}
	scene = app.Undo()
	if len(scene.Nodes) != 5 {
		t.Errorf("undo after clear restored %d nodes, want 5", len(scene.Nodes))
	}
}

func TestSnapToggleAffectsClicks(t *testing.T) {
	app := NewApp(testConfig())
	app.SetSnap(false, 10)
	app.SetTool("add-node")

	scene := app.Click(13, 18)
	n := scene.Nodes[0]
	if n.X != 13 || n.Y != 18 {
		t.Errorf("snap disabled: node at (%f,%f), want raw (13,18)", n.X, n.Y)
	}

	app.SetSnap(true, 10)
	scene = app.Click(213, 218)
	n = scene.Nodes[1]
	if n.X != 210 || n.Y != 220 {
		t.Errorf("snap enabled: node at (%f,%f), want (210,220)", n.X, n.Y)
	}
}

func TestStaleSelectionRendersAsNone(t *testing.T) {
	app := NewApp(testConfig())
	app.SetTool("add-node")
	app.Click(100, 100)

	app.SetTool("delete")
	scene := app.Click(100, 100)

	if scene.Selection != "" {
		t.Errorf("selection after deleting the selected node = %q, want none", scene.Selection)
	}
	if len(scene.Nodes) != 0 {
		t.Error("node should be deleted")
	}
}
