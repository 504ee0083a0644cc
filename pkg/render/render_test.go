package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/calley/roadline/pkg/doc"
	"github.com/calley/roadline/pkg/editor"
)

func sampleDoc() *doc.Document {
	d := doc.New()
	d.AddNode(&doc.Node{ID: "a", X: 0, Y: 0, Kind: doc.KindIntersection})
	d.AddNode(&doc.Node{ID: "b", X: 100, Y: 0, Kind: doc.KindExit})
	d.AddRoad(&doc.Road{ID: "r", Points: []doc.NodeID{"a", "b"}, Width: 12, Lanes: 1})
	return d
}

func TestBuildGrid(t *testing.T) {
	s := Build(doc.New(), editor.Selection{}, Options{Width: 100, Height: 50, GridSize: 10})
	// 11 vertical (x = 0..100) + 6 horizontal (y = 0..50).
	if len(s.Grid) != 17 {
		t.Errorf("grid line count = %d, want 17", len(s.Grid))
	}

	s = Build(doc.New(), editor.Selection{}, Options{Width: 100, Height: 50, GridSize: 0})
	if len(s.Grid) != 0 {
		t.Error("non-positive grid size disables the grid")
	}
}

func TestBuildSkipsUnrenderableRoads(t *testing.T) {
	d := sampleDoc()
	// Road with a single resolvable point must not be drawn.
	d.AddRoad(&doc.Road{ID: "broken", Points: []doc.NodeID{"a", "ghost"}})

	s := Build(d, editor.Selection{}, Options{Width: 200, Height: 200})
	if len(s.Roads) != 1 {
		t.Errorf("drawable roads = %d, want 1", len(s.Roads))
	}
	if s.Roads[0].ID != "r" {
		t.Errorf("drawable road = %s, want r", s.Roads[0].ID)
	}
}

func TestBuildSelectionHighlight(t *testing.T) {
	d := sampleDoc()
	sel := editor.Selection{Kind: editor.SelNode, Node: "a"}
	s := Build(d, sel, Options{Width: 200, Height: 200})

	for _, n := range s.Nodes {
		wantSel := n.ID == "a"
		if n.Selected != wantSel {
			t.Errorf("node %s selected = %v, want %v", n.ID, n.Selected, wantSel)
		}
		wantRadius := float64(NodeRadius)
		if wantSel {
			wantRadius = SelectedNodeRadius
		}
		if n.Radius != wantRadius {
			t.Errorf("node %s radius = %f, want %f", n.ID, n.Radius, wantRadius)
		}
	}

	sel = editor.Selection{Kind: editor.SelRoad, Road: "r"}
	s = Build(d, sel, Options{Width: 200, Height: 200})
	if !s.Roads[0].Selected {
		t.Error("selected road not highlighted")
	}
}

func TestExportJSONShape(t *testing.T) {
	data, err := ExportJSON(sampleDoc())
	if err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	if _, ok := raw["nodes"]; !ok {
		t.Error("export missing 'nodes'")
	}
	if _, ok := raw["roads"]; !ok {
		t.Error("export missing 'roads'")
	}

	var back doc.Document
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("export does not round-trip: %v", err)
	}
	if back.NodeCount() != 2 || back.RoadCount() != 1 {
		t.Errorf("round trip: %d nodes / %d roads", back.NodeCount(), back.RoadCount())
	}
}

func TestWriteSVG(t *testing.T) {
	var buf bytes.Buffer
	s := Build(sampleDoc(), editor.Selection{}, Options{Width: 400, Height: 300, GridSize: 100})
	WriteSVG(&buf, s)
	out := buf.String()

	for _, want := range []string{"<svg", "</svg>", "<polyline", "<circle", "<line", `width="400"`, `height="300"`} {
		if !strings.Contains(out, want) {
			t.Errorf("SVG output missing %q", want)
		}
	}
	// Dashed centerline overlay accompanies every road polyline.
	if !strings.Contains(out, "stroke-dasharray") {
		t.Error("SVG output missing dashed centerline")
	}
}

func TestExportSVGOmitsBrokenRoads(t *testing.T) {
	d := doc.New()
	d.AddNode(&doc.Node{ID: "a", X: 10, Y: 10})
	d.AddRoad(&doc.Road{ID: "broken", Points: []doc.NodeID{"a", "ghost"}})

	data, err := ExportSVG(d, editor.Selection{}, Options{Width: 100, Height: 100})
	if err != nil {
		t.Fatalf("ExportSVG: %v", err)
	}
	if strings.Contains(string(data), "<polyline") {
		t.Error("unrenderable road leaked into the SVG")
	}
}
