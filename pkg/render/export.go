package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"

	"github.com/calley/roadline/pkg/doc"
	"github.com/calley/roadline/pkg/editor"
)

// Default export filenames offered by the save dialogs.
const (
	JSONFilename = "intersection-design.json"
	SVGFilename  = "intersection-design.svg"
)

// Colors for the SVG rendition.
const (
	gridStroke       = "#e8e8e8"
	roadStroke       = "#555555"
	roadSelStroke    = "#2f6fd6"
	centerlineStroke = "#ffffff"
	nodeFill         = "#c0392b"
	nodeSelFill      = "#2f6fd6"
)

// ExportJSON serializes the document verbatim as {nodes, roads}.
func ExportJSON(d *doc.Document) ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

// ExportSVG renders the document to a standalone vector image.
func ExportSVG(d *doc.Document, sel editor.Selection, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	WriteSVG(&buf, Build(d, sel, opts))
	return buf.Bytes(), nil
}

// WriteSVG writes a scene as SVG markup: grid lines, road polylines with a
// dashed centerline overlay, node circles.
func WriteSVG(w io.Writer, s *Scene) {
	canvas := svg.New(w)
	canvas.Start(s.Width, s.Height)

	for _, l := range s.Grid {
		canvas.Line(round(l.X1), round(l.Y1), round(l.X2), round(l.Y2),
			fmt.Sprintf("stroke:%s;stroke-width:1", gridStroke))
	}

	for _, r := range s.Roads {
		xs, ys := polylineCoords(r.Points)
		stroke := roadStroke
		if r.Selected {
			stroke = roadSelStroke
		}
		canvas.Polyline(xs, ys, fmt.Sprintf(
			"fill:none;stroke:%s;stroke-width:%d;stroke-linecap:round;stroke-linejoin:round",
			stroke, round(r.Width)))
		canvas.Polyline(xs, ys, fmt.Sprintf(
			"fill:none;stroke:%s;stroke-width:2;stroke-dasharray:8,8",
			centerlineStroke))
	}

	for _, n := range s.Nodes {
		fill := nodeFill
		if n.Selected {
			fill = nodeSelFill
		}
		canvas.Circle(round(n.X), round(n.Y), round(n.Radius),
			fmt.Sprintf("fill:%s;stroke:#ffffff;stroke-width:2", fill))
	}

	canvas.End()
}

func round(f float64) int {
	return int(math.Round(f))
}

func polylineCoords(points []Point) ([]int, []int) {
	xs := make([]int, len(points))
	ys := make([]int, len(points))
	for i, p := range points {
		xs[i] = round(p.X)
		ys[i] = round(p.Y)
	}
	return xs, ys
}
