package render

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"

	"github.com/agenthands/ghrank/internal/core/community"
	"github.com/agenthands/ghrank/internal/core/graph"
)

const (
	CanvasWidth  = 1920
	CanvasHeight = 1080

	marginTop    = 10
	marginRight  = 30
	marginBottom = 30
	marginLeft   = 40

	radiusScale = 40.0
	minRadius   = 4.0
	noCommunity = "#aaaaaa"
)

// palette holds ring colours, one per community, reused cyclically.
var palette = []string{
	"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
	"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf",
}

// SVGRenderer draws users as clipped avatars sized by score and follows as arrows.
type SVGRenderer struct {
	Iterations int
	Detector   *community.LabelPropagationDetector
}

func NewSVGRenderer() *SVGRenderer {
	return &SVGRenderer{
		Iterations: 300,
		Detector:   community.NewLabelPropagationDetector(),
	}
}

func (r *SVGRenderer) Extension() string { return ".svg" }

func radius(rank float64) float64 {
	return math.Max(radiusScale*rank, minRadius)
}

func (r *SVGRenderer) Render(w io.Writer, g *graph.Graph) error {
	nodes := g.Nodes()
	edges := g.Edges()

	width := float64(CanvasWidth - marginLeft - marginRight)
	height := float64(CanvasHeight - marginTop - marginBottom)
	pos := layout(nodes, edges, width, height, r.Iterations)

	index := make(map[string]int, len(nodes))
	for i, n := range nodes {
		index[n.Login] = i
	}

	var membership map[string]int
	if r.Detector != nil {
		membership = community.Membership(r.Detector.Detect(nodes, edges))
	}

	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Start(CanvasWidth, CanvasHeight)
	canvas.Gtransform(fmt.Sprintf("translate(%d, %d)", marginLeft, marginTop))

	canvas.Def()
	for i, e := range edges {
		ref := minRadius + 10
		if t, ok := index[e.Target]; ok {
			ref = radius(nodes[t].Rank) + 10
		}
		canvas.Marker(fmt.Sprintf("arrow-%d", i), px(ref), 4, 10, 8, `orient="auto"`)
		canvas.Polygon([]int{0, 10, 0}, []int{0, 4, 8})
		canvas.MarkerEnd()
	}
	for i, n := range nodes {
		canvas.ClipPath(fmt.Sprintf(`id="clip-%d"`, i))
		canvas.Circle(px(pos[i].X), px(pos[i].Y), px(radius(n.Rank)))
		canvas.ClipEnd()
	}
	canvas.DefEnd()

	for i, e := range edges {
		s, ok1 := index[e.Source]
		t, ok2 := index[e.Target]
		if !ok1 || !ok2 {
			continue
		}
		canvas.Line(px(pos[s].X), px(pos[s].Y), px(pos[t].X), px(pos[t].Y),
			fmt.Sprintf(`marker-end="url(#arrow-%d)"`, i), "stroke: #aaa")
	}

	for i, n := range nodes {
		rad := radius(n.Rank)
		x, y := px(pos[i].X), px(pos[i].Y)
		colour := noCommunity
		if c, ok := membership[n.Login]; ok {
			colour = palette[c%len(palette)]
		}

		canvas.Circle(x, y, px(rad+1), `class="ring"`, "fill: none; stroke: "+colour+"; stroke-width: 2")
		canvas.Group(`class="node"`)
		canvas.Title(fmt.Sprintf("%s\nrank: %d\nscore: %.2f", n.Login, i+1, n.Rank))
		// svgo writes hrefs verbatim
		canvas.Image(px(pos[i].X-rad), px(pos[i].Y-rad), px(2*rad), px(2*rad),
			html.EscapeString(n.AvatarURL), fmt.Sprintf(`clip-path="url(#clip-%d)"`, i))
		canvas.Gend()
		canvas.Text(px(pos[i].X+rad), y, n.Login,
			"text-anchor: auto; fill: #555; font-family: Arial; font-size: 12px; visibility: hidden")
	}

	canvas.Gend()
	canvas.End()

	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write svg: %w", err)
	}
	return nil
}

func px(v float64) int {
	return int(math.Round(v))
}
