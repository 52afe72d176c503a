package render

import (
	"fmt"
	"io"
	"math"

	"github.com/OFFIS-RIT/nodelink/pkg/common"

	"github.com/ajstarks/svgo"
)

// RenderSVG draws links first and nodes on top. Links that reference a
// missing node are skipped; animated links are dashed.
func RenderSVG(w io.Writer, nodes []common.Node, links []common.Link, style Style) error {
	style = style.withDefaults()
	ew := &errWriter{w: w}

	canvas := svg.New(ew)
	canvas.Start(style.Width, style.Height)
	canvas.Rect(0, 0, style.Width, style.Height, fmt.Sprintf("fill:%s", style.Background))

	canvas.Gid("links")
	for _, s := range segments(nodes, links) {
		st := fmt.Sprintf("stroke:%s;stroke-width:1.5;stroke-opacity:0.8", style.EdgeColor)
		if s.animated {
			st += ";stroke-dasharray:6,4"
		}
		canvas.Line(px(s.x1), px(s.y1), px(s.x2), px(s.y2), st)
	}
	canvas.Gend()

	canvas.Gid("nodes")
	for _, n := range nodes {
		if !finite(n.X, n.Y) {
			continue
		}
		r := style.radius(n)
		st := fmt.Sprintf("fill:%s;stroke:#ffffff;stroke-width:1.5", nodeColor(n))
		if style.highlighted(n.ID) {
			st = fmt.Sprintf("fill:%s;stroke:%s;stroke-width:3", nodeColor(n), style.Accent)
		}
		canvas.Circle(px(n.X), px(n.Y), px(r), st)
		if style.Labels {
			canvas.Text(px(n.X), px(n.Y+r+style.FontSize), label(n),
				fmt.Sprintf("fill:%s;font-size:%.0fpx;font-family:sans-serif;text-anchor:middle", style.TextColor, style.FontSize))
		}
	}
	canvas.Gend()

	canvas.End()
	return ew.err
}

func px(v float64) int {
	return int(math.Round(v))
}

// errWriter remembers the first write error; svgo ignores them.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	if err != nil {
		e.err = err
	}
	return n, err
}
