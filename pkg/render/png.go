package render

import (
	"io"

	"github.com/OFFIS-RIT/nodelink/pkg/common"

	"git.sr.ht/~sbinet/gg"
	"golang.org/x/image/font/basicfont"
)

// RenderPNG draws the same picture as RenderSVG into a PNG image.
func RenderPNG(w io.Writer, nodes []common.Node, links []common.Link, style Style) error {
	style = style.withDefaults()

	dc := gg.NewContext(style.Width, style.Height)
	dc.SetHexColor(style.Background)
	dc.Clear()

	dc.SetLineWidth(1.5)
	for _, s := range segments(nodes, links) {
		dc.SetHexColor(style.EdgeColor)
		if s.animated {
			dc.SetDash(6, 4)
		} else {
			dc.SetDash()
		}
		dc.DrawLine(s.x1, s.y1, s.x2, s.y2)
		dc.Stroke()
	}
	dc.SetDash()

	dc.SetFontFace(basicfont.Face7x13)
	for _, n := range nodes {
		if !finite(n.X, n.Y) {
			continue
		}
		r := style.radius(n)
		dc.DrawCircle(n.X, n.Y, r)
		dc.SetHexColor(nodeColor(n))
		dc.FillPreserve()
		if style.highlighted(n.ID) {
			dc.SetHexColor(style.Accent)
			dc.SetLineWidth(3)
		} else {
			dc.SetHexColor("#ffffff")
			dc.SetLineWidth(1.5)
		}
		dc.Stroke()

		if style.Labels {
			dc.SetHexColor(style.TextColor)
			dc.DrawStringAnchored(label(n), n.X, n.Y+r+style.FontSize, 0.5, 0.5)
		}
	}

	return dc.EncodePNG(w)
}
