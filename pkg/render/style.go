// Package render draws laid out graphs as SVG or PNG images.
package render

import (
	"math"

	"github.com/OFFIS-RIT/nodelink/pkg/common"
)

// Style controls how a graph is drawn. Hover and Selected name nodes that
// get the accent stroke.
type Style struct {
	Width      int     `json:"width" toml:"width"`
	Height     int     `json:"height" toml:"height"`
	Background string  `json:"background" toml:"background"`
	EdgeColor  string  `json:"edge_color" toml:"edge_color"`
	TextColor  string  `json:"text_color" toml:"text_color"`
	Accent     string  `json:"accent" toml:"accent"`
	NodeRadius float64 `json:"node_radius" toml:"node_radius"`
	FontSize   float64 `json:"font_size" toml:"font_size"`
	Labels     bool    `json:"labels" toml:"labels"`

	Hover    string `json:"hover,omitempty" toml:"-"`
	Selected string `json:"selected,omitempty" toml:"-"`
}

// DefaultStyle returns an 800x600 light theme with labels.
func DefaultStyle() Style {
	return Style{
		Width:      800,
		Height:     600,
		Background: "#ffffff",
		EdgeColor:  "#9aa5b1",
		TextColor:  "#1f2933",
		Accent:     "#d64545",
		NodeRadius: 10,
		FontSize:   12,
		Labels:     true,
	}
}

// withDefaults fills zero fields from DefaultStyle.
func (s Style) withDefaults() Style {
	d := DefaultStyle()
	if s.Width <= 0 {
		s.Width = d.Width
	}
	if s.Height <= 0 {
		s.Height = d.Height
	}
	if s.Background == "" {
		s.Background = d.Background
	}
	if s.EdgeColor == "" {
		s.EdgeColor = d.EdgeColor
	}
	if s.TextColor == "" {
		s.TextColor = d.TextColor
	}
	if s.Accent == "" {
		s.Accent = d.Accent
	}
	if s.NodeRadius <= 0 {
		s.NodeRadius = d.NodeRadius
	}
	if s.FontSize <= 0 {
		s.FontSize = d.FontSize
	}
	return s
}

func (s Style) highlighted(id string) bool {
	return id != "" && (id == s.Hover || id == s.Selected)
}

func (s Style) radius(n common.Node) float64 {
	if n.Weight > 0 {
		return s.NodeRadius * n.Weight
	}
	return s.NodeRadius
}

func nodeColor(n common.Node) string {
	if n.Color != "" {
		return n.Color
	}
	return "#8d99ae"
}

func label(n common.Node) string {
	if n.ShortLabel != "" {
		return n.ShortLabel
	}
	return n.Label
}

type segment struct {
	x1, y1, x2, y2 float64
	animated       bool
}

// segments resolves links to coordinates, skipping links whose endpoints
// are unknown or not finite.
func segments(nodes []common.Node, links []common.Link) []segment {
	pos := make(map[string]common.Node, len(nodes))
	for _, n := range nodes {
		pos[n.ID] = n
	}
	out := make([]segment, 0, len(links))
	for _, l := range links {
		a, ok := pos[l.Source]
		if !ok {
			continue
		}
		b, ok := pos[l.Target]
		if !ok {
			continue
		}
		if !finite(a.X, a.Y, b.X, b.Y) {
			continue
		}
		out = append(out, segment{x1: a.X, y1: a.Y, x2: b.X, y2: b.Y, animated: l.Animated})
	}
	return out
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
