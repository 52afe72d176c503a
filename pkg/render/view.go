package render

import (
	"io"
	"sync"

	"github.com/OFFIS-RIT/nodelink/pkg/layout"
)

// View couples a layout engine with pointer interaction state. It is safe
// for concurrent use.
type View struct {
	engine *layout.Engine

	mu       sync.RWMutex
	hover    string
	selected string
	style    Style
}

// NewView creates a view over engine drawn with style. The style's size
// follows the engine's container.
func NewView(engine *layout.Engine, style Style) *View {
	w, h := engine.Size()
	style.Width, style.Height = int(w), int(h)
	return &View{engine: engine, style: style}
}

// Engine returns the underlying layout engine.
func (v *View) Engine() *layout.Engine {
	return v.engine
}

func (v *View) known(id string) bool {
	for _, n := range v.engine.Nodes() {
		if n.ID == id {
			return true
		}
	}
	return false
}

// Hover highlights node id. An empty or unknown id clears the highlight.
func (v *View) Hover(id string) {
	if id != "" && !v.known(id) {
		id = ""
	}
	v.mu.Lock()
	v.hover = id
	v.mu.Unlock()
}

// Select toggles the selection of node id. Selecting another node replaces
// the selection; an unknown id clears it.
func (v *View) Select(id string) {
	if id != "" && !v.known(id) {
		id = ""
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.selected == id {
		v.selected = ""
		return
	}
	v.selected = id
}

// Hovered returns the highlighted node id.
func (v *View) Hovered() string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.hover
}

// Selected returns the selected node id.
func (v *View) Selected() string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.selected
}

// Resize starts a fresh layout run in a width x height container. It
// reports false and does nothing when either dimension is not positive.
func (v *View) Resize(width, height int) bool {
	if width <= 0 || height <= 0 {
		return false
	}
	v.engine.Resize(float64(width), float64(height))
	v.mu.Lock()
	v.style.Width, v.style.Height = width, height
	v.mu.Unlock()
	return true
}

// Style returns the current style including interaction state.
func (v *View) Style() Style {
	v.mu.RLock()
	defer v.mu.RUnlock()
	s := v.style
	s.Hover, s.Selected = v.hover, v.selected
	return s
}

// RenderSVG draws the engine's current positions.
func (v *View) RenderSVG(w io.Writer) error {
	return RenderSVG(w, v.engine.Nodes(), v.engine.Links(), v.Style())
}

// RenderPNG draws the engine's current positions.
func (v *View) RenderPNG(w io.Writer) error {
	return RenderPNG(w, v.engine.Nodes(), v.engine.Links(), v.Style())
}
