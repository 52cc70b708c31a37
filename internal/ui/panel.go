package ui

// BoundsFunc returns the panel's position and size given terminal dimensions.
// Returns x, y, width, height.
type BoundsFunc func(width, height int) (x, y, w, h int)

// Panel hosts a View and knows its bounds within a layout.
type Panel struct {
	ID     string
	View   View
	Bounds BoundsFunc
}

// Sizer is implemented by views that adapt to their panel's bounds.
type Sizer interface {
	SetSize(width, height int)
}

// Resize applies each panel's bounds to its view.
func Resize(l Layout, width, height int) {
	for _, p := range l.Panels() {
		s, ok := p.View.(Sizer)
		if !ok || p.Bounds == nil {
			continue
		}
		_, _, w, h := p.Bounds(width, height)
		s.SetSize(w, h)
	}
}
