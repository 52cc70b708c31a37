package ui

// Layout arranges panels and defines focus order.
type Layout interface {
	Panels() []Panel
	FocusOrder() []string // Tab order for focus
}

// Panel IDs of the workspace layout.
const (
	PanelSelection = "selection"
	PanelFont      = "font"
	PanelIcons     = "icons"
)

const (
	headerHeight = 2 // title + blank line
	zoneHeight   = 5 // border + three content lines
	footerHeight = 3 // notice, hint, help bar
	minListRows  = 3
)

// WorkspaceLayout puts the two drop zones side by side above the icon
// list.
type WorkspaceLayout struct {
	Selection *DropZone
	Font      *DropZone
	Icons     *IconListView
}

// Panels implements Layout.
func (l *WorkspaceLayout) Panels() []Panel {
	return []Panel{
		{ID: PanelSelection, View: l.Selection, Bounds: func(w, h int) (int, int, int, int) {
			return 0, headerHeight, zoneWidth(w), zoneHeight
		}},
		{ID: PanelFont, View: l.Font, Bounds: func(w, h int) (int, int, int, int) {
			zw := zoneWidth(w)
			return zw + 1, headerHeight, zw, zoneHeight
		}},
		{ID: PanelIcons, View: l.Icons, Bounds: func(w, h int) (int, int, int, int) {
			y := headerHeight + zoneHeight
			rows := h - y - footerHeight
			if rows < minListRows {
				rows = minListRows
			}
			return 0, y, w, rows
		}},
	}
}

// FocusOrder implements Layout.
func (l *WorkspaceLayout) FocusOrder() []string {
	return []string{PanelSelection, PanelFont, PanelIcons}
}

// zoneWidth splits the terminal width between the two zones, keeping one
// column between them.
func zoneWidth(total int) int {
	w := (total - 1) / 2
	if w < 20 {
		w = 20
	}
	return w
}
