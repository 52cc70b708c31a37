package ui

import tea "github.com/charmbracelet/bubbletea"

// View is a region of the screen with its own Init/Update/View cycle:
// a drop zone, the icon list or a modal. Update returns the view to keep,
// so a modal may replace itself.
type View interface {
	Init() tea.Cmd
	Update(tea.Msg) (View, tea.Cmd)
	View() string
}
