package ui

import tea "github.com/charmbracelet/bubbletea"

// Overlay is a modal view drawn over the workspace.
type Overlay struct {
	ID      string // e.g. "preview", "activity", "confirm"
	View    View
	Dismiss string // Key that dismisses without asking the view (e.g. "esc"); empty = view decides
}

// IsDismissKey returns true if the given key string should dismiss this overlay.
func (o *Overlay) IsDismissKey(key string) bool {
	return o.Dismiss != "" && key == o.Dismiss
}

// OverlayStack manages a stack of overlays (topmost receives input first).
type OverlayStack struct {
	Stack []Overlay
}

// Push adds an overlay to the top of the stack.
func (s *OverlayStack) Push(o Overlay) {
	s.Stack = append(s.Stack, o)
}

// Pop removes and returns the top overlay.
func (s *OverlayStack) Pop() (Overlay, bool) {
	if len(s.Stack) == 0 {
		return Overlay{}, false
	}
	top := s.Stack[len(s.Stack)-1]
	s.Stack = s.Stack[:len(s.Stack)-1]
	return top, true
}

// Peek returns the top overlay without removing it.
func (s *OverlayStack) Peek() (Overlay, bool) {
	if len(s.Stack) == 0 {
		return Overlay{}, false
	}
	return s.Stack[len(s.Stack)-1], true
}

// Len returns the number of overlays in the stack.
func (s *OverlayStack) Len() int {
	return len(s.Stack)
}

// UpdateTop passes msg to the top overlay's Update and replaces its View with the result.
// Returns the cmd from the overlay's Update. Caller must run the cmd.
func (s *OverlayStack) UpdateTop(msg tea.Msg) (tea.Cmd, bool) {
	if len(s.Stack) == 0 {
		return nil, false
	}
	top := &s.Stack[len(s.Stack)-1]
	newView, cmd := top.View.Update(msg)
	top.View = newView
	return cmd, true
}

// Broadcast passes msg (e.g. a window resize) to every overlay.
func (s *OverlayStack) Broadcast(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	for i := range s.Stack {
		v, cmd := s.Stack[i].View.Update(msg)
		s.Stack[i].View = v
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}
