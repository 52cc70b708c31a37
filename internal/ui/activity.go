package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mauriliodesign/Icomoon2Figma/internal/progress"
)

// ActivityWindow lists what happened to loaded files and exports, newest
// last, with scrollback. Shown as overlay (SPC l); Esc dismisses.
type ActivityWindow struct {
	events   []progress.Event
	viewport viewport.Model
}

// Ensure ActivityWindow implements View.
var _ View = (*ActivityWindow)(nil)

const defaultActivityWidth = 70
const defaultActivityHeight = 18

// NewActivityWindow creates a window showing events.
func NewActivityWindow(events []progress.Event) *ActivityWindow {
	vp := viewport.New(defaultActivityWidth, defaultActivityHeight)
	vp.Style = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorHighlight)).
		Padding(0, 1)
	w := &ActivityWindow{viewport: vp}
	w.SetEvents(events)
	return w
}

// SetEvents replaces the shown events.
func (w *ActivityWindow) SetEvents(events []progress.Event) {
	if sameTail(w.events, events) {
		return
	}
	w.events = events
	w.refreshContent()
}

// Init implements View.
func (w *ActivityWindow) Init() tea.Cmd {
	return nil
}

// Update implements View.
func (w *ActivityWindow) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q":
			return w, func() tea.Msg { return DismissModalMsg{} }
		}
	case tea.WindowSizeMsg:
		width := msg.Width - 4
		h := msg.Height/2 + 4
		if width < 40 {
			width = 40
		}
		if h < 12 {
			h = 12
		}
		w.viewport.Width = width
		w.viewport.Height = h
		w.refreshContent()
		return w, nil
	}

	var cmd tea.Cmd
	w.viewport, cmd = w.viewport.Update(msg)
	return w, cmd
}

// View implements View.
func (w *ActivityWindow) View() string {
	header := Styles.Title.Render("Activity") + Styles.Hint.Render("  Esc: close")
	return header + "\n" + w.viewport.View()
}

// refreshContent rebuilds the viewport content from the events.
func (w *ActivityWindow) refreshContent() {
	var lines []string
	for _, ev := range w.events {
		ts := ev.Timestamp.Format("15:04:05")
		lines = append(lines, fmt.Sprintf("[%s] %s %s", ts, statusIcon(ev.Status), ev.Message))
		keys := make([]string, 0, len(ev.Metadata))
		for k := range ev.Metadata {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			lines = append(lines, Styles.Muted.Render(fmt.Sprintf("      %s: %s", k, ev.Metadata[k])))
		}
	}
	content := strings.Join(lines, "\n")
	if content == "" {
		content = Styles.Empty.Render("Nothing yet. Load a file or export to see activity here.")
	}
	w.viewport.SetContent(content)
	w.viewport.GotoBottom()
}

// sameTail reports whether b shows nothing new compared to a.
func sameTail(a, b []progress.Event) bool {
	if len(a) != len(b) || len(a) == 0 {
		return false
	}
	x, y := a[len(a)-1], b[len(b)-1]
	return x.Timestamp.Equal(y.Timestamp) && x.Message == y.Message
}

func statusIcon(s progress.Status) string {
	switch s {
	case progress.StatusRunning:
		return "●"
	case progress.StatusDone:
		return "✓"
	case progress.StatusError:
		return "✗"
	case progress.StatusSkipped:
		return "–"
	default:
		return "•"
	}
}
