package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mauriliodesign/Icomoon2Figma/internal/ingest"
	"github.com/mauriliodesign/Icomoon2Figma/internal/ui/textutil"
)

// DropZone accepts one kind of file. A file arrives either dragged onto
// the terminal (a bracketed paste) or typed after pressing o/enter.
type DropZone struct {
	Kind   ingest.Kind
	Title  string
	Accept string // accepted file types, shown while empty
	Loaded string // base name of the loaded file; empty when none

	busy    bool
	focused bool
	editing bool
	width   int
	input   textinput.Model
	spinner spinner.Model
}

// Ensure DropZone implements View.
var _ View = (*DropZone)(nil)

// NewSelectionZone creates the zone for selection.json files.
func NewSelectionZone() *DropZone {
	return newDropZone(ingest.KindSelection, "Selection file", "selection.json")
}

// NewFontZone creates the zone for icon fonts.
func NewFontZone() *DropZone {
	return newDropZone(ingest.KindFont, "Icon font", strings.Join(ingest.FontExtensions, " "))
}

func newDropZone(kind ingest.Kind, title, accept string) *DropZone {
	ti := textinput.New()
	ti.Placeholder = "path/to/file"
	ti.Prompt = "> "

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = Styles.Title

	return &DropZone{
		Kind:    kind,
		Title:   title,
		Accept:  accept,
		width:   40,
		input:   ti,
		spinner: s,
	}
}

// SetFocused marks the zone as focused.
func (z *DropZone) SetFocused(focused bool) {
	z.focused = focused
	if !focused && z.editing {
		z.StopEditing()
	}
}

// Focused reports whether the zone has focus.
func (z *DropZone) Focused() bool { return z.focused }

// Editing reports whether the path prompt is open.
func (z *DropZone) Editing() bool { return z.editing }

// StartEditing opens the path prompt.
func (z *DropZone) StartEditing() tea.Cmd {
	z.editing = true
	z.input.SetValue("")
	return z.input.Focus()
}

// StopEditing closes the path prompt without submitting.
func (z *DropZone) StopEditing() {
	z.editing = false
	z.input.Blur()
}

// SetBusy shows a spinner while a file is being decoded.
func (z *DropZone) SetBusy(busy bool) tea.Cmd {
	wasBusy := z.busy
	z.busy = busy
	if busy && !wasBusy {
		return z.spinner.Tick
	}
	return nil
}

// Busy reports whether a decode is in flight.
func (z *DropZone) Busy() bool { return z.busy }

// SetSize implements Sizer.
func (z *DropZone) SetSize(width, _ int) {
	z.width = width
	// border (2) + padding (2) + prompt
	z.input.Width = width - 4 - len(z.input.Prompt) - 1
}

// Init implements View.
func (z *DropZone) Init() tea.Cmd {
	return nil
}

// Update implements View.
func (z *DropZone) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !z.busy {
			return z, nil
		}
		var cmd tea.Cmd
		z.spinner, cmd = z.spinner.Update(msg)
		return z, cmd
	case tea.KeyMsg:
		if !z.editing {
			switch msg.String() {
			case "o", "enter":
				return z, z.StartEditing()
			}
			return z, nil
		}
		switch msg.String() {
		case "esc":
			z.StopEditing()
			return z, nil
		case "enter":
			path := normalizeDroppedPath(z.input.Value())
			z.StopEditing()
			if path == "" {
				return z, nil
			}
			kind := z.Kind
			return z, func() tea.Msg { return OpenFileMsg{Kind: kind, Path: path} }
		}
	}
	if !z.editing {
		return z, nil
	}
	var cmd tea.Cmd
	z.input, cmd = z.input.Update(msg)
	return z, cmd
}

// View implements View.
func (z *DropZone) View() string {
	inner := z.width - 4
	if inner < 10 {
		inner = 10
	}

	title := Styles.Title.Render(z.Title)
	if z.busy {
		title += " " + z.spinner.View()
	}

	var line1, line2 string
	switch {
	case z.editing:
		line1 = z.input.View()
		line2 = Styles.Hint.Render("enter: load  esc: cancel")
	case z.Loaded != "":
		line1 = Styles.Normal.Render(textutil.Truncate(z.Loaded, inner))
		line2 = Styles.Hint.Render(textutil.Truncate("drop or o: replace", inner))
	default:
		line1 = Styles.Empty.Render(textutil.Truncate("Drop "+z.Accept+" here", inner))
		line2 = Styles.Hint.Render(textutil.Truncate("or press o to type a path", inner))
	}

	style := Styles.Zone
	switch {
	case z.focused:
		style = Styles.ZoneFocus
	case z.Loaded != "":
		style = Styles.ZoneFilled
	}
	return style.Width(z.width - 2).Render(title + "\n" + line1 + "\n" + line2)
}
