package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/unicode/runenames"

	"github.com/mauriliodesign/Icomoon2Figma/internal/fontface"
	"github.com/mauriliodesign/Icomoon2Figma/internal/icon"
)

const (
	defaultPreviewWidth  = 70
	defaultPreviewHeight = 18
)

// PreviewModal shows everything known about one icon, including its SVG
// source, in a scrollable window. Esc closes it.
type PreviewModal struct {
	Icon     icon.Record
	font     *fontface.Face
	viewport viewport.Model
}

// Ensure PreviewModal implements View.
var _ View = (*PreviewModal)(nil)

// NewPreviewModal creates a preview of rec. font may be nil.
func NewPreviewModal(rec icon.Record, font *fontface.Face) *PreviewModal {
	vp := viewport.New(defaultPreviewWidth, defaultPreviewHeight)
	vp.Style = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorHighlight)).
		Padding(0, 1)
	p := &PreviewModal{Icon: rec, font: font, viewport: vp}
	p.refreshContent()
	return p
}

// Init implements View.
func (p *PreviewModal) Init() tea.Cmd {
	return nil
}

// Update implements View.
func (p *PreviewModal) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q", "enter":
			return p, func() tea.Msg { return DismissModalMsg{} }
		}
	case tea.WindowSizeMsg:
		w := msg.Width - 8
		h := msg.Height - 8
		if w < 40 {
			w = 40
		}
		if h < 8 {
			h = 8
		}
		p.viewport.Width = w
		p.viewport.Height = h
		p.refreshContent()
		return p, nil
	}
	var cmd tea.Cmd
	p.viewport, cmd = p.viewport.Update(msg)
	return p, cmd
}

// View implements View.
func (p *PreviewModal) View() string {
	header := Styles.Title.Render(p.Icon.Name()) + Styles.Hint.Render("  Esc: close  j/k: scroll")
	return header + "\n" + p.viewport.View()
}

func (p *PreviewModal) refreshContent() {
	r := rune(p.Icon.Properties.Code)
	field := func(name, value string) string {
		return Styles.Field.Render(name) + value
	}

	lines := []string{
		field("Code point", fmt.Sprintf("U+%04X (%d)", p.Icon.Properties.Code, p.Icon.Properties.Code)),
		field("Escape", p.Icon.Hex()),
		field("Character", p.Icon.Char()),
		field("Unicode name", unicodeName(r)),
	}
	tags := "none"
	if len(p.Icon.Properties.Tags) > 0 {
		tags = strings.Join(p.Icon.Properties.Tags, ", ")
	}
	lines = append(lines, field("Tags", tags))
	lines = append(lines, field("Font glyph", glyphStatus(p.font, p.Icon.Properties.Code)))
	lines = append(lines, "", Styles.Title.Render("SVG"))
	if p.Icon.SVG == "" {
		lines = append(lines, Styles.Empty.Render("no SVG source in the selection file"))
	} else {
		lines = append(lines, lipgloss.NewStyle().Width(p.viewport.Width-4).Render(p.Icon.SVG))
	}
	p.viewport.SetContent(strings.Join(lines, "\n"))
	p.viewport.GotoTop()
}

func unicodeName(r rune) string {
	if name := runenames.Name(r); name != "" {
		return name
	}
	return "unnamed"
}

func glyphStatus(font *fontface.Face, code int) string {
	if font == nil {
		return "no font loaded"
	}
	present, known := font.HasGlyph(code)
	switch {
	case !known:
		return "unknown (" + font.DisplayName() + " hides its character map)"
	case present:
		return "present in " + font.DisplayName()
	default:
		return "missing from " + font.DisplayName()
	}
}
