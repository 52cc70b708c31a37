package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mauriliodesign/Icomoon2Figma/internal/ingest"
)

// ConfirmModal is a generic confirmation modal.
// Enter or y confirms; Esc or n cancels.
type ConfirmModal struct {
	Title     string
	Label     string
	Details   string // Optional warning details
	OnConfirm func() tea.Msg
	boxStyle  lipgloss.Style
}

// Ensure ConfirmModal implements View.
var _ View = (*ConfirmModal)(nil)

// NewConfirmModal creates a generic confirmation modal.
func NewConfirmModal(title, label string, onConfirm func() tea.Msg) *ConfirmModal {
	return &ConfirmModal{
		Title:     title,
		Label:     label,
		OnConfirm: onConfirm,
		boxStyle:  Styles.BoxDanger,
	}
}

// WithDetails adds warning details to the modal.
func (m *ConfirmModal) WithDetails(details string) *ConfirmModal {
	m.Details = details
	return m
}

// NewDeleteFileConfirmModal asks before removing the file of the given
// kind. fileName may be empty when nothing is loaded.
func NewDeleteFileConfirmModal(kind ingest.Kind, fileName string) *ConfirmModal {
	label := "No " + kind.String() + " file loaded"
	if fileName != "" {
		label = "File: " + fileName
	}
	m := NewConfirmModal(
		"Remove "+kind.String()+" file?",
		label,
		func() tea.Msg { return DeleteFileMsg{Kind: kind} },
	)
	switch kind {
	case ingest.KindSelection:
		m.WithDetails("The icon list and selection will be cleared")
	case ingest.KindFont:
		m.WithDetails("Glyph checks fall back to no font")
	}
	return m
}

// Init implements View.
func (m *ConfirmModal) Init() tea.Cmd {
	return nil
}

// Update implements View.
func (m *ConfirmModal) Update(msg tea.Msg) (View, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc", "n":
			return m, func() tea.Msg { return DismissModalMsg{} }
		case "enter", "y":
			if m.OnConfirm != nil {
				return m, m.OnConfirm
			}
		}
	}
	return m, nil
}

// View implements View.
func (m *ConfirmModal) View() string {
	content := Styles.TitleWarning.Render(m.Title) + "\n\n"
	content += Styles.Label.Render(m.Label)
	if m.Details != "" {
		content += "\n" + Styles.Details.Render(m.Details)
	}
	content += "\n\n" + Styles.Hint.Render("y/Enter: confirm  Esc: cancel")
	return m.boxStyle.Render(content)
}
