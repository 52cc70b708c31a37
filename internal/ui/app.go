package ui

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mauriliodesign/Icomoon2Figma/internal/appstate"
	"github.com/mauriliodesign/Icomoon2Figma/internal/export"
	"github.com/mauriliodesign/Icomoon2Figma/internal/icon"
	"github.com/mauriliodesign/Icomoon2Figma/internal/ingest"
	"github.com/mauriliodesign/Icomoon2Figma/internal/progress"
)

const exportFailedPrefix = "Export failed: "

// Options configures NewAppModel.
type Options struct {
	Saver    export.Saver
	OutDir   string        // shown in export notices
	ToastTTL time.Duration // zero = DefaultToastTTL

	// Files loaded on start, as if dropped.
	SelectionPath string
	FontPath      string
}

// AppModel is the root model. It owns the application state; the
// ingester and the views only touch it from Update.
type AppModel struct {
	Mode     AppMode
	State    *appstate.State
	Ingester *ingest.Ingester
	Exporter *export.Exporter
	Activity *progress.Log

	SelectionZone *DropZone
	FontZone      *DropZone
	Icons         *IconListView
	Toast         *Toast
	Overlays      OverlayStack
	Layout        *WorkspaceLayout
	Focus         *FocusManager
	KeyHandler    *KeyHandler

	OutDir string

	ctx          context.Context
	width        int
	height       int
	pendingFonts int
	preload      []tea.Cmd
	pending      []tea.Cmd // commands queued by ShowToast
}

// Ensure AppModel can be used as tea.Model via adapter.
var _ tea.Model = (*appModelAdapter)(nil)

// AppModel is the display and notice collaborator of its ingester.
var (
	_ ingest.Display  = (*AppModel)(nil)
	_ ingest.Notifier = (*AppModel)(nil)
)

// appModelAdapter wraps AppModel to implement tea.Model.
type appModelAdapter struct {
	*AppModel
}

// NewAppModel creates the root application model.
func NewAppModel(ctx context.Context, opts Options) *AppModel {
	if ctx == nil {
		ctx = context.Background()
	}
	saver := opts.Saver
	if saver == nil {
		saver = export.DirSaver{Dir: opts.OutDir}
	}

	a := &AppModel{
		Mode:          ModeEmpty,
		State:         appstate.New(),
		Activity:      progress.NewLog(0),
		SelectionZone: NewSelectionZone(),
		FontZone:      NewFontZone(),
		Icons:         NewIconListView(),
		Toast:         NewToast(opts.ToastTTL),
		OutDir:        opts.OutDir,
		ctx:           ctx,
	}
	a.Ingester = ingest.New(a.State, a, a)
	a.Ingester.Events = a.Activity
	a.Exporter = &export.Exporter{Saver: saver, Events: a.Activity}

	a.Layout = &WorkspaceLayout{Selection: a.SelectionZone, Font: a.FontZone, Icons: a.Icons}
	a.Focus = NewFocusManager(a.Layout, a.onFocusChange)
	a.KeyHandler = NewKeyHandler(newRegistry())

	if opts.SelectionPath != "" {
		a.preload = append(a.preload, openFileCmd(ingest.KindSelection, opts.SelectionPath))
	}
	if opts.FontPath != "" {
		a.preload = append(a.preload, openFileCmd(ingest.KindFont, opts.FontPath))
	}
	return a
}

func newRegistry() *KeybindRegistry {
	reg := NewKeybindRegistry()
	reg.BindWithDesc("ctrl+c", tea.Quit, "Quit")
	reg.BindWithDesc("SPC q", tea.Quit, "Quit")

	reg.Submenu("o", "Open")
	reg.BindWithDesc("SPC o j", func() tea.Msg { return OpenPromptMsg{Kind: ingest.KindSelection} }, "Selection file")
	reg.BindWithDesc("SPC o f", func() tea.Msg { return OpenPromptMsg{Kind: ingest.KindFont} }, "Font")

	reg.Submenu("e", "Export")
	loaded := []AppMode{ModeLoaded}
	for _, b := range []struct {
		key    string
		format export.Format
	}{
		{"c", export.FormatCSV},
		{"s", export.FormatCSVSelected},
		{"t", export.FormatTokens},
		{"v", export.FormatSVG},
		{"j", export.FormatJSON},
	} {
		f := b.format
		reg.BindWithDescForMode("SPC e "+b.key, func() tea.Msg { return ExportMsg{Format: f} }, f.Label(), loaded)
	}

	reg.Submenu("d", "Delete")
	reg.BindWithDesc("SPC d j", func() tea.Msg { return ShowDeleteFileMsg{Kind: ingest.KindSelection} }, "Selection file")
	reg.BindWithDesc("SPC d f", func() tea.Msg { return ShowDeleteFileMsg{Kind: ingest.KindFont} }, "Font")

	reg.BindWithDesc("SPC l", func() tea.Msg { return ShowActivityMsg{} }, "Activity")
	return reg
}

// AsTeaModel returns a tea.Model adapter for use with tea.NewProgram.
func (m *AppModel) AsTeaModel() tea.Model {
	return &appModelAdapter{AppModel: m}
}

// RefreshDisplay implements ingest.Display.
func (m *AppModel) RefreshDisplay(state *appstate.State) {
	if state.HasIcons() {
		m.Mode = ModeLoaded
	} else {
		m.Mode = ModeEmpty
		m.SelectionZone.Loaded = ""
	}
	m.FontZone.Loaded = ""
	if state.Font != nil {
		m.FontZone.Loaded = state.Font.DisplayName()
		if state.Font.FullName != "" && state.Font.FullName != state.Font.FileName {
			m.FontZone.Loaded = state.Font.FileName + " (" + state.Font.FullName + ")"
		}
	}
	m.Icons.SetIcons(state.Icons, state.Font)
}

// SelectedIcons implements ingest.Display.
func (m *AppModel) SelectedIcons() []icon.Record {
	return m.Icons.Selected()
}

// ShowToast implements ingest.Notifier.
func (m *AppModel) ShowToast(message string) {
	m.pending = append(m.pending, m.Toast.Show(message))
}

func (m *AppModel) drainPending() tea.Cmd {
	if len(m.pending) == 0 {
		return nil
	}
	cmds := m.pending
	m.pending = nil
	return tea.Batch(cmds...)
}

func (m *AppModel) onFocusChange(from, to string) {
	m.SelectionZone.SetFocused(to == PanelSelection)
	m.FontZone.SetFocused(to == PanelFont)
	m.Icons.SetFocused(to == PanelIcons)
}

func (m *AppModel) zone(kind ingest.Kind) *DropZone {
	if kind == ingest.KindFont {
		return m.FontZone
	}
	return m.SelectionZone
}

func (m *AppModel) focusedZone() *DropZone {
	switch m.Focus.Current {
	case PanelSelection:
		return m.SelectionZone
	case PanelFont:
		return m.FontZone
	}
	return nil
}

// Init implements tea.Model.
func (a *appModelAdapter) Init() tea.Cmd {
	cmds := append([]tea.Cmd(nil), a.preload...)
	a.preload = nil
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (a *appModelAdapter) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := a.update(msg)
	if top, ok := a.Overlays.Peek(); ok {
		if w, ok := top.View.(*ActivityWindow); ok {
			w.SetEvents(a.Activity.Events())
		}
	}
	return a, tea.Batch(cmd, a.drainPending())
}

func (a *appModelAdapter) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		Resize(a.Layout, msg.Width, msg.Height)
		return a.Overlays.Broadcast(msg)

	case toastExpiredMsg:
		a.Toast.Expire(msg.seq)
		return nil

	case spinner.TickMsg:
		_, cmd := a.FontZone.Update(msg)
		return cmd

	case OpenFileMsg:
		return a.openFile(msg.Kind, msg.Path)

	case OpenPromptMsg:
		a.Overlays = OverlayStack{}
		if msg.Kind == ingest.KindFont {
			a.Focus.SetFocus(PanelFont)
		} else {
			a.Focus.SetFocus(PanelSelection)
		}
		return a.zone(msg.Kind).StartEditing()

	case fontDecodedMsg:
		if a.pendingFonts > 0 {
			a.pendingFonts--
		}
		if msg.Err != nil {
			a.Ingester.ReportFontError(msg.Err)
		} else {
			a.Ingester.CommitFont(msg.Face)
		}
		return a.FontZone.SetBusy(a.pendingFonts > 0)

	case ExportMsg:
		// Export bindings stay live when their hints are hidden; with
		// nothing loaded there is nothing to write.
		if !a.State.HasIcons() {
			log.Printf("ui.export: %s ignored, no icons loaded", msg.Format)
			return nil
		}
		return exportCmd(a.ctx, a.Exporter, msg.Format, a.State.IconsSnapshot(), a.SelectedIcons())

	case exportDoneMsg:
		switch {
		case msg.Err != nil:
			a.ShowToast(exportFailedPrefix + msg.Err.Error())
		case msg.Saved:
			a.ShowToast(fmt.Sprintf("Exported %s to %s", msg.Format.Label(), a.outDirLabel()))
		}
		return nil

	case ShowDeleteFileMsg:
		name := a.zone(msg.Kind).Loaded
		a.Overlays.Push(Overlay{ID: "confirm", View: NewDeleteFileConfirmModal(msg.Kind, name)})
		return nil

	case DeleteFileMsg:
		a.Overlays.Pop()
		a.Ingester.Delete(msg.Kind)
		return nil

	case ShowPreviewMsg:
		rec, ok := a.Icons.Current()
		if !ok {
			return nil
		}
		p := NewPreviewModal(rec, a.State.Font)
		if a.width > 0 {
			p.Update(tea.WindowSizeMsg{Width: a.width, Height: a.height})
		}
		a.Overlays.Push(Overlay{ID: "preview", View: p, Dismiss: "esc"})
		return nil

	case ShowActivityMsg:
		w := NewActivityWindow(a.Activity.Events())
		if a.width > 0 {
			w.Update(tea.WindowSizeMsg{Width: a.width, Height: a.height})
		}
		a.Overlays.Push(Overlay{ID: "activity", View: w, Dismiss: "esc"})
		return nil

	case DismissModalMsg:
		a.Overlays.Pop()
		return nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	// Anything else (cursor blink etc.) goes to the views that may be waiting for it.
	if a.Overlays.Len() > 0 {
		cmd, _ := a.Overlays.UpdateTop(msg)
		return cmd
	}
	if z := a.focusedZone(); z != nil && z.Editing() {
		_, cmd := z.Update(msg)
		return cmd
	}
	return nil
}

func (a *appModelAdapter) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "ctrl+c" {
		return tea.Quit
	}

	if a.Overlays.Len() > 0 {
		top, _ := a.Overlays.Peek()
		if top.IsDismissKey(msg.String()) {
			a.Overlays.Pop()
			return nil
		}
		cmd, _ := a.Overlays.UpdateTop(msg)
		return cmd
	}

	if msg.Paste {
		return a.routePaste(string(msg.Runes))
	}

	// An open path prompt takes every key.
	if z := a.focusedZone(); z != nil && z.Editing() {
		_, cmd := z.Update(msg)
		return cmd
	}

	if a.KeyHandler != nil {
		if consumed, cmd := a.KeyHandler.Handle(msg); consumed {
			return cmd
		}
	}

	switch msg.String() {
	case "tab":
		a.Focus.Next()
		return nil
	case "shift+tab":
		a.Focus.Prev()
		return nil
	case "q":
		return tea.Quit
	}

	if z := a.focusedZone(); z != nil {
		_, cmd := z.Update(msg)
		return cmd
	}
	_, cmd := a.Icons.Update(msg)
	return cmd
}

// routePaste treats pasted text as a dropped file. It goes to the focused
// zone; on the icon list the zone is picked by file extension. A drop
// closes an open path prompt.
func (a *appModelAdapter) routePaste(text string) tea.Cmd {
	path := normalizeDroppedPath(text)
	if path == "" {
		return nil
	}
	if z := a.focusedZone(); z != nil && z.Editing() {
		z.StopEditing()
	}
	kind := ingest.KindSelection
	switch a.Focus.Current {
	case PanelFont:
		kind = ingest.KindFont
	case PanelIcons:
		if ingest.IsFontFile(path) {
			kind = ingest.KindFont
		}
	}
	return openFileCmd(kind, path)
}

// openFile loads a selection synchronously; fonts are decoded in the
// background and committed when fontDecodedMsg arrives.
func (a *AppModel) openFile(kind ingest.Kind, path string) tea.Cmd {
	log.Printf("ui.openFile: %s %q", kind, path)
	if kind == ingest.KindSelection {
		if err := a.Ingester.LoadSelectionPath(a.ctx, path); err == nil {
			a.SelectionZone.Loaded = filepath.Base(path)
		}
		return nil
	}
	if !ingest.IsFontFile(path) {
		a.Ingester.ReportFontError(fmt.Errorf("%w: %q", ingest.ErrInvalidFileType, filepath.Base(path)))
		return nil
	}
	a.pendingFonts++
	return tea.Batch(a.FontZone.SetBusy(true), decodeFontCmd(a.ctx, a.Ingester, path))
}

func (a *AppModel) outDirLabel() string {
	if a.OutDir == "" || a.OutDir == "." {
		return "the current directory"
	}
	return a.OutDir
}

// View implements tea.Model.
func (a *appModelAdapter) View() string {
	if top, ok := a.Overlays.Peek(); ok {
		overlay := top.View.View()
		if a.width > 0 && a.height > 0 {
			return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, overlay)
		}
		return overlay
	}

	var b strings.Builder
	b.WriteString(Styles.Title.Render("Icomoon2Figma") + Styles.Muted.Render("  IcoMoon selection to Figma variables") + "\n\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, a.SelectionZone.View(), " ", a.FontZone.View()) + "\n")
	b.WriteString(a.Icons.View() + "\n")
	b.WriteString(a.Toast.View(a.width) + "\n")
	if a.KeyHandler != nil && a.KeyHandler.LeaderWaiting {
		b.WriteString(RenderKeybindHelp(a.KeyHandler, a.Mode))
	} else {
		b.WriteString(Styles.Hint.Render("tab: switch panel  o: open  x: select  a/A: all/none  enter: preview  [SPC]: commands"))
	}
	return b.String()
}
