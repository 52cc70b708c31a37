package ui

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/mauriliodesign/Icomoon2Figma/internal/export"
	"github.com/mauriliodesign/Icomoon2Figma/internal/fontface"
	"github.com/mauriliodesign/Icomoon2Figma/internal/ingest"
	"github.com/mauriliodesign/Icomoon2Figma/internal/progress"
)

const threeIcons = `{"icons":[
 {"properties":{"name":"home","code":61697},"icon":{"paths":["M0 0"],"tags":["house"]}},
 {"properties":{"name":"user","code":61698,"tags":["person"]}},
 {"properties":{"name":"star","code":61699}}
]}`

type memSaver struct {
	files []export.File
	err   error
}

func (s *memSaver) Save(_ context.Context, f export.File) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.files = append(s.files, f)
	return "mem://" + f.Name, nil
}

func newTestApp(t *testing.T) (*appModelAdapter, *memSaver) {
	t.Helper()
	s := &memSaver{}
	m := NewAppModel(context.Background(), Options{Saver: s, OutDir: "out", ToastTTL: time.Millisecond})
	return &appModelAdapter{AppModel: m}, s
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func send(a *appModelAdapter, msg tea.Msg) tea.Cmd {
	_, cmd := a.Update(msg)
	return cmd
}

// collect runs cmd and flattens batches into the messages they produce.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

// settle runs cmd and feeds its messages back into the model until no
// more arrive. Timer messages are dropped so notices stay visible.
func settle(t *testing.T, a *appModelAdapter, cmd tea.Cmd) {
	t.Helper()
	queue := collect(cmd)
	for i := 0; len(queue) > 0; i++ {
		require.Less(t, i, 50, "too many follow-up messages")
		msg := queue[0]
		queue = queue[1:]
		switch msg.(type) {
		case toastExpiredMsg, spinner.TickMsg:
			continue
		}
		queue = append(queue, collect(send(a, msg))...)
	}
}

func loadSelection(t *testing.T, a *appModelAdapter) {
	t.Helper()
	path := writeFile(t, "selection.json", []byte(threeIcons))
	settle(t, a, send(a, OpenFileMsg{Kind: ingest.KindSelection, Path: path}))
	require.Equal(t, 3, a.Icons.Len())
}

func goFace(t *testing.T, name string) *fontface.Face {
	t.Helper()
	face, err := fontface.Decode(name, goregular.TTF)
	require.NoError(t, err)
	return face
}

func TestApp_StartsEmpty(t *testing.T) {
	a, _ := newTestApp(t)

	assert.Equal(t, ModeEmpty, a.Mode)
	assert.True(t, a.Focus.Is(PanelSelection))
	assert.True(t, a.SelectionZone.Focused())
	assert.False(t, a.Toast.Visible())
	assert.Empty(t, collect(a.Init()), "nothing to preload")
}

func TestApp_OpenSelection(t *testing.T) {
	a, _ := newTestApp(t)
	loadSelection(t, a)

	assert.Equal(t, ModeLoaded, a.Mode)
	assert.Equal(t, "selection.json", a.SelectionZone.Loaded)
	assert.Equal(t, "Successfully loaded 3 icons", a.Toast.Message)
	assert.Len(t, a.State.Icons, 3)

	rec, ok := a.Icons.Current()
	require.True(t, ok)
	assert.Equal(t, "home", rec.Name())
}

func TestApp_OpenSelectionFailureKeepsState(t *testing.T) {
	a, _ := newTestApp(t)
	loadSelection(t, a)

	bad := writeFile(t, "selection.json", []byte(`{"icons":[]}`))
	settle(t, a, send(a, OpenFileMsg{Kind: ingest.KindSelection, Path: bad}))

	assert.Equal(t, ingest.NoticeEmptyIconSet, a.Toast.Message)
	assert.Equal(t, ModeLoaded, a.Mode)
	assert.Equal(t, 3, a.Icons.Len())

	settle(t, a, send(a, OpenFileMsg{Kind: ingest.KindSelection, Path: writeFile(t, "icons.txt", []byte(threeIcons))}))
	assert.Equal(t, ingest.NoticeInvalidSelection, a.Toast.Message)
	assert.Contains(t, a.View(), ingest.NoticeInvalidSelection)
}

func TestApp_PasteRoutesByFocus(t *testing.T) {
	a, _ := newTestApp(t)
	path := writeFile(t, "My Icons.json", []byte(threeIcons))

	// Terminals escape spaces when a file is dragged in.
	escaped := strings.ReplaceAll(path, " ", `\ `)
	cmd := send(a, pasteMsg(escaped))
	msgs := collect(cmd)
	require.Len(t, msgs, 1)
	assert.Equal(t, OpenFileMsg{Kind: ingest.KindSelection, Path: path}, msgs[0])

	settle(t, a, cmd)
	assert.Equal(t, "My Icons.json", a.SelectionZone.Loaded)

	a.Focus.SetFocus(PanelFont)
	msgs = collect(send(a, pasteMsg("'/tmp/icomoon.woff'")))
	require.Len(t, msgs, 1)
	assert.Equal(t, OpenFileMsg{Kind: ingest.KindFont, Path: "/tmp/icomoon.woff"}, msgs[0])
}

func TestApp_PasteOnIconListPicksZoneByExtension(t *testing.T) {
	a, _ := newTestApp(t)
	a.Focus.SetFocus(PanelIcons)

	msgs := collect(send(a, pasteMsg("file:///fonts/icomoon.ttf")))
	require.Len(t, msgs, 1)
	assert.Equal(t, OpenFileMsg{Kind: ingest.KindFont, Path: "/fonts/icomoon.ttf"}, msgs[0])

	msgs = collect(send(a, pasteMsg("/data/selection.json\n/data/other.json")))
	require.Len(t, msgs, 1)
	assert.Equal(t, OpenFileMsg{Kind: ingest.KindSelection, Path: "/data/selection.json"}, msgs[0])
}

func TestApp_PasteClosesPathPrompt(t *testing.T) {
	a, _ := newTestApp(t)
	path := writeFile(t, "other.json", []byte(threeIcons))

	send(a, keyMsg("o"))
	require.True(t, a.SelectionZone.Editing())

	settle(t, a, send(a, pasteMsg(path)))
	assert.False(t, a.SelectionZone.Editing())
	assert.Equal(t, "other.json", a.SelectionZone.Loaded)
	assert.Equal(t, ModeLoaded, a.Mode)

	// With the prompt closed, keys reach the bindings again.
	send(a, keyMsg("tab"))
	assert.True(t, a.Focus.Is(PanelFont))
}

func TestApp_TypedPath(t *testing.T) {
	a, _ := newTestApp(t)
	path := writeFile(t, "selection.json", []byte(threeIcons))

	send(a, keyMsg("o"))
	require.True(t, a.SelectionZone.Editing())

	for _, r := range path {
		send(a, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	// Keys go to the prompt while it is open.
	assert.Equal(t, ModeEmpty, a.Mode)
	assert.True(t, a.Focus.Is(PanelSelection))

	settle(t, a, send(a, keyMsg("enter")))
	assert.False(t, a.SelectionZone.Editing())
	assert.Equal(t, ModeLoaded, a.Mode)
}

func TestApp_OpenPromptFocusesZone(t *testing.T) {
	a, _ := newTestApp(t)

	send(a, OpenPromptMsg{Kind: ingest.KindFont})
	assert.True(t, a.Focus.Is(PanelFont))
	assert.True(t, a.FontZone.Editing())
	assert.False(t, a.SelectionZone.Editing())

	send(a, keyMsg("esc"))
	assert.False(t, a.FontZone.Editing())
}

func TestApp_OpenFontDecodesInBackground(t *testing.T) {
	a, _ := newTestApp(t)
	path := writeFile(t, "icons.ttf", goregular.TTF)

	cmd := send(a, OpenFileMsg{Kind: ingest.KindFont, Path: path})
	require.NotNil(t, cmd)
	assert.True(t, a.FontZone.Busy())
	assert.Nil(t, a.State.Font, "font is committed only when the decode finishes")

	settle(t, a, cmd)
	require.NotNil(t, a.State.Font)
	assert.False(t, a.FontZone.Busy())
	assert.Equal(t, "icons.ttf (Go Regular)", a.FontZone.Loaded)
	assert.Equal(t, ingest.NoticeFontLoaded, a.Toast.Message)
	assert.Equal(t, 1, a.Ingester.Fonts.Len())
	assert.Contains(t, a.Ingester.Styles.Text(), "@font-face")
}

func TestApp_OpenFontRejectsExtension(t *testing.T) {
	a, _ := newTestApp(t)

	cmd := send(a, OpenFileMsg{Kind: ingest.KindFont, Path: "/fonts/icons.svg"})
	settle(t, a, cmd)
	assert.False(t, a.FontZone.Busy())
	assert.Equal(t, ingest.NoticeInvalidFont, a.Toast.Message)
	assert.Nil(t, a.State.Font)
}

func TestApp_FontDecodeErrorKeepsPreviousFont(t *testing.T) {
	a, _ := newTestApp(t)
	face := goFace(t, "first.ttf")
	send(a, fontDecodedMsg{Face: face})

	send(a, fontDecodedMsg{Path: "broken.woff", Err: errors.New("bad header")})
	assert.Same(t, face, a.State.Font)
	assert.Equal(t, ingest.NoticeFontError, a.Toast.Message)
}

func TestApp_LastFontDecodeWins(t *testing.T) {
	a, _ := newTestApp(t)
	send(a, OpenFileMsg{Kind: ingest.KindFont, Path: "/fonts/a.ttf"})
	send(a, OpenFileMsg{Kind: ingest.KindFont, Path: "/fonts/b.ttf"})
	require.True(t, a.FontZone.Busy())

	first, second := goFace(t, "a.ttf"), goFace(t, "b.ttf")
	send(a, fontDecodedMsg{Face: first})
	assert.True(t, a.FontZone.Busy(), "one decode still in flight")
	send(a, fontDecodedMsg{Face: second})

	assert.False(t, a.FontZone.Busy())
	assert.Same(t, second, a.State.Font)
	assert.Equal(t, 1, a.Ingester.Fonts.Len())
}

func TestApp_SelectionSurvivesFontLoad(t *testing.T) {
	a, _ := newTestApp(t)
	loadSelection(t, a)
	a.Focus.SetFocus(PanelIcons)

	send(a, keyMsg("down"))
	send(a, keyMsg("x"))
	require.Equal(t, 1, a.Icons.SelectedCount())

	send(a, fontDecodedMsg{Face: goFace(t, "icons.ttf")})
	selected := a.SelectedIcons()
	require.Len(t, selected, 1)
	assert.Equal(t, "user", selected[0].Name())

	// A new selection file resets the selection.
	loadSelection(t, a)
	assert.Zero(t, a.Icons.SelectedCount())
}

func TestApp_SelectAllAndClear(t *testing.T) {
	a, _ := newTestApp(t)
	loadSelection(t, a)
	a.Focus.SetFocus(PanelIcons)

	send(a, keyMsg("a"))
	assert.Equal(t, 3, a.Icons.SelectedCount())
	assert.Contains(t, a.View(), "Icons (3, 3 selected)")

	send(a, keyMsg("A"))
	assert.Zero(t, a.Icons.SelectedCount())
}

func TestApp_ExportAllIcons(t *testing.T) {
	a, s := newTestApp(t)
	loadSelection(t, a)

	settle(t, a, send(a, ExportMsg{Format: export.FormatCSV}))
	require.Len(t, s.files, 1)
	assert.Equal(t, export.CSVFileName, s.files[0].Name)
	assert.Equal(t, 4, strings.Count(string(s.files[0].Content), "\n")+1)
	assert.Equal(t, "Exported CSV (all icons) to out", a.Toast.Message)
}

func TestApp_ExportSelected(t *testing.T) {
	a, s := newTestApp(t)
	loadSelection(t, a)
	a.Focus.SetFocus(PanelIcons)
	send(a, keyMsg("x"))

	settle(t, a, send(a, ExportMsg{Format: export.FormatJSON}))
	require.Len(t, s.files, 1)
	assert.Contains(t, string(s.files[0].Content), `"name": "home"`)
	assert.NotContains(t, string(s.files[0].Content), `"user"`)
}

func TestApp_ExportEmptySelectionIsSilent(t *testing.T) {
	a, s := newTestApp(t)
	loadSelection(t, a)
	before := a.Toast.Message

	for _, f := range []export.Format{export.FormatCSVSelected, export.FormatSVG, export.FormatJSON} {
		settle(t, a, send(a, ExportMsg{Format: f}))
	}
	assert.Empty(t, s.files)
	assert.Equal(t, before, a.Toast.Message)

	events := a.Activity.Events()
	require.NotEmpty(t, events)
	assert.Equal(t, progress.StatusSkipped, events[len(events)-1].Status)
}

func TestApp_ExportFailureShowsNotice(t *testing.T) {
	a, s := newTestApp(t)
	s.err = errors.New("disk full")
	loadSelection(t, a)

	settle(t, a, send(a, ExportMsg{Format: export.FormatTokens}))
	assert.True(t, strings.HasPrefix(a.Toast.Message, exportFailedPrefix))
	assert.Contains(t, a.Toast.Message, "disk full")
	assert.True(t, isErrorNotice(a.Toast.Message))
}

func TestApp_ExportKeybinding(t *testing.T) {
	a, _ := newTestApp(t)

	send(a, keyMsg(" "))
	send(a, keyMsg("e"))
	assert.Contains(t, a.View(), "SPC e")
	msgs := collect(send(a, keyMsg("v")))
	require.Len(t, msgs, 1)
	assert.Equal(t, ExportMsg{Format: export.FormatSVG}, msgs[0])
	assert.False(t, a.KeyHandler.LeaderWaiting)
}

func TestApp_ExportWithoutIconsIsIgnored(t *testing.T) {
	a, s := newTestApp(t)

	send(a, keyMsg(" "))
	send(a, keyMsg("e"))
	settle(t, a, send(a, keyMsg("t")))
	settle(t, a, send(a, ExportMsg{Format: export.FormatCSV}))
	assert.Equal(t, ModeEmpty, a.Mode)
	assert.Empty(t, s.files)
	assert.False(t, a.Toast.Visible())

	loadSelection(t, a)
	send(a, ShowDeleteFileMsg{Kind: ingest.KindSelection})
	settle(t, a, send(a, keyMsg("enter")))
	require.Equal(t, ModeEmpty, a.Mode)
	notice := a.Toast.Message

	settle(t, a, send(a, ExportMsg{Format: export.FormatTokens}))
	assert.Empty(t, s.files, "removing the selection disables exports again")
	assert.Equal(t, notice, a.Toast.Message)
}

func TestApp_DeleteSelectionConfirmed(t *testing.T) {
	a, _ := newTestApp(t)
	loadSelection(t, a)

	send(a, ShowDeleteFileMsg{Kind: ingest.KindSelection})
	require.Equal(t, 1, a.Overlays.Len())
	assert.Contains(t, a.View(), "Remove selection file?")
	assert.Contains(t, a.View(), "selection.json")

	settle(t, a, send(a, keyMsg("enter")))
	assert.Zero(t, a.Overlays.Len())
	assert.Equal(t, ModeEmpty, a.Mode)
	assert.Empty(t, a.SelectionZone.Loaded)
	assert.Zero(t, a.Icons.Len())
	assert.Equal(t, ingest.NoticeFileRemoved, a.Toast.Message)
}

func TestApp_DeleteFontConfirmed(t *testing.T) {
	a, _ := newTestApp(t)
	send(a, fontDecodedMsg{Face: goFace(t, "icons.ttf")})
	require.NotEmpty(t, a.FontZone.Loaded)

	send(a, ShowDeleteFileMsg{Kind: ingest.KindFont})
	settle(t, a, send(a, keyMsg("y")))
	assert.Nil(t, a.State.Font)
	assert.Empty(t, a.FontZone.Loaded)
	assert.Zero(t, a.Ingester.Fonts.Len())
	assert.Empty(t, a.Ingester.Styles.Text())
}

func TestApp_DeleteCancelled(t *testing.T) {
	a, _ := newTestApp(t)
	loadSelection(t, a)

	send(a, ShowDeleteFileMsg{Kind: ingest.KindSelection})
	settle(t, a, send(a, keyMsg("esc")))
	assert.Zero(t, a.Overlays.Len())
	assert.Equal(t, ModeLoaded, a.Mode)
	assert.Equal(t, 3, a.Icons.Len())
}

func TestApp_PreviewOverlay(t *testing.T) {
	a, _ := newTestApp(t)
	loadSelection(t, a)
	a.Focus.SetFocus(PanelIcons)

	settle(t, a, send(a, keyMsg("enter")))
	require.Equal(t, 1, a.Overlays.Len())
	top, _ := a.Overlays.Peek()
	assert.Equal(t, "preview", top.ID)
	view := a.View()
	assert.Contains(t, view, "home")
	assert.Contains(t, view, "U+F101")
	assert.Contains(t, view, "no font loaded")

	// Keys do not reach the list while the preview is open.
	send(a, keyMsg("x"))
	assert.Zero(t, a.Icons.SelectedCount())

	send(a, keyMsg("esc"))
	assert.Zero(t, a.Overlays.Len())
}

func TestApp_PreviewNeedsIcons(t *testing.T) {
	a, _ := newTestApp(t)
	send(a, ShowPreviewMsg{})
	assert.Zero(t, a.Overlays.Len())
}

func TestApp_ActivityOverlay(t *testing.T) {
	a, _ := newTestApp(t)
	loadSelection(t, a)

	send(a, keyMsg(" "))
	settle(t, a, send(a, keyMsg("l")))
	require.Equal(t, 1, a.Overlays.Len())
	assert.Contains(t, a.View(), "Successfully loaded 3 icons")

	settle(t, a, send(a, ExportMsg{Format: export.FormatCSV}))
	assert.Contains(t, a.View(), export.CSVFileName, "open window follows new activity")

	send(a, keyMsg("esc"))
	assert.Zero(t, a.Overlays.Len())
}

func TestApp_ToastExpiry(t *testing.T) {
	a, _ := newTestApp(t)
	a.ShowToast("first")
	a.ShowToast("second")
	a.drainPending()

	send(a, toastExpiredMsg{seq: 1})
	assert.Equal(t, "second", a.Toast.Message, "a stale timer must not hide a newer notice")

	send(a, toastExpiredMsg{seq: 2})
	assert.False(t, a.Toast.Visible())
}

func TestApp_FocusCycle(t *testing.T) {
	a, _ := newTestApp(t)

	send(a, keyMsg("tab"))
	assert.True(t, a.FontZone.Focused())
	send(a, keyMsg("tab"))
	assert.True(t, a.Focus.Is(PanelIcons))
	send(a, keyMsg("tab"))
	assert.True(t, a.Focus.Is(PanelSelection))
	send(a, keyMsg("shift+tab"))
	assert.True(t, a.Focus.Is(PanelIcons))
	assert.False(t, a.SelectionZone.Focused())
}

func TestApp_Quit(t *testing.T) {
	a, _ := newTestApp(t)
	for _, k := range []string{"q", "ctrl+c"} {
		msgs := collect(send(a, keyMsg(k)))
		require.Len(t, msgs, 1, k)
		assert.IsType(t, tea.QuitMsg{}, msgs[0], k)
	}
}

func TestApp_PreloadFromOptions(t *testing.T) {
	path := writeFile(t, "selection.json", []byte(threeIcons))
	m := NewAppModel(context.Background(), Options{Saver: &memSaver{}, SelectionPath: path, ToastTTL: time.Millisecond})
	a := &appModelAdapter{AppModel: m}

	settle(t, a, a.Init())
	assert.Equal(t, ModeLoaded, a.Mode)
	assert.Empty(t, collect(a.Init()), "preload runs once")
}

func TestApp_WindowResize(t *testing.T) {
	a, _ := newTestApp(t)
	send(a, tea.WindowSizeMsg{Width: 120, Height: 40})

	view := a.View()
	assert.Contains(t, view, "Selection file")
	assert.Contains(t, view, "Icon font")
	assert.Contains(t, view, "No icons loaded")
}
