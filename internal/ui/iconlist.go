package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mauriliodesign/Icomoon2Figma/internal/fontface"
	"github.com/mauriliodesign/Icomoon2Figma/internal/icon"
	"github.com/mauriliodesign/Icomoon2Figma/internal/ui/textutil"
)

const nameColumnWidth = 28

// glyphMark tells whether the loaded font has a glyph for an icon.
func glyphMark(font *fontface.Face, code int) string {
	if font == nil {
		return " "
	}
	present, known := font.HasGlyph(code)
	switch {
	case !known:
		return "?"
	case present:
		return "●"
	default:
		return "○"
	}
}

// iconItem implements list.Item for one loaded icon.
type iconItem struct {
	rec      icon.Record
	selected bool
	glyph    string
}

func (i iconItem) FilterValue() string { return i.rec.Name() }
func (i iconItem) Title() string {
	box := "[ ]"
	if i.selected {
		box = "[x]"
	}
	line := fmt.Sprintf("%s %s %s  %-8s", box, i.glyph, textutil.PadRight(i.rec.Name(), nameColumnWidth), i.rec.Hex())
	if len(i.rec.Properties.Tags) > 0 {
		line += "  " + strings.Join(i.rec.Properties.Tags, ", ")
	}
	return line
}
func (i iconItem) Description() string { return "" }

// IconListView shows the loaded icons and tracks the user's selection.
// x toggles the icon under the cursor, a selects all, A clears.
type IconListView struct {
	list    list.Model
	icons   []icon.Record
	focused bool
	width   int
}

// Ensure IconListView implements View.
var _ View = (*IconListView)(nil)

// NewIconListView creates an empty icon list.
func NewIconListView() *IconListView {
	l := list.New(nil, NewCompactListDelegate(), 80, 10)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.DisableQuitKeybindings()
	return &IconListView{list: l, width: 80}
}

// SetIcons shows icons with glyph marks for font. The selection survives
// when icons is the slice already shown (e.g. after a font change) and
// is cleared otherwise.
func (v *IconListView) SetIcons(icons []icon.Record, font *fontface.Face) {
	keep := sameBacking(v.icons, icons)
	old := v.list.Items()
	items := make([]list.Item, len(icons))
	for i, rec := range icons {
		it := iconItem{rec: rec, glyph: glyphMark(font, rec.Properties.Code)}
		if keep && i < len(old) {
			it.selected = old[i].(iconItem).selected
		}
		items[i] = it
	}
	v.icons = icons
	v.list.SetItems(items)
	if !keep {
		v.list.Select(0)
	}
}

func sameBacking(a, b []icon.Record) bool {
	if len(a) != len(b) {
		return false
	}
	return len(a) == 0 || &a[0] == &b[0]
}

// Len returns the number of icons shown.
func (v *IconListView) Len() int { return len(v.list.Items()) }

// Index returns the cursor position.
func (v *IconListView) Index() int { return v.list.Index() }

// Current returns the icon under the cursor.
func (v *IconListView) Current() (icon.Record, bool) {
	it, ok := v.list.SelectedItem().(iconItem)
	if !ok {
		return icon.Record{}, false
	}
	return it.rec, true
}

// Selected returns the selected icons in list order.
func (v *IconListView) Selected() []icon.Record {
	var out []icon.Record
	for _, item := range v.list.Items() {
		if it := item.(iconItem); it.selected {
			out = append(out, it.rec)
		}
	}
	return out
}

// SelectedCount returns the number of selected icons.
func (v *IconListView) SelectedCount() int {
	n := 0
	for _, item := range v.list.Items() {
		if item.(iconItem).selected {
			n++
		}
	}
	return n
}

// Toggle flips the selection of the icon under the cursor.
func (v *IconListView) Toggle() {
	idx := v.list.Index()
	it, ok := v.list.SelectedItem().(iconItem)
	if !ok {
		return
	}
	it.selected = !it.selected
	v.list.SetItem(idx, it)
}

// SelectAll selects (or, with false, clears) every icon.
func (v *IconListView) SelectAll(selected bool) {
	items := v.list.Items()
	for i, item := range items {
		it := item.(iconItem)
		it.selected = selected
		items[i] = it
	}
	v.list.SetItems(items)
}

// SetFocused marks the list as focused.
func (v *IconListView) SetFocused(focused bool) { v.focused = focused }

// SetSize implements Sizer. One row is kept for the list header.
func (v *IconListView) SetSize(width, height int) {
	v.width = width
	v.list.SetSize(width, height-1)
}

// Init implements View.
func (v *IconListView) Init() tea.Cmd {
	return nil
}

// Update implements View.
func (v *IconListView) Update(msg tea.Msg) (View, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "x":
			v.Toggle()
			return v, nil
		case "a":
			v.SelectAll(true)
			return v, nil
		case "A":
			v.SelectAll(false)
			return v, nil
		case "enter":
			if v.Len() == 0 {
				return v, nil
			}
			return v, func() tea.Msg { return ShowPreviewMsg{} }
		}
	}
	var cmd tea.Cmd
	v.list, cmd = v.list.Update(msg)
	return v, cmd
}

// View implements View.
func (v *IconListView) View() string {
	title := Styles.Muted
	if v.focused {
		title = Styles.Title
	}
	if v.Len() == 0 {
		return title.Render("Icons") + "\n" + Styles.Empty.Render("  No icons loaded. Drop a selection.json above.")
	}
	header := fmt.Sprintf("Icons (%d, %d selected)", v.Len(), v.SelectedCount())
	return title.Render(header) + "\n" + v.list.View()
}
