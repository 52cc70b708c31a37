// Package textutil sizes text by terminal columns rather than bytes, so
// icon names with wide or combining characters line up in the list.
package textutil

import "github.com/mattn/go-runewidth"

// Ellipsis marks truncated text.
const Ellipsis = "…"

// Width returns the number of terminal columns s occupies.
func Width(s string) int {
	return runewidth.StringWidth(s)
}

// Truncate shortens s to at most maxWidth columns, ending with Ellipsis
// when anything was cut.
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	return runewidth.Truncate(s, maxWidth, Ellipsis)
}

// PadRight truncates or space-pads s to exactly width columns.
func PadRight(s string, width int) string {
	return runewidth.FillRight(Truncate(s, width), width)
}
