// Package icon models the icons of an IcoMoon selection file and parses
// selection documents with all-or-nothing validation.
package icon

import "fmt"

// Properties holds the font-related attributes of an icon.
type Properties struct {
	Name string   `json:"name"`
	Code int      `json:"code"`
	Tags []string `json:"tags,omitempty"`
}

// Record is one icon of a selection file.
type Record struct {
	Properties Properties `json:"properties"`
	SVG        string     `json:"svg,omitempty"`
}

// Name returns the icon name.
func (r Record) Name() string {
	return r.Properties.Name
}

// Char returns the character for the icon's code point. Code points that
// are not valid Unicode scalar values render as U+FFFD.
func (r Record) Char() string {
	return Char(r.Properties.Code)
}

// Hex returns the escaped code point, e.g. `\uf101` for U+F101.
func (r Record) Hex() string {
	return Hex(r.Properties.Code)
}

// Char returns the character for code.
func Char(code int) string {
	return string(rune(code))
}

// Hex formats code as `\u` followed by at least four lowercase hex digits.
func Hex(code int) string {
	return fmt.Sprintf(`\u%04x`, code)
}
