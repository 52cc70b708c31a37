// Package fontface decodes icon font files (TrueType, OpenType, WOFF and
// WOFF2), keeps the registry of active font faces and holds the
// @font-face rule that binds the icon font family to the loaded face.
package fontface

import (
	"path/filepath"
	"strings"
)

// Format identifies a font container format.
type Format int

const (
	FormatUnknown Format = iota
	FormatTrueType
	FormatOpenType
	FormatWOFF
	FormatWOFF2
)

// FormatFromName guesses the format from a file name's extension,
// case-insensitively. Unknown extensions yield FormatUnknown.
func FormatFromName(name string) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".ttf":
		return FormatTrueType
	case ".otf":
		return FormatOpenType
	case ".woff":
		return FormatWOFF
	case ".woff2":
		return FormatWOFF2
	default:
		return FormatUnknown
	}
}

// CSS returns the format() hint used in a @font-face src descriptor.
func (f Format) CSS() string {
	switch f {
	case FormatOpenType:
		return "opentype"
	case FormatWOFF:
		return "woff"
	case FormatWOFF2:
		return "woff2"
	default:
		return "truetype"
	}
}

// MIME returns the media type of the format.
func (f Format) MIME() string {
	switch f {
	case FormatOpenType:
		return "font/otf"
	case FormatWOFF:
		return "font/woff"
	case FormatWOFF2:
		return "font/woff2"
	default:
		return "font/ttf"
	}
}

func (f Format) String() string {
	switch f {
	case FormatTrueType:
		return "TrueType"
	case FormatOpenType:
		return "OpenType"
	case FormatWOFF:
		return "WOFF"
	case FormatWOFF2:
		return "WOFF2"
	default:
		return "Unknown"
	}
}
