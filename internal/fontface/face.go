package fontface

import (
	"encoding/base64"
	"errors"
	"fmt"
	"path/filepath"

	"golang.org/x/image/font/sfnt"
)

// Family is the font family icon fonts are registered under.
const Family = "icomoon"

var (
	// ErrUnsupportedFormat reports a file name without a known font extension.
	ErrUnsupportedFormat = errors.New("unsupported font format")
	// ErrMalformedFont reports font data that cannot be decoded.
	ErrMalformedFont = errors.New("malformed font data")
)

// Face is a decoded font file.
type Face struct {
	Family    string
	FileName  string
	FullName  string // from the name table; empty when unavailable
	Format    Format
	Binary    []byte // the file as loaded
	NumGlyphs int

	sfnt *sfnt.Font // nil when the character map cannot be read
}

// Decode decodes a font file. The format is taken from name's extension
// and the data must match it.
//
// WOFF2 files whose glyf/loca or hmtx tables use a transform are checked
// for structural validity only; their glyph coverage is reported as
// unknown by HasGlyph.
func Decode(name string, data []byte) (*Face, error) {
	format := FormatFromName(name)

	var sfntData []byte
	var err error
	switch format {
	case FormatTrueType, FormatOpenType:
		sfntData = data
	case FormatWOFF:
		sfntData, err = unwrapWOFF(data)
	case FormatWOFF2:
		sfntData, err = unwrapWOFF2(data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", format, err)
	}

	face := &Face{
		Family:   Family,
		FileName: filepath.Base(name),
		Format:   format,
		Binary:   data,
	}
	if sfntData == nil {
		return face, nil
	}
	f, err := sfnt.Parse(sfntData)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w: %v", format, ErrMalformedFont, err)
	}
	face.sfnt = f
	face.FullName, _ = f.Name(nil, sfnt.NameIDFull)
	face.NumGlyphs = f.NumGlyphs()
	return face, nil
}

// HasGlyph reports whether the face maps code to a glyph. known is false
// when the face's character map is not available.
func (f *Face) HasGlyph(code int) (present, known bool) {
	if f == nil || f.sfnt == nil {
		return false, false
	}
	idx, err := f.sfnt.GlyphIndex(nil, rune(code))
	if err != nil {
		return false, true
	}
	return idx != 0, true
}

// DataURL returns the font binary as a data: URL.
func (f *Face) DataURL() string {
	return "data:" + f.Format.MIME() + ";base64," + base64.StdEncoding.EncodeToString(f.Binary)
}

// DisplayName returns the best human-readable name for the face.
func (f *Face) DisplayName() string {
	if f.FullName != "" {
		return f.FullName
	}
	return f.FileName
}
