package fontface

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"fmt"
	"io"
	"math/bits"
	"sort"

	"github.com/andybalholm/brotli"
)

const (
	woffHeaderSize  = 44
	woffEntrySize   = 20
	woff2HeaderSize = 48

	// maxSFNTSize bounds the decompressed size of a wrapped font. Table
	// lengths come from the file itself.
	maxSFNTSize = 64 << 20
)

var (
	tagWOFF  = tag("wOFF")
	tagWOFF2 = tag("wOF2")
	tagTTCF  = tag("ttcf")
	tagGlyf  = tag("glyf")
	tagLoca  = tag("loca")
)

// woff2KnownTags is the table tag dictionary indexed by the low six bits
// of a WOFF2 table directory entry's flags.
var woff2KnownTags = [63]string{
	"cmap", "head", "hhea", "hmtx", "maxp", "name", "OS/2", "post",
	"cvt ", "fpgm", "glyf", "loca", "prep", "CFF ", "VORG", "EBDT",
	"EBLC", "gasp", "hdmx", "kern", "LTSH", "PCLT", "VDMX", "vhea",
	"vmtx", "BASE", "GDEF", "GPOS", "GSUB", "EBSC", "JSTF", "MATH",
	"CBDT", "CBLC", "COLR", "CPAL", "SVG ", "sbix", "acnt", "avar",
	"bdat", "bloc", "bsln", "cvar", "fdsc", "feat", "fmtx", "fvar",
	"gvar", "hsty", "just", "lcar", "mort", "morx", "opbd", "prop",
	"trak", "Zapf", "Silf", "Glat", "Gloc", "Feat", "Sill",
}

type sfntTable struct {
	tag  uint32
	data []byte
}

func tag(s string) uint32 {
	return binary.BigEndian.Uint32([]byte(s))
}

func malformed(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrMalformedFont, fmt.Sprintf(format, args...))
}

// unwrapWOFF converts a WOFF 1.0 file back into the sfnt it wraps.
func unwrapWOFF(data []byte) ([]byte, error) {
	if len(data) < woffHeaderSize {
		return nil, malformed("woff header truncated")
	}
	be := binary.BigEndian
	if be.Uint32(data[0:]) != tagWOFF {
		return nil, malformed("missing wOFF signature")
	}
	flavor := be.Uint32(data[4:])
	if flavor == tagTTCF {
		return nil, malformed("font collections are not supported")
	}
	if int64(be.Uint32(data[8:])) != int64(len(data)) {
		return nil, malformed("woff length field does not match file size")
	}
	numTables := int(be.Uint16(data[12:]))
	if numTables == 0 {
		return nil, malformed("woff has no tables")
	}
	if woffHeaderSize+numTables*woffEntrySize > len(data) {
		return nil, malformed("woff table directory truncated")
	}

	tables := make([]sfntTable, 0, numTables)
	var total uint64
	for i := 0; i < numTables; i++ {
		e := data[woffHeaderSize+i*woffEntrySize:]
		t := be.Uint32(e[0:])
		offset := uint64(be.Uint32(e[4:]))
		compLen := uint64(be.Uint32(e[8:]))
		origLen := uint64(be.Uint32(e[12:]))
		if offset+compLen > uint64(len(data)) {
			return nil, malformed("table %d out of bounds", i)
		}
		if compLen > origLen {
			return nil, malformed("table %d compressed length exceeds original", i)
		}
		if total += origLen; total > maxSFNTSize {
			return nil, malformed("woff tables exceed %d bytes", maxSFNTSize)
		}
		raw := data[offset : offset+compLen]
		if compLen == origLen {
			tables = append(tables, sfntTable{tag: t, data: raw})
			continue
		}
		zr, err := zlib.NewReader(bytes.NewReader(raw))
		if err != nil {
			return nil, malformed("table %d: %v", i, err)
		}
		out, err := io.ReadAll(io.LimitReader(zr, int64(origLen)+1))
		zr.Close()
		if err != nil {
			return nil, malformed("table %d: %v", i, err)
		}
		if uint64(len(out)) != origLen {
			return nil, malformed("table %d inflates to %d bytes, want %d", i, len(out), origLen)
		}
		tables = append(tables, sfntTable{tag: t, data: out})
	}
	return buildSFNT(flavor, tables), nil
}

type woff2Entry struct {
	tag         uint32
	length      uint32 // bytes in the decompressed stream
	transformed bool
}

// unwrapWOFF2 validates a WOFF2 file and decompresses its table stream.
// It returns the rebuilt sfnt when no table is transformed, and nil data
// otherwise: reversing the glyf/loca and hmtx transforms is not supported.
func unwrapWOFF2(data []byte) ([]byte, error) {
	if len(data) < woff2HeaderSize {
		return nil, malformed("woff2 header truncated")
	}
	be := binary.BigEndian
	if be.Uint32(data[0:]) != tagWOFF2 {
		return nil, malformed("missing wOF2 signature")
	}
	flavor := be.Uint32(data[4:])
	if flavor == tagTTCF {
		return nil, malformed("font collections are not supported")
	}
	if int64(be.Uint32(data[8:])) != int64(len(data)) {
		return nil, malformed("woff2 length field does not match file size")
	}
	numTables := int(be.Uint16(data[12:]))
	if numTables == 0 {
		return nil, malformed("woff2 has no tables")
	}
	if be.Uint32(data[16:]) > maxSFNTSize {
		return nil, malformed("woff2 sfnt size exceeds %d bytes", maxSFNTSize)
	}
	compressedSize := uint64(be.Uint32(data[20:]))

	pos := woff2HeaderSize
	entries := make([]woff2Entry, 0, numTables)
	var total uint64
	anyTransformed := false
	for i := 0; i < numTables; i++ {
		if pos >= len(data) {
			return nil, malformed("woff2 table directory truncated")
		}
		flags := data[pos]
		pos++
		var t uint32
		if idx := flags & 0x3f; idx == 63 {
			if pos+4 > len(data) {
				return nil, malformed("woff2 table directory truncated")
			}
			t = be.Uint32(data[pos:])
			pos += 4
		} else {
			t = tag(woff2KnownTags[idx])
		}
		origLen, n, err := readUintBase128(data[pos:])
		if err != nil {
			return nil, malformed("table %d: %v", i, err)
		}
		pos += n

		version := flags >> 6
		transformed := version != 0
		if t == tagGlyf || t == tagLoca {
			transformed = version != 3
		}
		length := origLen
		if transformed {
			length, n, err = readUintBase128(data[pos:])
			if err != nil {
				return nil, malformed("table %d: %v", i, err)
			}
			pos += n
			anyTransformed = true
		}
		entries = append(entries, woff2Entry{tag: t, length: length, transformed: transformed})
		if total += uint64(length); total > maxSFNTSize {
			return nil, malformed("woff2 tables exceed %d bytes", maxSFNTSize)
		}
	}

	if uint64(pos)+compressedSize > uint64(len(data)) {
		return nil, malformed("woff2 compressed stream out of bounds")
	}
	br := brotli.NewReader(bytes.NewReader(data[pos : uint64(pos)+compressedSize]))
	stream, err := io.ReadAll(io.LimitReader(br, int64(total)+1))
	if err != nil {
		return nil, malformed("woff2 stream: %v", err)
	}
	if uint64(len(stream)) != total {
		return nil, malformed("woff2 stream has %d bytes, want %d", len(stream), total)
	}
	if anyTransformed {
		return nil, nil
	}

	tables := make([]sfntTable, len(entries))
	var off uint32
	for i, e := range entries {
		tables[i] = sfntTable{tag: e.tag, data: stream[off : off+e.length]}
		off += e.length
	}
	return buildSFNT(flavor, tables), nil
}

// readUintBase128 decodes the variable-length UIntBase128 of WOFF2.
func readUintBase128(b []byte) (uint32, int, error) {
	var acc uint32
	for i := 0; i < 5; i++ {
		if i >= len(b) {
			return 0, 0, fmt.Errorf("UIntBase128 truncated")
		}
		c := b[i]
		if i == 0 && c == 0x80 {
			return 0, 0, fmt.Errorf("UIntBase128 has leading zeros")
		}
		if acc&0xfe000000 != 0 {
			return 0, 0, fmt.Errorf("UIntBase128 overflows")
		}
		acc = acc<<7 | uint32(c&0x7f)
		if c&0x80 == 0 {
			return acc, i + 1, nil
		}
	}
	return 0, 0, fmt.Errorf("UIntBase128 exceeds 5 bytes")
}

// buildSFNT lays out tables as an sfnt file with a sorted table directory
// and 4-byte aligned table data.
func buildSFNT(flavor uint32, tables []sfntTable) []byte {
	sort.Slice(tables, func(i, j int) bool { return tables[i].tag < tables[j].tag })

	n := len(tables)
	entrySelector := bits.Len(uint(n)) - 1
	searchRange := (1 << entrySelector) * 16
	headerLen := 12 + 16*n
	size := headerLen
	for _, t := range tables {
		size += pad4(len(t.data))
	}

	buf := make([]byte, size)
	be := binary.BigEndian
	be.PutUint32(buf[0:], flavor)
	be.PutUint16(buf[4:], uint16(n))
	be.PutUint16(buf[6:], uint16(searchRange))
	be.PutUint16(buf[8:], uint16(entrySelector))
	be.PutUint16(buf[10:], uint16(n*16-searchRange))

	off := headerLen
	for i, t := range tables {
		rec := buf[12+16*i:]
		be.PutUint32(rec[0:], t.tag)
		be.PutUint32(rec[4:], checksum(t.data))
		be.PutUint32(rec[8:], uint32(off))
		be.PutUint32(rec[12:], uint32(len(t.data)))
		copy(buf[off:], t.data)
		off += pad4(len(t.data))
	}
	return buf
}

func pad4(n int) int {
	return (n + 3) &^ 3
}

func checksum(b []byte) uint32 {
	var sum uint32
	for i := 0; i < len(b); i += 4 {
		var word [4]byte
		copy(word[:], b[i:])
		sum += binary.BigEndian.Uint32(word[:])
	}
	return sum
}
