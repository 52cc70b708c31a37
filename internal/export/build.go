// Package export renders loaded icons into the downloadable formats:
// a Figma variables CSV, a Tokens Studio JSON document, an archive of SVG
// sources and a plain JSON listing.
//
// The Build functions are pure and never modify their input. Exporter
// pairs them with a Saver.
package export

import (
	"archive/zip"
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/mauriliodesign/Icomoon2Figma/internal/icon"
	"github.com/mauriliodesign/Icomoon2Figma/internal/jsonutil"
)

// Output file names and MIME types.
const (
	CSVFileName    = "icons.csv"
	TokensFileName = "figma-icons-tokens.json"
	SVGFileName    = "icons.zip"
	JSONFileName   = "icons.json"

	CSVMIME  = "text/csv;charset=utf-8;"
	JSONMIME = "application/json"
	ZipMIME  = "application/zip"
)

// CSVHeader is the header row of the CSV export.
const CSVHeader = "variableName,category,unicode,unicodeHex,tags"

// CSVCategory is the variable group every icon is exported under.
const CSVCategory = "icons"

// File is an export ready to be saved.
type File struct {
	Name    string
	MIME    string
	Content []byte
}

var csvSpecial = regexp.MustCompile(`[",\n]`)

// EscapeCSV quotes value when it contains a comma, quote or newline,
// doubling inner quotes.
func EscapeCSV(value string) string {
	if !csvSpecial.MatchString(value) {
		return value
	}
	return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
}

// BuildCSV renders icons as a Figma variables CSV. Rows are separated by
// "\n" with no trailing newline; an empty slice yields the header only.
func BuildCSV(icons []icon.Record) File {
	lines := make([]string, 0, len(icons)+1)
	lines = append(lines, CSVHeader)
	for _, ic := range icons {
		tags := ""
		if len(ic.Properties.Tags) > 0 {
			tags = EscapeCSV(strings.Join(ic.Properties.Tags, ", "))
		}
		lines = append(lines, strings.Join([]string{
			EscapeCSV(ic.Name()),
			CSVCategory,
			ic.Char(),
			ic.Hex(),
			tags,
		}, ","))
	}
	return File{Name: CSVFileName, MIME: CSVMIME, Content: []byte(strings.Join(lines, "\n"))}
}

type token struct {
	Type        string `json:"$type"`
	Value       string `json:"$value"`
	Description string `json:"$description"`
}

// BuildTokens renders icons as a Tokens Studio document keyed by icon
// name. Keys keep icon order; a repeated name keeps its first position
// and takes the last icon's value.
func BuildTokens(icons []icon.Record) (File, error) {
	set := jsonutil.NewOrderedObject()
	for _, ic := range icons {
		set.Set(ic.Name(), token{
			Type:        "string",
			Value:       ic.Char(),
			Description: "Unicode: " + ic.Hex(),
		})
	}
	doc := jsonutil.NewOrderedObject()
	doc.Set("icons", set)
	b, err := jsonutil.MarshalIndent(doc)
	if err != nil {
		return File{}, fmt.Errorf("encode tokens: %w", err)
	}
	return File{Name: TokensFileName, MIME: JSONMIME, Content: b}, nil
}

// BuildSVGArchive zips one <name>.svg member per icon. Icons sharing a
// name produce a single member holding the last icon's markup.
func BuildSVGArchive(icons []icon.Record) (File, error) {
	order := make([]string, 0, len(icons))
	members := make(map[string]string, len(icons))
	for _, ic := range icons {
		name := ic.Name() + ".svg"
		if _, ok := members[name]; !ok {
			order = append(order, name)
		}
		members[name] = ic.SVG
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range order {
		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:     name,
			Method:   zip.Deflate,
			Modified: time.Time{},
		})
		if err != nil {
			return File{}, fmt.Errorf("zip %s: %w", name, err)
		}
		if _, err := w.Write([]byte(members[name])); err != nil {
			return File{}, fmt.Errorf("zip %s: %w", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return File{}, fmt.Errorf("zip: %w", err)
	}
	return File{Name: SVGFileName, MIME: ZipMIME, Content: buf.Bytes()}, nil
}

type listedIcon struct {
	Name    string   `json:"name"`
	SVG     string   `json:"svg"`
	Unicode string   `json:"unicode"`
	Tags    []string `json:"tags,omitempty"`
}

// BuildJSON renders icons as an array of {name, svg, unicode, tags}.
// Missing markup is an empty string; icons without tags omit the member.
func BuildJSON(icons []icon.Record) (File, error) {
	list := make([]listedIcon, 0, len(icons))
	for _, ic := range icons {
		list = append(list, listedIcon{
			Name:    ic.Name(),
			SVG:     ic.SVG,
			Unicode: ic.Char(),
			Tags:    ic.Properties.Tags,
		})
	}
	b, err := jsonutil.MarshalIndent(list)
	if err != nil {
		return File{}, fmt.Errorf("encode icons: %w", err)
	}
	return File{Name: JSONFileName, MIME: JSONMIME, Content: b}, nil
}
