package export

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mauriliodesign/Icomoon2Figma/internal/icon"
	"github.com/mauriliodesign/Icomoon2Figma/internal/progress"
)

// bs is a single backslash, kept out of string literals so escape
// sequences in expected output read unambiguously.
const bs = "\\"

var pua = string(rune(0xf101))

func rec(name string, code int, tags ...string) icon.Record {
	return icon.Record{Properties: icon.Properties{Name: name, Code: code, Tags: tags}}
}

func TestEscapeCSV(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain", "plain"},
		{"a,b", `"a,b"`},
		{`say "hi"`, `"say ""hi"""`},
		{"two\nlines", "\"two\nlines\""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := EscapeCSV(tt.in); got != tt.want {
			t.Errorf("EscapeCSV(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBuildCSV(t *testing.T) {
	icons := []icon.Record{
		rec("home", 61697, "a,b", `c"d`),
		rec("user", 0x41),
	}
	f := BuildCSV(icons)

	assert.Equal(t, CSVFileName, f.Name)
	assert.Equal(t, "text/csv;charset=utf-8;", f.MIME)
	want := strings.Join([]string{
		CSVHeader,
		"home,icons," + pua + "," + bs + "uf101," + `"a,b, c""d"`,
		"user,icons,A," + bs + "u0041,",
	}, "\n")
	if diff := cmp.Diff(want, string(f.Content)); diff != "" {
		t.Errorf("CSV mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildCSV_Empty(t *testing.T) {
	assert.Equal(t, CSVHeader, string(BuildCSV(nil).Content))
}

func TestBuildCSV_DoesNotModifyInput(t *testing.T) {
	icons := []icon.Record{rec("a", 1, "x", "y")}
	before := append([]icon.Record(nil), icons...)
	BuildCSV(icons)
	_, _ = BuildTokens(icons)
	_, _ = BuildJSON(icons)
	if diff := cmp.Diff(before, icons); diff != "" {
		t.Errorf("input modified (-before +after):\n%s", diff)
	}
}

func TestBuildTokens(t *testing.T) {
	f, err := BuildTokens([]icon.Record{rec("zeta", 61697), rec("alpha", 0x41)})
	require.NoError(t, err)
	assert.Equal(t, TokensFileName, f.Name)
	assert.Equal(t, JSONMIME, f.MIME)

	want := `{
  "icons": {
    "zeta": {
      "$type": "string",
      "$value": "` + pua + `",
      "$description": "Unicode: ` + bs + bs + `uf101"
    },
    "alpha": {
      "$type": "string",
      "$value": "A",
      "$description": "Unicode: ` + bs + bs + `u0041"
    }
  }
}`
	if diff := cmp.Diff(want, string(f.Content)); diff != "" {
		t.Errorf("tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildTokens_DuplicateNameKeepsFirstPosition(t *testing.T) {
	f, err := BuildTokens([]icon.Record{rec("a", 0x41), rec("b", 0x42), rec("a", 0x43)})
	require.NoError(t, err)

	content := string(f.Content)
	assert.Less(t, strings.Index(content, `"a"`), strings.Index(content, `"b"`))
	assert.Equal(t, 1, strings.Count(content, `"a":`))

	var doc struct {
		Icons map[string]struct {
			Value string `json:"$value"`
		} `json:"icons"`
	}
	require.NoError(t, json.Unmarshal(f.Content, &doc))
	assert.Equal(t, "C", doc.Icons["a"].Value)
}

func readZip(t *testing.T, data []byte) map[string]string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	out := make(map[string]string)
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		b, err := io.ReadAll(rc)
		rc.Close()
		require.NoError(t, err)
		out[f.Name] = string(b)
	}
	return out
}

func TestBuildSVGArchive(t *testing.T) {
	home := rec("home", 1)
	home.SVG = `<svg id="home"/>`
	user := rec("user", 2)
	user.SVG = `<svg id="user"/>`
	dup := rec("home", 3)
	dup.SVG = `<svg id="home2"/>`
	bare := rec("bare", 4)

	f, err := BuildSVGArchive([]icon.Record{home, user, dup, bare})
	require.NoError(t, err)
	assert.Equal(t, SVGFileName, f.Name)
	assert.Equal(t, ZipMIME, f.MIME)

	want := map[string]string{
		"home.svg": `<svg id="home2"/>`,
		"user.svg": `<svg id="user"/>`,
		"bare.svg": "",
	}
	if diff := cmp.Diff(want, readZip(t, f.Content)); diff != "" {
		t.Errorf("archive mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildJSON(t *testing.T) {
	withSVG := rec("home", 61697, "house")
	withSVG.SVG = `<svg><path d="M0 0"/></svg>`

	f, err := BuildJSON([]icon.Record{withSVG, rec("bare", 0x41)})
	require.NoError(t, err)
	assert.Equal(t, JSONFileName, f.Name)

	want := `[
  {
    "name": "home",
    "svg": "<svg><path d=\"M0 0\"/></svg>",
    "unicode": "` + pua + `",
    "tags": [
      "house"
    ]
  },
  {
    "name": "bare",
    "svg": "",
    "unicode": "A"
  }
]`
	if diff := cmp.Diff(want, string(f.Content)); diff != "" {
		t.Errorf("JSON mismatch (-want +got):\n%s", diff)
	}
}

type memSaver struct {
	files []File
	err   error
}

func (s *memSaver) Save(_ context.Context, f File) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.files = append(s.files, f)
	return "mem://" + f.Name, nil
}

func TestExporter_SelectionBasedSkipWhenEmpty(t *testing.T) {
	s := &memSaver{}
	e := New(s)
	ctx := context.Background()

	for _, op := range []func(context.Context, []icon.Record) (bool, error){e.CSVSelected, e.SVG, e.JSON} {
		saved, err := op(ctx, nil)
		require.NoError(t, err)
		assert.False(t, saved)
	}
	assert.Empty(t, s.files, "no file may be saved for an empty selection")
}

func TestExporter_AllIconFormatsWithEmptySet(t *testing.T) {
	s := &memSaver{}
	e := New(s)

	saved, err := e.CSV(context.Background(), nil)
	require.NoError(t, err)
	assert.True(t, saved)
	require.Len(t, s.files, 1)
	assert.Equal(t, CSVHeader, string(s.files[0].Content))
}

func TestExporter_Run(t *testing.T) {
	all := []icon.Record{rec("a", 0x41), rec("b", 0x42)}
	selected := all[1:]

	tests := []struct {
		format   Format
		wantName string
	}{
		{FormatCSV, CSVFileName},
		{FormatCSVSelected, CSVFileName},
		{FormatTokens, TokensFileName},
		{FormatSVG, SVGFileName},
		{FormatJSON, JSONFileName},
	}
	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			s := &memSaver{}
			saved, err := New(s).Run(context.Background(), tt.format, all, selected)
			require.NoError(t, err)
			assert.True(t, saved)
			require.Len(t, s.files, 1)
			assert.Equal(t, tt.wantName, s.files[0].Name)
		})
	}

	_, err := New(&memSaver{}).Run(context.Background(), Format("pdf"), all, selected)
	assert.Error(t, err)
}

func TestExporter_CSVSelectedUsesSelection(t *testing.T) {
	s := &memSaver{}
	_, err := New(s).CSVSelected(context.Background(), []icon.Record{rec("only", 0x41)})
	require.NoError(t, err)
	require.Len(t, s.files, 1)
	lines := strings.Split(string(s.files[0].Content), "\n")
	assert.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[1], "only,"))
}

func TestExporter_SaveError(t *testing.T) {
	boom := errors.New("disk full")
	e := New(&memSaver{err: boom})

	saved, err := e.Tokens(context.Background(), []icon.Record{rec("a", 1)})
	assert.False(t, saved)
	assert.True(t, errors.Is(err, boom))
	assert.Contains(t, err.Error(), "export tokens")
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat(" SVG ")
	require.NoError(t, err)
	assert.Equal(t, FormatSVG, f)

	_, err = ParseFormat("pdf")
	assert.Error(t, err)
}

func TestDirSaver(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out", "nested")
	s := DirSaver{Dir: dir}

	path, err := s.Save(context.Background(), File{Name: "icons.csv", Content: []byte("v1")})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "icons.csv"), path)

	_, err = s.Save(context.Background(), File{Name: "icons.csv", Content: []byte("v2")})
	require.NoError(t, err)
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "v2", string(b))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must not be left behind")
}

func TestDirSaver_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := DirSaver{Dir: t.TempDir()}.Save(ctx, File{Name: "x"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExporter_EmitsEvents(t *testing.T) {
	events := progress.NewLog(0)
	e := &Exporter{Saver: &memSaver{}, Events: events}
	ctx := context.Background()

	_, err := e.CSV(ctx, []icon.Record{rec("a", 0x41)})
	require.NoError(t, err)
	_, err = e.SVG(ctx, nil)
	require.NoError(t, err)
	e.Saver = &memSaver{err: errors.New("disk full")}
	_, err = e.JSON(ctx, []icon.Record{rec("a", 0x41)})
	require.Error(t, err)

	got := events.Events()
	require.Len(t, got, 3)
	assert.Equal(t, progress.StatusDone, got[0].Status)
	assert.Equal(t, "mem://icons.csv", got[0].Metadata["path"])
	assert.Equal(t, progress.StatusSkipped, got[1].Status)
	assert.Equal(t, "svg", got[1].Metadata["format"])
	assert.Equal(t, progress.StatusError, got[2].Status)
	assert.Contains(t, got[2].Message, "disk full")
}
