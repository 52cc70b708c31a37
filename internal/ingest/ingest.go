// Package ingest validates and loads user-supplied files (an IcoMoon
// selection document or an icon font) into the application state.
//
// Every failure is recovered here: it leaves the state untouched, emits
// exactly one notice and is returned to the caller for logging. Loads are
// all-or-nothing and replace previous data wholesale.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/mauriliodesign/Icomoon2Figma/internal/appstate"
	"github.com/mauriliodesign/Icomoon2Figma/internal/fontface"
	"github.com/mauriliodesign/Icomoon2Figma/internal/icon"
	"github.com/mauriliodesign/Icomoon2Figma/internal/progress"
	"github.com/mauriliodesign/Icomoon2Figma/internal/trace"
)

const instrumentation = "icomoon2figma/ingest"

var (
	// ErrInvalidFileType reports a file whose extension does not match the
	// drop zone it was given to.
	ErrInvalidFileType = errors.New("invalid file type")
	// ErrRead reports a file that could not be read.
	ErrRead = errors.New("read failed")
	// ErrFontLoad reports a font that could not be read or decoded.
	ErrFontLoad = errors.New("font load failed")

	ErrMalformedDocument = icon.ErrMalformedDocument
	ErrEmptyIconSet      = icon.ErrEmptyIconSet
	ErrInvalidIconSchema = icon.ErrInvalidIconSchema
)

// User-facing notices.
const (
	NoticeInvalidSelection = "Please select a valid selection.json file"
	NoticeReadError        = "Error reading the file"
	NoticeEmptyIconSet     = "No icons found in the file"
	NoticeParseError       = "Error parsing the file. Please ensure it's a valid selection.json"
	NoticeInvalidFont      = "Please upload a valid font file (woff, woff2, ttf, or otf)"
	NoticeFontError        = "Error loading font file. Please check the log for details."
	NoticeFontLoaded       = "Font loaded successfully"
	NoticeFileRemoved      = "File removed"
)

// FontExtensions lists the accepted font file extensions.
var FontExtensions = []string{".woff", ".woff2", ".ttf", ".otf"}

// Kind identifies one of the two file slots.
type Kind int

const (
	KindSelection Kind = iota
	KindFont
)

func (k Kind) String() string {
	switch k {
	case KindSelection:
		return "selection"
	case KindFont:
		return "font"
	default:
		return "unknown"
	}
}

// Display re-renders the application state and exposes the user's
// current icon selection.
type Display interface {
	RefreshDisplay(state *appstate.State)
	SelectedIcons() []icon.Record
}

// Notifier shows short, fire-and-forget notices to the user.
type Notifier interface {
	ShowToast(message string)
}

// Ingester loads files into State. Its methods other than DecodeFont must
// be called from the goroutine that owns State.
type Ingester struct {
	State    *appstate.State
	Display  Display
	Notifier Notifier
	Fonts    *fontface.Registry
	Styles   *fontface.StyleSheet
	Events   progress.Emitter // optional activity log
}

// New creates an Ingester with an empty font registry and style sheet.
func New(state *appstate.State, display Display, notifier Notifier) *Ingester {
	return &Ingester{
		State:    state,
		Display:  display,
		Notifier: notifier,
		Fonts:    fontface.NewRegistry(),
		Styles:   &fontface.StyleSheet{},
	}
}

// IsSelectionFile reports whether name has a .json extension.
func IsSelectionFile(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".json")
}

// IsFontFile reports whether name has one of FontExtensions.
func IsFontFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range FontExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

type opener func() (io.ReadCloser, error)

func readerOpener(r io.Reader) opener {
	return func() (io.ReadCloser, error) {
		if r == nil {
			return nil, errors.New("no file provided")
		}
		return io.NopCloser(r), nil
	}
}

func pathOpener(path string) opener {
	return func() (io.ReadCloser, error) {
		return os.Open(path)
	}
}

func readAll(open opener) ([]byte, error) {
	rc, err := open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// LoadSelection validates the selection document read from r and, on
// success, replaces the loaded icons. name is the file name as given by
// the user; only its extension is inspected.
func (in *Ingester) LoadSelection(ctx context.Context, name string, r io.Reader) error {
	return in.loadSelection(ctx, name, readerOpener(r))
}

// LoadSelectionPath is LoadSelection for a file on disk.
func (in *Ingester) LoadSelectionPath(ctx context.Context, path string) error {
	return in.loadSelection(ctx, path, pathOpener(path))
}

func (in *Ingester) loadSelection(ctx context.Context, name string, open opener) error {
	_, span := trace.Tracer(instrumentation).Start(ctx, "ingest.LoadSelection")
	defer span.End()
	span.SetAttributes(trace.AttrFileName.String(filepath.Base(name)), trace.AttrFileKind.String(KindSelection.String()))

	fail := func(err error, notice string) error {
		log.Printf("ingest.LoadSelection: %q: %v", name, err)
		trace.Fail(span, err)
		in.emit(progress.StatusError, err.Error(), KindSelection, name)
		in.notify(notice)
		return err
	}

	if !IsSelectionFile(name) {
		return fail(fmt.Errorf("%w: %q is not a .json file", ErrInvalidFileType, filepath.Base(name)), NoticeInvalidSelection)
	}
	data, err := readAll(open)
	if err != nil {
		return fail(fmt.Errorf("%w: %v", ErrRead, err), NoticeReadError)
	}
	icons, err := icon.ParseSelection(data)
	if err != nil {
		if errors.Is(err, icon.ErrEmptyIconSet) {
			return fail(err, NoticeEmptyIconSet)
		}
		return fail(err, NoticeParseError)
	}

	in.State.ReplaceIcons(icons)
	span.SetAttributes(trace.AttrIconCount.Int(len(icons)), trace.AttrOutcome.String("loaded"))
	log.Printf("ingest.LoadSelection: loaded %d icons from %q", len(icons), name)
	msg := fmt.Sprintf("Successfully loaded %d icons", len(icons))
	in.emit(progress.StatusDone, msg, KindSelection, name)
	in.notify(msg)
	in.refresh()
	return nil
}

// DecodeFont reads and decodes the font read from r. It does not touch
// the state, registry or notifier and may run on any goroutine; pass its
// result to CommitFont or ReportFontError on the owning goroutine.
func (in *Ingester) DecodeFont(ctx context.Context, name string, r io.Reader) (*fontface.Face, error) {
	return decodeFont(ctx, name, readerOpener(r))
}

// DecodeFontPath is DecodeFont for a file on disk.
func (in *Ingester) DecodeFontPath(ctx context.Context, path string) (*fontface.Face, error) {
	return decodeFont(ctx, path, pathOpener(path))
}

func decodeFont(ctx context.Context, name string, open opener) (*fontface.Face, error) {
	_, span := trace.Tracer(instrumentation).Start(ctx, "ingest.DecodeFont")
	defer span.End()
	span.SetAttributes(trace.AttrFileName.String(filepath.Base(name)), trace.AttrFileKind.String(KindFont.String()))

	if !IsFontFile(name) {
		err := fmt.Errorf("%w: %q is not a font file", ErrInvalidFileType, filepath.Base(name))
		trace.Fail(span, err)
		return nil, err
	}
	data, err := readAll(open)
	if err != nil {
		err = fmt.Errorf("%w: read %q: %v", ErrFontLoad, filepath.Base(name), err)
		trace.Fail(span, err)
		return nil, err
	}
	face, err := fontface.Decode(name, data)
	if err != nil {
		err = fmt.Errorf("%w: %v", ErrFontLoad, err)
		trace.Fail(span, err)
		return nil, err
	}
	span.SetAttributes(trace.AttrOutcome.String("decoded"))
	return face, nil
}

// CommitFont makes face the active icon font: the previous face is
// evicted from the registry, the @font-face rule is replaced and the
// display refreshed.
func (in *Ingester) CommitFont(face *fontface.Face) {
	if prev := in.Fonts.Replace(face); prev != nil && prev != face {
		log.Printf("ingest.CommitFont: replaced %s with %s", prev.FileName, face.FileName)
	}
	in.State.Font = face
	in.Styles.Install(face)
	in.emit(progress.StatusDone, "Loaded font "+face.DisplayName(), KindFont, face.FileName)
	in.notify(NoticeFontLoaded)
	in.refresh()
}

// ReportFontError emits the notice for a failed DecodeFont. State is left
// untouched.
func (in *Ingester) ReportFontError(err error) {
	log.Printf("ingest.ReportFontError: %v", err)
	in.emit(progress.StatusError, err.Error(), KindFont, "")
	if errors.Is(err, ErrInvalidFileType) {
		in.notify(NoticeInvalidFont)
		return
	}
	in.notify(NoticeFontError)
}

// LoadFont decodes the font read from r and commits it, or reports the
// failure. It returns the decode error, if any.
func (in *Ingester) LoadFont(ctx context.Context, name string, r io.Reader) error {
	face, err := in.DecodeFont(ctx, name, r)
	if err != nil {
		in.ReportFontError(err)
		return err
	}
	in.CommitFont(face)
	return nil
}

// LoadFontPath is LoadFont for a file on disk.
func (in *Ingester) LoadFontPath(ctx context.Context, path string) error {
	face, err := in.DecodeFontPath(ctx, path)
	if err != nil {
		in.ReportFontError(err)
		return err
	}
	in.CommitFont(face)
	return nil
}

// Delete resets the slot of the given kind. Deleting an empty slot only
// refreshes the display and repeats the notice.
func (in *Ingester) Delete(kind Kind) {
	in.emit(progress.StatusDone, "Removed "+kind.String()+" file", kind, "")
	switch kind {
	case KindSelection:
		in.State.ClearIcons()
	case KindFont:
		if in.State.Font != nil {
			in.Fonts.Evict(in.State.Font.Family)
		}
		in.State.Font = nil
		in.Styles.Clear()
	}
	in.refresh()
	in.notify(NoticeFileRemoved)
}

func (in *Ingester) emit(status progress.Status, msg string, kind Kind, name string) {
	if in.Events == nil {
		return
	}
	md := map[string]string{"kind": kind.String()}
	if name != "" {
		md["file"] = filepath.Base(name)
	}
	in.Events.Emit(progress.Event{Message: msg, Status: status, Metadata: md})
}

func (in *Ingester) notify(msg string) {
	if in.Notifier != nil {
		in.Notifier.ShowToast(msg)
	}
}

func (in *Ingester) refresh() {
	if in.Display != nil {
		in.Display.RefreshDisplay(in.State)
	}
}
