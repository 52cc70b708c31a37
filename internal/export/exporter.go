package export

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/mauriliodesign/Icomoon2Figma/internal/icon"
	"github.com/mauriliodesign/Icomoon2Figma/internal/progress"
	"github.com/mauriliodesign/Icomoon2Figma/internal/trace"
)

const instrumentation = "icomoon2figma/export"

// Format names one export operation.
type Format string

const (
	FormatCSV         Format = "csv"
	FormatCSVSelected Format = "csv-selected"
	FormatTokens      Format = "tokens"
	FormatSVG         Format = "svg"
	FormatJSON        Format = "json"
)

// Formats lists every format in menu order.
var Formats = []Format{FormatCSV, FormatCSVSelected, FormatTokens, FormatSVG, FormatJSON}

// Label is the human-readable name of the format.
func (f Format) Label() string {
	switch f {
	case FormatCSV:
		return "CSV (all icons)"
	case FormatCSVSelected:
		return "CSV (selected icons)"
	case FormatTokens:
		return "Tokens Studio JSON"
	case FormatSVG:
		return "SVG archive"
	case FormatJSON:
		return "JSON"
	default:
		return string(f)
	}
}

// SelectionBased reports whether the format exports the user's selection
// and is skipped when it is empty.
func (f Format) SelectionBased() bool {
	switch f {
	case FormatCSVSelected, FormatSVG, FormatJSON:
		return true
	}
	return false
}

// ParseFormat parses a format name, case-insensitively.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown export format %q", s)
}

// Exporter builds exports and hands them to Saver. It holds no icon
// state: every call receives the icons it exports. Exporter methods may
// run concurrently when Saver and Events allow it.
type Exporter struct {
	Saver  Saver
	Events progress.Emitter // optional
}

// New creates an Exporter saving through s.
func New(s Saver) *Exporter {
	return &Exporter{Saver: s}
}

// CSV exports all icons as CSV. An empty slice saves a header-only file.
func (e *Exporter) CSV(ctx context.Context, icons []icon.Record) (bool, error) {
	return e.export(ctx, FormatCSV, icons, func() (File, error) { return BuildCSV(icons), nil })
}

// CSVSelected exports the selection as CSV. It does nothing when the
// selection is empty.
func (e *Exporter) CSVSelected(ctx context.Context, selected []icon.Record) (bool, error) {
	return e.export(ctx, FormatCSVSelected, selected, func() (File, error) { return BuildCSV(selected), nil })
}

// Tokens exports all icons as a Tokens Studio document.
func (e *Exporter) Tokens(ctx context.Context, icons []icon.Record) (bool, error) {
	return e.export(ctx, FormatTokens, icons, func() (File, error) { return BuildTokens(icons) })
}

// SVG exports the selection's SVG sources as a zip archive. It does
// nothing when the selection is empty.
func (e *Exporter) SVG(ctx context.Context, selected []icon.Record) (bool, error) {
	return e.export(ctx, FormatSVG, selected, func() (File, error) { return BuildSVGArchive(selected) })
}

// JSON exports the selection as a plain JSON array. It does nothing when
// the selection is empty.
func (e *Exporter) JSON(ctx context.Context, selected []icon.Record) (bool, error) {
	return e.export(ctx, FormatJSON, selected, func() (File, error) { return BuildJSON(selected) })
}

// Run dispatches to the operation for f. Selection-based formats export
// selected, the others export all.
func (e *Exporter) Run(ctx context.Context, f Format, all, selected []icon.Record) (bool, error) {
	switch f {
	case FormatCSV:
		return e.CSV(ctx, all)
	case FormatCSVSelected:
		return e.CSVSelected(ctx, selected)
	case FormatTokens:
		return e.Tokens(ctx, all)
	case FormatSVG:
		return e.SVG(ctx, selected)
	case FormatJSON:
		return e.JSON(ctx, selected)
	default:
		return false, fmt.Errorf("unknown export format %q", f)
	}
}

func (e *Exporter) export(ctx context.Context, f Format, icons []icon.Record, build func() (File, error)) (bool, error) {
	ctx, span := trace.Tracer(instrumentation).Start(ctx, "export."+string(f))
	defer span.End()
	span.SetAttributes(trace.AttrFormat.String(string(f)), trace.AttrIconCount.Int(len(icons)))

	if f.SelectionBased() && len(icons) == 0 {
		span.SetAttributes(trace.AttrOutcome.String("skipped"))
		e.emit(f, progress.StatusSkipped, f.Label()+": no icons selected", "")
		return false, nil
	}

	fail := func(err error) (bool, error) {
		err = fmt.Errorf("export %s: %w", f, err)
		trace.Fail(span, err)
		log.Printf("export.%s: %v", f, err)
		e.emit(f, progress.StatusError, err.Error(), "")
		return false, err
	}

	file, err := build()
	if err != nil {
		return fail(err)
	}
	path, err := e.Saver.Save(ctx, file)
	if err != nil {
		return fail(err)
	}
	span.SetAttributes(trace.AttrFileName.String(file.Name), trace.AttrOutcome.String("saved"))
	log.Printf("export.%s: wrote %d icons to %s", f, len(icons), path)
	e.emit(f, progress.StatusDone, fmt.Sprintf("%s: %d icons", f.Label(), len(icons)), path)
	return true, nil
}

func (e *Exporter) emit(f Format, status progress.Status, msg, path string) {
	if e.Events == nil {
		return
	}
	md := map[string]string{"format": string(f)}
	if path != "" {
		md["path"] = path
	}
	e.Events.Emit(progress.Event{Message: msg, Status: status, Metadata: md})
}
