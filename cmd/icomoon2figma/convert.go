package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/mauriliodesign/Icomoon2Figma/internal/appstate"
	"github.com/mauriliodesign/Icomoon2Figma/internal/export"
	"github.com/mauriliodesign/Icomoon2Figma/internal/icon"
	"github.com/mauriliodesign/Icomoon2Figma/internal/ingest"
	"github.com/mauriliodesign/Icomoon2Figma/internal/progress"
)

// convertOptions configures a headless run.
type convertOptions struct {
	Selection string
	Font      string // optional; only used to report missing glyphs
	OutDir    string
	Formats   []export.Format
}

// headlessDisplay has nothing to draw. Exports pass every icon as the
// selection instead of asking it.
type headlessDisplay struct{}

func (headlessDisplay) RefreshDisplay(*appstate.State) {}
func (headlessDisplay) SelectedIcons() []icon.Record  { return nil }

// writerNotifier prints notices, one per line.
type writerNotifier struct {
	w io.Writer
}

func (n writerNotifier) ShowToast(msg string) {
	fmt.Fprintln(n.w, msg)
}

// convert loads the selection (and font) and writes every requested
// format to OutDir concurrently. Notices and export events are written
// to w.
func convert(ctx context.Context, opts convertOptions, w io.Writer) error {
	log.Printf("main.convert: %s -> %s %v", opts.Selection, opts.OutDir, opts.Formats)

	events := make(chan progress.Event, 64)
	emitter := &progress.ChanEmitter{Ch: events}
	done := make(chan struct{})
	go func() {
		defer close(done)
		for ev := range events {
			fmt.Fprintln(w, formatEvent(ev))
		}
	}()
	defer func() {
		close(events)
		<-done
	}()

	state := appstate.New()
	in := ingest.New(state, headlessDisplay{}, writerNotifier{w: w})

	if err := in.LoadSelectionPath(ctx, opts.Selection); err != nil {
		return err
	}
	if opts.Font != "" {
		if err := in.LoadFontPath(ctx, opts.Font); err != nil {
			return err
		}
		if missing := missingGlyphs(state); len(missing) > 0 {
			fmt.Fprintf(w, "%d of %d icons have no glyph in %s: %s\n",
				len(missing), len(state.Icons), state.Font.DisplayName(), strings.Join(missing, ", "))
		}
	}

	e := &export.Exporter{Saver: export.DirSaver{Dir: opts.OutDir}, Events: emitter}
	icons := state.IconsSnapshot()
	g, gctx := errgroup.WithContext(ctx)
	for _, f := range opts.Formats {
		f := f
		g.Go(func() error {
			_, err := e.Run(gctx, f, icons, icons)
			return err
		})
	}
	return g.Wait()
}

// missingGlyphs lists the icons the loaded font has no glyph for. Icons
// whose coverage cannot be determined are not reported.
func missingGlyphs(state *appstate.State) []string {
	var out []string
	for _, rec := range state.Icons {
		if present, known := state.Font.HasGlyph(rec.Properties.Code); known && !present {
			out = append(out, rec.Name())
		}
	}
	return out
}

func formatEvent(ev progress.Event) string {
	line := fmt.Sprintf("[%s] %s", ev.Status, ev.Message)
	if len(ev.Metadata) == 0 {
		return line
	}
	keys := make([]string, 0, len(ev.Metadata))
	for k := range ev.Metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + ev.Metadata[k]
	}
	return line + " (" + strings.Join(parts, " ") + ")"
}
