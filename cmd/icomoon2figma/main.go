// Command icomoon2figma previews an IcoMoon selection.json in the terminal
// and exports its icons as Figma variables CSV, Tokens Studio JSON, an
// SVG archive or a plain JSON listing.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mauriliodesign/Icomoon2Figma/internal/config"
	"github.com/mauriliodesign/Icomoon2Figma/internal/export"
	"github.com/mauriliodesign/Icomoon2Figma/internal/trace"
	"github.com/mauriliodesign/Icomoon2Figma/internal/ui"
)

// options holds the parsed command line on top of the environment.
type options struct {
	cfg       config.Config
	selection string
	font      string
	convert   bool
	formats   []export.Format
}

func parseFlags(cfg config.Config) options {
	opts := options{cfg: cfg}
	var format string

	flag.StringVar(&opts.cfg.OutDir, "out", cfg.OutDir, "directory exported files are saved to")
	flag.StringVar(&opts.selection, "selection", "", "selection.json to load on start")
	flag.StringVar(&opts.font, "font", "", "icon font (.woff, .woff2, .ttf, .otf) to load on start")
	flag.BoolVar(&opts.convert, "convert", false, "export without opening the interface (requires -selection)")
	flag.StringVar(&format, "format", "all", "with -convert: all, or a comma-separated list of csv, tokens, svg, json")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: icomoon2figma [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Preview an IcoMoon selection.json and export it for Figma.\n")
		fmt.Fprintf(os.Stderr, "Drag files onto the terminal window or press o to type a path.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if !opts.convert {
		return opts
	}
	if opts.selection == "" {
		fmt.Fprintln(os.Stderr, "error: -convert requires -selection")
		flag.Usage()
		os.Exit(1)
	}
	formats, err := parseFormats(format)
	if err != nil {
		config.Exitf("error: %v", err)
	}
	opts.formats = formats
	return opts
}

// parseFormats parses the -format value. "all" expands to every format
// that makes sense without a selection.
func parseFormats(s string) ([]export.Format, error) {
	if strings.EqualFold(strings.TrimSpace(s), "all") {
		return []export.Format{export.FormatCSV, export.FormatTokens, export.FormatSVG, export.FormatJSON}, nil
	}
	var out []export.Format
	seen := make(map[export.Format]bool)
	for _, part := range strings.Split(s, ",") {
		f, err := export.ParseFormat(part)
		if err != nil {
			return nil, err
		}
		// Without a selection, csv-selected would overwrite csv with the same content.
		if f == export.FormatCSVSelected {
			f = export.FormatCSV
		}
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	return out, nil
}

func runUI(ctx context.Context, opts options) error {
	closeLog, err := setupLogging(opts.cfg.LogFile)
	if err != nil {
		return err
	}
	defer closeLog()

	model := ui.NewAppModel(ctx, ui.Options{
		OutDir:        opts.cfg.OutDir,
		ToastTTL:      opts.cfg.ToastDuration(),
		SelectionPath: opts.selection,
		FontPath:      opts.font,
	}).AsTeaModel()

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = p.Run()
	return err
}

// setupLogging keeps log output off the alternate screen: it goes to
// path, or nowhere when path is empty.
func setupLogging(path string) (func(), error) {
	if path == "" {
		log.SetOutput(io.Discard)
		return func() {}, nil
	}
	f, err := tea.LogToFile(path, "icomoon2figma")
	if err != nil {
		return nil, fmt.Errorf("log file %q: %w", path, err)
	}
	return func() { f.Close() }, nil
}

func run(opts options) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	tp, err := trace.NewProvider(ctx, opts.cfg.OTLPEndpoint, opts.cfg.ServiceName)
	if err != nil {
		log.Printf("main.run: tracing disabled: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(shutdownCtx); err != nil {
			log.Printf("main.run: trace shutdown: %v", err)
		}
	}()

	if opts.convert {
		return convert(ctx, convertOptions{
			Selection: opts.selection,
			Font:      opts.font,
			OutDir:    opts.cfg.OutDir,
			Formats:   opts.formats,
		}, os.Stderr)
	}
	return runUI(ctx, opts)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		config.Exitf("icomoon2figma: %v", err)
	}
	if err := run(parseFlags(cfg)); err != nil {
		config.Exitf("icomoon2figma: %v", err)
	}
}
