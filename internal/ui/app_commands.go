package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mauriliodesign/Icomoon2Figma/internal/export"
	"github.com/mauriliodesign/Icomoon2Figma/internal/icon"
	"github.com/mauriliodesign/Icomoon2Figma/internal/ingest"
)

// decodeFontCmd reads and decodes a font off the UI goroutine. Each call
// is independent; when two decodes race, the result handled last wins.
func decodeFontCmd(ctx context.Context, in *ingest.Ingester, path string) tea.Cmd {
	return func() tea.Msg {
		face, err := in.DecodeFontPath(ctx, path)
		return fontDecodedMsg{Path: path, Face: face, Err: err}
	}
}

// exportCmd builds and saves an export off the UI goroutine. all and
// selected must be snapshots the UI will not modify.
func exportCmd(ctx context.Context, e *export.Exporter, f export.Format, all, selected []icon.Record) tea.Cmd {
	return func() tea.Msg {
		saved, err := e.Run(ctx, f, all, selected)
		return exportDoneMsg{Format: f, Saved: saved, Err: err}
	}
}

// openFileCmd wraps an OpenFileMsg, for files preloaded from the command line.
func openFileCmd(kind ingest.Kind, path string) tea.Cmd {
	return func() tea.Msg {
		return OpenFileMsg{Kind: kind, Path: path}
	}
}
