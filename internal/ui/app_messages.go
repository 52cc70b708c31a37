package ui

import (
	"github.com/mauriliodesign/Icomoon2Figma/internal/export"
	"github.com/mauriliodesign/Icomoon2Figma/internal/fontface"
	"github.com/mauriliodesign/Icomoon2Figma/internal/ingest"
)

// OpenFileMsg asks to load the file at Path into the slot of Kind.
// Sent by a drop zone (typed path or drag-and-drop) and for files given
// on the command line.
type OpenFileMsg struct {
	Kind ingest.Kind
	Path string
}

// OpenPromptMsg focuses the drop zone of Kind and opens its path prompt (SPC o j / SPC o f).
type OpenPromptMsg struct {
	Kind ingest.Kind
}

// fontDecodedMsg carries the result of a background font decode.
type fontDecodedMsg struct {
	Path string
	Face *fontface.Face
	Err  error
}

// ExportMsg triggers an export (SPC e ...).
type ExportMsg struct {
	Format export.Format
}

// exportDoneMsg carries the result of a background export.
type exportDoneMsg struct {
	Format export.Format
	Saved  bool
	Err    error
}

// ShowDeleteFileMsg asks for confirmation before removing a file (SPC d j / SPC d f).
type ShowDeleteFileMsg struct {
	Kind ingest.Kind
}

// DeleteFileMsg is sent when the user confirms removal of a file.
type DeleteFileMsg struct {
	Kind ingest.Kind
}

// ShowPreviewMsg opens the preview of the icon under the cursor (enter on the list).
type ShowPreviewMsg struct{}

// ShowActivityMsg opens the activity log (SPC l).
type ShowActivityMsg struct{}

// DismissModalMsg is sent when user closes a modal (Esc).
type DismissModalMsg struct{}
