// Package appstate holds the application state shared by file ingestion,
// display and export. A State has a single owner (the application
// controller) and is mutated from one goroutine only.
package appstate

import (
	"github.com/mauriliodesign/Icomoon2Figma/internal/fontface"
	"github.com/mauriliodesign/Icomoon2Figma/internal/icon"
)

// State is the loaded icon set and icon font.
//
// Icons is either empty or every element passed selection validation.
// It is replaced wholesale on each successful load, never merged.
type State struct {
	Icons []icon.Record
	Font  *fontface.Face
}

// New returns an empty state.
func New() *State {
	return &State{}
}

// ReplaceIcons replaces the loaded icons.
func (s *State) ReplaceIcons(icons []icon.Record) {
	s.Icons = icons
}

// ClearIcons drops the loaded icons.
func (s *State) ClearIcons() {
	s.Icons = nil
}

// HasIcons reports whether icons are loaded.
func (s *State) HasIcons() bool {
	return len(s.Icons) > 0
}

// IconsSnapshot returns a copy of the loaded icons, safe to hand to work
// running on another goroutine.
func (s *State) IconsSnapshot() []icon.Record {
	if len(s.Icons) == 0 {
		return nil
	}
	return append([]icon.Record(nil), s.Icons...)
}
