// Package ui is the terminal front end: two drop zones (selection file
// and icon font), the icon list, notices and export commands, built on
// Bubble Tea.
//
// Core abstractions:
//   - View: a region with its own model, update and view (Elm-style)
//   - Panel/Layout: where the drop zones and icon list sit, and their tab order
//   - FocusManager: tracks and rotates focus across panels
//   - OverlayStack: modal views (confirmations, preview, activity log)
//   - KeyHandler: SPC leader sequences resolved through a KeybindRegistry
//
// AppModel owns the application state and is the only writer to it;
// slow work (font decoding, exports) runs in tea.Cmds and reports back
// with messages.
package ui
