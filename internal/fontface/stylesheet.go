package fontface

import "fmt"

// StyleSheet holds the text of the single @font-face rule binding the
// icon font family to the loaded face.
type StyleSheet struct {
	text string
}

// Text returns the current rule text; empty when no font is installed.
func (s *StyleSheet) Text() string {
	return s.text
}

// Install replaces the rule text with the rule for f.
func (s *StyleSheet) Install(f *Face) {
	s.text = FaceRule(f)
}

// Clear empties the rule text.
func (s *StyleSheet) Clear() {
	s.text = ""
}

// FaceRule renders the @font-face rule for f.
func FaceRule(f *Face) string {
	return fmt.Sprintf(`@font-face {
  font-family: '%s';
  src: url('%s') format('%s');
  font-weight: normal;
  font-style: normal;
  font-display: block;
}
`, f.Family, f.DataURL(), f.Format.CSS())
}
