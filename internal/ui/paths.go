package ui

import (
	"net/url"
	"strings"
)

// normalizeDroppedPath turns the text a terminal pastes when a file is
// dragged onto it into a path. Terminals differ: some quote the path,
// some escape spaces with backslashes, some paste a file:// URL. Only
// the first file of a multi-file drop is used.
func normalizeDroppedPath(text string) string {
	s := strings.TrimSpace(text)
	if i := strings.IndexAny(s, "\r\n"); i >= 0 {
		s = strings.TrimSpace(s[:i])
	}
	if len(s) >= 2 {
		if q := s[0]; (q == '\'' || q == '"') && s[len(s)-1] == q {
			s = s[1 : len(s)-1]
		}
	}
	if strings.HasPrefix(s, "file://") {
		if u, err := url.Parse(s); err == nil && u.Path != "" {
			return u.Path
		}
		s = strings.TrimPrefix(s, "file://")
	}
	return unescapeShell(s)
}

// unescapeShell removes backslash escapes, e.g. "My\ Icons.json".
func unescapeShell(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	escaped := false
	for _, r := range s {
		if r == '\\' && !escaped {
			escaped = true
			continue
		}
		escaped = false
		b.WriteRune(r)
	}
	return b.String()
}
