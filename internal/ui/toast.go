package ui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mauriliodesign/Icomoon2Figma/internal/ingest"
	"github.com/mauriliodesign/Icomoon2Figma/internal/ui/textutil"
)

// DefaultToastTTL is how long a notice stays visible.
const DefaultToastTTL = 3 * time.Second

// toastExpiredMsg hides the notice shown with the same sequence number.
type toastExpiredMsg struct {
	seq int
}

// Toast is the one-line notice area. A new notice replaces the current
// one and restarts the timer.
type Toast struct {
	Message string
	TTL     time.Duration
	seq     int
}

// NewToast creates an empty notice area.
func NewToast(ttl time.Duration) *Toast {
	if ttl <= 0 {
		ttl = DefaultToastTTL
	}
	return &Toast{TTL: ttl}
}

// Show displays msg and returns the command that hides it after TTL.
func (t *Toast) Show(msg string) tea.Cmd {
	t.Message = msg
	t.seq++
	seq := t.seq
	return tea.Tick(t.TTL, func(time.Time) tea.Msg { return toastExpiredMsg{seq: seq} })
}

// Expire hides the notice if it is the one seq refers to.
func (t *Toast) Expire(seq int) {
	if seq == t.seq {
		t.Message = ""
	}
}

// Visible reports whether a notice is shown.
func (t *Toast) Visible() bool { return t.Message != "" }

// View renders the notice, truncated to width columns.
func (t *Toast) View(width int) string {
	if t.Message == "" {
		return ""
	}
	msg := t.Message
	if width > 0 {
		msg = textutil.Truncate(msg, width)
	}
	if isErrorNotice(t.Message) {
		return Styles.ToastError.Render(msg)
	}
	return Styles.ToastInfo.Render(msg)
}

var errorNotices = map[string]bool{
	ingest.NoticeInvalidSelection: true,
	ingest.NoticeReadError:        true,
	ingest.NoticeEmptyIconSet:     true,
	ingest.NoticeParseError:       true,
	ingest.NoticeInvalidFont:      true,
	ingest.NoticeFontError:        true,
}

func isErrorNotice(msg string) bool {
	return errorNotices[msg] || strings.HasPrefix(msg, exportFailedPrefix)
}
