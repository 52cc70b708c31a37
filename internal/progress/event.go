// Package progress records what happened to loaded files and exports so
// the user can review it after the notice has faded.
package progress

import (
	"sync"
	"time"
)

// Status indicates the outcome of an operation.
type Status string

const (
	StatusRunning Status = "running"
	StatusDone    Status = "done"
	StatusError   Status = "error"
	StatusSkipped Status = "skipped"
)

// Event is one entry of the activity log.
type Event struct {
	Message   string
	Status    Status
	Timestamp time.Time
	Metadata  map[string]string // optional: file, format, path
}

// Emitter accepts events.
type Emitter interface {
	Emit(ev Event)
}

// ChanEmitter emits events to a channel.
type ChanEmitter struct {
	Ch chan<- Event
}

// Emit sends the event to the channel (non-blocking; drops if full).
func (e *ChanEmitter) Emit(ev Event) {
	if ev.Timestamp.IsZero() {
		ev.Timestamp = time.Now()
	}
	select {
	case e.Ch <- ev:
	default:
	}
}

// DefaultLogSize is the capacity used by NewLog when size <= 0.
const DefaultLogSize = 200

// Log keeps the most recent events, oldest first.
type Log struct {
	mu     sync.Mutex
	size   int
	events []Event
}

// NewLog creates a log holding at most size events.
func NewLog(size int) *Log {
	if size <= 0 {
		size = DefaultLogSize
	}
	return &Log{size: size}
}

// Emit appends ev, dropping the oldest event when the log is full.
func (l *Log) Emit(ev Event) {
	if ev.Timestamp.IsZero() {
		ev.Timestamp = time.Now()
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, ev)
	if over := len(l.events) - l.size; over > 0 {
		l.events = append(l.events[:0:0], l.events[over:]...)
	}
}

// Events returns a copy of the logged events.
func (l *Log) Events() []Event {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Event(nil), l.events...)
}

// Len returns the number of logged events.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.events)
}
