// Package logging provides the service's diagnostic recorder: a
// charmbracelet/log logger paired with a fixed-capacity ring buffer of
// recent entries for the back-office log view. Recorders are constructed
// once and injected; nothing in this package holds global state.
package logging

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// DefaultCapacity bounds retained entries when the config does not say.
const DefaultCapacity = 256

// Entry is one retained diagnostic line.
type Entry struct {
	Time    time.Time `json:"time"`
	Level   string    `json:"level"`
	Message string    `json:"message"`
}

// Recorder filters by level, writes through an underlying logger, and
// retains the last N accepted entries. Safe for concurrent use.
type Recorder struct {
	logger *log.Logger

	mu      sync.Mutex
	entries []Entry
	next    int
	filled  bool
}

// NewRecorder creates a recorder writing to w (os.Stderr when nil).
// level is a charmbracelet/log level name ("debug", "info", "warn",
// "error"); unknown names fall back to info.
func NewRecorder(w io.Writer, prefix, level string, capacity int) *Recorder {
	if w == nil {
		w = os.Stderr
	}
	if capacity <= 0 {
		capacity = DefaultCapacity
	}

	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}

	return &Recorder{
		logger: log.NewWithOptions(w, log.Options{
			Prefix:          prefix,
			ReportTimestamp: true,
			Level:           lvl,
		}),
		entries: make([]Entry, capacity),
	}
}

func (r *Recorder) Debugf(format string, args ...interface{}) {
	r.logger.Debugf(format, args...)
	r.record(log.DebugLevel, format, args...)
}

func (r *Recorder) Infof(format string, args ...interface{}) {
	r.logger.Infof(format, args...)
	r.record(log.InfoLevel, format, args...)
}

func (r *Recorder) Warnf(format string, args ...interface{}) {
	r.logger.Warnf(format, args...)
	r.record(log.WarnLevel, format, args...)
}

func (r *Recorder) Errorf(format string, args ...interface{}) {
	r.logger.Errorf(format, args...)
	r.record(log.ErrorLevel, format, args...)
}

// record appends to the ring buffer, honoring the logger's level filter
// so the retained view matches what was emitted.
func (r *Recorder) record(lvl log.Level, format string, args ...interface{}) {
	if lvl < r.logger.GetLevel() {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries[r.next] = Entry{
		Time:    time.Now(),
		Level:   lvl.String(),
		Message: fmt.Sprintf(format, args...),
	}
	r.next++
	if r.next == len(r.entries) {
		r.next = 0
		r.filled = true
	}
}

// Recent returns up to n retained entries, oldest first.
func (r *Recorder) Recent(n int) []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	var ordered []Entry
	if r.filled {
		ordered = append(ordered, r.entries[r.next:]...)
		ordered = append(ordered, r.entries[:r.next]...)
	} else {
		ordered = append(ordered, r.entries[:r.next]...)
	}

	if n > 0 && len(ordered) > n {
		ordered = ordered[len(ordered)-n:]
	}
	return ordered
}

// Len reports how many entries are currently retained.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.filled {
		return len(r.entries)
	}
	return r.next
}
