// Package notify is the user-facing message channel. Notifications are
// fire-and-forget: callers never wait for them to be seen or dismissed.
package notify

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
)

// Notifier shows a message to the user
type Notifier interface {
	Notify(message string)
}

// Func adapts a function to a Notifier
type Func func(message string)

func (f Func) Notify(message string) { f(message) }

var errorStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#FF5F87")).
	Bold(true)

// Terminal prints styled error notifications to a writer (usually stderr)
type Terminal struct {
	mu  sync.Mutex
	out io.Writer
}

func NewTerminal(out io.Writer) *Terminal {
	return &Terminal{out: out}
}

func (t *Terminal) Notify(message string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintln(t.out, errorStyle.Render("✗ "+message))
}

// Log forwards notifications to a zerolog logger at warn level
type Log struct {
	Logger zerolog.Logger
}

func (l Log) Notify(message string) {
	l.Logger.Warn().Str("notification", message).Msg("User notified")
}

// Recorder keeps every notification; used in tests
type Recorder struct {
	mu       sync.Mutex
	messages []string
}

func (r *Recorder) Notify(message string) {
	r.mu.Lock()
	r.messages = append(r.messages, message)
	r.mu.Unlock()
}

// Messages returns a copy of the recorded notifications
func (r *Recorder) Messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.messages))
	copy(out, r.messages)
	return out
}

// Multi fans a notification out to several notifiers
type Multi []Notifier

func (m Multi) Notify(message string) {
	for _, n := range m {
		n.Notify(message)
	}
}

// Discard drops every notification
var Discard Notifier = Func(func(string) {})
