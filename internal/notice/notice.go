package notice

import (
	"fmt"
	"io"
	"sync"
)

type Level string

const (
	Info    Level = "info"
	Success Level = "success"
	Warning Level = "warning"
	Error   Level = "error"
)

func (l Level) String() string {
	return string(l)
}

// Notice is a short user-facing message.
type Notice struct {
	Level Level
	Text  string
}

type Notifier interface {
	Notify(n Notice)
}

func Infof(n Notifier, format string, args ...interface{}) {
	n.Notify(Notice{Level: Info, Text: fmt.Sprintf(format, args...)})
}

func Successf(n Notifier, format string, args ...interface{}) {
	n.Notify(Notice{Level: Success, Text: fmt.Sprintf(format, args...)})
}

func Warnf(n Notifier, format string, args ...interface{}) {
	n.Notify(Notice{Level: Warning, Text: fmt.Sprintf(format, args...)})
}

func Errorf(n Notifier, format string, args ...interface{}) {
	n.Notify(Notice{Level: Error, Text: fmt.Sprintf(format, args...)})
}

// Recorder keeps every notice it receives.
type Recorder struct {
	mu      sync.Mutex
	notices []Notice
}

func (r *Recorder) Notify(n Notice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, n)
}

func (r *Recorder) All() []Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notice, len(r.notices))
	copy(out, r.notices)
	return out
}

// Last returns the most recent notice, or the zero Notice.
func (r *Recorder) Last() Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.notices) == 0 {
		return Notice{}
	}
	return r.notices[len(r.notices)-1]
}

func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = nil
}

// Writer prints notices as "[level] text" lines.
type Writer struct {
	mu sync.Mutex
	w  io.Writer
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

func (p *Writer) Notify(n Notice) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.w, "[%s] %s\n", n.Level, n.Text)
}
