package trace

import (
	"io"
	"strconv"
	"strings"
	"sync"
)

// StreamTracer writes one text line per event.
type StreamTracer struct {
	mu    sync.Mutex
	w     io.Writer
	level Level
}

// NewStreamTracer creates a StreamTracer.
func NewStreamTracer(w io.Writer, level Level) *StreamTracer {
	return &StreamTracer{w: w, level: level}
}

// Emit writes ev. Write errors are ignored so tracing never fails a check.
func (t *StreamTracer) Emit(ev *Event) {
	if ev == nil {
		return
	}
	if ev.Kind != KindFailure && !t.level.ShouldEmit(ev.Scope) {
		return
	}
	line := formatLine(ev)
	t.mu.Lock()
	defer t.mu.Unlock()
	_, _ = io.WriteString(t.w, line) //nolint:errcheck
}

// Flush flushes the writer when it supports it.
func (t *StreamTracer) Flush() error {
	if f, ok := t.w.(interface{ Flush() error }); ok {
		return f.Flush()
	}
	return nil
}

// Close flushes and closes the writer when it is an io.Closer.
func (t *StreamTracer) Close() error {
	if err := t.Flush(); err != nil {
		return err
	}
	if c, ok := t.w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func (t *StreamTracer) Level() Level  { return t.level }
func (t *StreamTracer) Enabled() bool { return t.level > LevelOff }

func formatLine(ev *Event) string {
	var b strings.Builder
	b.WriteString("[")
	b.WriteString(strconv.FormatUint(ev.Seq, 10))
	b.WriteString("] ")
	b.WriteString(ev.Scope.String())
	b.WriteByte(' ')
	b.WriteString(ev.Kind.String())
	b.WriteByte(' ')
	b.WriteString(ev.Name)
	if ev.Detail != "" {
		b.WriteString(" (")
		b.WriteString(ev.Detail)
		b.WriteString(")")
	}
	for _, a := range ev.Attrs {
		b.WriteByte(' ')
		b.WriteString(a.Key)
		b.WriteByte('=')
		b.WriteString(a.Value)
	}
	b.WriteByte('\n')
	return b.String()
}
