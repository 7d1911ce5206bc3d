package trace

import "time"

// Attr is a key/value attached to a span end event.
type Attr struct {
	Key   string
	Value string
}

// Span is an open begin/end pair. A disabled span is safe to use and
// emits nothing.
type Span struct {
	tracer  Tracer
	id      uint64
	parent  uint64
	scope   Scope
	name    string
	started time.Time
	attrs   []Attr
}

func (s *Span) live() bool {
	return s != nil && s.tracer != nil && s.tracer.Enabled()
}

// Begin opens a span and emits its begin event; parent is 0 for roots.
func Begin(t Tracer, scope Scope, name string, parent uint64) *Span {
	if t == nil || !t.Enabled() || !t.Level().ShouldEmit(scope) {
		return &Span{}
	}
	s := &Span{tracer: t, id: nextSpanID(), parent: parent, scope: scope, name: name, started: time.Now()}
	s.emit(KindSpanBegin, s.started, "", nil)
	return s
}

// Child opens a span nested under s on the same tracer. Children of a
// disabled span are disabled.
func (s *Span) Child(scope Scope, name string) *Span {
	if !s.live() {
		return &Span{}
	}
	return Begin(s.tracer, scope, name, s.id)
}

// With appends an attribute reported by End. Attributes keep their order.
func (s *Span) With(key, value string) *Span {
	if s.live() {
		s.attrs = append(s.attrs, Attr{Key: key, Value: value})
	}
	return s
}

// End emits the end event and returns the time since Begin.
func (s *Span) End(detail string) time.Duration {
	if !s.live() {
		return 0
	}
	now := time.Now()
	s.emit(KindSpanEnd, now, detail, s.attrs)
	return now.Sub(s.started)
}

// ID returns the span id, 0 for disabled spans.
func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.id
}

func (s *Span) emit(kind Kind, at time.Time, detail string, attrs []Attr) {
	s.tracer.Emit(&Event{
		Time:     at,
		Seq:      nextSeq(),
		Kind:     kind,
		Scope:    s.scope,
		SpanID:   s.id,
		ParentID: s.parent,
		Name:     s.name,
		Detail:   detail,
		Attrs:    attrs,
	})
}
