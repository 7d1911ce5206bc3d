package trace

import "time"

// Kind represents the type of trace event.
type Kind uint8

const (
	KindSpanBegin Kind = iota + 1
	KindSpanEnd
	KindPoint
	KindFailure
)

func (k Kind) String() string {
	switch k {
	case KindSpanBegin:
		return "begin"
	case KindSpanEnd:
		return "end"
	case KindPoint:
		return "point"
	case KindFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// Scope indicates the granularity of an event. Lower is coarser.
type Scope uint8

const (
	ScopeUnit     Scope = iota + 1 // one compilation unit
	ScopeModel                     // signature / variety / domain / functor
	ScopeInstance                  // a single instance
)

func (s Scope) String() string {
	switch s {
	case ScopeUnit:
		return "unit"
	case ScopeModel:
		return "model"
	case ScopeInstance:
		return "instance"
	default:
		return "unknown"
	}
}

// Event is one trace record.
type Event struct {
	Time     time.Time
	Seq      uint64
	Kind     Kind
	Scope    Scope
	SpanID   uint64
	ParentID uint64
	Name     string // e.g. "instantiate:List", "finalize:Set"
	Detail   string
	Attrs    []Attr
}
