package diag

import "comma/internal/source"

type dedupKey struct {
	code    Code
	span    source.Span
	subject source.StringID
}

// DedupReporter forwards each (code, primary span, subject) once. Retried
// deferred work would otherwise report the same problem per attempt.
type DedupReporter struct {
	next Reporter
	seen map[dedupKey]struct{}
}

// NewDedupReporter wraps next.
func NewDedupReporter(next Reporter) *DedupReporter {
	return &DedupReporter{next: next, seen: make(map[dedupKey]struct{})}
}

func (r *DedupReporter) Report(d Diagnostic) {
	if r == nil || r.next == nil {
		return
	}
	key := dedupKey{code: d.Code, span: d.Primary, subject: d.Subject}
	if _, dup := r.seen[key]; dup {
		return
	}
	r.seen[key] = struct{}{}
	r.next.Report(d)
}

// SeverityFilter drops diagnostics below Min. Internal-consistency
// diagnostics always pass.
type SeverityFilter struct {
	Next Reporter
	Min  Severity
}

func (f SeverityFilter) Report(d Diagnostic) {
	if f.Next == nil {
		return
	}
	if d.Severity < f.Min && !d.Code.IsInternal() {
		return
	}
	f.Next.Report(d)
}
