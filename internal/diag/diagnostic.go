package diag

import "comma/internal/source"

// Note points at a related location, e.g. "previous declaration is here".
type Note struct {
	Span source.Span
	Msg  string
}

// Diagnostic is one finding of the checker.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	// Subject is the identifier the diagnostic is about, if any.
	Subject source.StringID
	Notes   []Note
}

// New builds a diagnostic without notes.
func New(sev Severity, code Code, primary source.Span, msg string) Diagnostic {
	return Diagnostic{Severity: sev, Code: code, Primary: primary, Message: msg}
}

// WithNote returns a copy with one more note attached.
func (d Diagnostic) WithNote(sp source.Span, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Span: sp, Msg: msg})
	return d
}
