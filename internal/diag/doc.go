// Package diag defines the diagnostic records raised by the checker core.
//
// The core never renders text. A Diagnostic carries a stable Code, a
// Severity, the primary span, the identifier involved and optional notes
// pointing at related declarations (e.g. the earlier declaration in a
// conflict). Producers emit through a Reporter; BagReporter collects into a
// Bag that callers can sort, deduplicate and inspect.
package diag
