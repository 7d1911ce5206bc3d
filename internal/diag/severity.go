package diag

import "fmt"

// Severity orders diagnostics; only SevError blocks code generation.
type Severity uint8

const (
	SevInfo Severity = iota
	SevWarning
	SevError
)

var severityNames = [...]string{
	SevInfo:    "info",
	SevWarning: "warning",
	SevError:   "error",
}

func (s Severity) String() string {
	if int(s) < len(severityNames) {
		return severityNames[s]
	}
	return fmt.Sprintf("severity(%d)", uint8(s))
}

// Blocking reports whether a diagnostic of this severity makes the unit
// fail.
func (s Severity) Blocking() bool {
	return s >= SevError
}

// ParseSeverity accepts the names produced by String.
func ParseSeverity(name string) (Severity, error) {
	for i, n := range severityNames {
		if n == name {
			return Severity(i), nil
		}
	}
	return SevInfo, fmt.Errorf("unknown severity %q (want info, warning or error)", name)
}
