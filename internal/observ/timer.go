package observ

import (
	"fmt"
	"strings"
	"time"
)

// Phase is one timed step of checking a unit.
type Phase struct {
	Name  string
	Start time.Time
	Dur   time.Duration
	Note  string
}

// Timer records the phases of one compilation unit. It is not safe for
// concurrent use; every unit owns its own timer.
type Timer struct {
	unit   string
	phases []Phase
}

// NewTimer creates an empty timer for unit.
func NewTimer(unit string) *Timer {
	return &Timer{unit: unit, phases: make([]Phase, 0, 4)}
}

// Track starts a phase and returns the function that ends it.
func (t *Timer) Track(name string) func(note string) {
	t.phases = append(t.phases, Phase{Name: name, Start: time.Now()})
	idx := len(t.phases) - 1
	done := false
	return func(note string) {
		if done {
			return
		}
		done = true
		p := &t.phases[idx]
		p.Dur = time.Since(p.Start)
		p.Note = note
	}
}

// Phases returns the recorded phases in start order. READONLY
func (t *Timer) Phases() []Phase {
	return t.phases
}

// PhaseReport is the serializable form of a Phase.
type PhaseReport struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Note       string  `json:"note,omitempty"`
}

// Report aggregates the phases of one unit.
type Report struct {
	Unit    string        `json:"unit"`
	TotalMS float64       `json:"total_ms"`
	Phases  []PhaseReport `json:"phases"`
}

// Report converts the recorded phases.
func (t *Timer) Report() Report {
	report := Report{Unit: t.unit, Phases: make([]PhaseReport, len(t.phases))}
	var total time.Duration
	for i, p := range t.phases {
		total += p.Dur
		report.Phases[i] = PhaseReport{Name: p.Name, DurationMS: millis(p.Dur), Note: p.Note}
	}
	report.TotalMS = millis(total)
	return report
}

// Summary renders the report as aligned text lines.
func (r Report) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "timings %s:\n", r.Unit)
	for _, p := range r.Phases {
		fmt.Fprintf(&b, "  %-12s %7.2f ms", p.Name, p.DurationMS)
		if p.Note != "" {
			b.WriteString("  // " + p.Note)
		}
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "  %-12s %7.2f ms\n", "total", r.TotalMS)
	return b.String()
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
