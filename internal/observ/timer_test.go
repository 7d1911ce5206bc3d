package observ

import (
	"strings"
	"testing"
)

func TestTimerTracksPhasesInOrder(t *testing.T) {
	tm := NewTimer("unit-a")
	endBuild := tm.Track("build")
	endBuild("3 models")
	endBuild("ignored")
	tm.Track("pending")("")

	report := tm.Report()
	if report.Unit != "unit-a" || len(report.Phases) != 2 {
		t.Fatalf("unexpected report: %+v", report)
	}
	if report.Phases[0].Name != "build" || report.Phases[0].Note != "3 models" {
		t.Fatalf("first phase: %+v", report.Phases[0])
	}
	summary := report.Summary()
	if !strings.Contains(summary, "timings unit-a:") || !strings.Contains(summary, "// 3 models") {
		t.Fatalf("summary missing parts:\n%s", summary)
	}
}
