package trace

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestStreamTracerFiltersByScope(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDetail)

	span := Begin(tr, ScopeModel, "finalize:List", 0)
	Point(tr, ScopeInstance, "instantiate:List", "", span.ID())
	span.With("instances", "2").End("")

	out := buf.String()
	if !strings.Contains(out, "finalize:List") {
		t.Fatalf("model span missing: %q", out)
	}
	if strings.Contains(out, "instantiate:List") {
		t.Fatalf("instance event leaked at detail level: %q", out)
	}
	if !strings.Contains(out, "instances=2") {
		t.Fatalf("extra missing: %q", out)
	}
}

func TestFailurePassesErrorLevel(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelError)
	Point(tr, ScopeUnit, "unit", "", 0)
	Failure(tr, ScopeInstance, "materialize:Set", errors.New("missing implementation"))
	out := buf.String()
	if strings.Contains(out, "unit") {
		t.Fatalf("point emitted at error level: %q", out)
	}
	if !strings.Contains(out, "missing implementation") {
		t.Fatalf("failure not emitted: %q", out)
	}
}

func TestZapTracerWritesStructuredFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	tr := NewZapTracer(zap.New(core), LevelDebug)
	Begin(tr, ScopeInstance, "materialize:Stack", 0).End("ok")

	entries := logs.FilterMessage("materialize:Stack").All()
	if len(entries) != 2 {
		t.Fatalf("expected begin+end entries, got %d", len(entries))
	}
	end := entries[1].ContextMap()
	if end["kind"] != "end" || end["detail"] != "ok" {
		t.Fatalf("unexpected end fields: %v", end)
	}
}

func TestContextFallsBackToNop(t *testing.T) {
	if FromContext(context.Background()) != Nop {
		t.Fatalf("expected Nop tracer")
	}
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDebug)
	ctx := WithTracer(context.Background(), tr)
	if FromContext(ctx) != Tracer(tr) {
		t.Fatalf("tracer not propagated")
	}
}

func TestParseLevelAndSink(t *testing.T) {
	if l, err := ParseLevel("DETAIL"); err != nil || l != LevelDetail {
		t.Fatalf("ParseLevel: %v %v", l, err)
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatalf("expected error for bad level")
	}
	if s, err := ParseSink("zap"); err != nil || s != SinkZap {
		t.Fatalf("ParseSink: %v %v", s, err)
	}
}

func TestChildSpansCarryParent(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	tr := NewZapTracer(zap.New(core), LevelDebug)
	root := Begin(tr, ScopeUnit, "unit", 0)
	ctx := WithSpan(WithTracer(context.Background(), tr), root)
	if ParentFromContext(ctx) != root.ID() || FromContext(ctx) != Tracer(tr) {
		t.Fatalf("context lost the span or tracer")
	}
	root.Child(ScopeModel, "finalize").With("model", "Stack").With("instances", "1").End("")
	root.End("")

	ends := logs.FilterMessage("finalize").FilterField(zap.String("kind", "end")).All()
	if len(ends) != 1 {
		t.Fatalf("expected one finalize end, got %d", len(ends))
	}
	fields := ends[0].ContextMap()
	if fields["parent"] != root.ID() || fields["model"] != "Stack" || fields["instances"] != "1" {
		t.Fatalf("unexpected child fields: %v", fields)
	}

	var disabled *Span
	if disabled.Child(ScopeModel, "x").End("") != 0 {
		t.Fatalf("child of a nil span must be disabled")
	}
}
